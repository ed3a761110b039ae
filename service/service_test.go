package service

import (
	"github.com/prometheus/client_golang/prometheus"

	"taxidispatch/pkg/logger"
	"taxidispatch/pkg/metrics"
	"taxidispatch/storage/memory"
)

func ptr[T any](v T) *T { return &v }

func newTestManager() (*memory.Store, IServiceManager) {
	stg := memory.New()
	m := metrics.New(prometheus.NewRegistry())
	return stg, New(stg, logger.NewNop(), m, Options{EnrichConcurrency: 4})
}

// counterValue sums the named counter across series whose labels include want.
func counterValue(reg *prometheus.Registry, name string, want map[string]string) float64 {
	families, err := reg.Gather()
	if err != nil {
		panic(err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matched := 0
			for _, lp := range metric.GetLabel() {
				if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
					matched++
				}
			}
			if matched == len(want) {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}
