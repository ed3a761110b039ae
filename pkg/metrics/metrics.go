package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the dispatch layer.
type Metrics struct {
	RecordMutations    *prometheus.CounterVec
	ClientsCreated     prometheus.Counter
	ClientNameRefresh  prometheus.Counter
	EnrichmentFailures *prometheus.CounterVec
	DebtsSettled       prometheus.Counter
	DebtSettledAmount  prometheus.Counter
	StaleViewResults   prometheus.Counter
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordMutations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxidispatch_record_mutations_total",
			Help: "Trip record mutations by kind and operation",
		}, []string{"kind", "op"}),
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "taxidispatch_clients_created_total",
			Help: "Clients created by phone resolution or explicit creation",
		}),
		ClientNameRefresh: f.NewCounter(prometheus.CounterOpts{
			Name: "taxidispatch_client_name_refresh_total",
			Help: "Client names overwritten during phone resolution",
		}),
		EnrichmentFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taxidispatch_enrichment_failures_total",
			Help: "Per-record enrichment lookups that degraded to a default value",
		}, []string{"kind"}),
		DebtsSettled: f.NewCounter(prometheus.CounterOpts{
			Name: "taxidispatch_debts_settled_total",
			Help: "Driver debts settled to zero",
		}),
		DebtSettledAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "taxidispatch_debt_settled_amount_total",
			Help: "Sum of driver debt balances cleared by settlement",
		}),
		StaleViewResults: f.NewCounter(prometheus.CounterOpts{
			Name: "taxidispatch_stale_view_results_total",
			Help: "Filtered view loads discarded because a newer load superseded them",
		}),
	}
}

func (m *Metrics) IncMutation(kind, op string) {
	if m == nil {
		return
	}
	m.RecordMutations.WithLabelValues(kind, op).Inc()
}

func (m *Metrics) IncClientsCreated() {
	if m == nil {
		return
	}
	m.ClientsCreated.Inc()
}

func (m *Metrics) IncClientNameRefresh() {
	if m == nil {
		return
	}
	m.ClientNameRefresh.Inc()
}

func (m *Metrics) IncEnrichmentFailure(kind string) {
	if m == nil {
		return
	}
	m.EnrichmentFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveSettlement(amount float64) {
	if m == nil {
		return
	}
	m.DebtsSettled.Inc()
	m.DebtSettledAmount.Add(amount)
}

func (m *Metrics) IncStaleView() {
	if m == nil {
		return
	}
	m.StaleViewResults.Inc()
}
