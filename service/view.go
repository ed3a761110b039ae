package service

import (
	"context"
	"sync/atomic"

	"taxidispatch/pkg/metrics"
)

// LatestView runs filtered loads that may be re-triggered while earlier ones
// are still in flight. Each load is tagged with a sequence number; a result is
// applied only if no newer load has started since.
type LatestView[F, T any] struct {
	load    func(ctx context.Context, filter F) (T, error)
	seq     atomic.Uint64
	metrics *metrics.Metrics
}

func NewLatestView[F, T any](load func(ctx context.Context, filter F) (T, error), m *metrics.Metrics) *LatestView[F, T] {
	return &LatestView[F, T]{load: load, metrics: m}
}

// Load runs the load for filter. ok is false when the result was superseded
// and must be discarded; err is also dropped in that case.
func (v *LatestView[F, T]) Load(ctx context.Context, filter F) (result T, ok bool, err error) {
	tag := v.seq.Add(1)
	res, err := v.load(ctx, filter)
	if v.seq.Load() != tag {
		v.metrics.IncStaleView()
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, true, err
	}
	return res, true, nil
}
