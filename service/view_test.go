package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxidispatch/pkg/metrics"
)

func TestLatestViewDiscardsSupersededLoad(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	release := make(chan struct{})
	started := make(chan struct{})

	view := NewLatestView(func(ctx context.Context, filter string) (string, error) {
		if filter == "slow" {
			close(started)
			<-release
		}
		return "result for " + filter, nil
	}, m)

	type outcome struct {
		res string
		ok  bool
		err error
	}
	slow := make(chan outcome, 1)
	go func() {
		res, ok, err := view.Load(context.Background(), "slow")
		slow <- outcome{res, ok, err}
	}()
	<-started

	res, ok, err := view.Load(context.Background(), "fast")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "result for fast", res)

	close(release)
	got := <-slow
	assert.False(t, got.ok)
	assert.Empty(t, got.res)
	assert.NoError(t, got.err)
	assert.Equal(t, 1.0, counterValue(reg, "taxidispatch_stale_view_results_total", nil))
}

func TestLatestViewReturnsCurrentError(t *testing.T) {
	view := NewLatestView(func(ctx context.Context, filter int) ([]int, error) {
		return nil, errors.New("backend down")
	}, nil)

	_, ok, err := view.Load(context.Background(), 1)
	assert.True(t, ok)
	assert.EqualError(t, err, "backend down")
}
