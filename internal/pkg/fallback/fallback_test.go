package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicy() *Policy {
	return &Policy{
		Repository: "attendance",
		Logger:     logger.NewNop(),
		Metrics:    metrics.NewStoreMetrics(prometheus.NewRegistry()),
	}
}

func TestQuery_PrimaryWins(t *testing.T) {
	p := newPolicy()
	calledSecondary := false

	got, err := Query(context.Background(), p, "find_all",
		func(context.Context) (int, error) { return 1, nil },
		func(context.Context) (int, error) { calledSecondary = true; return 2, nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
	assert.False(t, calledSecondary)
	assert.Equal(t, 0.0, testutil.ToFloat64(p.Metrics.Fallbacks.WithLabelValues("attendance", "find_all")))
}

func TestQuery_FallsBack(t *testing.T) {
	p := newPolicy()

	got, err := Query(context.Background(), p, "find_all",
		func(context.Context) (int, error) { return 0, errors.New("connection refused") },
		func(context.Context) (int, error) { return 2, nil },
	)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Metrics.Fallbacks.WithLabelValues("attendance", "find_all")))
}

func TestExec_BothFail(t *testing.T) {
	p := newPolicy()
	diskFull := errors.New("disk full")

	err := p.Exec(context.Background(), "replace_by_date",
		func(context.Context) error { return errors.New("connection refused") },
		func(context.Context) error { return diskFull },
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, diskFull)
	assert.Contains(t, err.Error(), "attendance.replace_by_date")
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Metrics.FallbackFailure.WithLabelValues("attendance", "replace_by_date")))
}

func TestPolicy_NilMetrics(t *testing.T) {
	p := &Policy{Repository: "inventory", Logger: logger.NewNop()}
	err := p.Exec(context.Background(), "create",
		func(context.Context) error { return errors.New("down") },
		func(context.Context) error { return nil },
	)
	assert.NoError(t, err)
}
