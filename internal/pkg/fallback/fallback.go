package fallback

import (
	"context"
	"fmt"

	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/metrics"
	"go.uber.org/zap"
)

// Policy runs an operation against a primary backend and, if it fails, runs
// the same operation against a secondary backend. The primary error is only
// logged and counted; it never reaches the caller.
type Policy struct {
	Repository string
	Logger     logger.ZapLogger
	Metrics    *metrics.StoreMetrics
}

func (p *Policy) Exec(ctx context.Context, op string, primary, secondary func(ctx context.Context) error) error {
	_, err := Query(ctx, p, op,
		func(ctx context.Context) (struct{}, error) { return struct{}{}, primary(ctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, secondary(ctx) },
	)
	return err
}

func Query[T any](ctx context.Context, p *Policy, op string, primary, secondary func(ctx context.Context) (T, error)) (T, error) {
	res, err := primary(ctx)
	if err == nil {
		return res, nil
	}

	p.Logger.Warn("remote store call failed, using local store",
		zap.String("repository", p.Repository),
		zap.String("operation", op),
		zap.Error(err),
	)
	if p.Metrics != nil {
		p.Metrics.Fallbacks.WithLabelValues(p.Repository, op).Inc()
	}

	res, lerr := secondary(ctx)
	if lerr != nil {
		p.Logger.Error("local store call also failed",
			zap.String("repository", p.Repository),
			zap.String("operation", op),
			zap.Error(lerr),
		)
		if p.Metrics != nil {
			p.Metrics.FallbackFailure.WithLabelValues(p.Repository, op).Inc()
		}
		var zero T
		return zero, fmt.Errorf("%s.%s: local store: %w", p.Repository, op, lerr)
	}
	return res, nil
}
