package repository

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/attendance"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/fallback"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/metrics"
)

var _ attendance.Repository = (*FallbackRepository)(nil)

// FallbackRepository serves every call from primary and, when primary fails,
// from secondary. Nothing written to secondary is synced back.
type FallbackRepository struct {
	primary   attendance.Repository
	secondary attendance.Repository
	policy    *fallback.Policy
}

func NewFallbackRepository(primary, secondary attendance.Repository, log logger.ZapLogger, m *metrics.StoreMetrics) *FallbackRepository {
	return &FallbackRepository{
		primary:   primary,
		secondary: secondary,
		policy: &fallback.Policy{
			Repository: "attendance",
			Logger:     log,
			Metrics:    m,
		},
	}
}

func (r *FallbackRepository) ReplaceByDate(ctx context.Context, date string, records []model.AttendanceRecord) error {
	return r.policy.Exec(ctx, "replace_by_date",
		func(ctx context.Context) error { return r.primary.ReplaceByDate(ctx, date, records) },
		func(ctx context.Context) error { return r.secondary.ReplaceByDate(ctx, date, records) },
	)
}

func (r *FallbackRepository) FindByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	return fallback.Query(ctx, r.policy, "find_by_date",
		func(ctx context.Context) ([]model.AttendanceRecord, error) { return r.primary.FindByDate(ctx, date) },
		func(ctx context.Context) ([]model.AttendanceRecord, error) { return r.secondary.FindByDate(ctx, date) },
	)
}

func (r *FallbackRepository) FindAll(ctx context.Context) (model.AttendanceLog, error) {
	return fallback.Query(ctx, r.policy, "find_all", r.primary.FindAll, r.secondary.FindAll)
}
