package repository

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/inventory"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/fallback"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/metrics"
)

var _ inventory.Repository = (*FallbackRepository)(nil)

type FallbackRepository struct {
	primary   inventory.Repository
	secondary inventory.Repository
	policy    *fallback.Policy
}

func NewFallbackRepository(primary, secondary inventory.Repository, log logger.ZapLogger, m *metrics.StoreMetrics) *FallbackRepository {
	return &FallbackRepository{
		primary:   primary,
		secondary: secondary,
		policy: &fallback.Policy{
			Repository: "inventory",
			Logger:     log,
			Metrics:    m,
		},
	}
}

func (r *FallbackRepository) ReplaceAll(ctx context.Context, items []model.InventoryItem) error {
	return r.policy.Exec(ctx, "replace_all",
		func(ctx context.Context) error { return r.primary.ReplaceAll(ctx, items) },
		func(ctx context.Context) error { return r.secondary.ReplaceAll(ctx, items) },
	)
}

func (r *FallbackRepository) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	return fallback.Query(ctx, r.policy, "find_all", r.primary.FindAll, r.secondary.FindAll)
}

func (r *FallbackRepository) FindByID(ctx context.Context, id int64) (*model.InventoryItem, error) {
	return fallback.Query(ctx, r.policy, "find_by_id",
		func(ctx context.Context) (*model.InventoryItem, error) { return r.primary.FindByID(ctx, id) },
		func(ctx context.Context) (*model.InventoryItem, error) { return r.secondary.FindByID(ctx, id) },
	)
}

func (r *FallbackRepository) Create(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	return r.policy.Exec(ctx, "create",
		func(ctx context.Context) error { return r.primary.Create(ctx, item, entry) },
		func(ctx context.Context) error { return r.secondary.Create(ctx, item, entry) },
	)
}

func (r *FallbackRepository) SaveWithHistory(ctx context.Context, item *model.InventoryItem, entry *model.InventoryHistoryEntry) error {
	return r.policy.Exec(ctx, "save_with_history",
		func(ctx context.Context) error { return r.primary.SaveWithHistory(ctx, item, entry) },
		func(ctx context.Context) error { return r.secondary.SaveWithHistory(ctx, item, entry) },
	)
}

func (r *FallbackRepository) ListHistory(ctx context.Context, startDate, endDate string) ([]model.InventoryHistoryEntry, error) {
	return fallback.Query(ctx, r.policy, "list_history",
		func(ctx context.Context) ([]model.InventoryHistoryEntry, error) {
			return r.primary.ListHistory(ctx, startDate, endDate)
		},
		func(ctx context.Context) ([]model.InventoryHistoryEntry, error) {
			return r.secondary.ListHistory(ctx, startDate, endDate)
		},
	)
}
