// Package seed fills empty repositories with the clinic's starter data.
package seed

import (
	"context"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
)

type AttendanceStore interface {
	GetAttendanceData(ctx context.Context, date string) ([]model.AttendanceRecord, error)
	SaveAttendanceData(ctx context.Context, date string, records []model.AttendanceRecord) error
}

// InventoryStore seeds itself on read when empty.
type InventoryStore interface {
	GetInventoryData(ctx context.Context) ([]model.InventoryItem, error)
}

type Seeder struct {
	attendance AttendanceStore
	inventory  InventoryStore
	logger     logger.ZapLogger
	now        func() time.Time
}

func NewSeeder(attendance AttendanceStore, inventory InventoryStore, log logger.ZapLogger) *Seeder {
	return &Seeder{
		attendance: attendance,
		inventory:  inventory,
		logger:     log,
		now:        time.Now,
	}
}

// Run writes the default roster for today when today has no records, then
// loads the inventory so an empty table gets its default stock.
func (s *Seeder) Run(ctx context.Context) error {
	now := s.now()
	today := now.Format(model.DateLayout)

	records, err := s.attendance.GetAttendanceData(ctx, today)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		if err := s.attendance.SaveAttendanceData(ctx, today, DefaultRoster(today, now)); err != nil {
			return err
		}
		s.logger.Info("seeded default roster", zap.String("date", today))
	}

	if _, err := s.inventory.GetInventoryData(ctx); err != nil {
		return err
	}
	return nil
}
