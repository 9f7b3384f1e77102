package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/backup"
	"github.com/bharatsutharx/radiology-center-2/internal/localstore"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
)

type backupUseCase struct {
	store  localstore.Store
	logger logger.ZapLogger
	now    func() time.Time
}

func NewBackupUseCase(store localstore.Store, log logger.ZapLogger) backup.UseCase {
	return &backupUseCase{
		store:  store,
		logger: log,
		now:    time.Now,
	}
}

func (uc *backupUseCase) raw(ctx context.Context, key string) (*string, error) {
	v, err := uc.store.Get(ctx, key)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return &v, nil
}

func (uc *backupUseCase) Export(ctx context.Context, userAgent string) (*backup.Backup, error) {
	attendance, err := uc.raw(ctx, localstore.AttendanceKey)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.raw(ctx, localstore.InventoryKey)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	return &backup.Backup{
		ExportDate: now.UTC(),
		Attendance: attendance,
		Inventory:  inventory,
		Metadata: backup.Metadata{
			UserAgent: userAgent,
			Timestamp: now.UnixMilli(),
			Version:   backup.Version,
		},
	}, nil
}

// Import restores whichever payloads the backup carries; absent ones leave the
// stored value alone.
func (uc *backupUseCase) Import(ctx context.Context, raw []byte) (*backup.ImportResult, error) {
	var b backup.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, backup.ErrInvalidBackup
	}

	type payload struct {
		key   string
		value *string
		ok    *bool
	}
	res := &backup.ImportResult{}
	for _, p := range []payload{
		{localstore.AttendanceKey, b.Attendance, &res.Attendance},
		{localstore.InventoryKey, b.Inventory, &res.Inventory},
	} {
		if p.value == nil || *p.value == "" {
			continue
		}
		if !json.Valid([]byte(*p.value)) {
			return nil, fmt.Errorf("%w: %s", backup.ErrInvalidBackup, p.key)
		}
		if err := uc.store.Set(ctx, p.key, *p.value); err != nil {
			return nil, fmt.Errorf("restore %s: %w", p.key, err)
		}
		*p.ok = true
	}

	uc.logger.Info("backup imported",
		zap.Bool("attendance", res.Attendance),
		zap.Bool("inventory", res.Inventory),
		zap.String("version", b.Metadata.Version),
	)
	return res, nil
}

func (uc *backupUseCase) Clear(ctx context.Context) error {
	for _, key := range []string{localstore.AttendanceKey, localstore.InventoryKey} {
		if err := uc.store.Delete(ctx, key); err != nil && !errors.Is(err, localstore.ErrNotFound) {
			return fmt.Errorf("clear %s: %w", key, err)
		}
	}
	uc.logger.Warn("local store cleared")
	return nil
}

func kb(n int) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}

func (uc *backupUseCase) Usage(ctx context.Context) (*backup.Usage, error) {
	size := func(v *string) int {
		if v == nil {
			return 0
		}
		return len(*v)
	}

	attendance, err := uc.raw(ctx, localstore.AttendanceKey)
	if err != nil {
		return nil, err
	}
	inventory, err := uc.raw(ctx, localstore.InventoryKey)
	if err != nil {
		return nil, err
	}

	keys, err := uc.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, key := range keys {
		v, err := uc.raw(ctx, key)
		if err != nil {
			return nil, err
		}
		total += size(v)
	}

	return &backup.Usage{
		Attendance: kb(size(attendance)),
		Inventory:  kb(size(inventory)),
		Total:      kb(size(attendance) + size(inventory)),
		TotalUsed:  kb(total),
		Keys:       len(keys),
	}, nil
}

func (uc *backupUseCase) Inspect(ctx context.Context) (*backup.Inspection, error) {
	out := &backup.Inspection{AttendanceDates: []string{}}

	var data model.AttendanceLog
	ok, err := localstore.LoadJSON(ctx, uc.store, localstore.AttendanceKey, &data)
	if err != nil {
		return nil, err
	}
	if ok {
		out.HasAttendance = true
		out.AttendanceDates = data.Dates()
		for _, records := range data {
			out.AttendanceRecords += len(records)
		}
	}

	var items []model.InventoryItem
	ok, err = localstore.LoadJSON(ctx, uc.store, localstore.InventoryKey, &items)
	if err != nil {
		return nil, err
	}
	if ok {
		out.HasInventory = true
		out.InventoryItems = len(items)
		for _, item := range items {
			out.HistoryEntries += len(item.History)
		}
	}
	return out, nil
}
