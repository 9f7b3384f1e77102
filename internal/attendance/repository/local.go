package repository

import (
	"context"

	"github.com/bharatsutharx/radiology-center-2/internal/localstore"
	"github.com/bharatsutharx/radiology-center-2/internal/model"
)

// LocalRepository keeps every roster in one JSON object (date -> records)
// under localstore.AttendanceKey.
type LocalRepository struct {
	store localstore.Store
}

func NewLocalRepository(store localstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func (r *LocalRepository) load(ctx context.Context) (model.AttendanceLog, error) {
	var data model.AttendanceLog
	ok, err := localstore.LoadJSON(ctx, r.store, localstore.AttendanceKey, &data)
	if err != nil {
		return nil, err
	}
	if !ok || data == nil {
		return model.AttendanceLog{}, nil
	}
	return data, nil
}

// ReplaceByDate overwrites the day's entry. Records without an id get the
// next id after the day's current maximum.
func (r *LocalRepository) ReplaceByDate(ctx context.Context, date string, records []model.AttendanceRecord) error {
	data, err := r.load(ctx)
	if err != nil {
		return err
	}

	data[date] = model.AssignRecordIDs(records)

	return localstore.SaveJSON(ctx, r.store, localstore.AttendanceKey, data)
}

func (r *LocalRepository) FindByDate(ctx context.Context, date string) ([]model.AttendanceRecord, error) {
	data, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if records, ok := data[date]; ok && records != nil {
		return records, nil
	}
	return []model.AttendanceRecord{}, nil
}

func (r *LocalRepository) FindAll(ctx context.Context) (model.AttendanceLog, error) {
	return r.load(ctx)
}
