package repository

import (
	"context"
	"errors"

	"github.com/scott-daily/time-tracker-api/internal/database"
)

// StoreErrorRecorder counts failed store operations.
type StoreErrorRecorder interface {
	RecordStoreError()
}

// InstrumentedStore wraps a Store and records every operation that fails
// with something other than a missing record. Not-found is an expected
// outcome, not a store failure.
type InstrumentedStore struct {
	store    Store
	recorder StoreErrorRecorder
}

// NewInstrumentedStore wraps store with failure counting.
func NewInstrumentedStore(store Store, recorder StoreErrorRecorder) *InstrumentedStore {
	return &InstrumentedStore{store: store, recorder: recorder}
}

func (s *InstrumentedStore) record(err error) error {
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		s.recorder.RecordStoreError()
	}
	return err
}

func (s *InstrumentedStore) ListOrdered(ctx context.Context, col Collection, orderField string, dir Direction) ([]Record, error) {
	rows, err := s.store.ListOrdered(ctx, col, orderField, dir)
	return rows, s.record(err)
}

func (s *InstrumentedStore) Add(ctx context.Context, col Collection, record Record) (string, error) {
	id, err := s.store.Add(ctx, col, record)
	return id, s.record(err)
}

func (s *InstrumentedStore) Put(ctx context.Context, col Collection, id string, record Record) error {
	return s.record(s.store.Put(ctx, col, id, record))
}

func (s *InstrumentedStore) GetByID(ctx context.Context, col Collection, id string) (Record, error) {
	rec, err := s.store.GetByID(ctx, col, id)
	return rec, s.record(err)
}

func (s *InstrumentedStore) Update(ctx context.Context, col Collection, id string, partial Record) error {
	return s.record(s.store.Update(ctx, col, id, partial))
}

func (s *InstrumentedStore) Delete(ctx context.Context, col Collection, id string) error {
	return s.record(s.store.Delete(ctx, col, id))
}
