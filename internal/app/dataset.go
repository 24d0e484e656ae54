package app

import (
	"context"
	"sync"

	"hotel_qa/internal/domain"
)

// DatasetStore hands out the immutable in-memory hotels table. The underlying
// source is read at most once per process; every query reuses the result.
type DatasetStore struct {
	src  domain.Source
	once sync.Once
	recs []domain.HotelRecord
	err  error
}

func NewDatasetStore(src domain.Source) *DatasetStore {
	return &DatasetStore{src: src}
}

// Records loads on first use and caches for the process lifetime. A load
// failure is sticky: the store never retries against a broken source.
func (d *DatasetStore) Records(ctx context.Context) ([]domain.HotelRecord, error) {
	d.once.Do(func() {
		d.recs, d.err = d.src.Load(ctx)
	})
	return d.recs, d.err
}
