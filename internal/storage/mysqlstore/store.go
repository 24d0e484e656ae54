// Package mysqlstore loads the hotels table from MySQL. The read path mirrors
// the CSV source; the write path exists only for the seeder.
package mysqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"hotel_qa/internal/domain"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the hotels table when absent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createTableSQL)
	return err
}

func (s *Store) Load(ctx context.Context) ([]domain.HotelRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectHotelsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: select hotels: %v", domain.ErrDataUnavailable, err)
	}
	defer rows.Close()

	var out []domain.HotelRecord
	for rows.Next() {
		var rec domain.HotelRecord
		if err := rows.Scan(&rec.City, &rec.Country, &rec.StarRating, &rec.Cleanliness, &rec.Comfort, &rec.Facilities); err != nil {
			return nil, fmt.Errorf("%w: scan hotel row: %v", domain.ErrDataUnavailable, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate hotels: %v", domain.ErrDataUnavailable, err)
	}
	return out, nil
}

// InsertHotels appends a batch in one statement.
func (s *Store) InsertHotels(ctx context.Context, recs []domain.HotelRecord) error {
	if len(recs) == 0 {
		return nil
	}
	values := make([]string, 0, len(recs))
	args := make([]any, 0, len(recs)*6)
	for _, r := range recs {
		values = append(values, "(?,?,?,?,?,?)")
		args = append(args, r.City, r.Country, r.StarRating, r.Cleanliness, r.Comfort, r.Facilities)
	}
	_, err := s.db.ExecContext(ctx, insertHotelsPrefix+strings.Join(values, ","), args...)
	return err
}
