// Package csvstore loads the hotels table from a CSV file.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_qa/internal/domain"
)

// Columns the dataset may carry that play no role after load.
var droppedColumns = map[string]struct{}{
	"location_base":        {},
	"staff_base":           {},
	"value_for_money_base": {},
}

// requiredColumns maps semantic field names to the header aliases accepted for
// them. The source suffixes score columns with _base.
var requiredColumns = map[string][]string{
	"city":        {"city"},
	"country":     {"country"},
	"star_rating": {"star_rating", "star_rating_base"},
	"cleanliness": {"cleanliness_base", "cleanliness"},
	"comfort":     {"comfort_base", "comfort"},
	"facilities":  {"facilities_base", "facilities"},
}

type Store struct{ path string }

func New(path string) *Store { return &Store{path: path} }

// Load reads the whole CSV. Rows whose required numeric fields do not parse
// are skipped so that every retained record supports comparison on any
// filterable field.
func (s *Store) Load(ctx context.Context) ([]domain.HotelRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %s: %v", domain.ErrDataUnavailable, s.path, err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var out []domain.HotelRecord
	skipped := 0
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s line %d: %v", domain.ErrDataUnavailable, s.path, line, err)
		}
		rec, ok := parseRow(row, idx)
		if !ok {
			skipped++
			continue
		}
		out = append(out, rec)
	}
	if skipped > 0 {
		log.Warn().Int("rows", skipped).Str("path", s.path).Msg("skipped rows with missing or non-numeric fields")
	}
	log.Info().Int("hotels", len(out)).Str("path", s.path).Msg("hotel dataset loaded")
	return out, nil
}

// columnIndex resolves each required semantic field to a header position.
// Dropped columns are simply never referenced again.
func columnIndex(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, drop := droppedColumns[name]; drop {
			continue
		}
		pos[name] = i
	}
	idx := make(map[string]int, len(requiredColumns))
	for field, aliases := range requiredColumns {
		found := false
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				idx[field] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: missing required column %q", domain.ErrDataUnavailable, field)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (domain.HotelRecord, bool) {
	get := func(field string) (string, bool) {
		i := idx[field]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		return v, v != ""
	}
	num := func(field string) (float64, bool) {
		v, ok := get(field)
		if !ok {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	var rec domain.HotelRecord
	var ok bool
	if rec.City, ok = get("city"); !ok {
		return domain.HotelRecord{}, false
	}
	if rec.Country, ok = get("country"); !ok {
		return domain.HotelRecord{}, false
	}
	if rec.StarRating, ok = num("star_rating"); !ok {
		return domain.HotelRecord{}, false
	}
	if rec.Cleanliness, ok = num("cleanliness"); !ok {
		return domain.HotelRecord{}, false
	}
	if rec.Comfort, ok = num("comfort"); !ok {
		return domain.HotelRecord{}, false
	}
	if rec.Facilities, ok = num("facilities"); !ok {
		return domain.HotelRecord{}, false
	}
	return rec, true
}
