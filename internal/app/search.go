package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"hotel_qa/internal/domain"
)

// SearchService is the query tool over the loaded dataset: conjunctive
// filters, optional descending sort, bounded truncation, textual rendering.
type SearchService struct {
	store *DatasetStore
}

func NewSearchService(store *DatasetStore) *SearchService {
	return &SearchService{store: store}
}

// Search returns a rendered result block. An empty result is a normal
// outcome; the only error is an unavailable dataset, which surfaces at
// startup before any query reaches this point.
func (s *SearchService) Search(ctx context.Context, p domain.QueryParams) (string, error) {
	recs, err := s.store.Records(ctx)
	if err != nil {
		return "", err
	}

	matched := filter(recs, p)
	if field := p.SortField(); field != "" {
		key := fieldValue(field)
		sort.SliceStable(matched, func(i, j int) bool {
			return key(matched[i]) > key(matched[j])
		})
	}
	if n := p.Limit(); len(matched) > n {
		matched = matched[:n]
	}
	return render(matched, p), nil
}

func filter(recs []domain.HotelRecord, p domain.QueryParams) []domain.HotelRecord {
	out := make([]domain.HotelRecord, 0, len(recs))
	for _, r := range recs {
		if p.City != "" && !strings.EqualFold(p.City, r.City) {
			continue
		}
		if p.Country != "" && !strings.EqualFold(p.Country, r.Country) {
			continue
		}
		if p.MinStarRating != nil && r.StarRating < *p.MinStarRating {
			continue
		}
		if p.MinCleanliness != nil && r.Cleanliness < *p.MinCleanliness {
			continue
		}
		if p.MinComfort != nil && r.Comfort < *p.MinComfort {
			continue
		}
		if p.MinFacilities != nil && r.Facilities < *p.MinFacilities {
			continue
		}
		out = append(out, r)
	}
	return out
}

func fieldValue(field string) func(domain.HotelRecord) float64 {
	switch field {
	case "star_rating":
		return func(r domain.HotelRecord) float64 { return r.StarRating }
	case "cleanliness":
		return func(r domain.HotelRecord) float64 { return r.Cleanliness }
	case "comfort":
		return func(r domain.HotelRecord) float64 { return r.Comfort }
	default:
		return func(r domain.HotelRecord) float64 { return r.Facilities }
	}
}

func render(recs []domain.HotelRecord, p domain.QueryParams) string {
	if len(recs) == 0 {
		if f := describeFilters(p); f != "" {
			return "No hotels found matching: " + f + "."
		}
		return "No hotels found."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d hotel(s):\n", len(recs))
	for i, r := range recs {
		fmt.Fprintf(&b, "%d. %s, %s - stars %.1f, cleanliness %.1f, comfort %.1f, facilities %.1f\n",
			i+1, r.City, r.Country, r.StarRating, r.Cleanliness, r.Comfort, r.Facilities)
	}
	return strings.TrimRight(b.String(), "\n")
}

func describeFilters(p domain.QueryParams) string {
	var parts []string
	if p.City != "" {
		parts = append(parts, fmt.Sprintf("city %q", p.City))
	}
	if p.Country != "" {
		parts = append(parts, fmt.Sprintf("country %q", p.Country))
	}
	add := func(name string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s >= %.1f", name, *v))
		}
	}
	add("star_rating", p.MinStarRating)
	add("cleanliness", p.MinCleanliness)
	add("comfort", p.MinComfort)
	add("facilities", p.MinFacilities)
	return strings.Join(parts, ", ")
}
