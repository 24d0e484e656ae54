package app_test

import (
	"context"
	"strings"
	"testing"

	"hotel_qa/internal/app"
	"hotel_qa/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	recs []domain.HotelRecord
	err  error
}

func (f *fakeSource) Load(ctx context.Context) ([]domain.HotelRecord, error) {
	return f.recs, f.err
}

func newSearch(recs ...domain.HotelRecord) *app.SearchService {
	return app.NewSearchService(app.NewDatasetStore(&fakeSource{recs: recs}))
}

func rec(city, country string, stars, clean, comfort, fac float64) domain.HotelRecord {
	return domain.HotelRecord{City: city, Country: country, StarRating: stars, Cleanliness: clean, Comfort: comfort, Facilities: fac}
}

func scenario() *app.SearchService {
	return newSearch(
		rec("Paris", "France", 4, 7, 8, 6),
		rec("Paris", "France", 5, 9, 9, 9),
		rec("Tokyo", "Japan", 5, 8, 8, 8),
	)
}

func pf(f float64) *float64 { return &f }

// ---- tests ----

func TestSearch_NoFilters_DatasetOrderCapped(t *testing.T) {
	recs := make([]domain.HotelRecord, 0, 15)
	for i := 0; i < 15; i++ {
		recs = append(recs, rec("City", "Country", float64(i%5+1), 5, 5, 5))
	}
	s := newSearch(recs...)

	out, err := s.Search(context.Background(), domain.QueryParams{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.HasPrefix(out, "Found 10 hotel(s):") {
		t.Fatalf("expected 10 results, got: %s", out)
	}
	lines := strings.Split(out, "\n")
	// dataset order preserved: first row carries stars 1, second stars 2
	if !strings.Contains(lines[1], "stars 1.0") || !strings.Contains(lines[2], "stars 2.0") {
		t.Fatalf("dataset order not preserved: %s", out)
	}
}

func TestSearch_CityCaseInsensitive(t *testing.T) {
	s := scenario()

	a, err := s.Search(context.Background(), domain.QueryParams{City: "Paris"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := s.Search(context.Background(), domain.QueryParams{City: "paris"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a != b {
		t.Fatalf("case-sensitive city filter:\n%s\nvs\n%s", a, b)
	}
	if !strings.Contains(a, "Found 2 hotel(s):") {
		t.Fatalf("expected both Paris rows, got: %s", a)
	}
	if strings.Contains(a, "Tokyo") {
		t.Fatalf("Tokyo should be filtered out: %s", a)
	}
}

func TestSearch_ThresholdsAreInclusiveLowerBounds(t *testing.T) {
	s := scenario()

	out, err := s.Search(context.Background(), domain.QueryParams{MinCleanliness: pf(8)})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// cleanliness 7 drops out, 8 and 9 stay
	if !strings.Contains(out, "Found 2 hotel(s):") {
		t.Fatalf("expected 2 results, got: %s", out)
	}
	if strings.Contains(out, "cleanliness 7.0") {
		t.Fatalf("threshold not applied: %s", out)
	}
}

func TestSearch_SortDescendingAndLimit(t *testing.T) {
	s := scenario()

	out, err := s.Search(context.Background(), domain.QueryParams{
		City: "paris", SortBy: "star_rating", NumResults: 1,
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(out, "Found 1 hotel(s):") || !strings.Contains(out, "stars 5.0") {
		t.Fatalf("expected only the 5-star Paris row, got: %s", out)
	}
}

func TestSearch_SortIsStable(t *testing.T) {
	// equal sort keys keep dataset order
	s := newSearch(
		rec("A", "X", 5, 9, 9, 9),
		rec("B", "X", 5, 9, 9, 9),
		rec("C", "X", 5, 9, 9, 9),
	)
	out, err := s.Search(context.Background(), domain.QueryParams{SortBy: "comfort"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	ia, ib, ic := strings.Index(out, "A,"), strings.Index(out, "B,"), strings.Index(out, "C,")
	if !(ia < ib && ib < ic) {
		t.Fatalf("tie order changed: %s", out)
	}
}

func TestSearch_UnrecognizedSortKeptAsDatasetOrder(t *testing.T) {
	s := scenario()

	plain, err := s.Search(context.Background(), domain.QueryParams{})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	sorted, err := s.Search(context.Background(), domain.QueryParams{SortBy: "price"})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if plain != sorted {
		t.Fatalf("unknown sort key reordered results:\n%s\nvs\n%s", plain, sorted)
	}
}

func TestSearch_LimitClamping(t *testing.T) {
	s := scenario()

	for _, tc := range []struct {
		n    int
		want string
	}{
		{0, "Found 3 hotel(s):"},  // unset -> default 10, dataset has 3
		{-5, "Found 1 hotel(s):"}, // below 1 -> 1
		{50, "Found 3 hotel(s):"}, // above 10 -> 10
		{2, "Found 2 hotel(s):"},
	} {
		out, err := s.Search(context.Background(), domain.QueryParams{NumResults: tc.n})
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if !strings.HasPrefix(out, tc.want) {
			t.Fatalf("NumResults=%d: expected prefix %q, got: %s", tc.n, tc.want, out)
		}
	}
}

func TestSearch_EmptyResultNamesFilters(t *testing.T) {
	s := scenario()

	out, err := s.Search(context.Background(), domain.QueryParams{Country: "Germany"})
	if err != nil {
		t.Fatalf("empty result must not be an error: %v", err)
	}
	if !strings.Contains(out, "No hotels found") || !strings.Contains(out, `country "Germany"`) {
		t.Fatalf("expected a no-results message naming the country filter, got: %s", out)
	}
}

func TestSearch_Idempotent(t *testing.T) {
	s := scenario()
	p := domain.QueryParams{City: "paris", SortBy: "cleanliness", MinComfort: pf(8), NumResults: 5}

	a, err := s.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	b, err := s.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if a != b {
		t.Fatalf("same params produced different output:\n%s\nvs\n%s", a, b)
	}
}

func TestSearch_DatasetUnavailable(t *testing.T) {
	src := &fakeSource{err: domain.ErrDataUnavailable}
	s := app.NewSearchService(app.NewDatasetStore(src))

	if _, err := s.Search(context.Background(), domain.QueryParams{}); err == nil {
		t.Fatalf("expected error for unavailable dataset")
	}

	// the failure is sticky: a later fixed source is never re-read
	src.err = nil
	src.recs = []domain.HotelRecord{rec("Paris", "France", 4, 7, 8, 6)}
	if _, err := s.Search(context.Background(), domain.QueryParams{}); err == nil {
		t.Fatalf("expected sticky load failure")
	}
}
