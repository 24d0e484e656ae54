package csvstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"hotel_qa/internal/domain"
	"hotel_qa/internal/storage/csvstore"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotels.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoad_DropsExtraColumnsAndKeepsOrder(t *testing.T) {
	path := writeCSV(t,
		"city,country,star_rating,cleanliness_base,comfort_base,facilities_base,location_base,staff_base,value_for_money_base\n"+
			"Paris,France,4,7,8,6,9,9,9\n"+
			"Tokyo,Japan,5,8,8,8,9,9,9\n")

	recs, err := csvstore.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].City != "Paris" || recs[1].City != "Tokyo" {
		t.Fatalf("order not preserved: %+v", recs)
	}
	want := domain.HotelRecord{City: "Paris", Country: "France", StarRating: 4, Cleanliness: 7, Comfort: 8, Facilities: 6}
	if recs[0] != want {
		t.Fatalf("unexpected record: %+v", recs[0])
	}
}

func TestLoad_SkipsRowsWithMissingOrBadFields(t *testing.T) {
	path := writeCSV(t,
		"city,country,star_rating,cleanliness_base,comfort_base,facilities_base\n"+
			"Paris,France,4,7,8,6\n"+
			"Rome,Italy,bad,7,8,6\n"+ // non-numeric stars
			",Italy,4,7,8,6\n"+ // missing city
			"Berlin,Germany,3,\"7,5\",8,6\n") // decimal comma is fine

	recs, err := csvstore.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 good records, got %d: %+v", len(recs), recs)
	}
	if recs[1].City != "Berlin" || recs[1].Cleanliness != 7.5 {
		t.Fatalf("unexpected record: %+v", recs[1])
	}
}

func TestLoad_MissingFileIsDataUnavailable(t *testing.T) {
	_, err := csvstore.New(filepath.Join(t.TempDir(), "nope.csv")).Load(context.Background())
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestLoad_MissingRequiredColumnIsDataUnavailable(t *testing.T) {
	path := writeCSV(t,
		"city,country,star_rating,cleanliness_base,comfort_base\n"+ // no facilities
			"Paris,France,4,7,8\n")

	_, err := csvstore.New(path).Load(context.Background())
	if !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestLoad_AcceptsUnsuffixedScoreColumns(t *testing.T) {
	path := writeCSV(t,
		"city,country,star_rating,cleanliness,comfort,facilities\n"+
			"Paris,France,4,7,8,6\n")

	recs, err := csvstore.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(recs) != 1 || recs[0].Facilities != 6 {
		t.Fatalf("unexpected records: %+v", recs)
	}
}
