package app_test

import (
	"testing"

	"hotel_qa/internal/app"
)

func TestParamsFromArgs_Coercion(t *testing.T) {
	p := app.ParamsFromArgs(map[string]any{
		"city":            " Paris ",
		"country":         "France",
		"min_star_rating": "4",     // number as string
		"min_cleanliness": "8,5",   // decimal comma
		"min_comfort":     7.0,     // plain number
		"min_facilities":  "n/a",   // unusable -> dropped
		"sort_by":         "price", // unrecognized -> kept, ignored later
		"num_results":     "3",
	})

	if p.City != "Paris" || p.Country != "France" {
		t.Fatalf("string params: %+v", p)
	}
	if p.MinStarRating == nil || *p.MinStarRating != 4 {
		t.Fatalf("min_star_rating: %+v", p.MinStarRating)
	}
	if p.MinCleanliness == nil || *p.MinCleanliness != 8.5 {
		t.Fatalf("min_cleanliness: %+v", p.MinCleanliness)
	}
	if p.MinComfort == nil || *p.MinComfort != 7 {
		t.Fatalf("min_comfort: %+v", p.MinComfort)
	}
	if p.MinFacilities != nil {
		t.Fatalf("unusable threshold must be dropped, got %v", *p.MinFacilities)
	}
	if p.SortBy != "price" || p.SortField() != "" {
		t.Fatalf("sort handling: %+v", p)
	}
	if p.NumResults != 3 {
		t.Fatalf("num_results: %d", p.NumResults)
	}
}

func TestParamsFromArgs_NumResultsEdgeCases(t *testing.T) {
	if p := app.ParamsFromArgs(map[string]any{}); p.Limit() != 10 {
		t.Fatalf("absent num_results must default to 10, got %d", p.Limit())
	}
	if p := app.ParamsFromArgs(map[string]any{"num_results": 0.0}); p.Limit() != 1 {
		t.Fatalf("explicit 0 must clamp to 1, got %d", p.Limit())
	}
	if p := app.ParamsFromArgs(map[string]any{"num_results": 50.0}); p.Limit() != 10 {
		t.Fatalf("50 must cap at 10, got %d", p.Limit())
	}
	if p := app.ParamsFromArgs(map[string]any{"num_results": "lots"}); p.Limit() != 10 {
		t.Fatalf("non-numeric must default to 10, got %d", p.Limit())
	}
}
