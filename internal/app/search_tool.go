package app

import (
	"context"
	"strconv"
	"strings"

	"hotel_qa/internal/domain"
	"hotel_qa/internal/tools"
)

const SearchToolName = "search_hotels"

// NewSearchTool declares the search_hotels tool over a SearchService. Every
// parameter is optional; an empty argument object returns up to ten hotels in
// dataset order.
func NewSearchTool(svc *SearchService) *tools.Tool {
	return &tools.Tool{
		Name: SearchToolName,
		Description: "Look up hotels in the dataset. Filters are combined with AND; " +
			"city and country are case-insensitive exact matches, the min_* values are " +
			"inclusive lower bounds. Results can be sorted descending by star_rating, " +
			"cleanliness, comfort or facilities. At most 10 results are returned.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city":            map[string]any{"type": "string", "description": "Exact city name, any casing"},
				"country":         map[string]any{"type": "string", "description": "Exact country name, any casing"},
				"min_star_rating": map[string]any{"type": "number", "description": "Minimum star rating (1-5)"},
				"min_cleanliness": map[string]any{"type": "number", "description": "Minimum cleanliness score"},
				"min_comfort":     map[string]any{"type": "number", "description": "Minimum comfort score"},
				"min_facilities":  map[string]any{"type": "number", "description": "Minimum facilities score"},
				"sort_by": map[string]any{
					"type":        "string",
					"description": "Field to sort by, highest first",
					"enum":        []string{"star_rating", "cleanliness", "comfort", "facilities"},
				},
				"num_results": map[string]any{"type": "integer", "description": "How many results to return (1-10, default 10)"},
			},
		},
		Run: func(ctx context.Context, args map[string]any) (string, error) {
			return svc.Search(ctx, ParamsFromArgs(args))
		},
	}
}

// ParamsFromArgs coerces a raw argument object into QueryParams. Values a
// model extracted from free text arrive in whatever shape it chose (numbers
// as strings and vice versa); anything unusable is dropped, never rejected.
func ParamsFromArgs(args map[string]any) domain.QueryParams {
	p := domain.QueryParams{
		City:    argString(args, "city"),
		Country: argString(args, "country"),
		SortBy:  argString(args, "sort_by"),
	}
	p.MinStarRating = argFloat(args, "min_star_rating")
	p.MinCleanliness = argFloat(args, "min_cleanliness")
	p.MinComfort = argFloat(args, "min_comfort")
	p.MinFacilities = argFloat(args, "min_facilities")
	if n := argFloat(args, "num_results"); n != nil {
		// An explicit request below 1 is raised to 1; absence means default.
		p.NumResults = int(*n)
		if p.NumResults < 1 {
			p.NumResults = 1
		}
	}
	return p
}

func argString(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// argFloat accepts float64, int, or numeric strings like "8,0".
func argFloat(args map[string]any, key string) *float64 {
	switch v := args[key].(type) {
	case float64:
		f := v
		return &f
	case int:
		f := float64(v)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}
