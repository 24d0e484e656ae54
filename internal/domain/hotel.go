package domain

import (
	"errors"
	"strings"
)

// ErrDataUnavailable means the hotel dataset could not be loaded. It is fatal
// at startup: the agent refuses to serve queries against a broken dataset.
var ErrDataUnavailable = errors.New("hotel dataset unavailable")

// HotelRecord is one row of the hotels table. Records are immutable after load.
type HotelRecord struct {
	City        string
	Country     string
	StarRating  float64
	Cleanliness float64
	Comfort     float64
	Facilities  float64
}

// QueryParams is the per-invocation parameter set of the search_hotels tool.
// Empty strings / nil thresholds impose no constraint. Values originate from a
// language model's reading of free text and are treated as untrusted: callers
// coerce rather than reject.
type QueryParams struct {
	City           string
	Country        string
	MinStarRating  *float64
	MinCleanliness *float64
	MinComfort     *float64
	MinFacilities  *float64
	SortBy         string
	NumResults     int // 0 means "use default"
}

const (
	DefaultNumResults = 10
	MaxNumResults     = 10
)

// SortField returns the canonical sort key, or "" when the requested key is
// not one of the four recognized numeric fields. Unrecognized keys are ignored
// rather than rejected: dataset order is kept.
func (p QueryParams) SortField() string {
	switch strings.ToLower(strings.TrimSpace(p.SortBy)) {
	case "star_rating", "cleanliness", "comfort", "facilities":
		return strings.ToLower(strings.TrimSpace(p.SortBy))
	}
	return ""
}

// Limit clamps NumResults into [1, MaxNumResults], defaulting when unset.
func (p QueryParams) Limit() int {
	n := p.NumResults
	if n == 0 {
		n = DefaultNumResults
	}
	if n < 1 {
		n = 1
	}
	if n > MaxNumResults {
		n = MaxNumResults
	}
	return n
}
