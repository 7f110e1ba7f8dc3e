package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size used when the caller does not specify one.
	DefaultLimit = 10

	// MaxLimit caps the page size accepted from HTTP callers.
	MaxLimit = 100
)

// Params holds limit/offset pagination parameters extracted from query strings.
type Params struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Limit:  DefaultLimit,
		Offset: 0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// Out-of-range values fall back to the defaults; limit is capped at MaxLimit.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxLimit {
			p.Limit = v
		}
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		if v, err := strconv.Atoi(offset); err == nil && v >= 0 {
			p.Offset = v
		}
	}

	return p
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"total_count"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	TotalPages int `json:"total_pages"`
}

// NewResult creates a paginated result. TotalPages is the ceiling of
// totalCount divided by limit, so an empty result set yields zero pages.
func NewResult[T any](data []T, totalCount, limit, offset int) Result[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = totalCount / limit
		if totalCount%limit > 0 {
			totalPages++
		}
	}

	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Limit:      limit,
		Offset:     offset,
		TotalPages: totalPages,
	}
}
