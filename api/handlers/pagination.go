package handlers

import (
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 200
)

type PaginationParams struct {
	Limit  int
	Offset int
}

type PaginatedResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ParsePagination reads ?limit= and ?offset=, ignoring malformed values.
func ParsePagination(r *http.Request, defaultLimit int) PaginationParams {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}

	limit := defaultLimit
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = min(parsed, MaxPageLimit)
		}
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return PaginationParams{Limit: limit, Offset: offset}
}

// Paginate slices items according to p.
func Paginate[T any](items []T, p PaginationParams) PaginatedResponse[T] {
	start := min(p.Offset, len(items))
	end := min(start+p.Limit, len(items))
	return PaginatedResponse[T]{
		Items:  items[start:end],
		Total:  len(items),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}
