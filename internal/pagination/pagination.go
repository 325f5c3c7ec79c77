// Package pagination runs a filtered, sorted, page-windowed query against any
// Source and wraps the results in the page envelope returned by list endpoints.
package pagination

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/scam-report-backend/internal/filter"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
	MaxLimit     = 100
)

// Sort orders results by a canonical field.
type Sort struct {
	Field string
	Desc  bool
}

// Window is the slice of matching records a Source must return.
type Window struct {
	Offset int
	Limit  int
	Sort   []Sort
}

// Source is implemented by storage backends. Find with an empty Sort must
// return records in insertion order.
type Source[T any] interface {
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	Find(ctx context.Context, pred filter.Predicate, window Window) ([]T, error)
}

// RawOptions are the unparsed sortBy/limit/page query values.
type RawOptions struct {
	SortBy string
	Limit  string
	Page   string
}

type Options struct {
	Sort  []Sort
	Limit int
	Page  int
}

// Result is the page envelope.
type Result[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

// ParseOptions validates raw paging input. A limit above MaxLimit is lowered
// to MaxLimit and the envelope reports the limit actually applied. sortBy is a
// comma separated list of field:asc or field:desc; a bare field sorts
// ascending. Only fields in sortable are accepted.
func ParseOptions(raw RawOptions, sortable []string) (Options, error) {
	opts := Options{Limit: DefaultLimit, Page: DefaultPage}

	if s := strings.TrimSpace(raw.Limit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Options{}, apperr.Validation("limit must be a positive integer")
		}
		opts.Limit = min(n, MaxLimit)
	}

	if s := strings.TrimSpace(raw.Page); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return Options{}, apperr.Validation("page must be a positive integer")
		}
		opts.Page = n
	}

	if s := strings.TrimSpace(raw.SortBy); s != "" {
		sorts, err := parseSort(s, sortable)
		if err != nil {
			return Options{}, err
		}
		opts.Sort = sorts
	}

	return opts, nil
}

func parseSort(sortBy string, sortable []string) ([]Sort, error) {
	allowed := make(map[string]bool, len(sortable))
	for _, f := range sortable {
		allowed[f] = true
	}

	var sorts []Sort
	for _, part := range strings.Split(sortBy, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, dir, _ := strings.Cut(part, ":")
		if !allowed[field] {
			return nil, apperr.Validation(fmt.Sprintf("cannot sort by %q", field))
		}
		var desc bool
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			desc = true
		default:
			return nil, apperr.Validation(fmt.Sprintf("invalid sort direction %q", dir))
		}
		sorts = append(sorts, Sort{Field: field, Desc: desc})
	}
	return sorts, nil
}

// Paginate counts every record matching pred, then fetches the requested page.
// A page past the end yields empty results with correct totals.
func Paginate[T any](ctx context.Context, src Source[T], pred filter.Predicate, opts Options) (*Result[T], error) {
	if opts.Limit < 1 || opts.Page < 1 {
		return nil, apperr.Validation("limit and page must be positive integers")
	}

	total, err := src.Count(ctx, pred)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	pages := (total + int64(opts.Limit) - 1) / int64(opts.Limit)
	result := &Result[T]{
		Results:      []T{},
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   int(pages),
		TotalResults: total,
	}

	// Compared before multiplying so a huge page cannot overflow the offset.
	if int64(opts.Page) > pages {
		return result, nil
	}
	offset := (opts.Page - 1) * opts.Limit

	items, err := src.Find(ctx, pred, Window{Offset: offset, Limit: opts.Limit, Sort: opts.Sort})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	if items != nil {
		result.Results = items
	}
	return result, nil
}
