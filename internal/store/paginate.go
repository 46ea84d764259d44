package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DefaultPerPage is the page size used when the caller does not
// supply a positive one.
const DefaultPerPage = 5

// PageOptions controls sorting and paging for Paginate. Sort is
// resolved through AllowedSorts; an unrecognized key produces no
// ORDER BY clause rather than an error.
type PageOptions struct {
	Sort         string
	AllowedSorts map[string]string
	Page         int
	PerPage      int
}

// Page is one page of rows plus the metadata the templates need to
// render pagination controls.
type Page[T any] struct {
	Rows        []T
	Total       int
	CurrentPage int
	PerPage     int
	TotalPages  int
}

// Paginate wraps baseQuery (a SELECT without ORDER BY/LIMIT) with a
// COUNT(*) subquery sharing the same args, clamps the requested page
// into [1, totalPages], then executes the windowed query. LIMIT and
// OFFSET placeholders are numbered after the base query's own args.
// Zero matching rows is not an error: totalPages stays 1 and the row
// set is empty.
func Paginate[T any](ctx context.Context, db *sqlx.DB, baseQuery string, args []interface{}, opts PageOptions) (*Page[T], error) {
	page, perPage := normalizePaging(opts.Page, opts.PerPage)

	var total int
	if err := db.GetContext(ctx, &total, countQuery(baseQuery), args...); err != nil {
		return nil, fmt.Errorf("count query failed: %w", err)
	}

	totalPages, currentPage, offset := pageWindow(total, page, perPage)

	orderBy := opts.AllowedSorts[opts.Sort]
	query := pageQuery(baseQuery, len(args), orderBy)

	queryArgs := make([]interface{}, 0, len(args)+2)
	queryArgs = append(queryArgs, args...)
	queryArgs = append(queryArgs, perPage, offset)

	rows := []T{}
	if err := db.SelectContext(ctx, &rows, query, queryArgs...); err != nil {
		return nil, fmt.Errorf("page query failed: %w", err)
	}

	return &Page[T]{
		Rows:        rows,
		Total:       total,
		CurrentPage: currentPage,
		PerPage:     perPage,
		TotalPages:  totalPages,
	}, nil
}

// normalizePaging coerces page and perPage to positive values
func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// pageWindow computes the clamped page window. totalPages never
// drops below 1, so an empty result still renders as page 1 of 1.
func pageWindow(total, page, perPage int) (totalPages, currentPage, offset int) {
	totalPages = (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	currentPage = page
	if currentPage > totalPages {
		currentPage = totalPages
	}
	offset = (currentPage - 1) * perPage
	return totalPages, currentPage, offset
}

func countQuery(baseQuery string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM (%s) AS t", baseQuery)
}

// pageQuery appends ORDER BY (when resolved) and LIMIT/OFFSET with
// placeholder indices continuing after the base query's argc args.
func pageQuery(baseQuery string, argc int, orderBy string) string {
	query := baseQuery
	if orderBy != "" {
		query += fmt.Sprintf(" ORDER BY %s", orderBy)
	}
	return query + fmt.Sprintf(" LIMIT $%d OFFSET $%d", argc+1, argc+2)
}
