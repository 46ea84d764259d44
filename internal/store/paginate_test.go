package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{"defaults", 0, 0, 1, DefaultPerPage},
		{"negative page", -3, 10, 1, 10},
		{"negative per page", 2, -1, 2, DefaultPerPage},
		{"valid", 4, 20, 4, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, perPage := normalizePaging(tt.page, tt.perPage)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestPageWindowEmptyResult(t *testing.T) {
	totalPages, currentPage, offset := pageWindow(0, 1, 5)

	assert.Equal(t, 1, totalPages)
	assert.Equal(t, 1, currentPage)
	assert.Equal(t, 0, offset)
}

func TestPageWindowClampsPastLastPage(t *testing.T) {
	// 12 rows at 5 per page: pages 1-3, page 5 clamps to 3 (rows 11-12)
	totalPages, currentPage, offset := pageWindow(12, 5, 5)

	assert.Equal(t, 3, totalPages)
	assert.Equal(t, 3, currentPage)
	assert.Equal(t, 10, offset)
}

func TestPageWindowNeverExceedsTotalPages(t *testing.T) {
	for total := 0; total <= 50; total += 7 {
		for page := 1; page <= 12; page++ {
			totalPages, currentPage, _ := pageWindow(total, page, 5)
			assert.GreaterOrEqual(t, totalPages, 1)
			assert.LessOrEqual(t, currentPage, totalPages)
			assert.GreaterOrEqual(t, currentPage, 1)
		}
	}
}

func TestCountQueryWrapsBase(t *testing.T) {
	got := countQuery("SELECT * FROM brands WHERE name ILIKE '%' || $1 || '%'")
	assert.Equal(t,
		"SELECT COUNT(*) FROM (SELECT * FROM brands WHERE name ILIKE '%' || $1 || '%') AS t",
		got)
}

func TestPageQueryPlaceholdersFollowBaseArgs(t *testing.T) {
	got := pageQuery("SELECT * FROM brands WHERE name ILIKE '%' || $1 || '%'", 1, "name ASC")
	assert.Equal(t,
		"SELECT * FROM brands WHERE name ILIKE '%' || $1 || '%' ORDER BY name ASC LIMIT $2 OFFSET $3",
		got)
}

func TestPageQueryNoArgs(t *testing.T) {
	got := pageQuery("SELECT * FROM brands", 0, "")
	assert.Equal(t, "SELECT * FROM brands LIMIT $1 OFFSET $2", got)
}

func TestUnknownSortKeyProducesNoOrderBy(t *testing.T) {
	sorts := map[string]string{"name_asc": "name ASC"}

	// Unrecognized keys resolve to the empty string, which pageQuery
	// renders as no ORDER BY clause at all.
	orderBy := sorts["definitely_not_a_sort"]
	assert.Equal(t, "", orderBy)

	got := pageQuery("SELECT * FROM brands", 0, orderBy)
	assert.NotContains(t, got, "ORDER BY")
}
