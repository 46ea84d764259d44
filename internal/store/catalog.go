package store

import (
	"context"
	"database/sql"
	"fmt"

	"backoffice/internal/models"
)

// referenceSorts is the sort allowlist shared by the reference tables
var referenceSorts = map[string]string{
	"id_asc":    "id ASC",
	"id_desc":   "id DESC",
	"name_asc":  "name ASC",
	"name_desc": "name DESC",
	"newest":    "created_at DESC",
}

// listReference pages over one of the fixed reference tables. The
// table name is always a compile-time constant supplied by the
// exported wrappers below, never user input.
func (s *Store) listReference(ctx context.Context, table string, opts ListOptions) (*Page[models.Reference], error) {
	baseQuery := fmt.Sprintf("SELECT * FROM %s", table)
	args := []interface{}{}

	if opts.Query != "" {
		baseQuery += " WHERE name ILIKE '%' || $1 || '%'"
		args = append(args, opts.Query)
	}

	return Paginate[models.Reference](ctx, s.db, baseQuery, args, PageOptions{
		Sort:         opts.Sort,
		AllowedSorts: referenceSorts,
		Page:         opts.Page,
		PerPage:      opts.PerPage,
	})
}

func (s *Store) getReferenceByID(ctx context.Context, table string, id int64) (*models.Reference, error) {
	var ref models.Reference
	err := s.db.GetContext(ctx, &ref, fmt.Sprintf("SELECT * FROM %s WHERE id = $1", table), id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// ListBrands retrieves a page of brands
func (s *Store) ListBrands(ctx context.Context, opts ListOptions) (*Page[models.Reference], error) {
	return s.listReference(ctx, "brands", opts)
}

// GetBrandByID retrieves a brand by ID, nil when absent
func (s *Store) GetBrandByID(ctx context.Context, id int64) (*models.Reference, error) {
	return s.getReferenceByID(ctx, "brands", id)
}

// ListCategories retrieves a page of categories
func (s *Store) ListCategories(ctx context.Context, opts ListOptions) (*Page[models.Reference], error) {
	return s.listReference(ctx, "categories", opts)
}

// GetCategoryByID retrieves a category by ID, nil when absent
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Reference, error) {
	return s.getReferenceByID(ctx, "categories", id)
}

// ListColors retrieves a page of colors
func (s *Store) ListColors(ctx context.Context, opts ListOptions) (*Page[models.Reference], error) {
	return s.listReference(ctx, "colors", opts)
}

// GetColorByID retrieves a color by ID, nil when absent
func (s *Store) GetColorByID(ctx context.Context, id int64) (*models.Reference, error) {
	return s.getReferenceByID(ctx, "colors", id)
}

// ListSizes retrieves a page of sizes
func (s *Store) ListSizes(ctx context.Context, opts ListOptions) (*Page[models.Reference], error) {
	return s.listReference(ctx, "sizes", opts)
}

// GetSizeByID retrieves a size by ID, nil when absent
func (s *Store) GetSizeByID(ctx context.Context, id int64) (*models.Reference, error) {
	return s.getReferenceByID(ctx, "sizes", id)
}

// ListProductTypes retrieves a page of product types
func (s *Store) ListProductTypes(ctx context.Context, opts ListOptions) (*Page[models.Reference], error) {
	return s.listReference(ctx, "product_types", opts)
}

// GetProductTypeByID retrieves a product type by ID, nil when absent
func (s *Store) GetProductTypeByID(ctx context.Context, id int64) (*models.Reference, error) {
	return s.getReferenceByID(ctx, "product_types", id)
}

// SizesForProductType resolves the sizes allowed for a product type
// through the product_type_sizes join table
func (s *Store) SizesForProductType(ctx context.Context, typeID int64) ([]models.Reference, error) {
	var sizes []models.Reference
	err := s.db.SelectContext(ctx, &sizes, `
		SELECT s.*
		FROM sizes s
		JOIN product_type_sizes pts ON pts.size_id = s.id
		WHERE pts.product_type_id = $1
		ORDER BY s.id`, typeID)
	return sizes, err
}
