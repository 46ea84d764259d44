package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"backoffice/internal/models"

	"github.com/jmoiron/sqlx"
)

const productSelect = `
	SELECT p.*,
	       pt.name AS product_type,
	       b.name  AS brand,
	       c.name  AS category,
	       co.name AS color,
	       sz.name AS size
	FROM products p
	LEFT JOIN product_types pt ON p.product_type_id = pt.id
	LEFT JOIN brands b ON p.brand_id = b.id
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN colors co ON p.color_id = co.id
	LEFT JOIN sizes sz ON p.size_id = sz.id`

var productSorts = map[string]string{
	"name_asc":   "p.name ASC",
	"name_desc":  "p.name DESC",
	"price_asc":  "p.price ASC",
	"price_desc": "p.price DESC",
	"stock_asc":  "p.stock ASC",
	"stock_desc": "p.stock DESC",
	"newest":     "p.created_at DESC",
	"oldest":     "p.created_at ASC",
}

// ProductFilter narrows the product listing. Zero-valued fields are
// not applied.
type ProductFilter struct {
	Query      string
	TypeID     int64
	BrandID    int64
	CategoryID int64
	ColorID    int64
	SizeID     int64
	Sort       string
	Page       int
	PerPage    int
}

// ListProducts retrieves a page of products with reference names
// resolved, optionally filtered by search text and foreign keys
func (s *Store) ListProducts(ctx context.Context, f ProductFilter) (*Page[models.Product], error) {
	conds := []string{}
	args := []interface{}{}

	if f.Query != "" {
		args = append(args, f.Query)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.name ILIKE '%%' || $%d || '%%' OR p.product_code ILIKE '%%' || $%d || '%%')", n, n))
	}

	fks := []struct {
		column string
		value  int64
	}{
		{"p.product_type_id", f.TypeID},
		{"p.brand_id", f.BrandID},
		{"p.category_id", f.CategoryID},
		{"p.color_id", f.ColorID},
		{"p.size_id", f.SizeID},
	}
	for _, fk := range fks {
		if fk.value != 0 {
			args = append(args, fk.value)
			conds = append(conds, fmt.Sprintf("%s = $%d", fk.column, len(args)))
		}
	}

	baseQuery := productSelect
	if len(conds) > 0 {
		baseQuery += " WHERE " + strings.Join(conds, " AND ")
	}

	return Paginate[models.Product](ctx, s.db, baseQuery, args, PageOptions{
		Sort:         f.Sort,
		AllowedSorts: productSorts,
		Page:         f.Page,
		PerPage:      f.PerPage,
	})
}

// GetProductByID retrieves a product by ID, nil when absent
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, productSelect+" WHERE p.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductByCode retrieves a product by its unique code, nil when absent
func (s *Store) GetProductByCode(ctx context.Context, code string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, productSelect+" WHERE p.product_code = $1", code)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// LowStockProducts lists products at or below the given threshold,
// lowest stock first
func (s *Store) LowStockProducts(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		productSelect+" WHERE p.stock <= $1 ORDER BY p.stock ASC, p.name ASC", threshold)
	return products, err
}
