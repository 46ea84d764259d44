package store

import (
	"context"
	"database/sql"

	"backoffice/internal/models"
)

// The analytics repository only reads precomputed views; all
// aggregation lives in the view DDL created by cmd/seed.

// TopSellingProducts reads view_top_selling_products
func (s *Store) TopSellingProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	var rows []models.TopProduct
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM view_top_selling_products LIMIT $1", limit)
	return rows, err
}

// RevenueByType reads view_revenue_by_type
func (s *Store) RevenueByType(ctx context.Context) ([]models.RevenueBucket, error) {
	var rows []models.RevenueBucket
	err := s.db.SelectContext(ctx, &rows,
		"SELECT product_type AS label, total_sold, total_revenue FROM view_revenue_by_type")
	return rows, err
}

// RevenueByCategory reads view_revenue_by_category
func (s *Store) RevenueByCategory(ctx context.Context) ([]models.RevenueBucket, error) {
	var rows []models.RevenueBucket
	err := s.db.SelectContext(ctx, &rows,
		"SELECT category AS label, total_sold, total_revenue FROM view_revenue_by_category")
	return rows, err
}

// RevenueByBrand reads view_revenue_by_brand
func (s *Store) RevenueByBrand(ctx context.Context) ([]models.RevenueBucket, error) {
	var rows []models.RevenueBucket
	err := s.db.SelectContext(ctx, &rows,
		"SELECT brand AS label, total_sold, total_revenue FROM view_revenue_by_brand")
	return rows, err
}

// ProductStockSummary reads view_product_stock_summary
func (s *Store) ProductStockSummary(ctx context.Context) ([]models.StockSummary, error) {
	var rows []models.StockSummary
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_product_stock_summary")
	return rows, err
}

// StockUsage reads view_stock_usage
func (s *Store) StockUsage(ctx context.Context) ([]models.StockUsage, error) {
	var rows []models.StockUsage
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_stock_usage")
	return rows, err
}

// SalesPerMonth reads view_sales_per_month
func (s *Store) SalesPerMonth(ctx context.Context) ([]models.MonthlySales, error) {
	var rows []models.MonthlySales
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_sales_per_month")
	return rows, err
}

// DailySalesCurrentMonth reads view_sales_daily_current_month
func (s *Store) DailySalesCurrentMonth(ctx context.Context) ([]models.DailySales, error) {
	var rows []models.DailySales
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_sales_daily_current_month")
	return rows, err
}

// MonthlyGrowth reads view_monthly_growth
func (s *Store) MonthlyGrowth(ctx context.Context) ([]models.MonthlyGrowth, error) {
	var rows []models.MonthlyGrowth
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_monthly_growth")
	return rows, err
}

// UserStats reads view_user_stats
func (s *Store) UserStats(ctx context.Context) ([]models.UserStats, error) {
	var rows []models.UserStats
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_user_stats")
	return rows, err
}

// UserStatsByID reads one row of view_user_stats, nil when absent
func (s *Store) UserStatsByID(ctx context.Context, userID int64) (*models.UserStats, error) {
	var row models.UserStats
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM view_user_stats WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// TopCustomers reads view_top_customers
func (s *Store) TopCustomers(ctx context.Context, limit int) ([]models.TopCustomer, error) {
	var rows []models.TopCustomer
	err := s.db.SelectContext(ctx, &rows,
		"SELECT * FROM view_top_customers LIMIT $1", limit)
	return rows, err
}

// InactiveUsers reads view_inactive_users
func (s *Store) InactiveUsers(ctx context.Context) ([]models.InactiveUser, error) {
	var rows []models.InactiveUser
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM view_inactive_users")
	return rows, err
}
