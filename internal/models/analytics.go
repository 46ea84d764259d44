package models

import (
	"database/sql"
	"time"
)

// TopProduct is a row of view_top_selling_products
type TopProduct struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	ProductCode  string `db:"product_code" json:"product_code"`
	TotalSold    int64  `db:"total_sold" json:"total_sold"`
	TotalRevenue int64  `db:"total_revenue" json:"total_revenue"`
}

// RevenueBucket is a row of the revenue-by-{type,category,brand} views
type RevenueBucket struct {
	Label        sql.NullString `db:"label" json:"label"`
	TotalSold    int64          `db:"total_sold" json:"total_sold"`
	TotalRevenue int64          `db:"total_revenue" json:"total_revenue"`
}

// StockSummary is a row of view_product_stock_summary
type StockSummary struct {
	TypeID        int64  `db:"type_id" json:"type_id"`
	TypeName      string `db:"type_name" json:"type_name"`
	TotalProducts int64  `db:"total_products" json:"total_products"`
	TotalStock    int64  `db:"total_stock" json:"total_stock"`
}

// StockUsage is a row of view_stock_usage
type StockUsage struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	ProductCode  string `db:"product_code" json:"product_code"`
	Stock        int    `db:"stock" json:"stock"`
	SoldQuantity int64  `db:"sold_quantity" json:"sold_quantity"`
	InitialStock int64  `db:"initial_stock" json:"initial_stock"`
}

// MonthlySales is a row of view_sales_per_month
type MonthlySales struct {
	Month        string `db:"month" json:"month"`
	TotalOrders  int64  `db:"total_orders" json:"total_orders"`
	TotalRevenue int64  `db:"total_revenue" json:"total_revenue"`
}

// DailySales is a row of view_sales_daily_current_month
type DailySales struct {
	Day          time.Time `db:"day" json:"day"`
	TotalOrders  int64     `db:"total_orders" json:"total_orders"`
	TotalRevenue int64     `db:"total_revenue" json:"total_revenue"`
}

// MonthlyGrowth is a row of view_monthly_growth with
// period-over-period percentages computed by the view's LAG window
type MonthlyGrowth struct {
	Month                string          `db:"month" json:"month"`
	TotalRevenue         int64           `db:"total_revenue" json:"total_revenue"`
	TotalOrders          int64           `db:"total_orders" json:"total_orders"`
	LastMonthRevenue     sql.NullInt64   `db:"last_month_revenue" json:"last_month_revenue"`
	LastMonthOrders      sql.NullInt64   `db:"last_month_orders" json:"last_month_orders"`
	RevenueGrowthPercent sql.NullFloat64 `db:"revenue_growth_percent" json:"revenue_growth_percent"`
	OrderGrowthPercent   sql.NullFloat64 `db:"order_growth_percent" json:"order_growth_percent"`
}

// UserStats is a row of view_user_stats
type UserStats struct {
	UserID        int64        `db:"user_id" json:"user_id"`
	Username      string       `db:"username" json:"username"`
	Email         string       `db:"email" json:"email"`
	Role          string       `db:"role" json:"role"`
	TotalOrders   int64        `db:"total_orders" json:"total_orders"`
	TotalSpent    int64        `db:"total_spent" json:"total_spent"`
	AvgOrderValue float64      `db:"avg_order_value" json:"avg_order_value"`
	LastOrderDate sql.NullTime `db:"last_order_date" json:"last_order_date"`
}

// TopCustomer is a row of view_top_customers
type TopCustomer struct {
	UserID        int64   `db:"user_id" json:"user_id"`
	Username      string  `db:"username" json:"username"`
	Email         string  `db:"email" json:"email"`
	TotalOrders   int64   `db:"total_orders" json:"total_orders"`
	TotalSpent    int64   `db:"total_spent" json:"total_spent"`
	AvgOrderValue float64 `db:"avg_order_value" json:"avg_order_value"`
}

// InactiveUser is a row of view_inactive_users
type InactiveUser struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Overview bundles the dashboard landing page analytics
type Overview struct {
	TopProducts   []TopProduct    `json:"top_products"`
	RevenueByType []RevenueBucket `json:"revenue_by_type"`
	SalesPerMonth []MonthlySales  `json:"sales_per_month"`
	DailySales    []DailySales    `json:"daily_sales"`
	MonthlyGrowth []MonthlyGrowth `json:"monthly_growth"`
	TopCustomers  []TopCustomer   `json:"top_customers"`
}
