package models

import (
	"database/sql"
	"time"
)

// User represents a back-office or customer account
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// User roles
const (
	RoleOwner    = "owner"
	RoleManager  = "manager"
	RoleCustomer = "customer"
)

// Reference is a row of one of the reference tables
// (brands, categories, colors, sizes, product_types)
type Reference struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Product represents a product row with resolved reference names
type Product struct {
	ID            int64          `db:"id" json:"id"`
	ProductCode   string         `db:"product_code" json:"product_code"`
	Name          string         `db:"name" json:"name"`
	ProductTypeID sql.NullInt64  `db:"product_type_id" json:"-"`
	BrandID       sql.NullInt64  `db:"brand_id" json:"-"`
	CategoryID    sql.NullInt64  `db:"category_id" json:"-"`
	ColorID       sql.NullInt64  `db:"color_id" json:"-"`
	SizeID        sql.NullInt64  `db:"size_id" json:"-"`
	Price         int64          `db:"price" json:"price"`
	Stock         int            `db:"stock" json:"stock"`
	ProductType   sql.NullString `db:"product_type" json:"product_type,omitempty"`
	Brand         sql.NullString `db:"brand" json:"brand,omitempty"`
	Category      sql.NullString `db:"category" json:"category,omitempty"`
	Color         sql.NullString `db:"color" json:"color,omitempty"`
	Size          sql.NullString `db:"size" json:"size,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// Order represents a customer or guest order
type Order struct {
	ID            int64          `db:"id" json:"id"`
	UserID        sql.NullInt64  `db:"user_id" json:"user_id,omitempty"`
	CustomerName  sql.NullString `db:"customer_name" json:"customer_name,omitempty"`
	CustomerEmail sql.NullString `db:"customer_email" json:"customer_email,omitempty"`
	Status        string         `db:"status" json:"status"`
	TotalAmount   int64          `db:"total_amount" json:"total_amount"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// OrderSummary is an order list row with the customer resolved
// from either the linked user or the guest columns
type OrderSummary struct {
	ID            int64     `db:"id" json:"id"`
	Status        string    `db:"status" json:"status"`
	TotalAmount   int64     `db:"total_amount" json:"total_amount"`
	CustomerName  string    `db:"customer_name" json:"customer_name"`
	CustomerEmail string    `db:"customer_email" json:"customer_email"`
	ItemCount     int       `db:"item_count" json:"item_count"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// OrderItem stores the price snapshot at time of purchase
type OrderItem struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	Price     int64 `db:"price" json:"price"`
}

// OrderItemDetail is an order item with product display fields
type OrderItemDetail struct {
	OrderItem
	ProductName string `db:"product_name" json:"product_name"`
	ProductCode string `db:"product_code" json:"product_code"`
}

// OrderDetail is a full order with its items
type OrderDetail struct {
	Order
	Customer     string            `db:"customer" json:"customer"`
	CustomerMail string            `db:"customer_mail" json:"customer_mail"`
	Items        []OrderItemDetail `json:"items"`
}

// StockChange records one stock mutation applied inside an order
// transaction
type StockChange struct {
	ProductID int64 `json:"product_id"`
	Delta     int   `json:"delta"`
	NewStock  int   `json:"new_stock"`
}

// Order statuses
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
