package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"backoffice/config"
	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`DROP TABLE IF EXISTS order_items, orders, products, product_type_sizes, product_types, sizes, colors, categories, brands, users CASCADE`,

	`CREATE TABLE users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(50) NOT NULL UNIQUE,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'manager',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE brands (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE colors (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE sizes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE product_types (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE product_type_sizes (
		product_type_id BIGINT NOT NULL REFERENCES product_types(id) ON DELETE CASCADE,
		size_id BIGINT NOT NULL REFERENCES sizes(id) ON DELETE CASCADE,
		PRIMARY KEY (product_type_id, size_id)
	)`,

	`CREATE TABLE products (
		id BIGSERIAL PRIMARY KEY,
		product_code VARCHAR(50) UNIQUE,
		name TEXT NOT NULL,
		product_type_id BIGINT REFERENCES product_types(id),
		brand_id BIGINT REFERENCES brands(id),
		category_id BIGINT REFERENCES categories(id),
		color_id BIGINT REFERENCES colors(id),
		size_id BIGINT REFERENCES sizes(id),
		price BIGINT NOT NULL,
		stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE orders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		customer_name VARCHAR(255),
		customer_email VARCHAR(255),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		total_amount BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id),
		quantity INT NOT NULL CHECK (quantity > 0),
		price BIGINT NOT NULL
	)`,

	`CREATE INDEX idx_orders_status ON orders(status)`,
	`CREATE INDEX idx_orders_created_at ON orders(created_at)`,
	`CREATE INDEX idx_order_items_order_id ON order_items(order_id)`,
	`CREATE INDEX idx_order_items_product_id ON order_items(product_id)`,
	`CREATE INDEX idx_products_name ON products(name)`,
}

var views = []string{
	`CREATE OR REPLACE VIEW view_top_selling_products AS
	SELECT p.id, p.name, p.product_code,
	       SUM(oi.quantity) AS total_sold,
	       SUM(oi.quantity * oi.price) AS total_revenue
	FROM order_items oi
	JOIN products p ON oi.product_id = p.id
	JOIN orders o ON oi.order_id = o.id
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY p.id, p.name, p.product_code
	ORDER BY total_sold DESC`,

	`CREATE OR REPLACE VIEW view_revenue_by_type AS
	SELECT pt.name AS product_type,
	       SUM(oi.quantity) AS total_sold,
	       SUM(oi.quantity * oi.price) AS total_revenue
	FROM order_items oi
	JOIN products p ON oi.product_id = p.id
	LEFT JOIN product_types pt ON p.product_type_id = pt.id
	JOIN orders o ON oi.order_id = o.id
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY pt.name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW view_revenue_by_category AS
	SELECT c.name AS category,
	       SUM(oi.quantity) AS total_sold,
	       SUM(oi.quantity * oi.price) AS total_revenue
	FROM order_items oi
	JOIN products p ON oi.product_id = p.id
	LEFT JOIN categories c ON p.category_id = c.id
	JOIN orders o ON oi.order_id = o.id
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY c.name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW view_revenue_by_brand AS
	SELECT b.name AS brand,
	       SUM(oi.quantity) AS total_sold,
	       SUM(oi.quantity * oi.price) AS total_revenue
	FROM order_items oi
	JOIN products p ON oi.product_id = p.id
	LEFT JOIN brands b ON p.brand_id = b.id
	JOIN orders o ON oi.order_id = o.id
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY b.name
	ORDER BY total_revenue DESC`,

	`CREATE OR REPLACE VIEW view_product_stock_summary AS
	SELECT pt.id AS type_id,
	       pt.name AS type_name,
	       COUNT(p.id) AS total_products,
	       COALESCE(SUM(p.stock), 0) AS total_stock
	FROM product_types pt
	LEFT JOIN products p ON p.product_type_id = pt.id
	GROUP BY pt.id, pt.name
	ORDER BY pt.name`,

	`CREATE OR REPLACE VIEW view_stock_usage AS
	SELECT p.id, p.name, p.product_code, p.stock,
	       COALESCE(SUM(oi.quantity), 0) AS sold_quantity,
	       (p.stock + COALESCE(SUM(oi.quantity), 0)) AS initial_stock
	FROM products p
	LEFT JOIN order_items oi ON p.id = oi.product_id
	LEFT JOIN orders o ON oi.order_id = o.id
		AND o.status IN ('paid','shipped','completed')
	GROUP BY p.id, p.name, p.product_code, p.stock
	ORDER BY sold_quantity DESC`,

	`CREATE OR REPLACE VIEW view_sales_per_month AS
	SELECT to_char(o.created_at, 'YYYY-MM') AS month,
	       COUNT(o.id) AS total_orders,
	       SUM(o.total_amount) AS total_revenue
	FROM orders o
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY to_char(o.created_at, 'YYYY-MM')
	ORDER BY month DESC`,

	`CREATE OR REPLACE VIEW view_sales_daily_current_month AS
	SELECT date_trunc('day', o.created_at) AS day,
	       COUNT(o.id) AS total_orders,
	       SUM(o.total_amount) AS total_revenue
	FROM orders o
	WHERE o.status IN ('paid','shipped','completed')
	  AND date_trunc('month', o.created_at) = date_trunc('month', CURRENT_DATE)
	GROUP BY date_trunc('day', o.created_at)
	ORDER BY day ASC`,

	`CREATE OR REPLACE VIEW view_monthly_growth AS
	SELECT month, total_revenue, total_orders,
	       LAG(total_revenue) OVER (ORDER BY month) AS last_month_revenue,
	       LAG(total_orders) OVER (ORDER BY month) AS last_month_orders,
	       ROUND(
	           (total_revenue - LAG(total_revenue) OVER (ORDER BY month))::numeric
	           / NULLIF(LAG(total_revenue) OVER (ORDER BY month), 0) * 100, 2
	       ) AS revenue_growth_percent,
	       ROUND(
	           (total_orders - LAG(total_orders) OVER (ORDER BY month))::numeric
	           / NULLIF(LAG(total_orders) OVER (ORDER BY month), 0) * 100, 2
	       ) AS order_growth_percent
	FROM (
	    SELECT to_char(o.created_at, 'YYYY-MM') AS month,
	           SUM(o.total_amount) AS total_revenue,
	           COUNT(o.id) AS total_orders
	    FROM orders o
	    WHERE o.status IN ('paid','shipped','completed')
	    GROUP BY to_char(o.created_at, 'YYYY-MM')
	) m
	ORDER BY month DESC`,

	`CREATE OR REPLACE VIEW view_user_stats AS
	SELECT u.id AS user_id, u.username, u.email, u.role,
	       COUNT(o.id) AS total_orders,
	       COALESCE(SUM(o.total_amount), 0) AS total_spent,
	       COALESCE(AVG(o.total_amount), 0) AS avg_order_value,
	       MAX(o.created_at) AS last_order_date
	FROM users u
	LEFT JOIN orders o ON u.id = o.user_id
	GROUP BY u.id, u.username, u.email, u.role
	ORDER BY total_spent DESC`,

	`CREATE OR REPLACE VIEW view_top_customers AS
	SELECT u.id AS user_id, u.username, u.email,
	       COUNT(o.id) AS total_orders,
	       COALESCE(SUM(o.total_amount), 0) AS total_spent,
	       COALESCE(AVG(o.total_amount), 0) AS avg_order_value
	FROM users u
	JOIN orders o ON u.id = o.user_id
	WHERE o.status IN ('paid','shipped','completed')
	GROUP BY u.id, u.username, u.email
	ORDER BY total_spent DESC`,

	`CREATE OR REPLACE VIEW view_inactive_users AS
	SELECT u.id AS user_id, u.username, u.email, u.role, u.created_at
	FROM users u
	LEFT JOIN orders o ON u.id = o.user_id
	WHERE o.id IS NULL
	ORDER BY u.created_at ASC`,
}

var brandNames = []string{
	"Adidas", "Gucci", "H&M", "Nike", "Zara", "Rolex", "Casio",
	"Daniel Wellington", "Levi's", "Uniqlo", "Ray-Ban", "Oakley",
	"Fossil", "Swatch", "The North Face", "Under Armour", "Reebok",
	"Puma", "Hermès", "Supreme",
}

var categoryNames = []string{"Pria", "Wanita", "Anak-anak"}

var colorNames = []string{"Biru", "Hijau", "Hitam", "Kuning", "Merah", "Putih"}

var sizeNames = []string{
	"S", "M", "L", "XL",
	"38", "39", "40", "41",
	"38mm", "40mm", "42mm",
	"Free Size",
	"15mm", "16mm", "17mm",
	"500ml", "1L",
}

// typeSizes maps each product type to the sizes it can carry
var typeSizes = map[string][]string{
	"Baju":      {"S", "M", "L", "XL"},
	"Celana":    {"S", "M", "L", "XL"},
	"Jaket":     {"S", "M", "L", "XL"},
	"Sepatu":    {"38", "39", "40", "41"},
	"Jam":       {"38mm", "40mm", "42mm"},
	"Perhiasan": {"15mm", "16mm", "17mm"},
	"Tumbler":   {"500ml", "1L"},
	"Tas":       {"Free Size"},
	"Topi":      {"Free Size"},
	"Kacamata":  {"Free Size"},
}

var typeNames = []string{
	"Baju", "Celana", "Sepatu", "Tas", "Jam",
	"Kacamata", "Perhiasan", "Tumbler", "Jaket", "Topi",
}

func main() {
	cfg := config.Load()

	st, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer st.Close()
	db := st.GetDB()

	log.Println("Database connected, rebuilding schema...")

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Schema statement failed: %v", err)
		}
	}

	refs := seedReferences(db)
	users := seedUsers(st)
	products := seedProducts(db, refs)
	seedOrders(db, users, products)

	log.Println("Creating analytics views...")
	for _, stmt := range views {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("View statement failed: %v", err)
		}
	}

	log.Println("Seeding complete.")
}

type references struct {
	brands     []int64
	categories []int64
	colors     []int64
	sizeIDs    map[string]int64
	types      []typeRef
}

type typeRef struct {
	id   int64
	name string
}

func insertNamed(db *sqlx.DB, table string, names []string) []int64 {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		var id int64
		err := db.QueryRow(
			fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING id", table), name).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to insert into %s: %v", table, err)
		}
		ids = append(ids, id)
	}
	return ids
}

func seedReferences(db *sqlx.DB) *references {
	refs := &references{
		brands:     insertNamed(db, "brands", brandNames),
		categories: insertNamed(db, "categories", categoryNames),
		colors:     insertNamed(db, "colors", colorNames),
		sizeIDs:    map[string]int64{},
	}

	for i, id := range insertNamed(db, "sizes", sizeNames) {
		refs.sizeIDs[sizeNames[i]] = id
	}

	for i, id := range insertNamed(db, "product_types", typeNames) {
		refs.types = append(refs.types, typeRef{id: id, name: typeNames[i]})
		for _, sizeName := range typeSizes[typeNames[i]] {
			_, err := db.Exec(
				"INSERT INTO product_type_sizes (product_type_id, size_id) VALUES ($1, $2)",
				id, refs.sizeIDs[sizeName])
			if err != nil {
				log.Fatalf("Failed to link size to product type: %v", err)
			}
		}
	}

	log.Printf("Seeded %d brands, %d categories, %d colors, %d sizes, %d product types",
		len(refs.brands), len(refs.categories), len(refs.colors),
		len(refs.sizeIDs), len(refs.types))
	return refs
}

type seedUser struct {
	id       int64
	username string
	email    string
	role     string
}

func seedUsers(st *store.Store) []seedUser {
	plan := []struct {
		username, email, password, role string
	}{
		{"admin", "admin@example.com", "admin123", models.RoleOwner},
		{"manager", "manager@example.com", "manager123", models.RoleManager},
		{"budi", "budi@example.com", "password123", models.RoleCustomer},
		{"sari", "sari@example.com", "password123", models.RoleCustomer},
		{"agus", "agus@example.com", "password123", models.RoleCustomer},
		{"dewi", "dewi@example.com", "password123", models.RoleCustomer},
		{"rina", "rina@example.com", "password123", models.RoleCustomer},
	}

	users := make([]seedUser, 0, len(plan))
	for _, p := range plan {
		hash, err := auth.HashPassword(p.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user := &models.User{
			Username:     p.username,
			Email:        p.email,
			PasswordHash: hash,
			Role:         p.role,
		}
		if err := st.CreateUser(context.Background(), user); err != nil {
			log.Fatalf("Failed to insert user %s: %v", p.username, err)
		}
		users = append(users, seedUser{id: user.ID, username: p.username, email: p.email, role: p.role})
	}

	log.Printf("Seeded %d users", len(users))
	return users
}

type seedProduct struct {
	id    int64
	price int64
	stock int
}

func seedProducts(db *sqlx.DB, refs *references) []seedProduct {
	products := make([]seedProduct, 0, 60)

	for i := 1; i <= 60; i++ {
		pt := refs.types[rand.Intn(len(refs.types))]
		brandIdx := rand.Intn(len(refs.brands))
		categoryIdx := rand.Intn(len(refs.categories))
		colorIdx := rand.Intn(len(refs.colors))

		allowed := typeSizes[pt.name]
		sizeName := allowed[rand.Intn(len(allowed))]
		sizeID := refs.sizeIDs[sizeName]

		name := fmt.Sprintf("%s %s %s %s",
			pt.name, brandNames[brandIdx], colorNames[colorIdx], sizeName)
		code := fmt.Sprintf("PRD-%05d", i)
		price := int64(20000 + rand.Intn(81)*1000)
		stock := 50 + rand.Intn(51)
		createdAt := randomPastDate(6)

		var id int64
		err := db.QueryRow(
			`INSERT INTO products (product_code, name, product_type_id, brand_id,
			                       category_id, color_id, size_id, price, stock, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
			code, name, pt.id, refs.brands[brandIdx], refs.categories[categoryIdx],
			refs.colors[colorIdx], sizeID, price, stock, createdAt).Scan(&id)
		if err != nil {
			log.Fatalf("Failed to insert product %s: %v", code, err)
		}
		products = append(products, seedProduct{id: id, price: price, stock: stock})
	}

	log.Printf("Seeded %d products", len(products))
	return products
}

func seedOrders(db *sqlx.DB, users []seedUser, products []seedProduct) {
	customers := make([]seedUser, 0, len(users))
	for _, u := range users {
		if u.role == models.RoleCustomer {
			customers = append(customers, u)
		}
	}

	remaining := map[int64]int{}
	for _, p := range products {
		remaining[p.id] = p.stock
	}

	totalOrders := 0
	totalItems := 0

	for monthOffset := -5; monthOffset <= 0; monthOffset++ {
		base := 3 + (6 + monthOffset)
		numOrders := base + rand.Intn(6)

		for o := 0; o < numOrders; o++ {
			itemsCount := 1 + rand.Intn(3)
			type chosenItem struct {
				productID int64
				quantity  int
				price     int64
			}
			var chosen []chosenItem
			var totalAmount int64

			for j := 0; j < itemsCount; j++ {
				p := products[rand.Intn(len(products))]
				maxQty := remaining[p.id]
				if maxQty > 5 {
					maxQty = 5
				}
				if maxQty <= 0 {
					continue
				}

				qty := 1 + rand.Intn(maxQty)
				remaining[p.id] -= qty
				totalAmount += p.price * int64(qty)
				chosen = append(chosen, chosenItem{productID: p.id, quantity: qty, price: p.price})
			}
			if len(chosen) == 0 {
				continue
			}

			status := orderStatusForMonth(monthOffset)
			createdAt := randomDateInMonth(monthOffset)

			var userID interface{}
			var customerName, customerEmail interface{}
			if len(customers) > 0 && rand.Intn(10) < 6 {
				c := customers[rand.Intn(len(customers))]
				userID = c.id
			} else {
				n := rand.Intn(1000)
				customerName = fmt.Sprintf("Guest %d", n)
				customerEmail = fmt.Sprintf("guest%d@example.com", n)
			}

			var orderID int64
			err := db.QueryRow(
				`INSERT INTO orders (user_id, customer_name, customer_email, status, total_amount, created_at)
				 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
				userID, customerName, customerEmail, status, totalAmount, createdAt).Scan(&orderID)
			if err != nil {
				log.Fatalf("Failed to insert order: %v", err)
			}

			for _, item := range chosen {
				_, err := db.Exec(
					`INSERT INTO order_items (order_id, product_id, quantity, price)
					 VALUES ($1, $2, $3, $4)`,
					orderID, item.productID, item.quantity, item.price)
				if err != nil {
					log.Fatalf("Failed to insert order item: %v", err)
				}
				totalItems++
			}
			totalOrders++
		}
	}

	// Sync the product rows to the stock left after the demo sales.
	for id, stock := range remaining {
		if _, err := db.Exec("UPDATE products SET stock = $1 WHERE id = $2", stock, id); err != nil {
			log.Fatalf("Failed to update product stock: %v", err)
		}
	}

	log.Printf("Seeded %d orders with %d items over 6 months", totalOrders, totalItems)
}

func orderStatusForMonth(monthOffset int) string {
	switch {
	case monthOffset < -2:
		statuses := []string{models.OrderStatusCompleted, models.OrderStatusCompleted, models.OrderStatusShipped}
		return statuses[rand.Intn(len(statuses))]
	case monthOffset < 0:
		statuses := []string{models.OrderStatusCompleted, models.OrderStatusShipped, models.OrderStatusPaid}
		return statuses[rand.Intn(len(statuses))]
	default:
		statuses := []string{models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusCancelled}
		return statuses[rand.Intn(len(statuses))]
	}
}

func randomDateInMonth(monthOffset int) time.Time {
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local).AddDate(0, monthOffset, 0)
	last := first.AddDate(0, 1, 0)
	if monthOffset == 0 && now.Before(last) {
		last = now
	}

	span := last.Sub(first)
	return first.Add(time.Duration(rand.Int63n(int64(span))))
}

func randomPastDate(maxMonthsAgo int) time.Time {
	now := time.Now()
	past := now.AddDate(0, -maxMonthsAgo, 0)
	span := now.Sub(past)
	return past.Add(time.Duration(rand.Int63n(int64(span))))
}
