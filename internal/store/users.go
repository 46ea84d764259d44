package store

import (
	"context"
	"database/sql"

	"backoffice/internal/models"
)

var userSorts = map[string]string{
	"id_asc":        "id ASC",
	"id_desc":       "id DESC",
	"username_asc":  "username ASC",
	"username_desc": "username DESC",
	"newest":        "created_at DESC",
	"oldest":        "created_at ASC",
}

// ListUsers retrieves a page of users filtered by username or email
func (s *Store) ListUsers(ctx context.Context, opts ListOptions) (*Page[models.User], error) {
	baseQuery := "SELECT * FROM users"
	args := []interface{}{}

	if opts.Query != "" {
		baseQuery += " WHERE username ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'"
		args = append(args, opts.Query)
	}

	return Paginate[models.User](ctx, s.db, baseQuery, args, PageOptions{
		Sort:         opts.Sort,
		AllowedSorts: userSorts,
		Page:         opts.Page,
		PerPage:      opts.PerPage,
	})
}

// GetUserByUsername retrieves a user by username, nil when absent
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID, nil when absent
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a user with an already-hashed password
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.GetContext(ctx, user, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Email, user.PasswordHash, user.Role)
}
