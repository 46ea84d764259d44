package auth

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"

	"backoffice/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike so the login page never reveals which field failed.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Principal is the minimal user record stored in the session
type Principal struct {
	ID       int64
	Username string
	Role     string
}

func init() {
	// the cookie session store serializes values with gob
	gob.Register(Principal{})
}

// UserSource looks up accounts for credential verification
type UserSource interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator verifies submitted credentials against stored
// bcrypt hashes
type Authenticator struct {
	users UserSource
}

// NewAuthenticator creates a new authenticator
func NewAuthenticator(users UserSource) *Authenticator {
	return &Authenticator{users: users}
}

// Verify checks username and password and returns the session
// principal. It fails closed: missing user and hash mismatch are
// indistinguishable to the caller.
func (a *Authenticator) Verify(ctx context.Context, username, password string) (*Principal, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// HashPassword hashes a plaintext password for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
