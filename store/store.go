// Package store defines the credential store: the authoritative record of
// user identities and password hashes.
package store

import (
	"context"
	"errors"
	"time"
)

// Store errors.
var (
	// ErrUserNotFound indicates no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.New("user already exists")
)

// Role is the authorization level assigned to a user.
type Role string

const (
	// RoleUser is the standard role assigned on registration.
	RoleUser Role = "user"

	// RoleAdmin is the elevated role. It is never assigned by the
	// registration flow; only seeding can grant it.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserStore is the lookup-by-email credential store interface.
// All methods must be safe for concurrent use.
type UserStore interface {
	// Create inserts a new user. The check for an existing email and the
	// insert must be atomic; a duplicate email yields ErrEmailTaken and
	// leaves the store unchanged.
	Create(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by email, the login key.
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID retrieves a user by identifier.
	GetByID(ctx context.Context, id string) (*User, error)

	// Close releases any resources held by the store.
	Close() error
}
