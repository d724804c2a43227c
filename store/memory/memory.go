// Package memory provides an in-memory UserStore implementation. It stands
// in for a real database; nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adhyans/go-jwt-auth/store"
)

// Store is an in-memory implementation of store.UserStore.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*store.User // keyed by ID
	byEmail map[string]*store.User // keyed by email

	closed bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:   make(map[string]*store.User),
		byEmail: make(map[string]*store.User),
	}
}

// Create inserts a new user. The email-uniqueness check and the insert run
// under one lock, so concurrent duplicate registrations cannot both succeed.
func (s *Store) Create(ctx context.Context, user *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return store.ErrEmailTaken
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	u := *user
	s.users[u.ID] = &u
	s.byEmail[u.Email] = &u

	return nil
}

// GetByEmail retrieves a user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byEmail[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// GetByID retrieves a user by identifier.
func (s *Store) GetByID(ctx context.Context, id string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ store.UserStore = (*Store)(nil)
