package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/adhyans/go-jwt-auth/store"
)

func TestCreateAndLookup(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := &store.User{
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "hash",
		Role:         store.RoleUser,
	}

	if err := s.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected an assigned ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	byEmail, err := s.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected ID %q, got %q", user.ID, byEmail.ID)
	}

	byID, err := s.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if byID.Email != "alice@x.com" {
		t.Errorf("expected email alice@x.com, got %q", byID.Email)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &store.User{Username: "alice", Email: "alice@x.com", Role: store.RoleUser}
	if err := s.Create(ctx, first); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := &store.User{Username: "alice2", Email: "alice@x.com", Role: store.RoleUser}
	err := s.Create(ctx, dup)
	if !errors.Is(err, store.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The failed registration must not have touched the store.
	got, err := s.GetByEmail(ctx, "alice@x.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("store mutated by failed registration: username %q", got.Username)
	}
}

func TestCreate_ConcurrentDuplicates(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Create(ctx, &store.User{
				Username: "alice",
				Email:    "alice@x.com",
				Role:     store.RoleUser,
			})
		}(i)
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
		} else if !errors.Is(err, store.ErrEmailTaken) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if created != 1 {
		t.Errorf("expected exactly one successful registration, got %d", created)
	}
}

func TestLookup_NotFound(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetByEmail(ctx, "nobody@x.com"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.GetByID(ctx, "no-such-id"); !errors.Is(err, store.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()

	user := &store.User{Username: "alice", Email: "alice@x.com", Role: store.RoleUser}
	if err := s.Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, _ := s.GetByEmail(ctx, "alice@x.com")
	got.Username = "mallory"

	again, _ := s.GetByEmail(ctx, "alice@x.com")
	if again.Username != "alice" {
		t.Error("mutating a returned user leaked into the store")
	}
}
