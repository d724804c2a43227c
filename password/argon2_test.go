package password

import (
	"strings"
	"testing"
)

// fastArgon2Config keeps test runs quick.
func fastArgon2Config() *Argon2Config {
	return &Argon2Config{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgon2Hasher_Hash(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash should be in PHC format, got: %s", hash)
	}
}

func TestArgon2Hasher_HashUnique(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash1, _ := h.Hash("password123")
	hash2, _ := h.Hash("password123")

	if hash1 == hash2 {
		t.Error("hashes should be unique due to random salt")
	}
}

func TestArgon2Hasher_Verify(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	hash, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct password", "password123", true},
		{"wrong password", "wrongpassword", false},
		{"empty password", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, err := h.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if valid != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, valid, tt.want)
			}
		})
	}
}

func TestArgon2Hasher_VerifyInvalidHash(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not PHC", "not-a-hash"},
		{"wrong algorithm", "$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$bogus$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify("password", tt.hash)
			if err == nil {
				t.Error("expected error for invalid hash")
			}
		})
	}
}

func TestArgon2Hasher_NeedsRehash(t *testing.T) {
	h := NewArgon2Hasher(fastArgon2Config())
	hash, _ := h.Hash("password123")

	if h.NeedsRehash(hash) {
		t.Error("hash with same parameters should not need rehash")
	}

	stronger := fastArgon2Config()
	stronger.Iterations = 3
	h2 := NewArgon2Hasher(stronger)
	if !h2.NeedsRehash(hash) {
		t.Error("hash with different parameters should need rehash")
	}

	if !h.NeedsRehash("invalid-hash") {
		t.Error("invalid hash should need rehash")
	}
}
