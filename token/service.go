// Package token issues and verifies the signed session tokens that carry
// a user's identity between requests.
package token

import "time"

// DefaultTTL is the session token lifetime used when none is configured.
const DefaultTTL = time.Hour

// Config holds configuration for the token service.
type Config struct {
	// Secret is the shared HMAC signing key. Required.
	Secret string

	// TTL is the token lifetime measured from issuance.
	// Defaults to DefaultTTL.
	TTL time.Duration

	// ClockSkew allows for clock differences between servers.
	ClockSkew time.Duration
}

// Service issues and verifies session tokens. All tokens are signed with a
// single shared secret; verification is stateless and per-request.
type Service struct {
	config *Config
}

// New creates a token service. It fails with ErrSecretMissing when the
// signing secret is empty so that misconfiguration is caught at startup.
func New(cfg *Config) (*Service, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, ErrSecretMissing
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Service{config: cfg}, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.config.TTL
}
