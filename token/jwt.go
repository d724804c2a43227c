package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload carried by a session token.
type Claims struct {
	UserID string `json:"sub"`
	JTI    string `json:"jti"`
	jwt.RegisteredClaims
}

// GetUserID returns the subject identifier from claims.
func (c *Claims) GetUserID() string {
	return c.UserID
}

// Issue creates a signed session token for the given user identifier.
// The token expires a fixed TTL after issuance.
func (s *Service) Issue(userID string) (string, error) {
	now := time.Now()
	jti := uuid.NewString()

	claims := &Claims{
		UserID: userID,
		JTI:    jti,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TTL)),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(s.config.Secret))
}

// Verify parses a token string and validates its signature and expiry
// against the shared secret. On success it returns the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		// Only HMAC tokens are accepted; an attacker-chosen alg must not
		// change which key material is used for verification.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalidSig
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithLeeway(s.config.ClockSkew))

	if err != nil {
		return nil, mapJWTError(err)
	}
	if !tok.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// mapJWTError maps JWT library errors to our error types.
func mapJWTError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrTokenInvalidSig
	}

	return ErrTokenMalformed
}
