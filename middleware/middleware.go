// Package middleware provides the auth gate that verifies a session token
// before allowing access to protected operations.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adhyans/go-jwt-auth/token"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// ErrMissingToken indicates no credential was presented at all.
var ErrMissingToken = errors.New("no token presented")

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// ClaimsKey is the context key for storing verified claims.
	ClaimsKey contextKey = "auth_claims"
	// UserIDKey is the context key for storing the verified subject ID.
	UserIDKey contextKey = "auth_user_id"
)

// TokenVerifier verifies a token string and returns its claims.
// *token.Service satisfies this interface.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// TokenExtractor extracts a token from an HTTP request.
type TokenExtractor func(r *http.Request) string

// ErrorHandler handles authentication failures.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Config holds middleware configuration.
type Config struct {
	// TokenExtractor extracts the token from the request.
	// Defaults to the session cookie.
	TokenExtractor TokenExtractor

	// ErrorHandler handles authentication failures.
	// Defaults to a 401 JSON response.
	ErrorHandler ErrorHandler
}

// DefaultConfig returns a default middleware configuration.
func DefaultConfig() *Config {
	return &Config{
		TokenExtractor: ExtractFromCookie(SessionCookieName),
		ErrorHandler:   DefaultErrorHandler,
	}
}

// ExtractFromCookie creates a TokenExtractor that reads a named cookie.
func ExtractFromCookie(name string) TokenExtractor {
	return func(r *http.Request) string {
		cookie, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

// ExtractFromHeader creates a TokenExtractor that reads a header, optionally
// stripping an auth scheme prefix such as "Bearer".
func ExtractFromHeader(header, scheme string) TokenExtractor {
	return func(r *http.Request) string {
		auth := r.Header.Get(header)
		if auth == "" {
			return ""
		}

		if scheme != "" {
			prefix := scheme + " "
			if len(auth) > len(prefix) && equalFold(auth[:len(prefix)], prefix) {
				return auth[len(prefix):]
			}
			return ""
		}

		return auth
	}
}

// ExtractFromQuery creates a TokenExtractor that reads a query parameter.
func ExtractFromQuery(param string) TokenExtractor {
	return func(r *http.Request) string {
		return r.URL.Query().Get(param)
	}
}

// ChainExtractors chains multiple extractors, returning the first non-empty
// result.
func ChainExtractors(extractors ...TokenExtractor) TokenExtractor {
	return func(r *http.Request) string {
		for _, extractor := range extractors {
			if t := extractor(r); t != "" {
				return t
			}
		}
		return ""
	}
}

// Authenticate wraps an http.Handler so it only runs for requests carrying
// a valid session token. The verified subject ID and claims are placed in
// the request context.
func Authenticate(verifier TokenVerifier, cfg *Config) func(http.Handler) http.Handler {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = ExtractFromCookie(SessionCookieName)
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := cfg.TokenExtractor(r)
			if tokenString == "" {
				cfg.ErrorHandler(w, r, ErrMissingToken)
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			ctx := SetClaims(r.Context(), claims)
			ctx = SetUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DefaultErrorHandler writes the failure as a JSON 401 response.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(ErrorToHTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": ErrorMessage(err)})
}

// ErrorToHTTPStatus converts a gate error to an HTTP status code.
func ErrorToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return http.StatusUnauthorized
}

// ErrorMessage converts a gate error to the short user-facing message.
// A missing credential and a failed verification are reported differently;
// verification failures share one message so callers learn nothing about
// why a presented token was rejected.
func ErrorMessage(err error) string {
	if errors.Is(err, ErrMissingToken) {
		return "Unauthorized"
	}
	return "Invalid token"
}

// SetClaims stores verified claims in the request context.
func SetClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// GetClaims retrieves verified claims from the context.
func GetClaims(ctx context.Context) *token.Claims {
	if v := ctx.Value(ClaimsKey); v != nil {
		if c, ok := v.(*token.Claims); ok {
			return c
		}
	}
	return nil
}

// SetUserID stores the verified subject ID in the request context.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves the verified subject ID from the context.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(UserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// equalFold is a case-insensitive ASCII string comparison.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
