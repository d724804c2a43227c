// Package gin provides Gin middleware for the auth gate.
package gin

import (
	"github.com/gin-gonic/gin"

	"github.com/adhyans/go-jwt-auth/middleware"
)

// Context keys used within Gin's own context.
const (
	// ClaimsContextKey is the Gin context key for verified claims.
	ClaimsContextKey = "claims"
	// UserIDContextKey is the Gin context key for the verified subject ID.
	UserIDContextKey = "user_id"
)

// Config holds Gin-specific middleware configuration.
type Config struct {
	// TokenExtractor extracts the token from the Gin context.
	// Defaults to the session cookie.
	TokenExtractor TokenExtractor

	// ErrorHandler handles authentication failures.
	// Defaults to a 401 JSON response.
	ErrorHandler ErrorHandler
}

// TokenExtractor extracts a token from a Gin context.
type TokenExtractor func(c *gin.Context) string

// ErrorHandler handles authentication failures in Gin.
type ErrorHandler func(c *gin.Context, err error)

// DefaultConfig returns a default Gin middleware configuration.
func DefaultConfig() *Config {
	return &Config{
		TokenExtractor: ExtractFromCookie(middleware.SessionCookieName),
		ErrorHandler:   DefaultErrorHandler,
	}
}

// ExtractFromCookie creates a token extractor that reads a named cookie.
func ExtractFromCookie(name string) TokenExtractor {
	return func(c *gin.Context) string {
		cookie, err := c.Cookie(name)
		if err != nil {
			return ""
		}
		return cookie
	}
}

// ExtractFromHeader creates a token extractor that reads a header via the
// framework-agnostic extractor.
func ExtractFromHeader(header, scheme string) TokenExtractor {
	inner := middleware.ExtractFromHeader(header, scheme)
	return func(c *gin.Context) string {
		return inner(c.Request)
	}
}

// DefaultErrorHandler aborts the request with a 401 JSON response.
func DefaultErrorHandler(c *gin.Context, err error) {
	c.AbortWithStatusJSON(
		middleware.ErrorToHTTPStatus(err),
		gin.H{"error": middleware.ErrorMessage(err)},
	)
}

// Authenticate creates a Gin middleware that verifies session tokens.
// Each request is verified independently; no state is kept between requests.
func Authenticate(verifier middleware.TokenVerifier, cfg *Config) gin.HandlerFunc {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.TokenExtractor == nil {
		cfg.TokenExtractor = ExtractFromCookie(middleware.SessionCookieName)
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}

	return func(c *gin.Context) {
		tokenString := cfg.TokenExtractor(c)
		if tokenString == "" {
			cfg.ErrorHandler(c, middleware.ErrMissingToken)
			return
		}

		claims, err := verifier.Verify(tokenString)
		if err != nil {
			cfg.ErrorHandler(c, err)
			return
		}

		// Make the subject available both through Gin's context and the
		// request context, so handlers that only see *http.Request still
		// know who the caller is.
		c.Set(ClaimsContextKey, claims)
		c.Set(UserIDContextKey, claims.UserID)

		ctx := middleware.SetClaims(c.Request.Context(), claims)
		ctx = middleware.SetUserID(ctx, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserID retrieves the verified subject ID from a Gin context.
func UserID(c *gin.Context) string {
	if v, exists := c.Get(UserIDContextKey); exists {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
