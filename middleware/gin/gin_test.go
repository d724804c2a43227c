package gin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/adhyans/go-jwt-auth/middleware"
	"github.com/adhyans/go-jwt-auth/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockVerifier struct {
	claims *token.Claims
	err    error
}

func (m *mockVerifier) Verify(tokenString string) (*token.Claims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func TestGinAuthenticate_ValidToken(t *testing.T) {
	verifier := &mockVerifier{claims: &token.Claims{UserID: "user123"}}

	router := gin.New()
	router.Use(Authenticate(verifier, nil))
	router.GET("/auth/profile", func(c *gin.Context) {
		if got := UserID(c); got != "user123" {
			t.Errorf("expected user ID 'user123', got %q", got)
		}
		if got := middleware.GetUserID(c.Request.Context()); got != "user123" {
			t.Errorf("expected user ID in request context, got %q", got)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "some-token"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestGinAuthenticate_MissingToken(t *testing.T) {
	verifier := &mockVerifier{claims: &token.Claims{UserID: "user123"}}

	router := gin.New()
	router.Use(Authenticate(verifier, nil))
	router.GET("/auth/profile", func(c *gin.Context) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Unauthorized" {
		t.Errorf("expected message 'Unauthorized', got %q", body["error"])
	}
}

func TestGinAuthenticate_InvalidToken(t *testing.T) {
	verifier := &mockVerifier{err: token.ErrTokenInvalidSig}

	router := gin.New()
	router.Use(Authenticate(verifier, nil))
	router.GET("/auth/profile", func(c *gin.Context) {
		t.Error("handler should not be called")
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "forged"})
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Invalid token" {
		t.Errorf("expected message 'Invalid token', got %q", body["error"])
	}
}

func TestGinAuthenticate_CustomExtractor(t *testing.T) {
	verifier := &mockVerifier{claims: &token.Claims{UserID: "user123"}}
	cfg := &Config{
		TokenExtractor: ExtractFromHeader("Authorization", "Bearer"),
	}

	router := gin.New()
	router.Use(Authenticate(verifier, cfg))
	router.GET("/auth/profile", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestUserID_Unauthenticated(t *testing.T) {
	router := gin.New()
	router.GET("/open", func(c *gin.Context) {
		if got := UserID(c); got != "" {
			t.Errorf("expected empty user ID, got %q", got)
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
}
