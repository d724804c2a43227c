// Package handlers implements the HTTP auth controller: registration,
// sign-in, sign-out, and the gated profile endpoint.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adhyans/go-jwt-auth/internal/logging"
	"github.com/adhyans/go-jwt-auth/middleware"
	ginmw "github.com/adhyans/go-jwt-auth/middleware/gin"
	"github.com/adhyans/go-jwt-auth/password"
	"github.com/adhyans/go-jwt-auth/store"
	"github.com/adhyans/go-jwt-auth/token"
)

// User-facing failure messages. Unknown email and wrong password share one
// message so a caller cannot probe which emails are registered.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgUserExists         = "User already exists"
	msgInvalidBody        = "Invalid request body"
	msgUnexpected         = "Something went wrong"
	msgSignedOut          = "Signed out"
)

// Handler holds the auth controller dependencies.
type Handler struct {
	store  store.UserStore
	hasher password.Hasher
	tokens *token.Service
	log    logging.Logger

	// secureCookies marks session cookies Secure (HTTPS only).
	secureCookies bool
}

// New creates an auth handler.
func New(s store.UserStore, h password.Hasher, t *token.Service, log logging.Logger, secureCookies bool) *Handler {
	return &Handler{
		store:         s,
		hasher:        h,
		tokens:        t,
		log:           log,
		secureCookies: secureCookies,
	}
}

type signupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /auth/signup.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	// Fast-path duplicate check; Create re-checks atomically, so a race
	// between two signups still produces exactly one user.
	if _, err := h.store.GetByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUserExists})
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error(c.Request.Context(), "password hashing failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
		return
	}

	user := &store.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         store.RoleUser,
	}

	if err := h.store.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgUserExists})
			return
		}
		h.log.Error(c.Request.Context(), "user creation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
		return
	}

	h.log.Info(c.Request.Context(), "user registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Signin handles POST /auth/signin.
func (h *Handler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
		return
	}

	user, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCredentials})
		return
	}

	ok, err := h.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		h.log.Error(c.Request.Context(), "password verification failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidCredentials})
		return
	}

	tok, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error(c.Request.Context(), "token issuance failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
		return
	}

	h.setSessionCookie(c, tok)
	h.log.Info(c.Request.Context(), "user signed in", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Signout handles GET /auth/signout. Logout is always permitted: the cookie
// is cleared whether or not a valid token was presented, and no server-side
// state exists to clean up.
func (h *Handler) Signout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": msgSignedOut})
}

// Profile handles GET /auth/profile. The auth gate runs first, so the
// subject ID in the context has already been verified.
func (h *Handler) Profile(c *gin.Context) {
	userID := ginmw.UserID(c)

	user, err := h.store.GetByID(c.Request.Context(), userID)
	if err != nil {
		// A verified token pointing at a missing user means the store and
		// the signing secret disagree about who exists.
		h.log.Error(c.Request.Context(), "profile lookup failed", "user_id", userID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUnexpected})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.SessionCookieName,
		tok,
		int(h.tokens.TTL().Seconds()),
		"/",
		"",
		h.secureCookies,
		true, // HttpOnly: the token is never script-accessible
	)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.secureCookies, true)
}
