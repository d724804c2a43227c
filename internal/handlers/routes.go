package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/adhyans/go-jwt-auth/middleware"
	ginmw "github.com/adhyans/go-jwt-auth/middleware/gin"
)

// Mount registers the auth routes on the router. Only the profile route
// sits behind the gate: signup and signin must be reachable without a
// session, and signout is deliberately ungated.
func Mount(r gin.IRouter, h *Handler, verifier middleware.TokenVerifier) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
		auth.GET("/signout", h.Signout)
		auth.GET("/profile", ginmw.Authenticate(verifier, nil), h.Profile)
	}
}
