// Command server runs the session-based JWT authentication service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adhyans/go-jwt-auth/internal/config"
	"github.com/adhyans/go-jwt-auth/internal/handlers"
	"github.com/adhyans/go-jwt-auth/internal/logging"
	"github.com/adhyans/go-jwt-auth/password"
	"github.com/adhyans/go-jwt-auth/store"
	"github.com/adhyans/go-jwt-auth/store/memory"
	"github.com/adhyans/go-jwt-auth/token"
)

func main() {
	log := logging.Default()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "failed to load config", "err", err)
		os.Exit(1)
	}

	tokens, err := token.New(&token.Config{
		Secret: cfg.JWTSecret,
		TTL:    cfg.TokenTTL,
	})
	if err != nil {
		// Missing secret: refuse to start rather than fail per-request.
		log.Error(ctx, "failed to create token service", "err", err)
		os.Exit(1)
	}

	hasher := newHasher(cfg)

	users := memory.New()
	defer users.Close()

	if cfg.SeedDemoUsers {
		if err := seedDemoUsers(ctx, users, hasher); err != nil {
			log.Error(ctx, "failed to seed demo users", "err", err)
			os.Exit(1)
		}
		log.Info(ctx, "seeded demo users", "accounts", "alice@x.com, admin@x.com")
	}

	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := handlers.New(users, hasher, tokens, log, cfg.IsRelease())
	handlers.Mount(router, h, tokens)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info(ctx, "starting server", "addr", srv.Addr, "mode", cfg.GinMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "forced shutdown", "err", err)
		os.Exit(1)
	}
	log.Info(ctx, "server exited")
}

// newHasher selects the password hashing algorithm from configuration.
func newHasher(cfg *config.Config) password.Hasher {
	if cfg.PasswordHasher == config.HasherArgon2 {
		return password.NewArgon2Hasher(nil)
	}
	return password.NewBcryptHasher(&password.BcryptConfig{Cost: cfg.BcryptCost})
}

// seedDemoUsers registers the fixed demo accounts. This stands in for a
// pre-populated database in local development.
func seedDemoUsers(ctx context.Context, users store.UserStore, hasher password.Hasher) error {
	demo := []struct {
		username string
		email    string
		pw       string
		role     store.Role
	}{
		{"alice", "alice@x.com", "pw123", store.RoleUser},
		{"admin", "admin@x.com", "admin123", store.RoleAdmin},
	}

	for _, d := range demo {
		hash, err := hasher.Hash(d.pw)
		if err != nil {
			return err
		}
		err = users.Create(ctx, &store.User{
			Username:     d.username,
			Email:        d.email,
			PasswordHash: hash,
			Role:         d.role,
		})
		if err != nil && !errors.Is(err, store.ErrEmailTaken) {
			return err
		}
	}
	return nil
}
