package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openblog/blog-api/internal/auth"
	"github.com/openblog/blog-api/internal/config"
	"github.com/openblog/blog-api/internal/http/handlers"
	"github.com/openblog/blog-api/internal/middleware"
	"github.com/openblog/blog-api/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, log *zap.Logger) *Server {
	if cfg.IsProduction() || cfg.IsTest() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := NewRouter(cfg, store, log)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// NewRouter builds the gin engine with all middleware and routes attached.
// Split out from New so handler tests can drive it through httptest.
func NewRouter(cfg config.Config, store storage.Store, log *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORS(cfg.CORSOrigins, !cfg.IsProduction()))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.NewRateLimiter(60, time.Minute).Handler())

	tokens := auth.NewTokenManager(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)

	handlers.NewHealthHandler(time.Now()).Register(engine)

	v1 := engine.Group("/api/v1")
	v1.GET("/", handlers.RootHandler)

	authHandler := handlers.NewAuthHandler(store, tokens, cfg, log)
	authHandler.Register(v1.Group("/auth"))

	users := v1.Group("/users")
	users.Use(middleware.RequireAuth(tokens, log))
	handlers.NewUserHandler(store, log).Register(users)

	return engine
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
