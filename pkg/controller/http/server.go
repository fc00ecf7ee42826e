package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/m-mizutani/docfront/pkg/domain/interfaces"
	"github.com/m-mizutani/docfront/pkg/domain/model"
)

// config holds internal HTTP server configuration
type config struct {
	addr         string
	page         model.PageContext
	cacheControl string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithPageContext sets the context used to render the landing page
func WithPageContext(page model.PageContext) Option {
	return func(c *config) {
		c.page = page
	}
}

// WithCacheControl sets the Cache-Control header of page responses
func WithCacheControl(value string) Option {
	return func(c *config) {
		c.cacheControl = value
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	pageUC interfaces.PageUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:         "localhost:8080",
		cacheControl: "no-cache",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(middleware.GetHead)

	// Health check
	router.Get("/health", handleHealth)

	// Landing page
	pageHandler := NewPageHandler(pageUC, cfg.page, cfg.cacheControl)
	router.Get("/", pageHandler.Handle)
	router.Get("/index.html", pageHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
