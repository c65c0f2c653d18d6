package http

import (
	"context"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server exposing the entity recognition API
func NewServer(
	ctx context.Context,
	linkerUC interfaces.LinkerUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8000",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	doc, err := loadOpenAPIDoc(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load OpenAPI document")
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check and API description
	router.Get("/health", handleHealth)
	router.Get("/openapi.yaml", handleOpenAPI)

	// Recognition endpoints, with request shape checked against the OpenAPI doc
	entities := NewEntitiesHandler(linkerUC)
	router.Group(func(r chi.Router) {
		r.Use(oapimiddleware.OapiRequestValidator(doc))
		r.Post("/recognize-entities", entities.HandleRecognize)
		r.Post("/bulk-recognize-entities", entities.HandleBulkRecognize)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}

// loadOpenAPIDoc parses and validates the embedded OpenAPI document
func loadOpenAPIDoc(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}
