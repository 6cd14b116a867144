// Package server exposes the forwarder over HTTP. The same router serves Lambda
// Function URL requests and the local development server.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sqsrelay/sqsrelay/internal/constants"
	"github.com/sqsrelay/sqsrelay/internal/forwarder"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Relay forwards a queue event and returns the response envelope.
type Relay interface {
	Handle(ctx context.Context, event *events.SQSEvent) *forwarder.Response
}

// Router wraps a chi router configured with the forwarding routes.
type Router struct {
	router *chi.Mux
	relay  Relay
	logger *slog.Logger
}

// NewRouter creates a new chi router with routes configured.
// allowedOrigins configures CORS for browser callers of the public function URL.
func NewRouter(relay Relay, log *slog.Logger, allowedOrigins []string) *Router {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	router := &Router{
		router: r,
		relay:  relay,
		logger: log,
	}

	r.Use(router.requestIDMiddleware)
	r.Use(router.requestLoggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(newCORS(allowedOrigins).Handler)

	r.Get("/health", router.handleHealth)
	r.Post("/", router.handleForward)
	r.Post("/invoke", router.handleInvoke)

	return router
}

func newCORS(allowedOrigins []string) *cors.Cors {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{constants.ContentTypeHeader},
		ExposedHeaders: []string{constants.RequestIDHeader},
		MaxAge:         constants.CORSMaxAge,
	})
}

// ServeHTTP implements http.Handler for use with chi router
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Handler returns an http.Handler for the router
func (r *Router) Handler() http.Handler {
	return r.router
}
