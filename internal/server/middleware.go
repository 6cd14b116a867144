package server

import (
	"net/http"
	"time"

	"github.com/sqsrelay/sqsrelay/internal/constants"
	loggerPkg "github.com/sqsrelay/sqsrelay/internal/logger"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// requestIDMiddleware extracts the request ID from the context (if present) or generates a random one.
// Priority: 1) Existing request ID in context, 2) Lambda request ID, 3) Generated UUID.
func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := loggerPkg.GetRequestID(req.Context())

		if requestID == "" {
			if lc, ok := lambdacontext.FromContext(req.Context()); ok && lc.AwsRequestID != "" {
				requestID = lc.AwsRequestID
			}
		}

		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(constants.RequestIDHeader, requestID)
		ctx := loggerPkg.WithRequestID(req.Context(), requestID)

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// requestLoggingMiddleware logs incoming requests and their responses
func (r *Router) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log := loggerPkg.DeriveRequestLogger(req.Context(), r.logger)
		start := time.Now()

		log.Debug("processing incoming request", "request", map[string]string{
			"method":     req.Method,
			"path":       req.URL.Path,
			"remoteAddr": req.RemoteAddr,
		})

		wrapped := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(wrapped, req)

		log.Info("response sent", "response", map[string]any{
			"status":   wrapped.Status(),
			"bytes":    wrapped.BytesWritten(),
			"duration": time.Since(start).String(),
		})
	})
}
