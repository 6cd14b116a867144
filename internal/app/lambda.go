package app

import (
	"log/slog"
	"net/http"

	"github.com/sqsrelay/sqsrelay/internal/config"
	"github.com/sqsrelay/sqsrelay/internal/lambdaapi"
	"github.com/sqsrelay/sqsrelay/internal/server"

	"github.com/aws/aws-lambda-go/lambda"
)

// NewLambdaHandler builds the Lambda entry handler for relay.
// The HTTP router is attached only when cfg.HTTPEnabled is set; otherwise
// Function URL requests fall through to the forwarder and yield a 400 envelope.
func NewLambdaHandler(cfg *config.Config, relay server.Relay, log *slog.Logger) lambda.Handler {
	var httpHandler http.Handler
	if cfg.HTTPEnabled {
		log.Warn("HTTP routes enabled, Function URL callers can forward with the configured token")
		httpHandler = server.NewRouter(relay, log, cfg.AllowedOrigins).Handler()
	}

	return lambdaapi.NewHandler(relay, httpHandler, log)
}
