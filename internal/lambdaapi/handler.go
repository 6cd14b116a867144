// Package lambdaapi provides the Lambda entry handler. Queue events are passed to
// the forwarder directly; Function URL requests are adapted to the HTTP router
// through algnhsa.
package lambdaapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sqsrelay/sqsrelay/internal/constants"
	"github.com/sqsrelay/sqsrelay/internal/events"
	"github.com/sqsrelay/sqsrelay/internal/logger"
	"github.com/sqsrelay/sqsrelay/internal/server"

	"github.com/akrylysov/algnhsa"
	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// Handler dispatches raw Lambda payloads by event type.
type Handler struct {
	relay  server.Relay
	http   lambda.Handler
	logger *slog.Logger
}

// NewHandler creates a Lambda handler. httpHandler may be nil when the function
// is only ever triggered by a queue.
func NewHandler(relay server.Relay, httpHandler http.Handler, log *slog.Logger) lambda.Handler {
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{relay: relay, logger: log}
	if httpHandler != nil {
		h.http = algnhsa.New(httpHandler, nil)
	}

	return h
}

// Invoke implements lambda.Handler.
// It never returns an error for a queue event so the runtime treats the message as consumed.
func (h *Handler) Invoke(ctx context.Context, payload []byte) ([]byte, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, h.logger)
	eventType := events.DetectEventType(payload)

	logArgs := []any{"event_type", eventType.String()}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("received lambda event", logArgs...)

	if eventType == constants.EventTypeHTTP && h.http != nil {
		return h.http.Invoke(ctx, payload)
	}

	var event awsevents.SQSEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		reqLogger.Warn("payload is not an SQS event", "error", err)
	}

	return json.Marshal(h.relay.Handle(ctx, &event))
}
