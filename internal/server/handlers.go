package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/sqsrelay/sqsrelay/internal/constants"
	apperrors "github.com/sqsrelay/sqsrelay/internal/errors"
	"github.com/sqsrelay/sqsrelay/internal/forwarder"
	"github.com/sqsrelay/sqsrelay/internal/logger"

	"github.com/aws/aws-lambda-go/events"
)

// ErrorResponse is the body written when a request cannot reach the forwarder.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// handleHealth returns a simple health check response
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: *constants.GetVersion(),
	})
}

// handleForward treats the raw request body as a single queued record and
// answers with the envelope's status code, headers and body.
func (r *Router) handleForward(w http.ResponseWriter, req *http.Request) {
	body, ok := readBody(w, req)
	if !ok {
		return
	}

	event := &events.SQSEvent{
		Records: []events.SQSMessage{{
			MessageId: logger.GetRequestID(req.Context()),
			Body:      string(body),
		}},
	}

	writeEnvelope(w, r.relay.Handle(req.Context(), event))
}

// handleInvoke accepts a full SQS event, as the Lambda runtime would deliver it,
// and answers with the complete envelope.
func (r *Router) handleInvoke(w http.ResponseWriter, req *http.Request) {
	body, ok := readBody(w, req)
	if !ok {
		return
	}

	var event events.SQSEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeErrorResponse(w, apperrors.ErrBadRequest("invalid SQS event", err))
		return
	}

	writeJSON(w, http.StatusOK, r.relay.Handle(req.Context(), &event))
}

func readBody(w http.ResponseWriter, req *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, req.Body, constants.MaxRequestBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErrorResponse(w, apperrors.ErrPayloadTooLarge(err))
			return nil, false
		}
		writeErrorResponse(w, apperrors.ErrBadRequest("failed to read request body", err))
		return nil, false
	}
	return body, true
}

func writeEnvelope(w http.ResponseWriter, resp *forwarder.Response) {
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorResponse writes err with the status, message and cause carried by an AppError.
func writeErrorResponse(w http.ResponseWriter, err error) {
	writeJSON(w, apperrors.GetStatusCode(err), ErrorResponse{
		Error:   apperrors.GetErrorMessage(err),
		Details: apperrors.GetErrorDetails(err),
	})
}
