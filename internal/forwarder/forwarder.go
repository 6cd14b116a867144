// Package forwarder relays a queued message body to the upstream HTTP endpoint
// and maps the outcome to a response envelope.
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sqsrelay/sqsrelay/internal/constants"
	apperrors "github.com/sqsrelay/sqsrelay/internal/errors"
	"github.com/sqsrelay/sqsrelay/internal/logger"

	"github.com/aws/aws-lambda-go/events"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options holds the settings injected into a Forwarder.
type Options struct {
	// URL is the upstream endpoint. It is not validated.
	URL string
	// Token is placed verbatim after "Basic " in the Authorization header.
	Token string
	// FailOnUpstreamStatus maps upstream statuses >= 400 to a failed forward.
	// Off by default: the upstream status is not inspected.
	FailOnUpstreamStatus bool
}

// Forwarder relays one record per invocation. It is safe for concurrent use.
type Forwarder struct {
	opts   Options
	client Doer
	logger *slog.Logger
}

// New creates a Forwarder. A nil client falls back to NewHTTPClient with the
// default upstream timeout.
func New(opts Options, client Doer, log *slog.Logger) *Forwarder {
	if client == nil {
		client = NewHTTPClient(constants.DefaultUpstreamTimeout)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Forwarder{
		opts:   opts,
		client: client,
		logger: log,
	}
}

// NewHTTPClient returns the client used for upstream calls.
// A zero timeout leaves the call bounded only by the request context.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Handle forwards the first record of the event and always returns an envelope:
// 200 with the upstream reply, or 400 with the error text.
func (f *Forwarder) Handle(ctx context.Context, event *events.SQSEvent) *Response {
	reqLogger := logger.DeriveRequestLogger(ctx, f.logger)
	reqLogger.Info("forwarding message", "url", f.opts.URL)

	body, err := firstRecordBody(event)
	if err == nil {
		if len(event.Records) > 1 {
			reqLogger.Warn("event carries more than one record, only the first is forwarded",
				"records", len(event.Records))
		}
		reqLogger = reqLogger.With("messageID", event.Records[0].MessageId)

		var reply json.RawMessage
		reply, err = f.forward(ctx, body, reqLogger)
		if err == nil {
			return NewResponse(reply)
		}
	}

	reqLogger.Error("failed to forward message",
		"error", err,
		"error_code", apperrors.GetErrorCode(err),
		"error_details", apperrors.GetErrorDetails(err),
	)
	return ErrorResponse(err)
}

// Forward posts a JSON body to the upstream and returns its JSON reply.
func (f *Forwarder) Forward(ctx context.Context, body string) (json.RawMessage, error) {
	return f.forward(ctx, body, logger.DeriveRequestLogger(ctx, f.logger))
}

func (f *Forwarder) forward(ctx context.Context, body string, log *slog.Logger) (json.RawMessage, error) {
	payload, err := decodeBody(body)
	if err != nil {
		return nil, err
	}
	log.Info("decoded message body", "body", payload)

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.ErrInvalidBody(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.opts.URL, bytes.NewReader(encoded))
	if err != nil {
		return nil, apperrors.ErrUpstreamRequest("failed to create upstream request", err)
	}
	req.Header.Set(constants.AuthorizationHeader, constants.BasicAuthScheme+f.opts.Token)
	req.Header.Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	req.Header.Set(constants.UserAgentHeader, constants.UserAgent())

	log.Debug("sending upstream request", logger.GetDeadlineInfo(ctx)...)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.ErrUpstreamRequest("failed to reach upstream", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxUpstreamResponseBytes))
	if err != nil {
		return nil, apperrors.ErrUpstreamResponse("failed to read upstream response", err)
	}
	log.Info("upstream responded", "status", resp.StatusCode, "response", string(respBody))

	if f.opts.FailOnUpstreamStatus && resp.StatusCode >= http.StatusBadRequest {
		return nil, apperrors.ErrUpstreamStatus(resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, apperrors.ErrUpstreamResponse(
			"upstream response is not valid JSON",
			fmt.Errorf("status %d, %d bytes", resp.StatusCode, len(respBody)),
		)
	}

	return json.RawMessage(respBody), nil
}

func firstRecordBody(event *events.SQSEvent) (string, error) {
	if event == nil || len(event.Records) == 0 {
		return "", apperrors.ErrNoRecords()
	}
	return event.Records[0].Body, nil
}

// decodeBody parses the record body into a generic JSON value. Numbers are kept
// as json.Number so large integers survive the round trip unchanged. A JSON null
// is forwarded as the literal null payload.
func decodeBody(body string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, apperrors.ErrInvalidBody(err)
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, apperrors.ErrInvalidBody(errors.New("unexpected data after top-level value"))
	}

	return payload, nil
}
