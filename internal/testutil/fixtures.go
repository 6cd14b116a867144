// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// SQSEventBuilder provides a fluent interface for building test queue events.
type SQSEventBuilder struct {
	event *events.SQSEvent
}

// NewSQSEventBuilder creates a new SQSEventBuilder with no records.
func NewSQSEventBuilder() *SQSEventBuilder {
	return &SQSEventBuilder{event: &events.SQSEvent{}}
}

// WithRecord appends a record carrying body, with a generated message ID.
func (b *SQSEventBuilder) WithRecord(body string) *SQSEventBuilder {
	return b.WithMessage(fmt.Sprintf("msg-%d", len(b.event.Records)+1), body)
}

// WithMessage appends a record with an explicit message ID.
func (b *SQSEventBuilder) WithMessage(messageID, body string) *SQSEventBuilder {
	b.event.Records = append(b.event.Records, events.SQSMessage{
		MessageId:      messageID,
		Body:           body,
		EventSource:    "aws:sqs",
		EventSourceARN: "arn:aws:sqs:us-east-1:123456789012:sqsrelay-test",
		AWSRegion:      "us-east-1",
	})
	return b
}

// Build returns the constructed event.
func (b *SQSEventBuilder) Build() *events.SQSEvent {
	return b.event
}

// SQSEvent is a shortcut for an event with one record per body.
func SQSEvent(bodies ...string) *events.SQSEvent {
	b := NewSQSEventBuilder()
	for _, body := range bodies {
		b.WithRecord(body)
	}
	return b.Build()
}

// SilentLogger creates a logger that discards output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CaptureLogger creates a debug-level JSON logger writing into the returned buffer.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
