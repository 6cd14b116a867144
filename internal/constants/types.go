package constants

// Environment represents the execution environment (e.g., CLI, Lambda).
type Environment string

// Environment types for logger configuration.
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// EventType represents the kind of payload delivered to the Lambda function.
type EventType int

const (
	// EventTypeUnknown is any payload that could not be classified.
	EventTypeUnknown EventType = iota
	// EventTypeSQS is a queue-delivery event.
	EventTypeSQS
	// EventTypeHTTP is an API Gateway, ALB or Function URL request.
	EventTypeHTTP
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeSQS:
		return "SQS"
	case EventTypeHTTP:
		return "HTTP"
	default:
		return "Unknown"
	}
}
