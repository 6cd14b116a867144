// Package events classifies raw Lambda payloads so the dispatcher can route them.
package events

import (
	"github.com/sqsrelay/sqsrelay/internal/constants"

	"github.com/tidwall/gjson"
)

const sqsEventSource = "aws:sqs"

// DetectEventType determines the kind of Lambda payload by probing the fields
// that identify each event shape, without decoding the whole document.
func DetectEventType(payload []byte) constants.EventType {
	if !gjson.ValidBytes(payload) {
		return constants.EventTypeUnknown
	}

	if gjson.GetBytes(payload, "Records.0.eventSource").String() == sqsEventSource {
		return constants.EventTypeSQS
	}

	// API Gateway v2 and Function URL requests
	if gjson.GetBytes(payload, "requestContext.http.method").Exists() {
		return constants.EventTypeHTTP
	}

	// API Gateway REST and ALB requests
	if gjson.GetBytes(payload, "httpMethod").Exists() &&
		(gjson.GetBytes(payload, "requestContext.requestId").Exists() ||
			gjson.GetBytes(payload, "requestContext.elb").Exists()) {
		return constants.EventTypeHTTP
	}

	return constants.EventTypeUnknown
}
