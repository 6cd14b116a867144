package forwarder

import (
	"encoding/json"
	"net/http"

	"github.com/sqsrelay/sqsrelay/internal/constants"
)

// Response is the HTTP-shaped envelope returned to the Lambda runtime.
// Body holds either the upstream's JSON reply or the error text as a JSON string.
type Response struct {
	Headers    map[string]string `json:"headers"`
	Body       json.RawMessage   `json:"body"`
	StatusCode int               `json:"statusCode"`
}

// NewResponse wraps a successful upstream reply.
func NewResponse(body json.RawMessage) *Response {
	return &Response{
		Headers:    jsonHeaders(),
		Body:       body,
		StatusCode: http.StatusOK,
	}
}

// ErrorResponse turns any forwarding failure into a 400 envelope.
func ErrorResponse(err error) *Response {
	// Marshaling a string cannot fail.
	body, _ := json.Marshal(err.Error())
	return &Response{
		Headers:    jsonHeaders(),
		Body:       body,
		StatusCode: http.StatusBadRequest,
	}
}

// OK reports whether the envelope carries an upstream reply.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

func jsonHeaders() map[string]string {
	return map[string]string{constants.ContentTypeHeader: constants.ContentTypeJSON}
}
