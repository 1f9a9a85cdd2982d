package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the gateway could not be reached or no complete
	// response was received.
	ErrNetwork = errors.New("network error")

	// ErrMissingToken means a successful sign-in response carried no token.
	ErrMissingToken = errors.New("sign-in response has no token")
)

// RequestError is a rejection reported by the backend (non-2xx status).
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return e.Message
}

// NewRequestError builds a RequestError from a non-2xx response, taking the
// message from a JSON body of the form {"message": "..."} when present.
func NewRequestError(statusCode int, body []byte) *RequestError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Message == "" {
		return &RequestError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("request failed with status %d", statusCode),
		}
	}
	return &RequestError{StatusCode: statusCode, Message: payload.Message}
}
