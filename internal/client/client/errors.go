package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	// Message is the server's "error" field, or the body itself when the
	// body is a bare JSON string.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, http.StatusText(e.Status))
}

// Payload is the server's reply as shown to admins: the message when one was
// extracted, otherwise the raw body text.
func (e *APIError) Payload() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(e.Body))
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Body: body}

	var obj struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if s, ok := obj.Error.(string); ok {
			e.Message = s
			return e
		}
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		e.Message = s
	}
	return e
}

// ServerMessage returns the server-provided error text carried by err, or ""
// when err did not come from a backend response.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// mapError wraps err with the sentinel matching its status, if any.
func mapError(apiErr *APIError) error {
	switch apiErr.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, apiErr)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %w", ErrUnavailable, apiErr)
	default:
		return apiErr
	}
}
