package epdapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingBaseURL is returned before any request is attempted when the
// client was built without a backend base URL.
var ErrMissingBaseURL = errors.New("epd api base url is not configured")

// TransportError means the request could not be sent or the response could not be read.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx answer from the backend. Message is the text extracted
// from the error envelope, or a generic status message when the body was not a
// usable envelope.
type HTTPError struct {
	Status  int
	Message string
	Kind    string
}

func (e *HTTPError) Error() string { return e.Message }

// DecodeError means a success status carried a body that was not valid JSON
// for the expected shape.
type DecodeError struct {
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("non-JSON response from %s (status %d): %v", e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// errorEnvelope is the backend's standard error body.
type errorEnvelope struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
}

// parseHTTPError turns a non-2xx body into an *HTTPError. The message field may
// be a single string or a list of validation strings.
func parseHTTPError(status int, body []byte) *HTTPError {
	generic := &HTTPError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return generic
	}

	var env errorEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return generic
	}
	generic.Kind = env.Error

	message, ok := decodeMessage(env.Message)
	if !ok || message == "" {
		if env.Error != "" {
			generic.Message = env.Error
		}
		return generic
	}

	return &HTTPError{Status: status, Message: message, Kind: env.Error}
}

func decodeMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, true
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, ", "), true
	}

	return "", false
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// IsConflict reports whether err is a 409 from the backend, e.g. a duplicate product code.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == status
}

// Message returns the text that should be shown to a user for err.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return "the EPD backend could not be reached"
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return "the EPD backend sent a malformed response"
	}

	if errors.Is(err, ErrMissingBaseURL) {
		return "the EPD backend URL is not configured"
	}

	return err.Error()
}
