package placement

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAuthExpired marks a rejected credential. Callers wipe the stored
// session and return to the login surface; no other recovery path exists.
var ErrAuthExpired = errors.New("placement: authentication expired")

// genericFailure is shown when the server supplies no error message.
const genericFailure = "Request failed"

// APIError is any non-2xx response from the backend. Message carries the
// server-supplied `error` field when present, a generic fallback otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("placement: %s (status %d)", e.Message, e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrAuthExpired) catch rejected credentials.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return nil
}

// UserMessage extracts the text to surface in a notification: the server
// message for an APIError, the generic fallback for anything else
// (transport failures are treated identically to request failures).
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericFailure
}

type errorBody struct {
	Error string `json:"error"`
}

func decodeError(status int, body []byte) error {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && strings.TrimSpace(parsed.Error) != "" {
		return &APIError{StatusCode: status, Message: strings.TrimSpace(parsed.Error)}
	}
	return &APIError{StatusCode: status, Message: genericFailure}
}
