package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
)

// GenericFailureMessage is used when the shop API returns no usable message.
const GenericFailureMessage = "request failed"

// messageExprs locate the human-readable error in the various error shapes the
// shop API and its validation middleware produce.
var messageExprs = []string{
	"message",
	"error.message",
	"error",
	"errors[0].msg",
	"errors[0].message",
	"data.message",
}

// APIError is a non-2xx reply from the shop API.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// StatusCode returns the HTTP status of the reply.
func (e *APIError) StatusCode() int { return e.Status }

// ServerMessage returns the message the server sent, or the generic fallback.
func (e *APIError) ServerMessage() string { return e.Message }

// IsUnauthorized reports whether err is a 401/403 reply from the shop API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// MessageOf returns the server-provided message carried by err, if any.
func MessageOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: extractMessage(body),
	}
}

// extractMessage finds the first string message in a JSON error body.
// Plain-text bodies are used as-is when short.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return GenericFailureMessage
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		if len(trimmed) <= 200 && !strings.HasPrefix(trimmed, "<") {
			return trimmed
		}
		return GenericFailureMessage
	}

	for _, expr := range messageExprs {
		res, err := jmespath.Search(expr, doc)
		if err != nil {
			continue
		}
		if s, ok := res.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return GenericFailureMessage
}
