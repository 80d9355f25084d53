package upstream

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StatusError is returned when the social API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	StatusText string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API Error: %d %s", e.StatusCode, e.StatusText)
}

// TransportError covers everything that prevented a usable response:
// network failures, timeouts, unreadable or malformed bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ValidationError reports a request parameter that was missing or rejected
// before anything was sent upstream.
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// statusText extracts the reason phrase from resp.Status ("503 Service
// Unavailable"), falling back to the canonical text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
