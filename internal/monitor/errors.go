package monitor

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned by remote clients when the monitoring service refused
// a call. Errors holds every structured message the service sent back.
type APIError struct {
	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int
	// Errors are the messages from the response body.
	Errors []string
	// Err is the underlying transport or client error.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var b strings.Builder
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "status %d", e.StatusCode)
	} else {
		b.WriteString("request failed")
	}
	if len(e.Errors) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Errors, "; "))
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the service throttled the call.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Messages returns the structured errors, falling back to the error text when
// the service did not send any.
func (e *APIError) Messages() []string {
	if len(e.Errors) > 0 {
		return e.Errors
	}
	if e.Err != nil {
		return []string{e.Err.Error()}
	}
	return []string{e.Error()}
}
