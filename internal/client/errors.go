package client

import (
	"fmt"
	"strings"
)

// HTTPError carries status and body for non-2xx responses
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 300))
}

// DecodeError is returned when a 2xx response body is not the expected JSON
type DecodeError struct {
	URL  string
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse JSON response from %s: %v body=%s", e.URL, e.Err, snippet(e.Body, 300))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
