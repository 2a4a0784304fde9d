package billing

import "fmt"

// ErrorKind classifies API failures for callers that need to tell
// transport trouble apart from upstream application errors.
type ErrorKind string

const (
	// KindTransport covers connection, timeout and TLS failures.
	KindTransport ErrorKind = "transport"
	// KindProtocol covers non-JSON or malformed response bodies.
	KindProtocol ErrorKind = "protocol"
	// KindApplication covers HTTP >= 400 and JSON error members.
	KindApplication ErrorKind = "application"
	// KindExhausted means every method alias failed.
	KindExhausted ErrorKind = "exhausted"
	// KindNoMethods means the caller supplied an empty alias list.
	KindNoMethods ErrorKind = "no_methods"
)

// APIError is the failure type for one logical API call.
type APIError struct {
	Kind       ErrorKind
	Scope      Scope
	Method     string
	StatusCode int
	Message    string
	cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s/%s: %s (status %d)", e.Scope, e.Method, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s/%s: %s", e.Scope, e.Method, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

func newAPIError(kind ErrorKind, scope Scope, method, message string, status int, cause error) *APIError {
	return &APIError{
		Kind:       kind,
		Scope:      scope,
		Method:     method,
		StatusCode: status,
		Message:    message,
		cause:      cause,
	}
}
