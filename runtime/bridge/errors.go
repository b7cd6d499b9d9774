package bridge

import (
	"errors"
	"fmt"
	"net/http"
)

// FailureKind classifies bridge and backend failures into the small closed
// taxonomy exposed uniformly to chat clients.
type FailureKind string

const (
	// FailureValidation indicates the backend rejected the invocation as
	// invalid (backend validation failure).
	FailureValidation FailureKind = "validation"

	// FailureAccessDenied indicates the caller is not authorized to invoke
	// the agent.
	FailureAccessDenied FailureKind = "access_denied"

	// FailureNotFound indicates the configured agent or alias does not
	// exist.
	FailureNotFound FailureKind = "not_found"

	// FailureThrottled indicates the backend is rate limiting invocations.
	FailureThrottled FailureKind = "throttled"

	// FailureUnavailable indicates a transient backend outage.
	FailureUnavailable FailureKind = "unavailable"

	// FailureBadRequest indicates the inbound request body or messages were
	// malformed; no outbound call is attempted.
	FailureBadRequest FailureKind = "bad_request"

	// FailureConfig indicates the deployment configuration failed
	// validation before the call. Details stay in the logs; clients see a
	// generic internal error.
	FailureConfig FailureKind = "config"

	// FailureInternal is the fallback for unclassified failures.
	FailureInternal FailureKind = "internal"
)

// InvokeError carries a FailureKind and a free-text message across the
// bridge so the terminal event can be classified uniformly. The cause chain
// is preserved for logging; only the classified status reaches clients.
type InvokeError struct {
	kind    FailureKind
	message string
	cause   error
}

// NewInvokeError constructs an InvokeError. kind is required; cause may be
// nil but is recommended to preserve the original error chain.
func NewInvokeError(kind FailureKind, message string, cause error) *InvokeError {
	if kind == "" {
		kind = FailureInternal
	}
	return &InvokeError{kind: kind, message: message, cause: cause}
}

// Kind returns the failure classification.
func (e *InvokeError) Kind() FailureKind { return e.kind }

func (e *InvokeError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.kind, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.message)
}

// Unwrap returns the underlying cause to preserve the error chain.
func (e *InvokeError) Unwrap() error { return e.cause }

// AsInvokeError returns the first InvokeError in err's chain, if any.
func AsInvokeError(err error) (*InvokeError, bool) {
	var ie *InvokeError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// Classify maps a failure to its terminal client event. The mapping is
// closed: recognized kinds produce their fixed (status, message) pair and
// everything else, including pre-invocation failures without an InvokeError
// in the chain, falls back to a generic 500. Messages are fixed literals so
// no backend or deployment detail leaks to clients.
func Classify(err error) ErrorEvent {
	kind := FailureInternal
	if ie, ok := AsInvokeError(err); ok {
		kind = ie.Kind()
	}
	switch kind {
	case FailureValidation:
		return ErrorEvent{StatusCode: http.StatusBadRequest, StatusText: "Invalid agent configuration"}
	case FailureBadRequest:
		return ErrorEvent{StatusCode: http.StatusBadRequest, StatusText: "Invalid request payload"}
	case FailureAccessDenied:
		return ErrorEvent{StatusCode: http.StatusUnauthorized, StatusText: "Unauthorized access to agent"}
	case FailureNotFound:
		return ErrorEvent{StatusCode: http.StatusNotFound, StatusText: "Agent not found"}
	case FailureThrottled:
		return ErrorEvent{StatusCode: http.StatusTooManyRequests, StatusText: "Rate limit exceeded, please try again later"}
	case FailureUnavailable:
		return ErrorEvent{StatusCode: http.StatusServiceUnavailable, StatusText: "Agent service temporarily unavailable"}
	default:
		return ErrorEvent{StatusCode: http.StatusInternalServerError, StatusText: "Internal Server Error"}
	}
}
