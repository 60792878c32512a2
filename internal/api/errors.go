package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure for the calling screen
type Kind int

const (
	// KindTransport is no network, DNS failure, or timeout
	KindTransport Kind = iota
	// KindAuthRequired is a 401; observing it clears the shared token
	KindAuthRequired
	// KindForbidden is a 403, insufficient role
	KindForbidden
	// KindValidation is any other 4xx carrying a server message
	KindValidation
	// KindServer is a 5xx
	KindServer
	// KindPrecondition is a local rejection issued before any network call
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport_failure"
	case KindAuthRequired:
		return "authentication_required"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation_rejected"
	case KindServer:
		return "server_fault"
	case KindPrecondition:
		return "local_precondition_unmet"
	}
	return "unknown"
}

// Error is the failure surfaced by every client operation. Message is
// suitable for direct display to the user.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from an error chain. Non-API errors
// report as transport failures.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindTransport
}
