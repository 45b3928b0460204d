// ABOUTME: Typed error kinds for the remote API layer.
// ABOUTME: Maps transport and HTTP failures into matchable error values.
package api

import (
	"fmt"
	"time"
)

// Kind classifies a failure from the remote API layer.
type Kind int

const (
	// KindInvalidInput marks malformed ids or usernames rejected before
	// any call is attempted.
	KindInvalidInput Kind = iota
	// KindNotFound marks a resolvable entity that does not exist.
	KindNotFound
	// KindUnauthorized marks an invalid credential.
	KindUnauthorized
	// KindForbidden marks a credential lacking required access.
	KindForbidden
	// KindRateLimited marks an exhausted quota; ResetAt carries the
	// reset time when the API reported one.
	KindRateLimited
	// KindNetworkFailure marks transport-level failures including
	// timeouts and unexpected status codes.
	KindNetworkFailure
	// KindMalformedResponse marks a payload that did not parse as
	// expected or was missing required fields.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate limited"
	case KindNetworkFailure:
		return "network failure"
	case KindMalformedResponse:
		return "malformed response"
	}
	return "unknown"
}

// Error is a typed failure surfaced by the client and orchestrator.
// The command layer matches on Kind with errors.As to pick exit
// messaging; nothing in the core catches or downgrades these.
type Error struct {
	Kind    Kind
	Status  int       // HTTP status when applicable, else 0
	Msg     string    // human-readable detail
	ResetAt time.Time // rate-limit reset, KindRateLimited only
	Err     error     // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds a typed error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
