// Package backend defines the error taxonomy shared by all capability
// adapters. Every adapter traps its own transport and protocol failures and
// returns a *Error; nothing propagates past an adapter boundary untyped.
package backend

import (
	"errors"
	"fmt"
)

// Kind classifies an adapter failure.
type Kind int

const (
	// KindConfiguration means the capability has no usable backend at all.
	KindConfiguration Kind = iota
	// KindTransport covers network and process I/O failures: connection
	// refused, non-success HTTP status, non-zero exit code.
	KindTransport
	// KindProtocol covers malformed or unexpected response shapes.
	KindProtocol
	// KindCanceled means the speech backend aborted recognition and
	// reported a cause. Distinct from no-match, which is not an error.
	KindCanceled
	// KindNoOutput means a synthesis subprocess exited cleanly but
	// produced no audio file.
	KindNoOutput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindCanceled:
		return "canceled"
	case KindNoOutput:
		return "no-output"
	default:
		return "unknown"
	}
}

// Error is a typed adapter failure. Op names the failing operation
// ("local chat", "remote stt"), Detail carries a human-readable cause.
// Detail must never contain credential material.
type Error struct {
	Kind   Kind
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("%s: %s failure: %s: %v", e.Op, e.Kind, e.Detail, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s failure: %s", e.Op, e.Kind, e.Detail)
	default:
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Configuration reports a capability with no configured backend.
func Configuration(op, detail string) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Detail: detail}
}

// Transport wraps a network or process I/O failure.
func Transport(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Err: err}
}

// Transportf reports a transport failure described by a format string.
func Transportf(op, format string, args ...any) *Error {
	return &Error{Kind: KindTransport, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// Protocol reports an unexpected response shape.
func Protocol(op, detail string) *Error {
	return &Error{Kind: KindProtocol, Op: op, Detail: detail}
}

// Canceled reports an aborted recognition carrying the backend's cause.
func Canceled(op, cause string) *Error {
	return &Error{Kind: KindCanceled, Op: op, Detail: cause}
}

// NoOutput reports a synthesis run that exited cleanly without audio.
func NoOutput(op, detail string) *Error {
	return &Error{Kind: KindNoOutput, Op: op, Detail: detail}
}

// IsKind reports whether err is (or wraps) a backend Error of kind k.
func IsKind(err error, k Kind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == k
	}
	return false
}
