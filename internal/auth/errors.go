package auth

import "fmt"

// ErrorKind classifies acquisition failures. The kind decides the process
// exit code at the outermost entry point; nothing below main terminates the
// process.
type ErrorKind int

const (
	// KindConfig marks an unusable profile or unknown profile type.
	KindConfig ErrorKind = iota + 1
	// KindTransport marks a network-level failure.
	KindTransport
	// KindProtocol marks a non-success response from the authorization
	// server, including explicit device-flow denials.
	KindProtocol
	// KindDecode marks a response body that does not match the expected shape.
	KindDecode
	// KindTimeout marks an exhausted device-code polling budget.
	KindTimeout
)

// Error is a structured acquisition error. Status carries the HTTP status
// for protocol errors.
type Error struct {
	Kind   ErrorKind
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// ExitCode maps the error onto the exit-code contract: the HTTP status for
// protocol errors, 1 for transport failures, 2 for decode failures and
// polling timeouts, 3 for configuration errors.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindProtocol:
		if e.Status > 0 {
			return e.Status
		}
		return 1
	case KindDecode, KindTimeout:
		return 2
	case KindConfig:
		return 3
	default:
		return 1
	}
}

// NewConfigError builds a configuration error, used by profile resolution.
func NewConfigError(format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Msg: fmt.Sprintf(format, args...)}
}
