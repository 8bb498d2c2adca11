// Package errors provides structured error types for banter.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindConfig
	KindTransport
	KindProtocol
	KindMalformed
	KindTimeout
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindTransport:
		return "transport failure"
	case KindProtocol:
		return "protocol failure"
	case KindMalformed:
		return "malformed response"
	case KindTimeout:
		return "timeout"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for banter.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
	Status  int    // HTTP status code, when the failure came from a response
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// StatusCode returns the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Completion errors
func CompletionTransport(provider string, err error) error {
	return E(Op("completion.Complete"), KindTransport, fmt.Sprintf("request to %s failed", provider), err)
}

func CompletionStatus(provider string, status int, err error) error {
	e := E(Op("completion.Complete"), KindProtocol, fmt.Sprintf("%s returned status %d", provider, status), err).(*Error)
	e.Status = status
	return e
}

func CompletionMalformed(provider string, err error) error {
	return E(Op("completion.Complete"), KindMalformed, fmt.Sprintf("undecodable response from %s", provider), err)
}

func CompletionTimeout(provider string, err error) error {
	return E(Op("completion.Complete"), KindTimeout, fmt.Sprintf("request to %s timed out", provider), err)
}

func CompletionCanceled(provider string, err error) error {
	return E(Op("completion.Complete"), KindCanceled, fmt.Sprintf("request to %s canceled", provider), err)
}

// Message errors
func MessageNotFound(id string) error {
	return E(Op("chat.Edit"), KindNotFound, fmt.Sprintf("message %s not found", id))
}

func MessageNotEditable(id string) error {
	return E(Op("chat.Edit"), KindInvalid, fmt.Sprintf("message %s is not a user message", id))
}

func MessageNotEditing(id string) error {
	return E(Op("chat.SaveEdit"), KindInvalid, fmt.Sprintf("message %s is not being edited", id))
}

// Config errors
func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindConfig, reason)
}

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

// Store errors
func StoreFailed(op string, key string, err error) error {
	return E(Op("store."+op), KindIO, fmt.Sprintf("key %s", key), err)
}
