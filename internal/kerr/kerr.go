// Package kerr classifies the errors this system raises at component
// boundaries into the five kinds the scheduling pipeline distinguishes:
// malformed input, violated entity invariants, solver failure, export
// I/O failure, and internal inconsistency. Callers higher up (the CLI,
// the HTTP API) switch on Kind to decide an exit code or status code;
// nothing inside the core ever recovers from one of these silently.
package kerr

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// Import marks malformed JSON, wrong types, missing keys, or an
	// unrecognised enum/time value encountered while reading a problem.
	Import Kind = iota
	// Domain marks an invariant violated while constructing an entity.
	Domain
	// Model marks a solver-library failure or non-optimal termination.
	Model
	// Export marks an I/O failure while writing a solution.
	Export
	// Internal marks an invariant violation found while decoding a
	// solver result into a solution — should never happen.
	Internal
)

func (k Kind) String() string {
	switch k {
	case Import:
		return "ImportError"
	case Domain:
		return "DomainError"
	case Model:
		return "ModelError"
	case Export:
		return "ExportError"
	case Internal:
		return "InternalError"
	default:
		return "Error"
	}
}

// Error is a classified error naming the offending entity.
type Error struct {
	Kind   Kind
	Entity string // e.g. a course id, student number, or shift name
	msg    string
	cause  error
}

func (e *Error) Error() string {
	msg := e.msg
	if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s", e.Entity, msg)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.cause }

func new(kind Kind, entity string, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Entity: entity, msg: fmt.Sprintf(format, args...), cause: cause}
}

// NewImportError builds an Import-classified error naming entity (may be empty).
func NewImportError(entity string, format string, args ...any) *Error {
	return new(Import, entity, nil, format, args...)
}

// WrapImportError wraps cause as an Import-classified error.
func WrapImportError(entity string, cause error, format string, args ...any) *Error {
	return new(Import, entity, cause, format, args...)
}

// NewDomainError builds a Domain-classified error naming the offending entity.
func NewDomainError(entity string, format string, args ...any) *Error {
	return new(Domain, entity, nil, format, args...)
}

// NewModelError builds a Model-classified error.
func NewModelError(format string, args ...any) *Error {
	return new(Model, "", nil, format, args...)
}

// WrapModelError wraps cause as a Model-classified error.
func WrapModelError(cause error, format string, args ...any) *Error {
	return new(Model, "", cause, format, args...)
}

// WrapExportError builds an Export-classified error wrapping cause.
func WrapExportError(cause error, format string, args ...any) *Error {
	return new(Export, "", cause, format, args...)
}

// NewInternalError builds an Internal-classified error.
func NewInternalError(format string, args ...any) *Error {
	return new(Internal, "", nil, format, args...)
}

// Is reports whether err is a classified *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
