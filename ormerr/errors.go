// Package ormerr defines the structured error surface shared by every CORE
// package (relation, query, builderir, organizer, sqlbuilder).
//
// The CORE never retries, logs, or swallows errors: every failure is
// returned to the caller as a single *Error carrying a stable Kind and a
// human-readable message naming the offending path or table.
package ormerr

import (
	"errors"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Kind is a stable identifier for a CORE failure mode.
type Kind string

const (
	// UnknownSchema: a table config references an IDL type name not
	// found in the descriptor pool.
	UnknownSchema Kind = "UnknownSchema"
	// UnknownPath: a path fails to resolve in the registry.
	UnknownPath Kind = "UnknownPath"
	// UnknownPathSegment: a name-based path fragment is not registered
	// under its prefix.
	UnknownPathSegment Kind = "UnknownPathSegment"
	// UnknownIndex: an out-of-range index was used on a Path.
	UnknownIndex Kind = "UnknownIndex"
	// DuplicateRegistration: two roots share a table number or
	// snake_case name.
	DuplicateRegistration Kind = "DuplicateRegistration"
	// InvalidArity: an expression's operand count violates the
	// operator's contract at emission time.
	InvalidArity Kind = "InvalidArity"
	// UnknownOperator: an expression carries a discriminator unknown
	// to the builder.
	UnknownOperator Kind = "UnknownOperator"
	// UnsupportedDDL: ALTER with an undefined alteration kind.
	UnsupportedDDL Kind = "UnsupportedDDL"
	// MalformedQueryEnvelope: decoding failed due to bad indices,
	// unknown discriminators, or arity violations found during decode.
	MalformedQueryEnvelope Kind = "MalformedQueryEnvelope"
	// LoadFailure: configuration ingestion failed (file open, syntax).
	LoadFailure Kind = "LoadFailure"
)

// Error is the CORE's single structured error value.
type Error struct {
	Kind Kind
	// Subject is the offending path, table name, or operator, included
	// verbatim in Error().
	Subject string
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Subject)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is allows errors.Is(err, ormerr.New(kind, ...)) style kind checks when
// the caller doesn't need the subject.
func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.Kind == e.Kind
	}
	return false
}

// New builds a *Error with the given kind, message and optional subject.
func New(kind Kind, subject, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a *Error that unwraps to err.
func Wrap(kind Kind, subject string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// KindOf reports the Kind of err, or "" if err is not (or does not wrap)
// an *Error.
func KindOf(err error) Kind {
	var o *Error
	if errors.As(err, &o) {
		return o.Kind
	}
	return ""
}

// Aggregate folds multiple CORE errors (e.g. several InvalidArity
// violations found while validating one query tree) into a single error,
// or nil if errs is empty or contains only nils.
func Aggregate(errs ...error) error {
	var merr *multierror.Error
	for _, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if merr == nil {
		return nil
	}
	return merr.ErrorOrNil()
}
