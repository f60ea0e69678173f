package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the engine reports.
type ErrorKind int

const (
	// ReferenceError: an operation names an ID that does not exist.
	ReferenceError ErrorKind = iota + 1
	// ConflictError: an operation would create a duplicate ID or membership.
	ConflictError
	// CapacityError: a placement would exceed an FPGA's capacity.
	CapacityError
	// ArgumentError: missing or malformed arguments.
	ArgumentError
	// IntegrityError: an internal invariant would be violated.
	IntegrityError
)

func (k ErrorKind) String() string {
	switch k {
	case ReferenceError:
		return "ReferenceError"
	case ConflictError:
		return "ConflictError"
	case CapacityError:
		return "CapacityError"
	case ArgumentError:
		return "ArgumentError"
	case IntegrityError:
		return "IntegrityError"
	default:
		return "Error"
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrReference = &Error{Kind: ReferenceError}
	ErrConflict  = &Error{Kind: ConflictError}
	ErrCapacity  = &Error{Kind: CapacityError}
	ErrArgument  = &Error{Kind: ArgumentError}
	ErrIntegrity = &Error{Kind: IntegrityError}
)

// Error is the error type returned by every model operation.
type Error struct {
	Kind   ErrorKind
	Op     string // operation, e.g. "MapGroupToFPGA"
	Entity string // entity type, e.g. "group"
	ID     string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	if e.Entity != "" || e.ID != "" {
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(e.Entity + " " + e.ID))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrCapacity)
// works regardless of operation and ID.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// NewArgumentError builds an ArgumentError outside the model, used by the
// command layer and file readers.
func NewArgumentError(op, format string, args ...any) error {
	return &Error{Kind: ArgumentError, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func missing(op, entity, id string) error {
	return &Error{Kind: ReferenceError, Op: op, Entity: entity, ID: id, Msg: "does not exist"}
}

func duplicate(op, entity, id string) error {
	return &Error{Kind: ConflictError, Op: op, Entity: entity, ID: id, Msg: "already exists"}
}

func conflict(op, entity, id, format string, args ...any) error {
	return &Error{Kind: ConflictError, Op: op, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func badArgument(op, entity, id, format string, args ...any) error {
	return &Error{Kind: ArgumentError, Op: op, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}

func overCapacity(op, entity, id string, cause error) error {
	return &Error{Kind: CapacityError, Op: op, Entity: entity, ID: id, Err: cause}
}

func integrity(op, entity, id, format string, args ...any) error {
	return &Error{Kind: IntegrityError, Op: op, Entity: entity, ID: id, Msg: fmt.Sprintf(format, args...)}
}
