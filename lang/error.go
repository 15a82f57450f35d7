package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// The first six kinds are the observable failures of the evaluation
// model. All of them abort the current evaluation immediately and
// propagate to the caller; none are retried or silently swallowed.
var (
	// ErrNameNotFound is returned when an identifier is absent from every
	// enclosing frame.
	ErrNameNotFound = NewError("name not found")

	// ErrUnboundLocal is returned when a name that is local to the current
	// frame is read before its binding assignment executes.
	ErrUnboundLocal = NewError("local name read before assignment")

	// ErrMissingArgument is returned when a required parameter is left
	// unfilled after positional, keyword, and default resolution.
	ErrMissingArgument = NewError("missing required argument")

	// ErrTooManyArguments is returned when more positional arguments are
	// supplied than parameters declared.
	ErrTooManyArguments = NewError("too many positional arguments")

	// ErrDuplicateArgument is returned when a keyword argument re-supplies
	// a parameter already bound positionally or by a prior keyword.
	ErrDuplicateArgument = NewError("duplicate argument")

	// ErrUnknownKeyword is returned when a keyword argument names a
	// parameter absent from the target's parameter list.
	ErrUnknownKeyword = NewError("unknown keyword argument")

	// ErrGlobalAfterBind is returned when a name is declared global after
	// it has already been written locally in the same frame.
	ErrGlobalAfterBind = NewError("global declaration after local binding")

	// ErrFunctionNotFound is returned when a call targets a name with no
	// function bound in any enclosing frame.
	ErrFunctionNotFound = NewError("function not found")

	// ErrNotCallable is returned when a call targets a value that is not
	// a function.
	ErrNotCallable = NewError("value is not callable")

	// ErrInvalidParams is returned when a parameter list violates its
	// structural invariants (duplicate names, or a defaulted parameter
	// followed by a non-defaulted one).
	ErrInvalidParams = NewError("invalid parameter list")

	// ErrInvalidExpr is returned when the reducer visits an expression
	// node it does not recognize.
	ErrInvalidExpr = NewError("invalid expression node")

	ErrParse       = NewError("parse error")
	ErrExprCompile = NewError("expression compilation failed")
	ErrExprRun     = NewError("expression evaluation failed")
	ErrBadScript   = NewError("malformed script")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel this error was derived
// from. Derived errors share the sentinel's message but carry their own
// attributes and wrapped cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}
