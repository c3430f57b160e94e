package pkg

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Sentinel errors shared by every package in the module.
// Derived errors can be tested using errors.Is for reliable error checking.
var (
	// ErrUnsupported is the parent kind of every construct the dialect
	// refuses to evaluate: variable references, imports, unpacking,
	// computed mapping keys, multi-target assignment and anything outside
	// the literal grammar.
	ErrUnsupported = NewError("unsupported construct")

	// ErrTooDeep is returned when schema or namespace nesting exceeds the
	// configured ceiling.
	ErrTooDeep = NewError("configuration schema nesting too deep")

	// ErrSyntax is returned when input text is not well-formed.
	ErrSyntax = NewError("syntax error")

	// ErrUnrepresentable is returned when a value cannot be spelled in the
	// target format.
	ErrUnrepresentable = NewError("value has no literal representation")
)

// Position identifies a location in source text.
// Lines and columns are 1-based; the zero Position is unknown.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position refers to a location.
func (p Position) IsValid() bool { return p.Line > 0 }

// String returns "line L, column C".
func (p Position) String() string {
	if !p.IsValid() {
		return "unknown position"
	}

	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors created with [NewError] are sentinels. Every *Error derived from a
// sentinel with [Error.Wrap], [Error.With], or [Error.At] still matches that
// sentinel with errors.Is, and sentinels created with [Error.Kind] also
// match their parent.
type Error struct {
	msg    string
	err    error       // Wrapped error (for errors.Unwrap)
	attrs  []slog.Attr // Attributes for structured logging
	pos    Position
	origin *Error // Sentinel this error was derived from; nil for sentinels
	parent *Error // Broader kind; only set on sentinels
}

// NewError creates a new sentinel Error with a message.
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

// Kind creates a new sentinel Error that also matches the receiver's kind.
func (e *Error) Kind(msg string) *Error {
	return &Error{msg: msg, parent: e.sentinel()}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg> (<pos>): <err>" // base and wrapped error both set
	//   2. "<msg> (<pos>)"        // wrapped error is nil
	//   3. "<err>"                // base error message is empty
	//   4. ""                     // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		if e.pos.IsValid() {
			part = append(part, e.msg+" ("+e.pos.String()+")")
		} else {
			part = append(part, e.msg)
		}
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from, or any
// broader kind of that sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}

	for k := e.sentinel(); k != nil; k = k.parent {
		if k == t {
			return true
		}
	}

	return false
}

// Position returns the source position attached with [Error.At].
func (e *Error) Position() Position { return e.pos }

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.pos.IsValid() {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	c := e.derive()
	c.err = err

	return c
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	c := e.derive()
	c.attrs = newAttrs

	return c
}

// At attaches a source position to the error.
func (e *Error) At(pos Position) *Error {
	c := e.derive()
	c.pos = pos

	return c
}

// Attr returns the value of the first attribute with the given key.
func (e *Error) Attr(key string) (slog.Value, bool) {
	for _, a := range e.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}

	return slog.Value{}, false
}

func (e *Error) sentinel() *Error {
	if e.origin != nil {
		return e.origin
	}

	return e
}

func (e *Error) derive() *Error {
	return &Error{
		msg:    e.msg,
		err:    e.err,
		attrs:  e.attrs, // Share attrs
		pos:    e.pos,
		origin: e.sentinel(),
	}
}
