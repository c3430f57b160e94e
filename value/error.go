package value

import (
	"log/slog"

	"github.com/ardnew/litcfg/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrImmutable  = pkg.NewError("value is immutable")
	ErrUnhashable = pkg.NewError("unhashable value")
	ErrInvalidKey = pkg.NewError("dictionary key must be int, float or str")
)

// ImmutableError is returned by every [Mutator] method.
// It matches [ErrImmutable] with errors.Is.
type ImmutableError struct {
	Type   string
	Method string
}

// Error implements the error interface.
func (e *ImmutableError) Error() string {
	return e.Type + " does not support '" + e.Method + "'"
}

// Unwrap returns [ErrImmutable].
func (e *ImmutableError) Unwrap() error { return ErrImmutable }

// LogValue implements slog.LogValuer.
func (e *ImmutableError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrImmutable.Error()),
		slog.String("type", e.Type),
		slog.String("method", e.Method),
	)
}

// Mutator is the mutation surface of the container values. Every method
// fails with an [*ImmutableError]; it exists so that code written against
// mutable collections gets a clear error instead of silently copying.
type Mutator interface {
	Append(v Value) error
	Put(key, v Value) error
	Delete(key Value) error
	Clear() error
}

type immutable string

func (t immutable) Append(Value) error     { return &ImmutableError{string(t), "append"} }
func (t immutable) Put(Value, Value) error { return &ImmutableError{string(t), "put"} }
func (t immutable) Delete(Value) error     { return &ImmutableError{string(t), "delete"} }
func (t immutable) Clear() error           { return &ImmutableError{string(t), "clear"} }
