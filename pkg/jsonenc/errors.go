package jsonenc

import (
	"errors"
	"fmt"
)

var (
	ErrNotSerializable = errors.New("value is not JSON serializable")
	ErrTooDeep         = errors.New("value nesting exceeds maximum depth")
	ErrQueryFailed     = errors.New("failed to materialize query result")
)

// NotSerializableError identifies the value the encoder could not handle.
type NotSerializableError struct {
	Value any
}

func (e *NotSerializableError) Error() string {
	return fmt.Sprintf("%T value is not JSON serializable", e.Value)
}

func (e *NotSerializableError) Unwrap() error {
	return ErrNotSerializable
}
