package services

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when a query is blank. Callers suppress it locally
// instead of surfacing it as a failure.
var ErrEmptyInput = errors.New("empty query")

// NetworkError reports a transport failure, a timeout or a non-success status
// from an upstream API.
type NetworkError struct {
	Op  string
	Err error
}

// NewNetworkError wraps err as a NetworkError for the given operation
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err}
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError reports a response body that could not be parsed.
type DecodeError struct {
	Op  string
	Err error
}

// NewDecodeError wraps err as a DecodeError for the given operation
func NewDecodeError(op string, err error) *DecodeError {
	return &DecodeError{Op: op, Err: err}
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNetworkError reports whether err is or wraps a NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsDecodeError reports whether err is or wraps a DecodeError
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}
