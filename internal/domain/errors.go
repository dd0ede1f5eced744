package domain

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidSplitAmount   = errors.New("split amount must not be negative")
	ErrEmptyDescription     = errors.New("description is required")
	ErrEmptyName            = errors.New("name is required")
	ErrEmptySplits          = errors.New("at least one split is required")
	ErrSplitMismatch        = errors.New("split amounts must sum up to the total amount")
	ErrInvalidDate          = errors.New("date must be today or later")
	ErrInvalidType          = errors.New("type must be income or expense")
	ErrCategoryKindMismatch = errors.New("category does not match transaction type")
)

// Store errors
var (
	ErrTransport  = errors.New("store request failed")
	ErrNoDataset  = errors.New("store returned no data")
	ErrEmptyDraft = errors.New("draft is empty")
)

// Form errors
var (
	ErrSplitIndex  = errors.New("split index out of range")
	ErrLastSplit   = errors.New("a transaction needs at least one split")
	ErrUnknownKind = errors.New("unknown category kind")
)

// ValidationError is a local, recoverable failure raised before anything is sent to the store.
type ValidationError struct {
	Field  string
	Err    error
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

// TransportError reports a failed call to the external store.
// StatusCode is 0 when the request never got a response.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	return e.Message
}

func (e *TransportError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrTransport, e.Err}
	}
	return []error{ErrTransport}
}

// NewTransportError builds a TransportError, falling back to a generic message when the
// store did not provide one.
func NewTransportError(op string, statusCode int, message, fallback string, cause error) *TransportError {
	if message == "" {
		message = fallback
	}
	return &TransportError{Op: op, StatusCode: statusCode, Message: message, Err: cause}
}

// String helps log lines carry the operation alongside the user-facing message.
func (e *TransportError) String() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}
