package common

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrProtocol   = errors.New("protocol violation")
)

// ValidationError is returned when an Order or Trade is constructed from
// malformed fields.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ProtocolError is returned when an order reaches intake already carrying an
// identifier. Only the engine assigns ids.
type ProtocolError struct {
	OrderID uint64
	Owner   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("order #%d from %q arrived with an assigned id", e.OrderID, e.Owner)
}

func (e *ProtocolError) Unwrap() error { return ErrProtocol }
