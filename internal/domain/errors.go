package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput matches every InvalidInputError via errors.Is.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownRegion matches every UnknownRegionError via errors.Is.
	ErrUnknownRegion = errors.New("unknown region")
)

// InvalidInputError reports an out-of-range numeric or structural input.
type InvalidInputError struct {
	Field   string
	Value   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s (%s): %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError, formatting value with %v.
func NewInvalidInput(field string, value any, message string) *InvalidInputError {
	v := ""
	if value != nil {
		v = fmt.Sprintf("%v", value)
	}
	return &InvalidInputError{Field: field, Value: v, Message: message}
}

// UnknownRegionError is returned when a region name is not one of the
// supported administrative regions.
type UnknownRegionError struct {
	Region string
}

func (e *UnknownRegionError) Error() string {
	return fmt.Sprintf("unknown region %q", e.Region)
}

func (e *UnknownRegionError) Is(target error) bool {
	return target == ErrUnknownRegion
}

// CalculationError adds the failing operation to an underlying error.
type CalculationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CalculationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CalculationError) Unwrap() error {
	return e.Cause
}
