package rowmap

import (
	"errors"
	"fmt"
)

// ErrConversion is matched by every *FieldError.
var ErrConversion = errors.New("rowmap: conversion failed")

// ErrNotStruct is returned when a mapper is requested for a non-struct type.
var ErrNotStruct = errors.New("rowmap: type is not a struct")

// FieldError reports a value that could not be converted to a property's type.
type FieldError struct {
	// Type is the name of the target type.
	Type string
	// Property is the property selector, e.g. "Person.ID".
	Property string
	// Value is the offending value.
	Value any
	// Err is the underlying conversion error.
	Err error
}

// NewFieldError creates a FieldError.
func NewFieldError(typeName, property string, value any, err error) *FieldError {
	return &FieldError{Type: typeName, Property: property, Value: value, Err: err}
}

// Error implements error.
func (e *FieldError) Error() string {
	return fmt.Sprintf("rowmap: %s.%s: cannot assign %T(%v): %v", e.Type, e.Property, e.Value, e.Value, e.Err)
}

// Unwrap exposes ErrConversion and the underlying error.
func (e *FieldError) Unwrap() []error {
	return []error{ErrConversion, e.Err}
}
