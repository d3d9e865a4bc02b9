package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// ValidationError carries the field-to-message map produced by a validator
// so handlers can return structured field errors to the client.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "failed validation: " + strings.Join(parts, "; ")
}

// failedValidation wraps a validator's error map in a ValidationError.
func failedValidation(errorMap map[string]string) error {
	return &ValidationError{Fields: errorMap}
}
