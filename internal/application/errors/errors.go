// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates request or option validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// CompilationError indicates a compilation pass failed. The cause carries
// the domain error (unknown icon, collision, font build, ordering fault).
type CompilationError struct {
	Cause      error
	ConfigPath string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compilation of %s failed: %v", e.ConfigPath, e.Cause)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// NewCompilationError creates a new compilation error.
func NewCompilationError(configPath string, cause error) *CompilationError {
	return &CompilationError{
		ConfigPath: configPath,
		Cause:      cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
