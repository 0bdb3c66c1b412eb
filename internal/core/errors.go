package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFrameOutOfRange is returned when a frame beyond the configured
	// budget is requested from a frame-indexed resource such as the rain
	// window. It signals a caller bug and is never retried.
	ErrFrameOutOfRange = errors.New("frame out of range")
)

// ConfigError describes a rejected construction parameter.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", ErrInvalidConfig, e.Message)
	}
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidConfig as well as any wrapped cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}
