package oerror

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError through errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// SimError is a generic error raised by the simulation packages.
type SimError struct {
	Err string
}

// New returns a SimError with a formatted message.
func New(format string, args ...any) *SimError {
	return &SimError{Err: fmt.Sprintf(format, args...)}
}

func (e *SimError) Error() string {
	return e.Err
}

// ConfigurationError is returned when a component is initialized with a configuration
// it cannot run with. It is only ever surfaced at initialization, never per tick.
type ConfigurationError struct {
	// Component is the component that rejected the configuration, e.g. "wave".
	Component string
	// Field is the offending configuration field.
	Field  string
	Reason string
}

// Config returns a ConfigurationError for the given component and field.
func Config(component, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Component: component, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Component, e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// IsConfiguration reports whether err contains a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
