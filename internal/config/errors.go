package config

import "fmt"

// LoadError represents a failure to read or decode the configuration.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "(defaults)"
	}
	if e.Cause != nil {
		return fmt.Sprintf("config %s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("config %s: %s", where, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ValidationError reports one out-of-range configuration value.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
