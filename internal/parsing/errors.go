package parsing

import "fmt"

// HTMLError represents a failure to turn an HTML document into text.
type HTMLError struct {
	Message string
	Cause   error
}

func (e *HTMLError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("html conversion failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("html conversion failed: %s", e.Message)
}

func (e *HTMLError) Unwrap() error {
	return e.Cause
}
