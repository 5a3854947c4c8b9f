package matcher

import (
	"fmt"

	"github.com/google/uuid"
)

// InvalidInputError reports a malformed id or an out-of-range value supplied by the caller.
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// NotFoundError is returned by data sources when a candidate or job does not exist.
type NotFoundError struct {
	Kind string
	ID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// ParseID parses a caller-supplied id, rejecting malformed and nil UUIDs.
func ParseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &InvalidInputError{Field: field, Message: "malformed id", Cause: err}
	}
	if id == uuid.Nil {
		return uuid.Nil, &InvalidInputError{Field: field, Message: "nil id"}
	}
	return id, nil
}
