package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/talent-matcher/internal/matcher"
)

// ErrValidation indicates a malformed request body or query parameter.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		invalidErr    *matcher.InvalidInputError
		notFoundErr   *matcher.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &invalidErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

// statusClientClosedRequest is the non-standard code logged when the caller goes away.
const statusClientClosedRequest = 499
