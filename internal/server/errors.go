package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/assessment-engine/internal/fetch"
	"github.com/jonathan/assessment-engine/internal/parsing"
	"github.com/jonathan/assessment-engine/internal/schemas"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnprocessable indicates a well-formed request that produced no result.
type ErrUnprocessable struct {
	Message string
}

func (e *ErrUnprocessable) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		unprocessable *ErrUnprocessable
		fieldErrs     validator.ValidationErrors
		schemaErr     *schemas.ValidationError
		parseErr      *parsing.ParseError
		fetchErr      *fetch.Error
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &unprocessable):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
