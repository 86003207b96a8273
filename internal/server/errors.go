// Package server provides the HTTP REST API for the hiring pipeline.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Linda-Mensah/hire-link/internal/validation"
)

// ErrCandidateNotFound indicates no candidate has the requested id
type ErrCandidateNotFound struct {
	ID string
}

func (e *ErrCandidateNotFound) Error() string {
	return fmt.Sprintf("candidate not found: %s", e.ID)
}

// ErrJobNotFound indicates no job has the requested id
type ErrJobNotFound struct {
	ID string
}

func (e *ErrJobNotFound) Error() string {
	return fmt.Sprintf("job not found: %s", e.ID)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "Invalid credentials"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoAdjacentStage indicates a board move past either end of the pipeline
type ErrNoAdjacentStage struct {
	ID        string
	Direction string
}

func (e *ErrNoAdjacentStage) Error() string {
	return fmt.Sprintf("candidate %s cannot move %s from its current stage", e.ID, e.Direction)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusUnprocessableEntity
	}

	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *ErrCandidateNotFound, *ErrJobNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrNoAdjacentStage:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
