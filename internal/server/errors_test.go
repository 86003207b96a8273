package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Linda-Mensah/hire-link/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"candidate not found", &ErrCandidateNotFound{ID: "x"}, http.StatusNotFound},
		{"job not found", &ErrJobNotFound{ID: "9"}, http.StatusNotFound},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Field: "stage", Message: "required"}, http.StatusBadRequest},
		{"no adjacent stage", &ErrNoAdjacentStage{ID: "1", Direction: "forward"}, http.StatusConflict},
		{"submission rejected", &validation.Error{Fields: []validation.FieldError{{Field: "email"}}}, http.StatusUnprocessableEntity},
		{"wrapped submission rejected", fmt.Errorf("submit: %w", &validation.Error{}), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "candidate not found: app_1", (&ErrCandidateNotFound{ID: "app_1"}).Error())
	assert.Equal(t, "job not found: 7", (&ErrJobNotFound{ID: "7"}).Error())
	assert.Equal(t, "Invalid credentials", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "validation error: score - must be between 1 and 5", (&ErrValidation{Field: "score", Message: "must be between 1 and 5"}).Error())
}
