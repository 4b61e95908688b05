package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/ori-labs/aura-api/internal/db"
	"github.com/ori-labs/aura-api/internal/match"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "dana@example.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"forbidden", &ErrForbidden{Message: "not yours"}, http.StatusForbidden},
		{"validation", &ErrValidation{Field: "limit", Message: "max"}, http.StatusBadRequest},
		{"quota exhausted", match.ErrQuotaExhausted, http.StatusTooManyRequests},
		{"wrapped quota exhausted", fmt.Errorf("find: %w", match.ErrQuotaExhausted), http.StatusTooManyRequests},
		{"profile not found", db.ErrProfileNotFound, http.StatusNotFound},
		{"anything else", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	req := struct {
		Email string `validate:"required,email"`
	}{Email: "nope"}

	verr := validationError(validator.New().Struct(req))
	assert.Equal(t, "Email", verr.Field)
	assert.Equal(t, "email", verr.Message)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(verr))

	// Non-validator errors keep their message but still map to 400.
	verr = validationError(fmt.Errorf("invalid characters in query"))
	assert.Contains(t, verr.Error(), "invalid characters in query")
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(verr))
}
