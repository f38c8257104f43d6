package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/deckfile"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/generation"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/auth"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/review"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped refresh token", fmt.Errorf("refresh: %w", auth.ErrInvalidRefreshToken), http.StatusUnauthorized},
		{"card not owned", review.ErrCardNotOwned, http.StatusForbidden},
		{"deck not owned", deck.ErrDeckNotOwned, http.StatusForbidden},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"store not found", store.ErrUserNotFound, http.StatusNotFound},
		{"deck exists", deck.ErrDeckExists, http.StatusConflict},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid answer", review.ErrInvalidAnswer, http.StatusBadRequest},
		{"invalid postpone days", review.ErrInvalidPostponeDays, http.StatusBadRequest},
		{"empty deck", deck.ErrEmptyDeck, http.StatusBadRequest},
		{"parse error", &deckfile.ParseError{Line: 3, Msg: "bad"}, http.StatusBadRequest},
		{"generation disabled", generation.ErrNotConfigured, http.StatusServiceUnavailable},
		{"no cards due", review.ErrNoCardsDue, http.StatusNoContent},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.code, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Invalid email or password", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "Card not found", GetSafeErrorMessage(review.ErrCardNotFound))
	assert.Equal(t, "Deck not found", GetSafeErrorMessage(fmt.Errorf("lookup: %w", deck.ErrDeckNotFound)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	// Internal detail must never leak for unknown errors.
	leaky := errors.New("pq: connection to postgres://user:secret@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))

	// Deck file parse errors are the author's own input and stay verbatim.
	parseErr := &deckfile.ParseError{Section: "What is hoisting?", Line: 7, Msg: "invalid frequency \"9\""}
	assert.Contains(t, GetSafeErrorMessage(parseErr), "What is hoisting?")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
