package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/deckfile"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/generation"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/auth"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/review"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var parseErr *deckfile.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, review.ErrCardNotOwned),
		errors.Is(err, review.ErrDeckNotOwned),
		errors.Is(err, deck.ErrDeckNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, review.ErrCardStatsNotFound),
		errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, deck.ErrDeckNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, deck.ErrDeckExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, review.ErrInvalidAnswer),
		errors.Is(err, review.ErrInvalidPostponeDays),
		errors.Is(err, deck.ErrEmptyDeck),
		errors.Is(err, generation.ErrEmptyNoteText):
		return http.StatusBadRequest

	// Generation unavailable
	case errors.Is(err, generation.ErrNotConfigured):
		return http.StatusServiceUnavailable

	// Special cases
	case errors.Is(err, review.ErrNoCardsDue):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var parseErr *deckfile.ParseError
	if errors.As(err, &parseErr) {
		// Parse errors describe the author's own file; safe to surface.
		return parseErr.Error()
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Authorization errors
	case errors.Is(err, review.ErrCardNotOwned):
		return "You do not own this card"

	case errors.Is(err, review.ErrDeckNotOwned),
		errors.Is(err, deck.ErrDeckNotOwned):
		return "You do not own this deck"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrCardNotFound),
		errors.Is(err, review.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, deck.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, review.ErrCardStatsNotFound):
		return "Card statistics not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrDeckExists),
		errors.Is(err, deck.ErrDeckExists):
		return "Deck already imported from this source"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, review.ErrInvalidAnswer):
		return "Invalid answer"

	case errors.Is(err, review.ErrInvalidPostponeDays):
		return "Postpone days must be at least 1"

	case errors.Is(err, deck.ErrEmptyDeck):
		return "Deck file contains no cards"

	case errors.Is(err, generation.ErrEmptyNoteText):
		return "Note text cannot be empty"

	case errors.Is(err, generation.ErrNotConfigured):
		return "Card generation is not available"

	// No cards due is handled separately with StatusNoContent

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation for
	// 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
