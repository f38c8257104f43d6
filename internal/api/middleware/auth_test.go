package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJWTService struct {
	userID uuid.UUID
	err    error
}

func (s *stubJWTService) GenerateToken(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &auth.Claims{UserID: s.userID, TokenType: "access"}, nil
}

func (s *stubJWTService) GenerateRefreshToken(context.Context, uuid.UUID) (string, error) {
	return "", nil
}

func (s *stubJWTService) ValidateRefreshToken(context.Context, string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidRefreshToken
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		jwtErr     error
		wantStatus int
		wantUserID bool
	}{
		{"valid token", "Bearer good-token", nil, http.StatusOK, true},
		{"missing header", "", nil, http.StatusUnauthorized, false},
		{"not bearer", "Basic abc123", nil, http.StatusUnauthorized, false},
		{"malformed header", "Bearer", nil, http.StatusUnauthorized, false},
		{"expired token", "Bearer stale", auth.ErrExpiredToken, http.StatusUnauthorized, false},
		{"invalid token", "Bearer junk", auth.ErrInvalidToken, http.StatusUnauthorized, false},
		{"refresh token used as access", "Bearer refresh", auth.ErrWrongTokenType, http.StatusUnauthorized, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewAuthMiddleware(&stubJWTService{userID: userID, err: tc.jwtErr})

			var gotUserID uuid.UUID
			var handlerCalled bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				gotUserID, _ = GetUserID(r)
			})

			req := httptest.NewRequest(http.MethodGet, "/decks", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rr := httptest.NewRecorder()
			m.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantUserID {
				require.True(t, handlerCalled, "next handler should run for valid tokens")
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, handlerCalled, "next handler must not run for rejected requests")
			}
		})
	}
}
