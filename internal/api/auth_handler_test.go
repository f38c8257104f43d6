package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/auth"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserStore implements store.UserStore in memory, keyed by email.
type mockUserStore struct {
	users map[string]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Create(_ context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return store.ErrEmailExists
	}
	// Mirror the real store: the plaintext password never persists.
	stored := *user
	stored.HashedPassword = "hashed:" + user.Password
	stored.Password = ""
	m.users[user.Email] = &stored
	return nil
}

func (m *mockUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range m.users {
		if u.ID == id {
			delete(m.users, email)
			return nil
		}
	}
	return store.ErrUserNotFound
}

func (m *mockUserStore) WithTx(_ *sql.Tx) store.UserStore { return m }

// mockJWTService returns fixed token strings.
type mockJWTService struct {
	validateErr        error
	validatedUserID    uuid.UUID
	refreshValidateErr error
}

func (m *mockJWTService) GenerateToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "access-" + userID.String(), nil
}

func (m *mockJWTService) ValidateToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return &auth.Claims{UserID: m.validatedUserID, TokenType: "access"}, nil
}

func (m *mockJWTService) GenerateRefreshToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "refresh-" + userID.String(), nil
}

func (m *mockJWTService) ValidateRefreshToken(_ context.Context, _ string) (*auth.Claims, error) {
	if m.refreshValidateErr != nil {
		return nil, m.refreshValidateErr
	}
	return &auth.Claims{UserID: m.validatedUserID, TokenType: "refresh"}, nil
}

// prefixVerifier matches the mockUserStore's fake hashing scheme.
type prefixVerifier struct{}

func (prefixVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func newAuthHandlerFixture() (*AuthHandler, *mockUserStore, *mockJWTService) {
	users := newMockUserStore()
	jwt := &mockJWTService{}
	handler := NewAuthHandler(users, jwt, prefixVerifier{}, time.Hour, nil)
	return handler, users, jwt
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestRegister(t *testing.T) {
	t.Parallel()

	handler, users, _ := newAuthHandlerFixture()

	rr := postJSON(t, handler.Register, "/auth/register",
		`{"email":"dev@example.com","password":"correct horse battery"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored, err := users.GetByEmail(context.Background(), "dev@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Password, "plaintext password must not persist")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	handler, _, _ := newAuthHandlerFixture()

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"email"`, http.StatusBadRequest},
		{"invalid email", `{"email":"nope","password":"correct horse battery"}`, http.StatusBadRequest},
		{"short password", `{"email":"dev@example.com","password":"short"}`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, handler.Register, "/auth/register", tc.body)
			assert.Equal(t, tc.code, rr.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	handler, _, _ := newAuthHandlerFixture()
	body := `{"email":"dev@example.com","password":"correct horse battery"}`

	rr := postJSON(t, handler.Register, "/auth/register", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(t, handler.Register, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	handler, _, _ := newAuthHandlerFixture()
	register := `{"email":"dev@example.com","password":"correct horse battery"}`
	require.Equal(t, http.StatusCreated,
		postJSON(t, handler.Register, "/auth/register", register).Code)

	rr := postJSON(t, handler.Login, "/auth/login", register)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	handler, _, _ := newAuthHandlerFixture()
	require.Equal(t, http.StatusCreated, postJSON(t, handler.Register, "/auth/register",
		`{"email":"dev@example.com","password":"correct horse battery"}`).Code)

	wrongPassword := postJSON(t, handler.Login, "/auth/login",
		`{"email":"dev@example.com","password":"wrong password!!"}`)
	unknownEmail := postJSON(t, handler.Login, "/auth/login",
		`{"email":"other@example.com","password":"correct horse battery"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	// Identical bodies so the endpoint does not leak which emails exist.
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	handler, _, jwt := newAuthHandlerFixture()
	jwt.validatedUserID = uuid.New()

	rr := postJSON(t, handler.RefreshToken, "/auth/refresh", `{"refresh_token":"some-token"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp RefreshTokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "access-"+jwt.validatedUserID.String(), resp.AccessToken)
	assert.Equal(t, "refresh-"+jwt.validatedUserID.String(), resp.RefreshToken)
}

func TestRefreshTokenRejectsInvalid(t *testing.T) {
	t.Parallel()

	handler, _, jwt := newAuthHandlerFixture()
	jwt.refreshValidateErr = auth.ErrExpiredRefreshToken

	rr := postJSON(t, handler.RefreshToken, "/auth/refresh", `{"refresh_token":"stale"}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = postJSON(t, handler.RefreshToken, "/auth/refresh", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
