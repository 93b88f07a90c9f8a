package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubValidator struct {
	userID uuid.UUID
	err    error
	tokens []string
}

func (v *stubValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	v.tokens = append(v.tokens, tokenString)
	if v.err != nil {
		return nil, v.err
	}
	return stubClaims{userID: v.userID}, nil
}

type stubClaims struct {
	userID uuid.UUID
}

func (c stubClaims) GetUserID() uuid.UUID {
	return c.userID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	userID := uuid.New()
	validator := &stubValidator{userID: userID}

	var gotUserID uuid.UUID
	handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := UserID(r)
		require.NoError(t, err)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	assert.Equal(t, []string{"valid-token"}, validator.tokens)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	validator := &stubValidator{userID: uuid.New()}
	handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without Authorization header")
	}))

	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, validator.tokens)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"valid-token", "Basic dXNlcg==", "Bearer", "Bearer a b"} {
		validator := &stubValidator{userID: uuid.New()}
		handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("handler should not run for header %q", header)
		}))

		req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	validator := &stubValidator{userID: uuid.New()}
	handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
	req.Header.Set("Authorization", "bearer some-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"some-token"}, validator.tokens)
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	validator := &stubValidator{err: fmt.Errorf("token expired")}
	handler := RequireAuth(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)

	_, err := UserID(req)
	assert.Error(t, err)
}

func TestWithUserID(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/experiences", nil)
	req = req.WithContext(WithUserID(context.Background(), userID))

	got, err := UserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
