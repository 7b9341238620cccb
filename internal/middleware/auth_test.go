// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcityfix/api/internal/core"
)

type fakeVerifier struct {
	claims map[string]*SessionClaims
	err    error
}

func (f *fakeVerifier) VerifySessionToken(
	_ context.Context,
	token string,
) (*SessionClaims, error) {
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.claims[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func citizenVerifier() *fakeVerifier {
	return &fakeVerifier{claims: map[string]*SessionClaims{
		"good-token": {
			UserID:    "user-1",
			Role:      "user",
			SessionID: "sess-1",
		},
	}}
}

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s:%s:%s",
			GetUserID(r.Context()),
			GetUserRole(r.Context()),
			GetSessionID(r.Context()),
		)
	})
}

func TestAuthenticatorMissingToken(t *testing.T) {
	handler := Authenticator(citizenVerifier(), "session")(claimsEcho(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuthenticatorCookie(t *testing.T) {
	handler := Authenticator(citizenVerifier(), "session")(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "good-token"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1:user:sess-1", rec.Body.String())
}

func TestAuthenticatorBearerFallback(t *testing.T) {
	handler := Authenticator(citizenVerifier(), "session")(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1:user:sess-1", rec.Body.String())
}

func TestAuthenticatorInvalidToken(t *testing.T) {
	handler := Authenticator(citizenVerifier(), "session")(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "bogus"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestAuthenticatorExpiredToken(t *testing.T) {
	verifier := &fakeVerifier{
		err: fmt.Errorf("verify token: %w", core.ErrTokenExpired),
	}
	handler := Authenticator(verifier, "session")(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "stale"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestRequireAdminForbidsCitizen(t *testing.T) {
	handler := RequireAdmin(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := withClaims(req.Context(), &SessionClaims{
		UserID: "user-1",
		Role:   "user",
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	handler := RequireAdmin(claimsEcho(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := withClaims(req.Context(), &SessionClaims{
		UserID: "admin",
		Role:   "admin",
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminUnauthenticated(t *testing.T) {
	handler := RequireAdmin(claimsEcho(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractSessionTokenPrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	assert.Equal(t, "from-cookie", ExtractSessionToken(req, "session"))
}

func TestExtractSessionTokenRejectsNonBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	assert.Empty(t, ExtractSessionToken(req, "session"))
}
