// AngelaMos | 2026
// maintenance_test.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeChecker struct {
	enabled bool
	err     error
	calls   int
}

func (f *fakeChecker) MaintenanceEnabled(_ context.Context) (bool, error) {
	f.calls++
	return f.enabled, f.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestMaintenanceBlocksWrites(t *testing.T) {
	handler := Maintenance(&fakeChecker{enabled: true})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "MAINTENANCE")
}

func TestMaintenanceAllowsReads(t *testing.T) {
	checker := &fakeChecker{enabled: true}
	handler := Maintenance(checker)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, checker.calls)
}

func TestMaintenanceAllowsAdminWrites(t *testing.T) {
	handler := Maintenance(&fakeChecker{enabled: true})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/reports", nil)
	ctx := withClaims(req.Context(), &SessionClaims{
		UserID: "admin",
		Role:   "admin",
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMaintenancePassesWhenDisabled(t *testing.T) {
	handler := Maintenance(&fakeChecker{enabled: false})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

// The production wiring chains the authenticator in front of the gate;
// the admin bypass depends on claims being in context by the time the
// gate runs.
func TestMaintenanceAfterAuthenticatorAdmitsAdmin(t *testing.T) {
	verifier := &fakeVerifier{claims: map[string]*SessionClaims{
		"admin-token": {UserID: "admin", Role: "admin", SessionID: "sess-1"},
		"user-token":  {UserID: "user-1", Role: "user", SessionID: "sess-2"},
	}}
	gate := Maintenance(&fakeChecker{enabled: true})
	authn := Authenticator(verifier, "session")
	handler := authn(gate(okHandler()))

	req := httptest.NewRequest(http.MethodPost, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "admin-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/reports", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "user-token"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMaintenanceFailsOpen(t *testing.T) {
	checker := &fakeChecker{err: errors.New("redis down")}
	handler := Maintenance(checker)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reports", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
