// AngelaMos | 2026
// maintenance.go

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/smartcityfix/api/internal/core"
)

type MaintenanceChecker interface {
	MaintenanceEnabled(ctx context.Context) (bool, error)
}

// Maintenance rejects non-admin writes while maintenance mode is enabled.
// Reads stay available, and a checker failure fails open.
func Maintenance(checker MaintenanceChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet ||
				r.Method == http.MethodHead ||
				r.Method == http.MethodOptions ||
				IsAdmin(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}

			enabled, err := checker.MaintenanceEnabled(r.Context())
			if err != nil {
				slog.Warn("maintenance check failed, failing open", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if enabled {
				core.JSONError(w, core.NewAppError(
					core.ErrForbidden,
					"the service is temporarily down for maintenance",
					http.StatusServiceUnavailable,
					"MAINTENANCE",
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
