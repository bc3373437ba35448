package auth

import (
	"net/http"
	"strings"

	"github.com/example/media-platform/internal/platform/api"
)

// RequireAdmin allows the request only if RequireUser already injected
// role=admin into the context. The rejection carries the standard error
// envelope so admin routes fail the same way the rest of the API does.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := RoleFromContext(r.Context())
		if strings.ToLower(strings.TrimSpace(role)) != "admin" {
			api.Forbidden(w, "ADMIN_REQUIRED", "admin role required", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}
