package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

// RequireRole gates a route group to the given roles. System admins pass
// every gate.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	allowed := make(map[employee.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			role, ok := claims["role"].(string)
			if !ok || role == "" {
				response.Forbidden(w, "Role not found in token")
				return
			}

			if employee.Role(role) != employee.RoleSystemAdmin && !allowed[employee.Role(role)] {
				response.Forbidden(w, "Insufficient role for this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
