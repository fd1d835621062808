package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose token failed verification or is not an
// access token. It sits behind jwtauth.Verifier, which parses the token into
// the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.Unauthorized(w, "Unauthorized")
			return
		}

		if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		if employeeID, ok := claims["employee_id"].(string); !ok || employeeID == "" {
			response.Unauthorized(w, "Invalid token claims")
			return
		}

		next.ServeHTTP(w, r)
	})
}
