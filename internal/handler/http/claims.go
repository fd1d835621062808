package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

// tokenClaims is the identity this backend trusts from the verified JWT.
type tokenClaims struct {
	EmployeeID string
	CompanyID  string
	RelationID string
	Role       string
}

// claimsFromRequest extracts the identity claims, writing the error response
// itself. Callers bail out when ok is false.
func claimsFromRequest(w http.ResponseWriter, r *http.Request) (tokenClaims, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return tokenClaims{}, false
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return tokenClaims{}, false
	}

	tc := tokenClaims{EmployeeID: employeeID}
	if companyID, ok := claims["company_id"].(string); ok {
		tc.CompanyID = companyID
	}
	if relationID, ok := claims["relation_id"].(string); ok {
		tc.RelationID = relationID
	}
	if role, ok := claims["role"].(string); ok {
		tc.Role = role
	}
	return tc, true
}
