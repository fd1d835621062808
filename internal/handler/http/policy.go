package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
)

type PolicyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type policyHandlerImpl struct {
	policyService approval.PolicyService
}

func NewPolicyHandler(policyService approval.PolicyService) PolicyHandler {
	return &policyHandlerImpl{policyService: policyService}
}

// Create implements PolicyHandler.
func (h *policyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req approval.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.CreatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Approval policy created", result)
}

// List implements PolicyHandler. Returns the policies visible to the
// caller's company: its own plus the company-agnostic defaults.
func (h *policyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	companyID := claims.CompanyID
	if v := r.URL.Query().Get("company_id"); v != "" {
		companyID = v
	}

	result, err := h.policyService.ListPolicies(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements PolicyHandler.
func (h *policyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	var req approval.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update policy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.policyService.UpdatePolicy(r.Context(), policyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approval policy updated", result)
}
