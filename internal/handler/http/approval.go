package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	approvalservice "github.com/attendly/attendance-backend-go/internal/service/approval"
)

type ApprovalHandler interface {
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type approvalHandlerImpl struct {
	chainService *approvalservice.ChainService
}

func NewApprovalHandler(chainService *approvalservice.ChainService) ApprovalHandler {
	return &approvalHandlerImpl{chainService: chainService}
}

// ListPending implements ApprovalHandler. The approver's inbox.
func (h *approvalHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	steps, err := h.chainService.ListPending(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, steps)
}

func (h *approvalHandlerImpl) actionRequest(w http.ResponseWriter, r *http.Request) (approval.ActionRequest, bool) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return approval.ActionRequest{}, false
	}

	stepID := chi.URLParam(r, "stepID")
	if stepID == "" {
		response.BadRequest(w, "Step ID is required", nil)
		return approval.ActionRequest{}, false
	}

	var req approval.ActionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("approval action decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return approval.ActionRequest{}, false
		}
	}

	req.StepID = stepID
	req.ApproverID = claims.EmployeeID
	return req, true
}

// Approve implements ApprovalHandler.
func (h *approvalHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.actionRequest(w, r)
	if !ok {
		return
	}

	result, err := h.chainService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Step approved", result)
}

// Reject implements ApprovalHandler.
func (h *approvalHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.actionRequest(w, r)
	if !ok {
		return
	}

	result, err := h.chainService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Step rejected", result)
}
