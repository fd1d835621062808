package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/overtime"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type OvertimeHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

// CreateRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	var req overtime.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.EmployeeID = claims.EmployeeID
	if req.RelationID == "" {
		req.RelationID = claims.RelationID
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.RelationID) {
		errs = append(errs, validator.ValidationError{Field: "relation_id", Message: "required"})
	}
	if _, ok := validator.IsValidDate(req.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidTimestamp(req.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be RFC3339"})
	}
	if _, ok := validator.IsValidTimestamp(req.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be RFC3339"})
	}
	if validator.IsEmpty(req.Compensation) {
		errs = append(errs, validator.ValidationError{Field: "compensation", Message: "required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.overtimeService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", result)
}

// GetRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.overtimeService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseOvertimeFilter(r *http.Request) overtime.RequestFilter {
	q := r.URL.Query()
	filter := overtime.RequestFilter{Page: 1, Limit: 10}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	return filter
}

// ListRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	result, err := h.overtimeService.ListRequests(r.Context(), claims.CompanyID, parseOvertimeFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// GetMyRequests implements OvertimeHandler.
func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	filter := parseOvertimeFilter(r)
	filter.EmployeeID = &claims.EmployeeID

	result, err := h.overtimeService.ListRequests(r.Context(), claims.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}

// CancelRequest implements OvertimeHandler.
func (h *overtimeHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.overtimeService.CancelRequest(r.Context(), requestID, claims.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request cancelled", nil)
}
