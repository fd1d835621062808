package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	RefreshEntitlement(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
	clock        clock.Clock
}

func NewLeaveHandler(leaveService leave.Service, clk clock.Clock) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService, clock: clk}
}

// CreateRequest implements LeaveHandler.
func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	var req leave.CreateRequest
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
	if validator.IsEmpty(req.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "required"})
	}
	if _, ok := validator.IsValidTimestamp(req.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be RFC3339"})
	}
	if _, ok := validator.IsValidTimestamp(req.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be RFC3339"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetRequest implements LeaveHandler.
func (h *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.leaveService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseLeaveFilter(r *http.Request) leave.RequestFilter {
	q := r.URL.Query()
	filter := leave.RequestFilter{Page: 1, Limit: 10}

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
	if days, err := strconv.Atoi(q.Get("recent_days")); err == nil && days > 0 {
		filter.RecentDays = &days
	}
	return filter
}

// ListRequests implements LeaveHandler.
func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	result, err := h.leaveService.ListRequests(r.Context(), claims.CompanyID, parseLeaveFilter(r))
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

// GetMyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	filter := parseLeaveFilter(r)
	filter.EmployeeID = &claims.EmployeeID

	result, err := h.leaveService.ListRequests(r.Context(), claims.CompanyID, filter)
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

// CancelRequest implements LeaveHandler.
func (h *leaveHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.leaveService.CancelRequest(r.Context(), requestID, claims.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

func yearFromQuery(r *http.Request, fallback int) int {
	if year, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil && year > 0 {
		return year
	}
	return fallback
}

// GetMyBalances implements LeaveHandler. The read-only ledger projection for
// the caller.
func (h *leaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	year := yearFromQuery(r, h.clock.Now().Year())
	balances, err := h.leaveService.GetBalances(r.Context(), claims.EmployeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// RefreshEntitlement implements LeaveHandler. HR recomputes the statutory
// annual total for a relation; used hours are untouched.
func (h *leaveHandlerImpl) RefreshEntitlement(w http.ResponseWriter, r *http.Request) {
	relationID := chi.URLParam(r, "relationID")
	if relationID == "" {
		response.BadRequest(w, "Relation ID is required", nil)
		return
	}

	year := yearFromQuery(r, h.clock.Now().Year())
	balance, err := h.leaveService.RefreshAnnualEntitlement(r.Context(), relationID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Annual entitlement refreshed", balance)
}

// AdjustBalance implements LeaveHandler. HR corrective action on a single
// quota account.
func (h *leaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdjustBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(req.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is required"})
	}
	if req.RestoreHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "restore_hours", Message: "must not be negative"})
	}
	if req.Total != nil && *req.Total < 0 {
		errs = append(errs, validator.ValidationError{Field: "total", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	if req.Year == 0 {
		req.Year = h.clock.Now().Year()
	}

	balance, err := h.leaveService.AdjustBalance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance adjusted", balance)
}
