package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/makeup"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type MakeupHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	CancelRequest(w http.ResponseWriter, r *http.Request)
}

type makeupHandlerImpl struct {
	makeupService makeup.Service
}

func NewMakeupHandler(makeupService makeup.Service) MakeupHandler {
	return &makeupHandlerImpl{makeupService: makeupService}
}

// CreateRequest implements MakeupHandler.
func (h *makeupHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	var req makeup.CreateRequest
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
	if validator.IsEmpty(req.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "required"})
	}
	if validator.IsEmpty(req.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.makeupService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Makeup clock request submitted", result)
}

// GetRequest implements MakeupHandler.
func (h *makeupHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.makeupService.GetRequest(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseMakeupFilter(r *http.Request) makeup.RequestFilter {
	q := r.URL.Query()
	filter := makeup.RequestFilter{Page: 1, Limit: 10}

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

// ListRequests implements MakeupHandler.
func (h *makeupHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	result, err := h.makeupService.ListRequests(r.Context(), claims.CompanyID, parseMakeupFilter(r))
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

// GetMyRequests implements MakeupHandler.
func (h *makeupHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}
	if claims.CompanyID == "" {
		response.Forbidden(w, "Company ID not found in token")
		return
	}

	filter := parseMakeupFilter(r)
	filter.EmployeeID = &claims.EmployeeID

	result, err := h.makeupService.ListRequests(r.Context(), claims.CompanyID, filter)
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

// CancelRequest implements MakeupHandler.
func (h *makeupHandlerImpl) CancelRequest(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := h.makeupService.CancelRequest(r.Context(), requestID, claims.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Makeup clock request cancelled", nil)
}
