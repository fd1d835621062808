package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/handler/http/response"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	CreateRelation(w http.ResponseWriter, r *http.Request)
	GetRelation(w http.ResponseWriter, r *http.Request)
	ListMyRelations(w http.ResponseWriter, r *http.Request)
	UpdateRelation(w http.ResponseWriter, r *http.Request)
	CreateManagerialRelationship(w http.ResponseWriter, r *http.Request)
	UpsertApproverAssignment(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.Service
}

func NewEmployeeHandler(employeeService employee.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Create implements EmployeeHandler.
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "required"})
	}
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements EmployeeHandler.
func (h *employeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.UpdateEmployee(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

// CreateRelation implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateRelation(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create relation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "required"})
	}
	if validator.IsEmpty(req.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "required"})
	}
	if _, ok := validator.IsValidDate(req.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.employeeService.CreateRelation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employment relation created", result)
}

// GetRelation implements EmployeeHandler.
func (h *employeeHandlerImpl) GetRelation(w http.ResponseWriter, r *http.Request) {
	relationID := chi.URLParam(r, "id")
	if relationID == "" {
		response.BadRequest(w, "Relation ID is required", nil)
		return
	}

	result, err := h.employeeService.GetRelation(r.Context(), relationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMyRelations implements EmployeeHandler. Lists the caller's active
// employment relations.
func (h *employeeHandlerImpl) ListMyRelations(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromRequest(w, r)
	if !ok {
		return
	}

	result, err := h.employeeService.ListActiveRelations(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateRelation implements EmployeeHandler.
func (h *employeeHandlerImpl) UpdateRelation(w http.ResponseWriter, r *http.Request) {
	relationID := chi.URLParam(r, "id")
	if relationID == "" {
		response.BadRequest(w, "Relation ID is required", nil)
		return
	}

	var req employee.UpdateRelationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update relation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.employeeService.UpdateRelation(r.Context(), relationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employment relation updated", result)
}

// CreateManagerialRelationship implements EmployeeHandler.
func (h *employeeHandlerImpl) CreateManagerialRelationship(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateManagerialRelationshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create managerial relationship decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "required"})
	}
	if validator.IsEmpty(req.ManagerID) {
		errs = append(errs, validator.ValidationError{Field: "manager_id", Message: "required"})
	}
	if _, ok := validator.IsValidDate(req.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.employeeService.CreateManagerialRelationship(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Managerial relationship created", result)
}

// UpsertApproverAssignment implements EmployeeHandler.
func (h *employeeHandlerImpl) UpsertApproverAssignment(w http.ResponseWriter, r *http.Request) {
	var req employee.UpsertAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Upsert approver assignment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(req.CompanyID) {
		errs = append(errs, validator.ValidationError{Field: "company_id", Message: "required"})
	}
	if validator.IsEmpty(req.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "required"})
	}
	if validator.IsEmpty(req.ApproverID) {
		errs = append(errs, validator.ValidationError{Field: "approver_id", Message: "required"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.employeeService.UpsertApproverAssignment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Approver assignment saved", result)
}
