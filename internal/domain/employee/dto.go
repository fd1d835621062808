package employee

import "context"

type CreateEmployeeRequest struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"department_id,omitempty"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name,omitempty"`
	Role         *string `json:"role,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"department_id,omitempty"`
	IsActive     bool    `json:"is_active"`
	CreatedAt    string  `json:"created_at"`
}

// CreateRelationRequest hires an employee into a company. HireDate is
// YYYY-MM-DD.
type CreateRelationRequest struct {
	EmployeeID      string  `json:"employee_id"`
	CompanyID       string  `json:"company_id"`
	HireDate        string  `json:"hire_date"`
	DirectManagerID *string `json:"direct_manager_id,omitempty"`
	WorkScheduleID  *string `json:"work_schedule_id,omitempty"`
}

type UpdateRelationRequest struct {
	Active          *bool   `json:"active,omitempty"`
	LeaveDate       *string `json:"leave_date,omitempty"`
	DirectManagerID *string `json:"direct_manager_id,omitempty"`
	WorkScheduleID  *string `json:"work_schedule_id,omitempty"`
}

type RelationResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	CompanyID       string  `json:"company_id"`
	Active          bool    `json:"active"`
	HireDate        string  `json:"hire_date"`
	LeaveDate       *string `json:"leave_date,omitempty"`
	DirectManagerID *string `json:"direct_manager_id,omitempty"`
	WorkScheduleID  *string `json:"work_schedule_id,omitempty"`
}

// CreateManagerialRelationshipRequest records a time-bounded employee to
// manager mapping. Dates are YYYY-MM-DD.
type CreateManagerialRelationshipRequest struct {
	EmployeeID    string  `json:"employee_id"`
	ManagerID     string  `json:"manager_id"`
	CompanyID     *string `json:"company_id,omitempty"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       *string `json:"end_date,omitempty"`
}

type ManagerialRelationshipResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	ManagerID     string  `json:"manager_id"`
	CompanyID     *string `json:"company_id,omitempty"`
	EffectiveDate string  `json:"effective_date"`
	EndDate       *string `json:"end_date,omitempty"`
}

// UpsertAssignmentRequest designates the approver for a role within a
// company, replacing any previous designation for that role.
type UpsertAssignmentRequest struct {
	CompanyID  string `json:"company_id"`
	Role       string `json:"role"`
	ApproverID string `json:"approver_id"`
}

type AssignmentResponse struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	Role       string `json:"role"`
	ApproverID string `json:"approver_id"`
}

type Service interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	CreateRelation(ctx context.Context, req CreateRelationRequest) (RelationResponse, error)
	GetRelation(ctx context.Context, id string) (RelationResponse, error)
	ListActiveRelations(ctx context.Context, employeeID string) ([]RelationResponse, error)
	UpdateRelation(ctx context.Context, id string, req UpdateRelationRequest) (RelationResponse, error)

	CreateManagerialRelationship(ctx context.Context, req CreateManagerialRelationshipRequest) (ManagerialRelationshipResponse, error)
	UpsertApproverAssignment(ctx context.Context, req UpsertAssignmentRequest) (AssignmentResponse, error)
}
