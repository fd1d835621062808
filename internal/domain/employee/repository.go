package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, code string) (Employee, error)
	Update(ctx context.Context, e Employee) error
}

type RelationRepository interface {
	Create(ctx context.Context, rel EmploymentRelation) (EmploymentRelation, error)
	GetByID(ctx context.Context, id string) (EmploymentRelation, error)
	GetActiveByEmployee(ctx context.Context, employeeID string) ([]EmploymentRelation, error)
	// ListActive returns every active relation; used by the entitlement
	// refresh job.
	ListActive(ctx context.Context) ([]EmploymentRelation, error)
	Update(ctx context.Context, rel EmploymentRelation) error
}

type ManagerialRelationshipRepository interface {
	Create(ctx context.Context, mr ManagerialRelationship) (ManagerialRelationship, error)
	// GetActiveManager returns the manager effective for the employee as of
	// the given date, or ErrEmployeeNotFound when none applies.
	GetActiveManager(ctx context.Context, employeeID string, asOf time.Time) (string, error)
}

type ApproverAssignmentRepository interface {
	Upsert(ctx context.Context, a ApproverAssignment) (ApproverAssignment, error)
	// GetApprover returns the designated approver's employee ID for a role
	// within a company, or ErrEmployeeNotFound when none is configured.
	GetApprover(ctx context.Context, companyID, role string) (string, error)
}
