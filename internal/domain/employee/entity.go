package employee

import "time"

// Role determines ledger defaults and which approval chains an employee can
// act on.
type Role string

const (
	RoleEmployee    Role = "employee"
	RoleManager     Role = "manager"
	RoleHRAdmin     Role = "hr_admin"
	RoleCEO         Role = "ceo"
	RoleSystemAdmin Role = "system_admin"
)

// Employee is identified by its code. Employees are never deleted, only
// deactivated.
type Employee struct {
	ID           string
	Code         string
	Name         string
	Role         Role
	DepartmentID *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmploymentRelation links an employee to a company. An employee may hold
// several relations but typically one active at a time.
type EmploymentRelation struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Active          bool
	HireDate        time.Time
	LeaveDate       *time.Time
	DirectManagerID *string
	// WorkScheduleID overrides the company default schedule when set.
	WorkScheduleID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ManagerialRelationship is the time-bounded employee → manager mapping used
// as a fallback when a relation has no direct manager.
type ManagerialRelationship struct {
	ID            string
	EmployeeID    string
	ManagerID     string
	CompanyID     *string
	EffectiveDate time.Time
	EndDate       *time.Time
	CreatedAt     time.Time
}

// ApproverAssignment designates which employee signs off for a role within a
// company. It replaces discovery-by-code-prefix: chains resolve against this
// table, and a request whose chain cannot be resolved is refused instead of
// falling back to the requester.
type ApproverAssignment struct {
	ID         string
	CompanyID  string
	Role       string
	ApproverID string
	CreatedAt  time.Time
}
