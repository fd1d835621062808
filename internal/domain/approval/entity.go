package approval

import "time"

// RequestKind names the parent entity a step belongs to.
type RequestKind string

const (
	KindLeave    RequestKind = "leave"
	KindOvertime RequestKind = "overtime"
	KindMakeup   RequestKind = "makeup"
)

// StepStatus is the decision state of one approval level.
type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
)

// Role names used inside policy level definitions.
const (
	RoleManager = "manager"
	RoleHR      = "hr"
	RoleCEO     = "ceo"
)

// PolicyLevel is one ordinal entry of a policy's sign-off chain.
type PolicyLevel struct {
	Level       int    `json:"level"`
	Role        string `json:"role"`
	Description string `json:"description,omitempty"`
}

// Policy maps a request-duration range to an ordered chain of roles.
// MaxDays nil means unbounded. CompanyID nil means the policy applies to
// every company.
type Policy struct {
	ID        string
	Name      string
	CompanyID *string
	MinDays   float64
	MaxDays   *float64
	Levels    []PolicyLevel
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Matches reports whether the policy's duration range covers durationDays
// for the given company. Both bounds are inclusive.
func (p Policy) Matches(durationDays float64, companyID string) bool {
	if !p.IsActive {
		return false
	}
	if p.CompanyID != nil && *p.CompanyID != companyID {
		return false
	}
	if durationDays < p.MinDays {
		return false
	}
	if p.MaxDays != nil && durationDays > *p.MaxDays {
		return false
	}
	return true
}

// Step is a single decision at one level of a request's chain. Only one step
// per request is ever pending at a time; the next level's step is created
// when this one is approved.
type Step struct {
	ID          string
	RequestKind RequestKind
	RequestID   string
	Level       int
	ApproverID  string
	Status      StepStatus
	Comment     *string
	ApprovedAt  *time.Time
	CreatedAt   time.Time

	// Joined for responses.
	ApproverName *string
}

// ResolvedLevel pairs a policy level with the concrete approver it resolved
// to for a particular request.
type ResolvedLevel struct {
	Level       int
	Role        string
	Description string
	ApproverID  string
}
