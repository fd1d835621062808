package approval

import "context"

// ActionRequest is an approve or reject submitted by an approver.
type ActionRequest struct {
	StepID     string `json:"step_id"`
	ApproverID string `json:"-"`
	Comment    string `json:"comment"`
}

// LedgerDelta describes the quota effect a terminal approval applied.
type LedgerDelta struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	// Kind is "deduct" or "credit".
	Kind string `json:"kind"`
}

// ActionResponse reports the outcome of an approval action.
type ActionResponse struct {
	StepID         string       `json:"step_id"`
	RequestKind    RequestKind  `json:"request_kind"`
	RequestID      string       `json:"request_id"`
	Level          int          `json:"level"`
	ParentStatus   string       `json:"parent_status"`
	NextLevel      *int         `json:"next_level,omitempty"`
	NextApproverID *string      `json:"next_approver_id,omitempty"`
	LedgerDelta    *LedgerDelta `json:"ledger_delta,omitempty"`
}

// StepResponse is the read projection of one step.
type StepResponse struct {
	ID           string      `json:"id"`
	RequestKind  RequestKind `json:"request_kind"`
	RequestID    string      `json:"request_id"`
	Level        int         `json:"level"`
	ApproverID   string      `json:"approver_id"`
	ApproverName *string     `json:"approver_name,omitempty"`
	Status       StepStatus  `json:"status"`
	Comment      *string     `json:"comment,omitempty"`
	ApprovedAt   *string     `json:"approved_at,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

// CreatePolicyRequest defines a duration-ranged chain. MaxDays nil means
// unbounded; CompanyID nil makes the policy apply to every company.
type CreatePolicyRequest struct {
	Name      string        `json:"name"`
	CompanyID *string       `json:"company_id,omitempty"`
	MinDays   float64       `json:"min_days"`
	MaxDays   *float64      `json:"max_days,omitempty"`
	Levels    []PolicyLevel `json:"levels"`
}

type UpdatePolicyRequest struct {
	Name     *string       `json:"name,omitempty"`
	MinDays  *float64      `json:"min_days,omitempty"`
	MaxDays  *float64      `json:"max_days,omitempty"`
	Levels   []PolicyLevel `json:"levels,omitempty"`
	IsActive *bool         `json:"is_active,omitempty"`
}

type PolicyResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CompanyID *string       `json:"company_id,omitempty"`
	MinDays   float64       `json:"min_days"`
	MaxDays   *float64      `json:"max_days,omitempty"`
	Levels    []PolicyLevel `json:"levels"`
	IsActive  bool          `json:"is_active"`
}

type PolicyService interface {
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (PolicyResponse, error)
	ListPolicies(ctx context.Context, companyID string) ([]PolicyResponse, error)
	UpdatePolicy(ctx context.Context, id string, req UpdatePolicyRequest) (PolicyResponse, error)
}
