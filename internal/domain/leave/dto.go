package leave

import "context"

// CreateRequest is the leave application payload. Times are RFC3339.
type CreateRequest struct {
	RelationID   string  `json:"relation_id"`
	Category     string  `json:"category"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Hours        float64 `json:"hours"`
	Reason       *string `json:"reason,omitempty"`
	SubstituteID *string `json:"substitute_id,omitempty"`

	EmployeeID string `json:"-"`
}

// ChainLevel describes one approval level in a response. Role is set when
// the level comes from policy resolution; Status when it reflects a
// materialized step.
type ChainLevel struct {
	Level      int    `json:"level"`
	Role       string `json:"role,omitempty"`
	ApproverID string `json:"approver_id"`
	Status     string `json:"status,omitempty"`
}

type RequestResponse struct {
	ID           string       `json:"id"`
	RelationID   string       `json:"relation_id"`
	EmployeeID   string       `json:"employee_id"`
	EmployeeName *string      `json:"employee_name,omitempty"`
	Category     string       `json:"category"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Hours        float64      `json:"hours"`
	DurationDays float64      `json:"duration_days"`
	Reason       *string      `json:"reason,omitempty"`
	SubstituteID *string      `json:"substitute_id,omitempty"`
	Status       string       `json:"status"`
	Chain        []ChainLevel `json:"chain,omitempty"`
	CreatedAt    string       `json:"created_at"`
}

type ListResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}

// AdjustBalanceRequest is the HR corrective action on a quota account.
// RestoreHours releases hours that were debited in error; Total, when set,
// overrides the account total while preserving used hours.
type AdjustBalanceRequest struct {
	EmployeeID   string   `json:"employee_id"`
	Year         int      `json:"year"`
	Category     string   `json:"category"`
	RestoreHours float64  `json:"restore_hours,omitempty"`
	Total        *float64 `json:"total,omitempty"`
}

// BalanceResponse is one row of the ledger query projection.
type BalanceResponse struct {
	Category  string  `json:"category"`
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type Service interface {
	CreateRequest(ctx context.Context, req CreateRequest) (RequestResponse, error)
	CancelRequest(ctx context.Context, requestID, employeeID string) error
	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, companyID string, filter RequestFilter) (ListResponse, error)

	// GetBalances is the read-only ledger projection for one employee-year.
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	// RefreshAnnualEntitlement recomputes the statutory annual total from
	// the hire date, preserving used hours.
	RefreshAnnualEntitlement(ctx context.Context, relationID string, year int) (BalanceResponse, error)
	// AdjustBalance applies a corrective restore or total override to one
	// account.
	AdjustBalance(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
}
