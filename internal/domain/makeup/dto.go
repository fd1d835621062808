package makeup

import "context"

// CreateRequest is the makeup-clock application payload. Date is YYYY-MM-DD,
// times are RFC3339.
type CreateRequest struct {
	RelationID            string  `json:"relation_id"`
	Date                  string  `json:"date"`
	Type                  string  `json:"type"`
	RequestedCheckInTime  *string `json:"requested_checkin_time,omitempty"`
	RequestedCheckOutTime *string `json:"requested_checkout_time,omitempty"`
	Reason                string  `json:"reason"`

	EmployeeID string `json:"-"`
}

type ChainLevel struct {
	Level      int    `json:"level"`
	Role       string `json:"role,omitempty"`
	ApproverID string `json:"approver_id"`
	Status     string `json:"status,omitempty"`
}

type RequestResponse struct {
	ID                    string       `json:"id"`
	RelationID            string       `json:"relation_id"`
	EmployeeID            string       `json:"employee_id"`
	EmployeeName          *string      `json:"employee_name,omitempty"`
	Date                  string       `json:"date"`
	Type                  string       `json:"type"`
	OriginalCheckInTime   *string      `json:"original_checkin_time,omitempty"`
	OriginalCheckOutTime  *string      `json:"original_checkout_time,omitempty"`
	RequestedCheckInTime  *string      `json:"requested_checkin_time,omitempty"`
	RequestedCheckOutTime *string      `json:"requested_checkout_time,omitempty"`
	Reason                string       `json:"reason"`
	Status                string       `json:"status"`
	AttendanceID          *string      `json:"attendance_id,omitempty"`
	QuotaRemaining        *float64     `json:"quota_remaining,omitempty"`
	Chain                 []ChainLevel `json:"chain,omitempty"`
	CreatedAt             string       `json:"created_at"`
}

type ListResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}

type Service interface {
	CreateRequest(ctx context.Context, req CreateRequest) (RequestResponse, error)
	CancelRequest(ctx context.Context, requestID, employeeID string) error
	GetRequest(ctx context.Context, id string) (RequestResponse, error)
	ListRequests(ctx context.Context, companyID string, filter RequestFilter) (ListResponse, error)
}
