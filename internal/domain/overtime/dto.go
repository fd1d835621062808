package overtime

import "context"

// CreateRequest is the overtime application payload. Date is YYYY-MM-DD,
// times are RFC3339.
type CreateRequest struct {
	RelationID        string  `json:"relation_id"`
	Date              string  `json:"date"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	Reason            string  `json:"reason"`
	Compensation      string  `json:"compensation"`
	PayHours          float64 `json:"pay_hours"`
	CompensatoryHours float64 `json:"compensatory_hours"`

	EmployeeID string `json:"-"`
}

type ChainLevel struct {
	Level      int    `json:"level"`
	Role       string `json:"role,omitempty"`
	ApproverID string `json:"approver_id"`
	Status     string `json:"status,omitempty"`
}

type RequestResponse struct {
	ID                string       `json:"id"`
	RelationID        string       `json:"relation_id"`
	EmployeeID        string       `json:"employee_id"`
	EmployeeName      *string      `json:"employee_name,omitempty"`
	Date              string       `json:"date"`
	StartTime         string       `json:"start_time"`
	EndTime           string       `json:"end_time"`
	Hours             float64      `json:"hours"`
	Reason            string       `json:"reason"`
	Compensation      string       `json:"compensation"`
	PayHours          float64      `json:"pay_hours"`
	CompensatoryHours float64      `json:"compensatory_hours"`
	Status            string       `json:"status"`
	Chain             []ChainLevel `json:"chain,omitempty"`
	CreatedAt         string       `json:"created_at"`
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
