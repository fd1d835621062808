package overtime

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Compensation says how approved overtime is repaid.
type Compensation string

const (
	CompensationPay          Compensation = "pay"
	CompensationCompensatory Compensation = "compensatory"
	CompensationMixed        Compensation = "mixed"
)

// Request is an overtime application. When the compensation is mixed,
// PayHours + CompensatoryHours must equal Hours; a single-sided compensation
// forces that side to absorb the full amount.
type Request struct {
	ID                string
	RelationID        string
	EmployeeID        string
	CompanyID         string
	Date              time.Time
	StartTime         time.Time
	EndTime           time.Time
	Hours             float64
	Reason            string
	Compensation      Compensation
	PayHours          float64
	CompensatoryHours float64
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time

	EmployeeName *string
}
