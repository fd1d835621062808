package makeup

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

// Type says which punches a makeup request corrects.
type Type string

const (
	TypeCheckIn  Type = "checkin"
	TypeCheckOut Type = "checkout"
	TypeBoth     Type = "both"
)

// EligibilityWindowDays bounds how far back a makeup request may reach,
// inclusive of today.
const EligibilityWindowDays = 7

// Request is a retroactive-punch application. On terminal approval it
// patches or creates the attendance event for the target date.
type Request struct {
	ID                    string
	RelationID            string
	EmployeeID            string
	CompanyID             string
	Date                  time.Time
	Type                  Type
	OriginalCheckInTime   *time.Time
	OriginalCheckOutTime  *time.Time
	RequestedCheckInTime  *time.Time
	RequestedCheckOutTime *time.Time
	Reason                string
	Status                Status
	AttendanceID          *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	EmployeeName *string
}
