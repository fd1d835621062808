package leave

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// Categories lists the valid leave categories.
func Categories() []ledger.Category {
	return ledger.LeaveCategories()
}

// Request is a leave application belonging to an employment relation.
// Terminal states are immutable.
type Request struct {
	ID           string
	RelationID   string
	EmployeeID   string
	CompanyID    string
	Category     ledger.Category
	StartTime    time.Time
	EndTime      time.Time
	Hours        float64
	Reason       *string
	SubstituteID *string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for responses.
	EmployeeName *string
}

// DurationDays converts the requested range into fractional elapsed days.
// This single formula drives policy resolution; calendar-day subtraction
// would flip escalation near midnight boundaries.
func (r Request) DurationDays() float64 {
	return DurationDays(r.StartTime, r.EndTime)
}

// DurationDays returns the fractional elapsed days between two instants.
func DurationDays(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	return end.Sub(start).Hours() / 24
}
