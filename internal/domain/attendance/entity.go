package attendance

import "time"

// Event is one attendance row per employment relation per calendar date.
// Until clock-out, CheckOutTime mirrors CheckInTime as a placeholder and
// WorkHours stays zero. At most one event exists per (relation, date); the
// only sanctioned second write path for a date is makeup-clock approval.
type Event struct {
	ID                string
	RelationID        string
	CompanyID         string
	Date              time.Time
	CheckInTime       time.Time
	CheckOutTime      time.Time
	CheckInLocation   string
	CheckOutLocation  string
	WorkHours         float64
	IsLate            bool
	LateMinutes       int
	IsEarlyLeave      bool
	EarlyLeaveMinutes int
	// ScheduleID snapshots the schedule used for classification so later
	// schedule edits do not rewrite history.
	ScheduleID *string
	IsMakeup   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
