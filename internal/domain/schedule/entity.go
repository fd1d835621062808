package schedule

import "time"

// WorkSchedule defines a company's working day. Schedules referenced by
// historical attendance records are treated as immutable outside of
// administrative correction.
type WorkSchedule struct {
	ID                 string
	CompanyID          string
	Name               string
	WorkStartTime      time.Time // time-of-day; only clock fields are meaningful
	WorkEndTime        time.Time
	StandardWorkHours  float64
	LunchBreakMinutes  int
	GracePeriodMinutes int
	IsDefault          bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
