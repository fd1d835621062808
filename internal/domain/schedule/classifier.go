package schedule

import "time"

// CheckInResult is the lateness classification of a clock-in.
type CheckInResult struct {
	IsLate      bool
	LateMinutes int
}

// CheckOutResult is the earliness classification of a clock-out.
type CheckOutResult struct {
	IsEarly      bool
	EarlyMinutes int
}

// combine projects a schedule's time-of-day onto the calendar date of ref.
func combine(ref, timeOfDay time.Time) time.Time {
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		ref.Location(),
	)
}

// ClassifyCheckIn judges a clock-in against the schedule's start time. A
// check-in is late once it passes the grace deadline, but the reported
// minutes are measured from the nominal start, not from the deadline.
// A nil schedule skips classification; a missing schedule never blocks the
// clock event.
func (ws *WorkSchedule) ClassifyCheckIn(now time.Time) CheckInResult {
	if ws == nil {
		return CheckInResult{}
	}

	scheduledStart := combine(now, ws.WorkStartTime)
	graceDeadline := scheduledStart.Add(time.Duration(ws.GracePeriodMinutes) * time.Minute)

	if !now.After(graceDeadline) {
		return CheckInResult{}
	}

	lateMinutes := int(now.Sub(scheduledStart).Minutes())
	if lateMinutes < 0 {
		lateMinutes = 0
	}
	return CheckInResult{IsLate: true, LateMinutes: lateMinutes}
}

// ClassifyCheckOut judges a clock-out against the schedule's end time.
func (ws *WorkSchedule) ClassifyCheckOut(now time.Time) CheckOutResult {
	if ws == nil {
		return CheckOutResult{}
	}

	scheduledEnd := combine(now, ws.WorkEndTime)
	if !now.Before(scheduledEnd) {
		return CheckOutResult{}
	}

	earlyMinutes := int(scheduledEnd.Sub(now).Minutes())
	if earlyMinutes < 0 {
		earlyMinutes = 0
	}
	return CheckOutResult{IsEarly: true, EarlyMinutes: earlyMinutes}
}
