package attendance

import "errors"

var (
	ErrAlreadyClockedIn  = errors.New("an attendance event already exists for today")
	ErrNotClockedIn      = errors.New("no clock-in recorded for today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrRecordNotFound    = errors.New("attendance record not found")
	// ErrLocationOutOfRange means the employee is outside the company
	// geofence.
	ErrLocationOutOfRange = errors.New("location is outside the allowed radius")
)
