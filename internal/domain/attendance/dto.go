package attendance

import "context"

// ClockInRequest carries the scanned QR coordinates and the device
// coordinates. The event timestamp is taken server-side, never from the
// payload.
type ClockInRequest struct {
	RelationID    string  `json:"relation_id"`
	QRLatitude    float64 `json:"qr_latitude"`
	QRLongitude   float64 `json:"qr_longitude"`
	UserLatitude  float64 `json:"user_latitude"`
	UserLongitude float64 `json:"user_longitude"`
	Location      string  `json:"location,omitempty"`
}

// ClockOutRequest closes today's event. RecordID targets an event directly;
// when omitted, RelationID resolves today's open event instead.
type ClockOutRequest struct {
	RecordID      string  `json:"record_id,omitempty"`
	RelationID    string  `json:"relation_id,omitempty"`
	QRLatitude    float64 `json:"qr_latitude"`
	QRLongitude   float64 `json:"qr_longitude"`
	UserLatitude  float64 `json:"user_latitude"`
	UserLongitude float64 `json:"user_longitude"`
	Location      string  `json:"location,omitempty"`
}

type EventResponse struct {
	ID                string  `json:"id"`
	RelationID        string  `json:"relation_id"`
	Date              string  `json:"date"`
	CheckInTime       string  `json:"checkin_time"`
	CheckOutTime      string  `json:"checkout_time"`
	CheckInLocation   string  `json:"checkin_location,omitempty"`
	CheckOutLocation  string  `json:"checkout_location,omitempty"`
	WorkHours         float64 `json:"work_hours"`
	DistanceMeters    float64 `json:"distance_meters"`
	IsLate            bool    `json:"is_late"`
	LateMinutes       int     `json:"late_minutes"`
	IsEarlyLeave      bool    `json:"is_early_leave"`
	EarlyLeaveMinutes int     `json:"early_leave_minutes"`
	IsMakeup          bool    `json:"is_makeup"`
}

type ListEventResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Events     []EventResponse `json:"events"`
}

// Service is the attendance event processor: geofenced clock-in/out plus
// read queries.
type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (EventResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (EventResponse, error)
	ListEvents(ctx context.Context, companyID string, filter EventFilter) (ListEventResponse, error)
}
