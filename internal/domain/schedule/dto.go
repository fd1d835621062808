package schedule

import "context"

// CreateRequest defines a working day. Times are HH:MM clock values.
type CreateRequest struct {
	CompanyID          string  `json:"company_id"`
	Name               string  `json:"name"`
	WorkStartTime      string  `json:"work_start_time"`
	WorkEndTime        string  `json:"work_end_time"`
	StandardWorkHours  float64 `json:"standard_work_hours"`
	LunchBreakMinutes  int     `json:"lunch_break_minutes"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	IsDefault          bool    `json:"is_default"`
}

type UpdateRequest struct {
	Name               *string  `json:"name,omitempty"`
	WorkStartTime      *string  `json:"work_start_time,omitempty"`
	WorkEndTime        *string  `json:"work_end_time,omitempty"`
	StandardWorkHours  *float64 `json:"standard_work_hours,omitempty"`
	LunchBreakMinutes  *int     `json:"lunch_break_minutes,omitempty"`
	GracePeriodMinutes *int     `json:"grace_period_minutes,omitempty"`
	IsDefault          *bool    `json:"is_default,omitempty"`
	IsActive           *bool    `json:"is_active,omitempty"`
}

type Response struct {
	ID                 string  `json:"id"`
	CompanyID          string  `json:"company_id"`
	Name               string  `json:"name"`
	WorkStartTime      string  `json:"work_start_time"`
	WorkEndTime        string  `json:"work_end_time"`
	StandardWorkHours  float64 `json:"standard_work_hours"`
	LunchBreakMinutes  int     `json:"lunch_break_minutes"`
	GracePeriodMinutes int     `json:"grace_period_minutes"`
	IsDefault          bool    `json:"is_default"`
	IsActive           bool    `json:"is_active"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (Response, error)
	GetByID(ctx context.Context, id string) (Response, error)
	ListByCompany(ctx context.Context, companyID string) ([]Response, error)
	Update(ctx context.Context, id string, req UpdateRequest) (Response, error)
}
