package schedule

import "context"

type WorkScheduleRepository interface {
	Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, id string) (WorkSchedule, error)
	// GetCompanyDefault returns the company's default active schedule, or
	// ErrScheduleNotFound when none is configured.
	GetCompanyDefault(ctx context.Context, companyID string) (WorkSchedule, error)
	ListByCompany(ctx context.Context, companyID string) ([]WorkSchedule, error)
	Update(ctx context.Context, ws WorkSchedule) error
}
