package leave

import "context"

type RequestFilter struct {
	EmployeeID *string
	Status     *string
	// RecentDays limits results to requests starting within the last N days.
	RecentDays *int
	Page       int
	Limit      int
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, companyID string, filter RequestFilter) ([]Request, int64, error)

	// UpdateStatus transitions a pending request to a terminal status in a
	// single compare-and-swap; ErrAlreadyProcessed when the request is no
	// longer pending.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
