package overtime

import "context"

type RequestFilter struct {
	EmployeeID *string
	Status     *string
	Page       int
	Limit      int
}

type RequestRepository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, companyID string, filter RequestFilter) ([]Request, int64, error)

	// UpdateStatus is a compare-and-swap from pending to a terminal status.
	UpdateStatus(ctx context.Context, id string, status Status) error
}
