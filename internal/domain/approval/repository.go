package approval

import (
	"context"
	"time"
)

type PolicyRepository interface {
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id string) (Policy, error)
	// ListActive returns active policies visible to a company: its own plus
	// the company-agnostic ones.
	ListActive(ctx context.Context, companyID string) ([]Policy, error)
	Update(ctx context.Context, p Policy) error
}

type StepRepository interface {
	Create(ctx context.Context, s Step) (Step, error)
	GetByID(ctx context.Context, id string) (Step, error)
	ListByRequest(ctx context.Context, kind RequestKind, requestID string) ([]Step, error)
	ListPendingByApprover(ctx context.Context, approverID string) ([]Step, error)

	// Decide flips a pending step to a terminal status. The update is a
	// compare-and-swap on status; ErrStepNotPending when the step was
	// already processed concurrently.
	Decide(ctx context.Context, stepID string, status StepStatus, comment *string, decidedAt time.Time) error
}
