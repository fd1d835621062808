package ledger

import "context"

// Repository persists quota accounts. Deduct and Credit are single
// conditional updates so concurrent terminal approvals cannot both pass a
// stale balance check.
type Repository interface {
	// GetOrCreate returns the account for (employee, year, category),
	// creating it with defaultTotal when absent.
	GetOrCreate(ctx context.Context, employeeID string, year int, category Category, defaultTotal float64) (Account, error)

	Get(ctx context.Context, employeeID string, year int, category Category) (Account, error)

	// ListByEmployeeYear returns the read-only projection for the ledger
	// query interface.
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Account, error)

	// Deduct adds amount to used iff remaining covers it, in one statement.
	// Returns ErrInsufficientBalance otherwise, leaving the account unchanged.
	Deduct(ctx context.Context, employeeID string, year int, category Category, amount float64) error

	// Restore subtracts amount from used, floored at zero. Backs the HR
	// corrective adjustment when hours were debited in error.
	Restore(ctx context.Context, employeeID string, year int, category Category, amount float64) error

	// Credit grows the total, e.g. overtime converted to compensatory hours.
	Credit(ctx context.Context, employeeID string, year int, category Category, amount float64) error

	// ResetTotal sets the total while preserving used. Backs the statutory
	// annual-leave refresh and corrective HR action.
	ResetTotal(ctx context.Context, employeeID string, year int, category Category, total float64) error
}
