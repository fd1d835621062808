package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type ledgerRepositoryImpl struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.Repository {
	return &ledgerRepositoryImpl{db: db}
}

// remaining is generated in the database as total - used, so every read
// satisfies the ledger invariant without application bookkeeping.
const ledgerColumns = `id, employee_id, year, category, total, used, remaining, updated_at`

func scanAccount(row pgx.Row) (ledger.Account, error) {
	var a ledger.Account
	err := row.Scan(&a.ID, &a.EmployeeID, &a.Year, &a.Category, &a.Total, &a.Used, &a.Remaining, &a.UpdatedAt)
	return a, err
}

// GetOrCreate implements ledger.Repository. The upsert keeps an existing
// account untouched so first-touch defaults never clobber adjusted totals.
func (r *ledgerRepositoryImpl) GetOrCreate(ctx context.Context, employeeID string, year int, category ledger.Category, defaultTotal float64) (ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ledger_accounts (employee_id, year, category, total, used)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (employee_id, year, category) DO UPDATE SET employee_id = EXCLUDED.employee_id
		RETURNING ` + ledgerColumns

	account, err := scanAccount(q.QueryRow(ctx, query, employeeID, year, category, defaultTotal))
	if err != nil {
		return ledger.Account{}, fmt.Errorf("failed to get or create ledger account: %w", err)
	}
	return account, nil
}

// Get implements ledger.Repository.
func (r *ledgerRepositoryImpl) Get(ctx context.Context, employeeID string, year int, category ledger.Category) (ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + ` FROM ledger_accounts
		WHERE employee_id = $1 AND year = $2 AND category = $3`

	account, err := scanAccount(q.QueryRow(ctx, query, employeeID, year, category))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.Account{}, ledger.ErrAccountNotFound
		}
		return ledger.Account{}, fmt.Errorf("failed to get ledger account: %w", err)
	}
	return account, nil
}

// ListByEmployeeYear implements ledger.Repository.
func (r *ledgerRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]ledger.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + ledgerColumns + ` FROM ledger_accounts
		WHERE employee_id = $1 AND year = $2
		ORDER BY category`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Deduct implements ledger.Repository. The balance check and the write are
// one statement, so two concurrent terminal approvals cannot both pass a
// stale check.
func (r *ledgerRepositoryImpl) Deduct(ctx context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ledger_accounts
		SET used = used + $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND category = $3 AND total - used >= $4`

	tag, err := q.Exec(ctx, query, employeeID, year, category, amount)
	if err != nil {
		return fmt.Errorf("failed to deduct from ledger account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrInsufficientBalance
	}
	return nil
}

// Restore implements ledger.Repository.
func (r *ledgerRepositoryImpl) Restore(ctx context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ledger_accounts
		SET used = GREATEST(used - $4, 0), updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND category = $3`

	tag, err := q.Exec(ctx, query, employeeID, year, category, amount)
	if err != nil {
		return fmt.Errorf("failed to restore ledger account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

// Credit implements ledger.Repository.
func (r *ledgerRepositoryImpl) Credit(ctx context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ledger_accounts
		SET total = total + $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND category = $3`

	tag, err := q.Exec(ctx, query, employeeID, year, category, amount)
	if err != nil {
		return fmt.Errorf("failed to credit ledger account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

// ResetTotal implements ledger.Repository.
func (r *ledgerRepositoryImpl) ResetTotal(ctx context.Context, employeeID string, year int, category ledger.Category, total float64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE ledger_accounts
		SET total = $4, updated_at = NOW()
		WHERE employee_id = $1 AND year = $2 AND category = $3`

	tag, err := q.Exec(ctx, query, employeeID, year, category, total)
	if err != nil {
		return fmt.Errorf("failed to reset ledger total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}
