package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.RequestRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `r.id, r.relation_id, r.employee_id, r.company_id, r.category, r.start_time, r.end_time,
	r.hours, r.reason, r.substitute_id, r.status, r.created_at, r.updated_at, e.name`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var req leave.Request
	err := row.Scan(
		&req.ID, &req.RelationID, &req.EmployeeID, &req.CompanyID, &req.Category, &req.StartTime, &req.EndTime,
		&req.Hours, &req.Reason, &req.SubstituteID, &req.Status, &req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	return req, err
}

// Create implements leave.RequestRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO leave_requests (
				relation_id, employee_id, company_id, category, start_time, end_time,
				hours, reason, substitute_id, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + leaveColumns + ` FROM inserted r JOIN employees e ON e.id = r.employee_id`

	created, err := scanLeaveRequest(q.QueryRow(ctx, query,
		req.RelationID, req.EmployeeID, req.CompanyID, req.Category, req.StartTime, req.EndTime,
		req.Hours, req.Reason, req.SubstituteID, req.Status,
	))
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// GetByID implements leave.RequestRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1`

	req, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return req, nil
}

// List implements leave.RequestRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, companyID string, filter leave.RequestFilter) ([]leave.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE r.company_id = $1`
	args := []interface{}{companyID}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where += fmt.Sprintf(" AND r.employee_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.RecentDays != nil {
		args = append(args, *filter.RecentDays)
		where += fmt.Sprintf(" AND r.start_time >= NOW() - ($%d || ' days')::interval", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + leaveColumns + ` FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id ` + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// UpdateStatus implements leave.RequestRepository. The status predicate
// makes the transition a compare-and-swap from pending.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}
	return nil
}
