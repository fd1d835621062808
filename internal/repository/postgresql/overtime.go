package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/overtime"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.RequestRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `r.id, r.relation_id, r.employee_id, r.company_id, r.date, r.start_time, r.end_time,
	r.hours, r.reason, r.compensation, r.pay_hours, r.compensatory_hours, r.status,
	r.created_at, r.updated_at, e.name`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var req overtime.Request
	err := row.Scan(
		&req.ID, &req.RelationID, &req.EmployeeID, &req.CompanyID, &req.Date, &req.StartTime, &req.EndTime,
		&req.Hours, &req.Reason, &req.Compensation, &req.PayHours, &req.CompensatoryHours, &req.Status,
		&req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	return req, err
}

// Create implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO overtime_requests (
				relation_id, employee_id, company_id, date, start_time, end_time,
				hours, reason, compensation, pay_hours, compensatory_hours, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *
		)
		SELECT ` + overtimeColumns + ` FROM inserted r JOIN employees e ON e.id = r.employee_id`

	created, err := scanOvertimeRequest(q.QueryRow(ctx, query,
		req.RelationID, req.EmployeeID, req.CompanyID, req.Date, req.StartTime, req.EndTime,
		req.Hours, req.Reason, req.Compensation, req.PayHours, req.CompensatoryHours, req.Status,
	))
	if err != nil {
		return overtime.Request{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return created, nil
}

// GetByID implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1`

	req, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return overtime.Request{}, overtime.ErrRequestNotFound
		}
		return overtime.Request{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return req, nil
}

// List implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) List(ctx context.Context, companyID string, filter overtime.RequestFilter) ([]overtime.Request, int64, error) {
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

	var total int64
	countQuery := `SELECT COUNT(*) FROM overtime_requests r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count overtime requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests r
		JOIN employees e ON e.id = r.employee_id ` + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		req, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// UpdateStatus implements overtime.RequestRepository.
func (r *overtimeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status overtime.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update overtime request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return overtime.ErrAlreadyProcessed
	}
	return nil
}
