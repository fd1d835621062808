package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/makeup"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type makeupRepositoryImpl struct {
	db *database.DB
}

func NewMakeupRepository(db *database.DB) makeup.RequestRepository {
	return &makeupRepositoryImpl{db: db}
}

const makeupColumns = `r.id, r.relation_id, r.employee_id, r.company_id, r.date, r.type,
	r.original_checkin_time, r.original_checkout_time, r.requested_checkin_time, r.requested_checkout_time,
	r.reason, r.status, r.attendance_id, r.created_at, r.updated_at, e.name`

func scanMakeupRequest(row pgx.Row) (makeup.Request, error) {
	var req makeup.Request
	err := row.Scan(
		&req.ID, &req.RelationID, &req.EmployeeID, &req.CompanyID, &req.Date, &req.Type,
		&req.OriginalCheckInTime, &req.OriginalCheckOutTime, &req.RequestedCheckInTime, &req.RequestedCheckOutTime,
		&req.Reason, &req.Status, &req.AttendanceID, &req.CreatedAt, &req.UpdatedAt, &req.EmployeeName,
	)
	return req, err
}

// Create implements makeup.RequestRepository.
func (r *makeupRepositoryImpl) Create(ctx context.Context, req makeup.Request) (makeup.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO makeup_requests (
				relation_id, employee_id, company_id, date, type,
				original_checkin_time, original_checkout_time,
				requested_checkin_time, requested_checkout_time,
				reason, status, attendance_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *
		)
		SELECT ` + makeupColumns + ` FROM inserted r JOIN employees e ON e.id = r.employee_id`

	created, err := scanMakeupRequest(q.QueryRow(ctx, query,
		req.RelationID, req.EmployeeID, req.CompanyID, req.Date, req.Type,
		req.OriginalCheckInTime, req.OriginalCheckOutTime,
		req.RequestedCheckInTime, req.RequestedCheckOutTime,
		req.Reason, req.Status, req.AttendanceID,
	))
	if err != nil {
		return makeup.Request{}, fmt.Errorf("failed to create makeup request: %w", err)
	}
	return created, nil
}

// GetByID implements makeup.RequestRepository.
func (r *makeupRepositoryImpl) GetByID(ctx context.Context, id string) (makeup.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + makeupColumns + ` FROM makeup_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1`

	req, err := scanMakeupRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeup.Request{}, makeup.ErrRequestNotFound
		}
		return makeup.Request{}, fmt.Errorf("failed to get makeup request: %w", err)
	}
	return req, nil
}

// List implements makeup.RequestRepository.
func (r *makeupRepositoryImpl) List(ctx context.Context, companyID string, filter makeup.RequestFilter) ([]makeup.Request, int64, error) {
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
	countQuery := `SELECT COUNT(*) FROM makeup_requests r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count makeup requests: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + makeupColumns + ` FROM makeup_requests r
		JOIN employees e ON e.id = r.employee_id ` + where +
		fmt.Sprintf(" ORDER BY r.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list makeup requests: %w", err)
	}
	defer rows.Close()

	var requests []makeup.Request
	for rows.Next() {
		req, err := scanMakeupRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan makeup request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// UpdateStatus implements makeup.RequestRepository.
func (r *makeupRepositoryImpl) UpdateStatus(ctx context.Context, id string, status makeup.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE makeup_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update makeup request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return makeup.ErrAlreadyProcessed
	}
	return nil
}

// LinkAttendance implements makeup.RequestRepository.
func (r *makeupRepositoryImpl) LinkAttendance(ctx context.Context, id string, attendanceID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE makeup_requests SET attendance_id = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to link attendance to makeup request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return makeup.ErrRequestNotFound
	}
	return nil
}
