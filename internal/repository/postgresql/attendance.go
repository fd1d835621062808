package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, relation_id, company_id, date, check_in_time, check_out_time,
	check_in_location, check_out_location, work_hours, is_late, late_minutes,
	is_early_leave, early_leave_minutes, schedule_id, is_makeup, created_at, updated_at`

func scanAttendanceEvent(row pgx.Row) (attendance.Event, error) {
	var ev attendance.Event
	err := row.Scan(
		&ev.ID, &ev.RelationID, &ev.CompanyID, &ev.Date, &ev.CheckInTime, &ev.CheckOutTime,
		&ev.CheckInLocation, &ev.CheckOutLocation, &ev.WorkHours, &ev.IsLate, &ev.LateMinutes,
		&ev.IsEarlyLeave, &ev.EarlyLeaveMinutes, &ev.ScheduleID, &ev.IsMakeup, &ev.CreatedAt, &ev.UpdatedAt,
	)
	return ev, err
}

// Create implements attendance.EventRepository. The unique index on
// (relation_id, date) turns a concurrent duplicate into ErrAlreadyClockedIn.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, ev attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			relation_id, company_id, date, check_in_time, check_out_time,
			check_in_location, check_out_location, work_hours, is_late, late_minutes,
			is_early_leave, early_leave_minutes, schedule_id, is_makeup
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + attendanceColumns

	created, err := scanAttendanceEvent(q.QueryRow(ctx, query,
		ev.RelationID, ev.CompanyID, ev.Date, ev.CheckInTime, ev.CheckOutTime,
		ev.CheckInLocation, ev.CheckOutLocation, ev.WorkHours, ev.IsLate, ev.LateMinutes,
		ev.IsEarlyLeave, ev.EarlyLeaveMinutes, ev.ScheduleID, ev.IsMakeup,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Event{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_events WHERE id = $1`

	ev, err := scanAttendanceEvent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrRecordNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get attendance event: %w", err)
	}
	return ev, nil
}

// GetByRelationAndDate implements attendance.EventRepository. A missing row
// is not an error; it simply means no punch happened that day.
func (r *attendanceRepositoryImpl) GetByRelationAndDate(ctx context.Context, relationID string, date time.Time) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_events WHERE relation_id = $1 AND date = $2`

	ev, err := scanAttendanceEvent(q.QueryRow(ctx, query, relationID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance event by date: %w", err)
	}
	return &ev, nil
}

// List implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, filter attendance.EventFilter) ([]attendance.Event, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE company_id = $1`
	args := []interface{}{companyID}

	if filter.RelationID != nil {
		args = append(args, *filter.RelationID)
		where += fmt.Sprintf(" AND relation_id = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		where += fmt.Sprintf(" AND date = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendance_events ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance events: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + attendanceColumns + ` FROM attendance_events ` + where +
		fmt.Sprintf(" ORDER BY date DESC, check_in_time DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		ev, err := scanAttendanceEvent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	return events, total, rows.Err()
}

// Update implements attendance.EventRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, ev attendance.Event) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET check_in_time = $2, check_out_time = $3, check_in_location = $4, check_out_location = $5,
			work_hours = $6, is_late = $7, late_minutes = $8, is_early_leave = $9,
			early_leave_minutes = $10, is_makeup = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query,
		ev.ID, ev.CheckInTime, ev.CheckOutTime, ev.CheckInLocation, ev.CheckOutLocation,
		ev.WorkHours, ev.IsLate, ev.LateMinutes, ev.IsEarlyLeave,
		ev.EarlyLeaveMinutes, ev.IsMakeup,
	).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance event: %w", err)
	}
	return nil
}
