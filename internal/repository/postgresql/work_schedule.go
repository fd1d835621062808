package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

const workScheduleColumns = `id, company_id, name, work_start_time, work_end_time, standard_work_hours,
	lunch_break_minutes, grace_period_minutes, is_default, is_active, created_at, updated_at`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var ws schedule.WorkSchedule
	err := row.Scan(
		&ws.ID, &ws.CompanyID, &ws.Name, &ws.WorkStartTime, &ws.WorkEndTime, &ws.StandardWorkHours,
		&ws.LunchBreakMinutes, &ws.GracePeriodMinutes, &ws.IsDefault, &ws.IsActive, &ws.CreatedAt, &ws.UpdatedAt,
	)
	return ws, err
}

// Create implements schedule.WorkScheduleRepository. A new default schedule
// demotes the company's previous default in the same transaction scope.
func (r *workScheduleRepositoryImpl) Create(ctx context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	if ws.IsDefault {
		demote := `UPDATE work_schedules SET is_default = FALSE, updated_at = NOW() WHERE company_id = $1 AND is_default`
		if _, err := q.Exec(ctx, demote, ws.CompanyID); err != nil {
			return schedule.WorkSchedule{}, fmt.Errorf("failed to demote default schedule: %w", err)
		}
	}

	query := `
		INSERT INTO work_schedules (
			company_id, name, work_start_time, work_end_time, standard_work_hours,
			lunch_break_minutes, grace_period_minutes, is_default, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + workScheduleColumns

	created, err := scanWorkSchedule(q.QueryRow(ctx, query,
		ws.CompanyID, ws.Name, ws.WorkStartTime, ws.WorkEndTime, ws.StandardWorkHours,
		ws.LunchBreakMinutes, ws.GracePeriodMinutes, ws.IsDefault, ws.IsActive,
	))
	if err != nil {
		return schedule.WorkSchedule{}, fmt.Errorf("failed to create work schedule: %w", err)
	}
	return created, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules WHERE id = $1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return ws, nil
}

// GetCompanyDefault implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) GetCompanyDefault(ctx context.Context, companyID string) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules
		WHERE company_id = $1 AND is_default AND is_active
		LIMIT 1`

	ws, err := scanWorkSchedule(q.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get default work schedule: %w", err)
	}
	return ws, nil
}

// ListByCompany implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules WHERE company_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.WorkSchedule
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}
	return schedules, rows.Err()
}

// Update implements schedule.WorkScheduleRepository.
func (r *workScheduleRepositoryImpl) Update(ctx context.Context, ws schedule.WorkSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedules
		SET name = $2, work_start_time = $3, work_end_time = $4, standard_work_hours = $5,
			lunch_break_minutes = $6, grace_period_minutes = $7, is_default = $8, is_active = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query,
		ws.ID, ws.Name, ws.WorkStartTime, ws.WorkEndTime, ws.StandardWorkHours,
		ws.LunchBreakMinutes, ws.GracePeriodMinutes, ws.IsDefault, ws.IsActive,
	).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrScheduleNotFound
		}
		return fmt.Errorf("failed to update work schedule: %w", err)
	}
	return nil
}
