package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type approvalPolicyRepositoryImpl struct {
	db *database.DB
}

func NewApprovalPolicyRepository(db *database.DB) approval.PolicyRepository {
	return &approvalPolicyRepositoryImpl{db: db}
}

// Levels are stored as a JSONB document; the chain definition is read and
// written whole, never row by row.
const policyColumns = `id, name, company_id, min_days, max_days, levels, is_active, created_at, updated_at`

func scanPolicy(row pgx.Row) (approval.Policy, error) {
	var p approval.Policy
	var levels []byte
	err := row.Scan(&p.ID, &p.Name, &p.CompanyID, &p.MinDays, &p.MaxDays, &levels, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return approval.Policy{}, err
	}
	if err := json.Unmarshal(levels, &p.Levels); err != nil {
		return approval.Policy{}, fmt.Errorf("failed to decode policy levels: %w", err)
	}
	return p, nil
}

// Create implements approval.PolicyRepository.
func (r *approvalPolicyRepositoryImpl) Create(ctx context.Context, p approval.Policy) (approval.Policy, error) {
	q := GetQuerier(ctx, r.db)

	levels, err := json.Marshal(p.Levels)
	if err != nil {
		return approval.Policy{}, fmt.Errorf("failed to encode policy levels: %w", err)
	}

	query := `
		INSERT INTO approval_policies (name, company_id, min_days, max_days, levels, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + policyColumns

	created, err := scanPolicy(q.QueryRow(ctx, query, p.Name, p.CompanyID, p.MinDays, p.MaxDays, levels, p.IsActive))
	if err != nil {
		return approval.Policy{}, fmt.Errorf("failed to create approval policy: %w", err)
	}
	return created, nil
}

// GetByID implements approval.PolicyRepository.
func (r *approvalPolicyRepositoryImpl) GetByID(ctx context.Context, id string) (approval.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM approval_policies WHERE id = $1`

	p, err := scanPolicy(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Policy{}, approval.ErrPolicyNotFound
		}
		return approval.Policy{}, fmt.Errorf("failed to get approval policy: %w", err)
	}
	return p, nil
}

// ListActive implements approval.PolicyRepository.
func (r *approvalPolicyRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]approval.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM approval_policies
		WHERE is_active AND (company_id IS NULL OR company_id = $1)
		ORDER BY min_days, id`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval policies: %w", err)
	}
	defer rows.Close()

	var policies []approval.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

// Update implements approval.PolicyRepository.
func (r *approvalPolicyRepositoryImpl) Update(ctx context.Context, p approval.Policy) error {
	q := GetQuerier(ctx, r.db)

	levels, err := json.Marshal(p.Levels)
	if err != nil {
		return fmt.Errorf("failed to encode policy levels: %w", err)
	}

	query := `
		UPDATE approval_policies
		SET name = $2, min_days = $3, max_days = $4, levels = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, p.ID, p.Name, p.MinDays, p.MaxDays, levels, p.IsActive).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.ErrPolicyNotFound
		}
		return fmt.Errorf("failed to update approval policy: %w", err)
	}
	return nil
}

type approvalStepRepositoryImpl struct {
	db *database.DB
}

func NewApprovalStepRepository(db *database.DB) approval.StepRepository {
	return &approvalStepRepositoryImpl{db: db}
}

const stepColumns = `s.id, s.request_kind, s.request_id, s.level, s.approver_id, s.status,
	s.comment, s.approved_at, s.created_at, e.name`

func scanStep(row pgx.Row) (approval.Step, error) {
	var st approval.Step
	err := row.Scan(
		&st.ID, &st.RequestKind, &st.RequestID, &st.Level, &st.ApproverID, &st.Status,
		&st.Comment, &st.ApprovedAt, &st.CreatedAt, &st.ApproverName,
	)
	return st, err
}

// Create implements approval.StepRepository.
func (r *approvalStepRepositoryImpl) Create(ctx context.Context, s approval.Step) (approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO approval_steps (request_kind, request_id, level, approver_id, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + stepColumns + ` FROM inserted s JOIN employees e ON e.id = s.approver_id`

	created, err := scanStep(q.QueryRow(ctx, query, s.RequestKind, s.RequestID, s.Level, s.ApproverID, s.Status))
	if err != nil {
		return approval.Step{}, fmt.Errorf("failed to create approval step: %w", err)
	}
	return created, nil
}

// GetByID implements approval.StepRepository.
func (r *approvalStepRepositoryImpl) GetByID(ctx context.Context, id string) (approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + stepColumns + ` FROM approval_steps s
		JOIN employees e ON e.id = s.approver_id
		WHERE s.id = $1`

	st, err := scanStep(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return approval.Step{}, approval.ErrStepNotFound
		}
		return approval.Step{}, fmt.Errorf("failed to get approval step: %w", err)
	}
	return st, nil
}

// ListByRequest implements approval.StepRepository.
func (r *approvalStepRepositoryImpl) ListByRequest(ctx context.Context, kind approval.RequestKind, requestID string) ([]approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + stepColumns + ` FROM approval_steps s
		JOIN employees e ON e.id = s.approver_id
		WHERE s.request_kind = $1 AND s.request_id = $2
		ORDER BY s.level`

	rows, err := q.Query(ctx, query, kind, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps: %w", err)
	}
	defer rows.Close()

	var steps []approval.Step
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// ListPendingByApprover implements approval.StepRepository.
func (r *approvalStepRepositoryImpl) ListPendingByApprover(ctx context.Context, approverID string) ([]approval.Step, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + stepColumns + ` FROM approval_steps s
		JOIN employees e ON e.id = s.approver_id
		WHERE s.approver_id = $1 AND s.status = 'pending'
		ORDER BY s.created_at`

	rows, err := q.Query(ctx, query, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approval steps: %w", err)
	}
	defer rows.Close()

	var steps []approval.Step
	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval step: %w", err)
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// Decide implements approval.StepRepository. The status predicate is the
// compare-and-swap that prevents double-processing under concurrent actions.
func (r *approvalStepRepositoryImpl) Decide(ctx context.Context, stepID string, status approval.StepStatus, comment *string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE approval_steps
		SET status = $2, comment = $3, approved_at = $4
		WHERE id = $1 AND status = 'pending'`

	tag, err := q.Exec(ctx, query, stepID, status, comment, decidedAt)
	if err != nil {
		return fmt.Errorf("failed to decide approval step: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return approval.ErrStepNotPending
	}
	return nil
}
