package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, code, name, role, department_id, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.Code, &e.Name, &e.Role, &e.DepartmentID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (code, name, role, department_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query, e.Code, e.Name, e.Role, e.DepartmentID, e.IsActive))
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE code = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}
	return e, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET code = $2, name = $3, role = $4, department_id = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, e.ID, e.Code, e.Name, e.Role, e.DepartmentID, e.IsActive).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

type relationRepositoryImpl struct {
	db *database.DB
}

func NewRelationRepository(db *database.DB) employee.RelationRepository {
	return &relationRepositoryImpl{db: db}
}

const relationColumns = `id, employee_id, company_id, active, hire_date, leave_date,
	direct_manager_id, work_schedule_id, created_at, updated_at`

func scanRelation(row pgx.Row) (employee.EmploymentRelation, error) {
	var rel employee.EmploymentRelation
	err := row.Scan(
		&rel.ID, &rel.EmployeeID, &rel.CompanyID, &rel.Active, &rel.HireDate, &rel.LeaveDate,
		&rel.DirectManagerID, &rel.WorkScheduleID, &rel.CreatedAt, &rel.UpdatedAt,
	)
	return rel, err
}

// Create implements employee.RelationRepository.
func (r *relationRepositoryImpl) Create(ctx context.Context, rel employee.EmploymentRelation) (employee.EmploymentRelation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employment_relations (
			employee_id, company_id, active, hire_date, leave_date, direct_manager_id, work_schedule_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + relationColumns

	created, err := scanRelation(q.QueryRow(ctx, query,
		rel.EmployeeID, rel.CompanyID, rel.Active, rel.HireDate, rel.LeaveDate,
		rel.DirectManagerID, rel.WorkScheduleID,
	))
	if err != nil {
		return employee.EmploymentRelation{}, fmt.Errorf("failed to create employment relation: %w", err)
	}
	return created, nil
}

// GetByID implements employee.RelationRepository.
func (r *relationRepositoryImpl) GetByID(ctx context.Context, id string) (employee.EmploymentRelation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + relationColumns + ` FROM employment_relations WHERE id = $1`

	rel, err := scanRelation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.EmploymentRelation{}, employee.ErrRelationNotFound
		}
		return employee.EmploymentRelation{}, fmt.Errorf("failed to get employment relation: %w", err)
	}
	return rel, nil
}

// GetActiveByEmployee implements employee.RelationRepository.
func (r *relationRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string) ([]employee.EmploymentRelation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + relationColumns + ` FROM employment_relations
		WHERE employee_id = $1 AND active
		ORDER BY hire_date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employment relations: %w", err)
	}
	defer rows.Close()

	var relations []employee.EmploymentRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employment relation: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

// ListActive implements employee.RelationRepository.
func (r *relationRepositoryImpl) ListActive(ctx context.Context) ([]employee.EmploymentRelation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + relationColumns + ` FROM employment_relations WHERE active ORDER BY id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employment relations: %w", err)
	}
	defer rows.Close()

	var relations []employee.EmploymentRelation
	for rows.Next() {
		rel, err := scanRelation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employment relation: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

// Update implements employee.RelationRepository.
func (r *relationRepositoryImpl) Update(ctx context.Context, rel employee.EmploymentRelation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employment_relations
		SET active = $2, leave_date = $3, direct_manager_id = $4, work_schedule_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, rel.ID, rel.Active, rel.LeaveDate, rel.DirectManagerID, rel.WorkScheduleID).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrRelationNotFound
		}
		return fmt.Errorf("failed to update employment relation: %w", err)
	}
	return nil
}

type managerialRelationshipRepositoryImpl struct {
	db *database.DB
}

func NewManagerialRelationshipRepository(db *database.DB) employee.ManagerialRelationshipRepository {
	return &managerialRelationshipRepositoryImpl{db: db}
}

// Create implements employee.ManagerialRelationshipRepository.
func (r *managerialRelationshipRepositoryImpl) Create(ctx context.Context, mr employee.ManagerialRelationship) (employee.ManagerialRelationship, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO managerial_relationships (employee_id, manager_id, company_id, effective_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_id, manager_id, company_id, effective_date, end_date, created_at`

	var created employee.ManagerialRelationship
	err := q.QueryRow(ctx, query, mr.EmployeeID, mr.ManagerID, mr.CompanyID, mr.EffectiveDate, mr.EndDate).Scan(
		&created.ID, &created.EmployeeID, &created.ManagerID, &created.CompanyID,
		&created.EffectiveDate, &created.EndDate, &created.CreatedAt,
	)
	if err != nil {
		return employee.ManagerialRelationship{}, fmt.Errorf("failed to create managerial relationship: %w", err)
	}
	return created, nil
}

// GetActiveManager implements employee.ManagerialRelationshipRepository.
// When several mappings overlap, the most recently effective one wins.
func (r *managerialRelationshipRepositoryImpl) GetActiveManager(ctx context.Context, employeeID string, asOf time.Time) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT manager_id FROM managerial_relationships
		WHERE employee_id = $1
			AND effective_date <= $2
			AND (end_date IS NULL OR end_date >= $2)
		ORDER BY effective_date DESC
		LIMIT 1`

	var managerID string
	if err := q.QueryRow(ctx, query, employeeID, asOf).Scan(&managerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get active manager: %w", err)
	}
	return managerID, nil
}

type approverAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewApproverAssignmentRepository(db *database.DB) employee.ApproverAssignmentRepository {
	return &approverAssignmentRepositoryImpl{db: db}
}

// Upsert implements employee.ApproverAssignmentRepository. A company keeps
// at most one designated approver per role.
func (r *approverAssignmentRepositoryImpl) Upsert(ctx context.Context, a employee.ApproverAssignment) (employee.ApproverAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO approver_assignments (company_id, role, approver_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, role) DO UPDATE SET approver_id = EXCLUDED.approver_id
		RETURNING id, company_id, role, approver_id, created_at`

	var created employee.ApproverAssignment
	err := q.QueryRow(ctx, query, a.CompanyID, a.Role, a.ApproverID).Scan(
		&created.ID, &created.CompanyID, &created.Role, &created.ApproverID, &created.CreatedAt,
	)
	if err != nil {
		return employee.ApproverAssignment{}, fmt.Errorf("failed to upsert approver assignment: %w", err)
	}
	return created, nil
}

// GetApprover implements employee.ApproverAssignmentRepository.
func (r *approverAssignmentRepositoryImpl) GetApprover(ctx context.Context, companyID, role string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.approver_id
		FROM approver_assignments a
		JOIN employees e ON e.id = a.approver_id AND e.is_active
		WHERE a.company_id = $1 AND a.role = $2`

	var approverID string
	if err := q.QueryRow(ctx, query, companyID, role).Scan(&approverID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get approver assignment: %w", err)
	}
	return approverID, nil
}
