package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type ServiceImpl struct {
	employee.EmployeeRepository
	employee.RelationRepository
	employee.ManagerialRelationshipRepository
	employee.ApproverAssignmentRepository
	clock clock.Clock
}

var _ employee.Service = (*ServiceImpl)(nil)

func NewService(
	employeeRepo employee.EmployeeRepository,
	relationRepo employee.RelationRepository,
	managerialRepo employee.ManagerialRelationshipRepository,
	assignmentRepo employee.ApproverAssignmentRepository,
	clk clock.Clock,
) employee.Service {
	return &ServiceImpl{
		EmployeeRepository:               employeeRepo,
		RelationRepository:               relationRepo,
		ManagerialRelationshipRepository: managerialRepo,
		ApproverAssignmentRepository:     assignmentRepo,
		clock:                            clk,
	}
}

func validRole(role string) (employee.Role, bool) {
	switch employee.Role(role) {
	case employee.RoleEmployee, employee.RoleManager, employee.RoleHRAdmin, employee.RoleCEO, employee.RoleSystemAdmin:
		return employee.Role(role), true
	}
	return "", false
}

func mapEmployee(e employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           e.ID,
		Code:         e.Code,
		Name:         e.Name,
		Role:         string(e.Role),
		DepartmentID: e.DepartmentID,
		IsActive:     e.IsActive,
		CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapRelation(rel employee.EmploymentRelation) employee.RelationResponse {
	resp := employee.RelationResponse{
		ID:              rel.ID,
		EmployeeID:      rel.EmployeeID,
		CompanyID:       rel.CompanyID,
		Active:          rel.Active,
		HireDate:        rel.HireDate.Format("2006-01-02"),
		DirectManagerID: rel.DirectManagerID,
		WorkScheduleID:  rel.WorkScheduleID,
	}
	if rel.LeaveDate != nil {
		leaveDate := rel.LeaveDate.Format("2006-01-02")
		resp.LeaveDate = &leaveDate
	}
	return resp
}

// CreateEmployee implements employee.Service.
func (s *ServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	role, ok := validRole(req.Role)
	if !ok {
		role = employee.RoleEmployee
	}

	now := s.clock.Now()
	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		ID:           uuid.New().String(),
		Code:         req.Code,
		Name:         req.Name,
		Role:         role,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return mapEmployee(created), nil
}

// GetEmployee implements employee.Service.
func (s *ServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployee(e), nil
}

// UpdateEmployee implements employee.Service. Employees are deactivated via
// IsActive, never deleted.
func (s *ServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Role != nil {
		if role, ok := validRole(*req.Role); ok {
			e.Role = role
		}
	}
	if req.DepartmentID != nil {
		e.DepartmentID = req.DepartmentID
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	e.UpdatedAt = s.clock.Now()

	if err := s.EmployeeRepository.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return mapEmployee(e), nil
}

// CreateRelation implements employee.Service.
func (s *ServiceImpl) CreateRelation(ctx context.Context, req employee.CreateRelationRequest) (employee.RelationResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.RelationResponse{}, err
	}

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return employee.RelationResponse{}, fmt.Errorf("invalid hire date %q, expected YYYY-MM-DD: %w", req.HireDate, err)
	}

	now := s.clock.Now()
	created, err := s.RelationRepository.Create(ctx, employee.EmploymentRelation{
		ID:              uuid.New().String(),
		EmployeeID:      req.EmployeeID,
		CompanyID:       req.CompanyID,
		Active:          true,
		HireDate:        hireDate,
		DirectManagerID: req.DirectManagerID,
		WorkScheduleID:  req.WorkScheduleID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return employee.RelationResponse{}, fmt.Errorf("failed to create employment relation: %w", err)
	}

	return mapRelation(created), nil
}

// GetRelation implements employee.Service.
func (s *ServiceImpl) GetRelation(ctx context.Context, id string) (employee.RelationResponse, error) {
	rel, err := s.RelationRepository.GetByID(ctx, id)
	if err != nil {
		return employee.RelationResponse{}, err
	}
	return mapRelation(rel), nil
}

// ListActiveRelations implements employee.Service.
func (s *ServiceImpl) ListActiveRelations(ctx context.Context, employeeID string) ([]employee.RelationResponse, error) {
	relations, err := s.RelationRepository.GetActiveByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employment relations: %w", err)
	}

	responses := make([]employee.RelationResponse, 0, len(relations))
	for _, rel := range relations {
		responses = append(responses, mapRelation(rel))
	}
	return responses, nil
}

// UpdateRelation implements employee.Service. Setting a leave date
// deactivates the relation.
func (s *ServiceImpl) UpdateRelation(ctx context.Context, id string, req employee.UpdateRelationRequest) (employee.RelationResponse, error) {
	rel, err := s.RelationRepository.GetByID(ctx, id)
	if err != nil {
		return employee.RelationResponse{}, err
	}

	if req.LeaveDate != nil {
		leaveDate, err := time.Parse("2006-01-02", *req.LeaveDate)
		if err != nil {
			return employee.RelationResponse{}, fmt.Errorf("invalid leave date %q, expected YYYY-MM-DD: %w", *req.LeaveDate, err)
		}
		rel.LeaveDate = &leaveDate
		rel.Active = false
	}
	if req.Active != nil {
		rel.Active = *req.Active
	}
	if req.DirectManagerID != nil {
		rel.DirectManagerID = req.DirectManagerID
	}
	if req.WorkScheduleID != nil {
		rel.WorkScheduleID = req.WorkScheduleID
	}
	rel.UpdatedAt = s.clock.Now()

	if err := s.RelationRepository.Update(ctx, rel); err != nil {
		return employee.RelationResponse{}, fmt.Errorf("failed to update employment relation: %w", err)
	}

	return mapRelation(rel), nil
}

// CreateManagerialRelationship implements employee.Service.
func (s *ServiceImpl) CreateManagerialRelationship(ctx context.Context, req employee.CreateManagerialRelationshipRequest) (employee.ManagerialRelationshipResponse, error) {
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return employee.ManagerialRelationshipResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.ManagerID); err != nil {
		return employee.ManagerialRelationshipResponse{}, err
	}

	effectiveDate, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return employee.ManagerialRelationshipResponse{}, fmt.Errorf("invalid effective date %q, expected YYYY-MM-DD: %w", req.EffectiveDate, err)
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return employee.ManagerialRelationshipResponse{}, fmt.Errorf("invalid end date %q, expected YYYY-MM-DD: %w", *req.EndDate, err)
		}
		endDate = &parsed
	}

	created, err := s.ManagerialRelationshipRepository.Create(ctx, employee.ManagerialRelationship{
		ID:            uuid.New().String(),
		EmployeeID:    req.EmployeeID,
		ManagerID:     req.ManagerID,
		CompanyID:     req.CompanyID,
		EffectiveDate: effectiveDate,
		EndDate:       endDate,
		CreatedAt:     s.clock.Now(),
	})
	if err != nil {
		return employee.ManagerialRelationshipResponse{}, fmt.Errorf("failed to create managerial relationship: %w", err)
	}

	resp := employee.ManagerialRelationshipResponse{
		ID:            created.ID,
		EmployeeID:    created.EmployeeID,
		ManagerID:     created.ManagerID,
		CompanyID:     created.CompanyID,
		EffectiveDate: created.EffectiveDate.Format("2006-01-02"),
	}
	if created.EndDate != nil {
		end := created.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp, nil
}

// UpsertApproverAssignment implements employee.Service. One approver per
// role per company; assigning again replaces the previous designation.
func (s *ServiceImpl) UpsertApproverAssignment(ctx context.Context, req employee.UpsertAssignmentRequest) (employee.AssignmentResponse, error) {
	approver, err := s.EmployeeRepository.GetByID(ctx, req.ApproverID)
	if err != nil {
		return employee.AssignmentResponse{}, err
	}
	if !approver.IsActive {
		return employee.AssignmentResponse{}, employee.ErrEmployeeNotFound
	}

	assignment, err := s.ApproverAssignmentRepository.Upsert(ctx, employee.ApproverAssignment{
		ID:         uuid.New().String(),
		CompanyID:  req.CompanyID,
		Role:       req.Role,
		ApproverID: req.ApproverID,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil {
		return employee.AssignmentResponse{}, fmt.Errorf("failed to upsert approver assignment: %w", err)
	}

	return employee.AssignmentResponse{
		ID:         assignment.ID,
		CompanyID:  assignment.CompanyID,
		Role:       assignment.Role,
		ApproverID: assignment.ApproverID,
	}, nil
}
