package approval

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// Resolver turns a request's duration into a concrete list of approvers.
// Policy levels name roles; the resolver binds each role to an employee
// through the relation's direct manager, the managerial-relationship table,
// and finally the company's approver assignments.
type Resolver struct {
	approval.PolicyRepository
	employee.RelationRepository
	employee.ManagerialRelationshipRepository
	employee.ApproverAssignmentRepository
	clock clock.Clock
}

func NewResolver(
	policyRepo approval.PolicyRepository,
	relationRepo employee.RelationRepository,
	managerialRepo employee.ManagerialRelationshipRepository,
	assignmentRepo employee.ApproverAssignmentRepository,
	clk clock.Clock,
) *Resolver {
	return &Resolver{
		PolicyRepository:                 policyRepo,
		RelationRepository:               relationRepo,
		ManagerialRelationshipRepository: managerialRepo,
		ApproverAssignmentRepository:     assignmentRepo,
		clock:                            clk,
	}
}

// Levels returns the policy levels governing a request of durationDays for
// the company, falling back to the single-manager default chain.
func (r *Resolver) Levels(ctx context.Context, companyID string, durationDays float64) ([]approval.PolicyLevel, error) {
	policies, err := r.PolicyRepository.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval policies: %w", err)
	}
	return approval.SelectPolicy(policies, durationDays, companyID), nil
}

// resolveRole binds one role to an approver for the given relation. The
// manager role walks direct manager, then the active managerial
// relationship, then the company assignment; other roles use the company
// assignment only. Returns employee.ErrEmployeeNotFound when nothing binds.
func (r *Resolver) resolveRole(ctx context.Context, rel employee.EmploymentRelation, role string) (string, error) {
	if role == approval.RoleManager {
		if rel.DirectManagerID != nil && *rel.DirectManagerID != "" {
			return *rel.DirectManagerID, nil
		}
		managerID, err := r.ManagerialRelationshipRepository.GetActiveManager(ctx, rel.EmployeeID, r.clock.Now())
		if err == nil {
			return managerID, nil
		}
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return "", fmt.Errorf("failed to resolve active manager: %w", err)
		}
	}

	approverID, err := r.ApproverAssignmentRepository.GetApprover(ctx, rel.CompanyID, role)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to resolve approver assignment for role %s: %w", role, err)
	}
	return approverID, nil
}

// Chain resolves the full approver list for a request. Levels that bind to
// nobody, or that would bind back to the requester, are skipped; when every
// level is skipped the request is refused with ErrNoApproverResolved.
func (r *Resolver) Chain(ctx context.Context, relationID string, durationDays float64) ([]approval.ResolvedLevel, error) {
	rel, err := r.RelationRepository.GetByID(ctx, relationID)
	if err != nil {
		return nil, err
	}

	levels, err := r.Levels(ctx, rel.CompanyID, durationDays)
	if err != nil {
		return nil, err
	}

	var resolved []approval.ResolvedLevel
	for _, lvl := range levels {
		approverID, err := r.resolveRole(ctx, rel, lvl.Role)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				continue
			}
			return nil, err
		}
		if approverID == rel.EmployeeID {
			continue
		}
		resolved = append(resolved, approval.ResolvedLevel{
			Level:       lvl.Level,
			Role:        lvl.Role,
			Description: lvl.Description,
			ApproverID:  approverID,
		})
	}

	if len(resolved) == 0 {
		return nil, approval.ErrNoApproverResolved
	}
	return resolved, nil
}
