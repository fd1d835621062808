package approval

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

// PolicyServiceImpl administers the duration-ranged chain definitions the
// resolver selects from.
type PolicyServiceImpl struct {
	approval.PolicyRepository
	clock clock.Clock
}

var _ approval.PolicyService = (*PolicyServiceImpl)(nil)

func NewPolicyService(policyRepo approval.PolicyRepository, clk clock.Clock) approval.PolicyService {
	return &PolicyServiceImpl{PolicyRepository: policyRepo, clock: clk}
}

func validateLevels(levels []approval.PolicyLevel) error {
	if len(levels) == 0 {
		return fmt.Errorf("policy requires at least one level")
	}
	seen := make(map[int]bool, len(levels))
	for _, lvl := range levels {
		if lvl.Level < 1 {
			return fmt.Errorf("policy level ordinals start at 1, got %d", lvl.Level)
		}
		if seen[lvl.Level] {
			return fmt.Errorf("duplicate policy level %d", lvl.Level)
		}
		seen[lvl.Level] = true
		switch lvl.Role {
		case approval.RoleManager, approval.RoleHR, approval.RoleCEO:
		default:
			return fmt.Errorf("unknown approver role %q", lvl.Role)
		}
	}
	return nil
}

func mapPolicy(p approval.Policy) approval.PolicyResponse {
	return approval.PolicyResponse{
		ID:        p.ID,
		Name:      p.Name,
		CompanyID: p.CompanyID,
		MinDays:   p.MinDays,
		MaxDays:   p.MaxDays,
		Levels:    p.Levels,
		IsActive:  p.IsActive,
	}
}

// CreatePolicy implements approval.PolicyService.
func (s *PolicyServiceImpl) CreatePolicy(ctx context.Context, req approval.CreatePolicyRequest) (approval.PolicyResponse, error) {
	if err := validateLevels(req.Levels); err != nil {
		return approval.PolicyResponse{}, err
	}
	if req.MinDays < 0 {
		return approval.PolicyResponse{}, fmt.Errorf("min days must not be negative")
	}
	if req.MaxDays != nil && *req.MaxDays < req.MinDays {
		return approval.PolicyResponse{}, fmt.Errorf("max days must not be below min days")
	}

	now := s.clock.Now()
	created, err := s.PolicyRepository.Create(ctx, approval.Policy{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CompanyID: req.CompanyID,
		MinDays:   req.MinDays,
		MaxDays:   req.MaxDays,
		Levels:    req.Levels,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return approval.PolicyResponse{}, fmt.Errorf("failed to create approval policy: %w", err)
	}

	return mapPolicy(created), nil
}

// ListPolicies implements approval.PolicyService.
func (s *PolicyServiceImpl) ListPolicies(ctx context.Context, companyID string) ([]approval.PolicyResponse, error) {
	policies, err := s.PolicyRepository.ListActive(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval policies: %w", err)
	}

	responses := make([]approval.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, mapPolicy(p))
	}
	return responses, nil
}

// UpdatePolicy implements approval.PolicyService.
func (s *PolicyServiceImpl) UpdatePolicy(ctx context.Context, id string, req approval.UpdatePolicyRequest) (approval.PolicyResponse, error) {
	policy, err := s.PolicyRepository.GetByID(ctx, id)
	if err != nil {
		return approval.PolicyResponse{}, err
	}
	p := &policy

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.MinDays != nil {
		p.MinDays = *req.MinDays
	}
	if req.MaxDays != nil {
		p.MaxDays = req.MaxDays
	}
	if req.Levels != nil {
		if err := validateLevels(req.Levels); err != nil {
			return approval.PolicyResponse{}, err
		}
		p.Levels = req.Levels
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if p.MaxDays != nil && *p.MaxDays < p.MinDays {
		return approval.PolicyResponse{}, fmt.Errorf("max days must not be below min days")
	}
	p.UpdatedAt = s.clock.Now()

	if err := s.PolicyRepository.Update(ctx, *p); err != nil {
		return approval.PolicyResponse{}, fmt.Errorf("failed to update approval policy: %w", err)
	}

	return mapPolicy(*p), nil
}
