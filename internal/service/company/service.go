package company

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type ServiceImpl struct {
	company.CompanyRepository
	clock clock.Clock
}

var _ company.Service = (*ServiceImpl)(nil)

func NewService(companyRepo company.CompanyRepository, clk clock.Clock) company.Service {
	return &ServiceImpl{CompanyRepository: companyRepo, clock: clk}
}

func mapToResponse(c company.Company) company.Response {
	return company.Response{
		ID:           c.ID,
		Name:         c.Name,
		Address:      c.Address,
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		RadiusMeters: c.RadiusMeters,
		CreatedAt:    c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create implements company.Service. The coordinates double as the QR
// payload for the office, so they must be unique per company.
func (s *ServiceImpl) Create(ctx context.Context, req company.CreateRequest) (company.Response, error) {
	radius := req.RadiusMeters
	if radius <= 0 {
		radius = 100
	}

	now := s.clock.Now()
	created, err := s.CompanyRepository.Create(ctx, company.Company{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: radius,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return company.Response{}, fmt.Errorf("failed to create company: %w", err)
	}

	return mapToResponse(created), nil
}

// GetByID implements company.Service.
func (s *ServiceImpl) GetByID(ctx context.Context, id string) (company.Response, error) {
	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.Response{}, err
	}
	return mapToResponse(c), nil
}

// List implements company.Service.
func (s *ServiceImpl) List(ctx context.Context) ([]company.Response, error) {
	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]company.Response, 0, len(companies))
	for _, c := range companies {
		responses = append(responses, mapToResponse(c))
	}
	return responses, nil
}

// Update implements company.Service.
func (s *ServiceImpl) Update(ctx context.Context, id string, req company.UpdateRequest) (company.Response, error) {
	c, err := s.CompanyRepository.GetByID(ctx, id)
	if err != nil {
		return company.Response{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.Latitude != nil {
		c.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		c.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil && *req.RadiusMeters > 0 {
		c.RadiusMeters = *req.RadiusMeters
	}
	c.UpdatedAt = s.clock.Now()

	if err := s.CompanyRepository.Update(ctx, c); err != nil {
		return company.Response{}, fmt.Errorf("failed to update company: %w", err)
	}

	return mapToResponse(c), nil
}
