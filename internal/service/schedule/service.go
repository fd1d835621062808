package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

type ServiceImpl struct {
	schedule.WorkScheduleRepository
	clock clock.Clock
}

var _ schedule.Service = (*ServiceImpl)(nil)

func NewService(scheduleRepo schedule.WorkScheduleRepository, clk clock.Clock) schedule.Service {
	return &ServiceImpl{WorkScheduleRepository: scheduleRepo, clock: clk}
}

// parseClock parses an HH:MM wall-clock value onto the zero date so only the
// clock fields carry meaning.
func parseClock(value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected HH:MM: %w", value, err)
	}
	return t, nil
}

func mapToResponse(ws schedule.WorkSchedule) schedule.Response {
	return schedule.Response{
		ID:                 ws.ID,
		CompanyID:          ws.CompanyID,
		Name:               ws.Name,
		WorkStartTime:      ws.WorkStartTime.Format("15:04"),
		WorkEndTime:        ws.WorkEndTime.Format("15:04"),
		StandardWorkHours:  ws.StandardWorkHours,
		LunchBreakMinutes:  ws.LunchBreakMinutes,
		GracePeriodMinutes: ws.GracePeriodMinutes,
		IsDefault:          ws.IsDefault,
		IsActive:           ws.IsActive,
	}
}

// Create implements schedule.Service. Creating a default schedule demotes
// the company's previous default.
func (s *ServiceImpl) Create(ctx context.Context, req schedule.CreateRequest) (schedule.Response, error) {
	start, err := parseClock(req.WorkStartTime)
	if err != nil {
		return schedule.Response{}, err
	}
	end, err := parseClock(req.WorkEndTime)
	if err != nil {
		return schedule.Response{}, err
	}

	hours := req.StandardWorkHours
	if hours <= 0 {
		worked := end.Sub(start) - time.Duration(req.LunchBreakMinutes)*time.Minute
		hours = worked.Hours()
	}

	now := s.clock.Now()
	created, err := s.WorkScheduleRepository.Create(ctx, schedule.WorkSchedule{
		ID:                 uuid.New().String(),
		CompanyID:          req.CompanyID,
		Name:               req.Name,
		WorkStartTime:      start,
		WorkEndTime:        end,
		StandardWorkHours:  hours,
		LunchBreakMinutes:  req.LunchBreakMinutes,
		GracePeriodMinutes: req.GracePeriodMinutes,
		IsDefault:          req.IsDefault,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return schedule.Response{}, fmt.Errorf("failed to create work schedule: %w", err)
	}

	return mapToResponse(created), nil
}

// GetByID implements schedule.Service.
func (s *ServiceImpl) GetByID(ctx context.Context, id string) (schedule.Response, error) {
	ws, err := s.WorkScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return schedule.Response{}, err
	}
	return mapToResponse(ws), nil
}

// ListByCompany implements schedule.Service.
func (s *ServiceImpl) ListByCompany(ctx context.Context, companyID string) ([]schedule.Response, error) {
	schedules, err := s.WorkScheduleRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}

	responses := make([]schedule.Response, 0, len(schedules))
	for _, ws := range schedules {
		responses = append(responses, mapToResponse(ws))
	}
	return responses, nil
}

// Update implements schedule.Service.
func (s *ServiceImpl) Update(ctx context.Context, id string, req schedule.UpdateRequest) (schedule.Response, error) {
	ws, err := s.WorkScheduleRepository.GetByID(ctx, id)
	if err != nil {
		return schedule.Response{}, err
	}

	if req.Name != nil {
		ws.Name = *req.Name
	}
	if req.WorkStartTime != nil {
		start, err := parseClock(*req.WorkStartTime)
		if err != nil {
			return schedule.Response{}, err
		}
		ws.WorkStartTime = start
	}
	if req.WorkEndTime != nil {
		end, err := parseClock(*req.WorkEndTime)
		if err != nil {
			return schedule.Response{}, err
		}
		ws.WorkEndTime = end
	}
	if req.StandardWorkHours != nil && *req.StandardWorkHours > 0 {
		ws.StandardWorkHours = *req.StandardWorkHours
	}
	if req.LunchBreakMinutes != nil {
		ws.LunchBreakMinutes = *req.LunchBreakMinutes
	}
	if req.GracePeriodMinutes != nil {
		ws.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.IsDefault != nil {
		ws.IsDefault = *req.IsDefault
	}
	if req.IsActive != nil {
		ws.IsActive = *req.IsActive
	}
	ws.UpdatedAt = s.clock.Now()

	if err := s.WorkScheduleRepository.Update(ctx, ws); err != nil {
		return schedule.Response{}, fmt.Errorf("failed to update work schedule: %w", err)
	}

	return mapToResponse(ws), nil
}
