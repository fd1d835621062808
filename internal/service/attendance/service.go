package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/utils"
)

type ServiceImpl struct {
	attendance.EventRepository
	company.CompanyRepository
	employee.RelationRepository
	schedule.WorkScheduleRepository
	clock clock.Clock
}

func NewService(
	eventRepo attendance.EventRepository,
	companyRepo company.CompanyRepository,
	relationRepo employee.RelationRepository,
	scheduleRepo schedule.WorkScheduleRepository,
	clk clock.Clock,
) attendance.Service {
	return &ServiceImpl{
		EventRepository:        eventRepo,
		CompanyRepository:      companyRepo,
		RelationRepository:     relationRepo,
		WorkScheduleRepository: scheduleRepo,
		clock:                  clk,
	}
}

// resolveFence matches the scanned QR coordinates to a registered company
// and verifies the device position against its geofence.
func (s *ServiceImpl) resolveFence(ctx context.Context, qrLat, qrLon, userLat, userLon float64) (company.Company, float64, error) {
	comp, err := s.CompanyRepository.GetByCoordinates(ctx, qrLat, qrLon)
	if err != nil {
		if errors.Is(err, company.ErrCompanyNotFound) {
			return company.Company{}, 0, company.ErrInvalidQRCode
		}
		return company.Company{}, 0, fmt.Errorf("failed to resolve company from QR coordinates: %w", err)
	}

	distance := utils.CalculateHaversineDistance(userLat, userLon, comp.Latitude, comp.Longitude)
	if !utils.WithinFence(distance, comp.RadiusMeters) {
		return company.Company{}, distance, attendance.ErrLocationOutOfRange
	}

	return comp, distance, nil
}

// effectiveSchedule resolves the schedule governing a relation: the
// relation-level override first, then the company default. A missing
// schedule is not an error; classification is simply skipped.
func (s *ServiceImpl) effectiveSchedule(ctx context.Context, rel employee.EmploymentRelation) (*schedule.WorkSchedule, error) {
	if rel.WorkScheduleID != nil {
		ws, err := s.WorkScheduleRepository.GetByID(ctx, *rel.WorkScheduleID)
		if err == nil {
			return &ws, nil
		}
		if !errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, fmt.Errorf("failed to get schedule override: %w", err)
		}
	}

	ws, err := s.WorkScheduleRepository.GetCompanyDefault(ctx, rel.CompanyID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company default schedule: %w", err)
	}
	return &ws, nil
}

// ClockIn implements attendance.Service.
func (s *ServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.EventResponse, error) {
	rel, err := s.RelationRepository.GetByID(ctx, req.RelationID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	comp, distance, err := s.resolveFence(ctx, req.QRLatitude, req.QRLongitude, req.UserLatitude, req.UserLongitude)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	existing, err := s.EventRepository.GetByRelationAndDate(ctx, rel.ID, today)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		return attendance.EventResponse{}, attendance.ErrAlreadyClockedIn
	}

	ws, err := s.effectiveSchedule(ctx, rel)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	checkIn := ws.ClassifyCheckIn(now)

	ev := attendance.Event{
		RelationID:      rel.ID,
		CompanyID:       comp.ID,
		Date:            today,
		CheckInTime:     now,
		CheckOutTime:    now, // placeholder until clock-out
		CheckInLocation: req.Location,
		WorkHours:       0,
		IsLate:          checkIn.IsLate,
		LateMinutes:     checkIn.LateMinutes,
	}
	if ws != nil {
		ev.ScheduleID = &ws.ID
	}

	created, err := s.EventRepository.Create(ctx, ev)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	resp := mapEventToResponse(created)
	resp.DistanceMeters = math.Round(distance*100) / 100
	return resp, nil
}

// ClockOut implements attendance.Service.
func (s *ServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.EventResponse, error) {
	var ev attendance.Event
	if req.RecordID != "" {
		found, err := s.EventRepository.GetByID(ctx, req.RecordID)
		if err != nil {
			return attendance.EventResponse{}, err
		}
		ev = found
	} else {
		now := s.clock.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		found, err := s.EventRepository.GetByRelationAndDate(ctx, req.RelationID, today)
		if err != nil {
			return attendance.EventResponse{}, fmt.Errorf("failed to find today's attendance: %w", err)
		}
		if found == nil {
			return attendance.EventResponse{}, attendance.ErrNotClockedIn
		}
		ev = *found
	}
	if !ev.CheckOutTime.Equal(ev.CheckInTime) {
		return attendance.EventResponse{}, attendance.ErrAlreadyClockedOut
	}

	_, distance, err := s.resolveFence(ctx, req.QRLatitude, req.QRLongitude, req.UserLatitude, req.UserLongitude)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	now := s.clock.Now()

	var ws *schedule.WorkSchedule
	if ev.ScheduleID != nil {
		found, err := s.WorkScheduleRepository.GetByID(ctx, *ev.ScheduleID)
		if err == nil {
			ws = &found
		} else if !errors.Is(err, schedule.ErrScheduleNotFound) {
			return attendance.EventResponse{}, fmt.Errorf("failed to get event schedule: %w", err)
		}
	}

	checkOut := ws.ClassifyCheckOut(now)

	ev.CheckOutTime = now
	ev.CheckOutLocation = req.Location
	ev.WorkHours = RoundHours(now.Sub(ev.CheckInTime))
	ev.IsEarlyLeave = checkOut.IsEarly
	ev.EarlyLeaveMinutes = checkOut.EarlyMinutes

	if err := s.EventRepository.Update(ctx, ev); err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to update attendance event: %w", err)
	}

	resp := mapEventToResponse(ev)
	resp.DistanceMeters = math.Round(distance*100) / 100
	return resp, nil
}

// ListEvents implements attendance.Service.
func (s *ServiceImpl) ListEvents(ctx context.Context, companyID string, filter attendance.EventFilter) (attendance.ListEventResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	events, total, err := s.EventRepository.List(ctx, companyID, filter)
	if err != nil {
		return attendance.ListEventResponse{}, fmt.Errorf("failed to list attendance events: %w", err)
	}

	responses := make([]attendance.EventResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, mapEventToResponse(ev))
	}

	return attendance.ListEventResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Events:     responses,
	}, nil
}

// RoundHours converts a duration to decimal hours rounded to 2 places.
func RoundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

func mapEventToResponse(ev attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:                ev.ID,
		RelationID:        ev.RelationID,
		Date:              ev.Date.Format("2006-01-02"),
		CheckInTime:       ev.CheckInTime.Format(time.RFC3339),
		CheckOutTime:      ev.CheckOutTime.Format(time.RFC3339),
		CheckInLocation:   ev.CheckInLocation,
		CheckOutLocation:  ev.CheckOutLocation,
		WorkHours:         ev.WorkHours,
		IsLate:            ev.IsLate,
		LateMinutes:       ev.LateMinutes,
		IsEarlyLeave:      ev.IsEarlyLeave,
		EarlyLeaveMinutes: ev.EarlyLeaveMinutes,
		IsMakeup:          ev.IsMakeup,
	}
}
