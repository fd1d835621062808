package makeup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/makeup"
	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	approvalsvc "github.com/attendly/attendance-backend-go/internal/service/approval"
)

type ServiceImpl struct {
	makeup.RequestRepository
	attendance.EventRepository
	employee.RelationRepository
	ledger.Repository
	chain    *approvalsvc.ChainService
	tx       database.TxManager
	notifier notification.Service
	clock    clock.Clock
}

func NewService(
	requestRepo makeup.RequestRepository,
	eventRepo attendance.EventRepository,
	relationRepo employee.RelationRepository,
	ledgerRepo ledger.Repository,
	chain *approvalsvc.ChainService,
	tx database.TxManager,
	notifier notification.Service,
	clk clock.Clock,
) *ServiceImpl {
	s := &ServiceImpl{
		RequestRepository:  requestRepo,
		EventRepository:    eventRepo,
		RelationRepository: relationRepo,
		Repository:         ledgerRepo,
		chain:              chain,
		tx:                 tx,
		notifier:           notifier,
		clock:              clk,
	}
	chain.Register(approval.KindMakeup, s)
	return s
}

// withinWindow reports whether date falls inside the eligibility window:
// not in the future and at most EligibilityWindowDays back, inclusive of
// today.
func withinWindow(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.After(today) {
		return false
	}
	oldest := today.AddDate(0, 0, -makeup.EligibilityWindowDays)
	return !day.Before(oldest)
}

func parseOptionalTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func requestTitle(req makeup.Request) string {
	return fmt.Sprintf("makeup punch %s (%s)", req.Date.Format("2006-01-02"), req.Type)
}

// CreateRequest validates a retroactive-punch application: the target date
// must be inside the eligibility window, the requested times must match the
// makeup type, and the annual makeup quota must not be exhausted. The quota
// count is only checked here; it is consumed at terminal approval.
func (s *ServiceImpl) CreateRequest(ctx context.Context, req makeup.CreateRequest) (makeup.RequestResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return makeup.RequestResponse{}, fmt.Errorf("failed to parse makeup date: %w", err)
	}
	if !withinWindow(date, s.clock.Now()) {
		return makeup.RequestResponse{}, makeup.ErrInvalidDate
	}

	typ := makeup.Type(req.Type)
	checkIn, err := parseOptionalTime(req.RequestedCheckInTime)
	if err != nil {
		return makeup.RequestResponse{}, fmt.Errorf("failed to parse requested check-in time: %w", err)
	}
	checkOut, err := parseOptionalTime(req.RequestedCheckOutTime)
	if err != nil {
		return makeup.RequestResponse{}, fmt.Errorf("failed to parse requested check-out time: %w", err)
	}
	switch typ {
	case makeup.TypeCheckIn:
		if checkIn == nil {
			return makeup.RequestResponse{}, makeup.ErrMissingTime
		}
	case makeup.TypeCheckOut:
		if checkOut == nil {
			return makeup.RequestResponse{}, makeup.ErrMissingTime
		}
	case makeup.TypeBoth:
		if checkIn == nil || checkOut == nil {
			return makeup.RequestResponse{}, makeup.ErrMissingTime
		}
	default:
		return makeup.RequestResponse{}, fmt.Errorf("%w: unknown makeup type %q", makeup.ErrMissingTime, req.Type)
	}

	rel, err := s.RelationRepository.GetByID(ctx, req.RelationID)
	if err != nil {
		return makeup.RequestResponse{}, err
	}
	if rel.EmployeeID != req.EmployeeID {
		return makeup.RequestResponse{}, makeup.ErrNotRequester
	}

	account, err := s.Repository.GetOrCreate(ctx, rel.EmployeeID, date.Year(), ledger.CategoryMakeup, ledger.DefaultTotal(ledger.CategoryMakeup))
	if err != nil {
		return makeup.RequestResponse{}, fmt.Errorf("failed to load makeup quota: %w", err)
	}
	if !account.CanDeduct(1) {
		return makeup.RequestResponse{}, ledger.ErrQuotaExceeded
	}

	request := makeup.Request{
		RelationID:            rel.ID,
		EmployeeID:            rel.EmployeeID,
		CompanyID:             rel.CompanyID,
		Date:                  date,
		Type:                  typ,
		RequestedCheckInTime:  checkIn,
		RequestedCheckOutTime: checkOut,
		Reason:                req.Reason,
		Status:                makeup.StatusPending,
		CreatedAt:             s.clock.Now(),
	}

	// Snapshot the punches being corrected so approvers see the before
	// and after.
	existing, err := s.EventRepository.GetByRelationAndDate(ctx, rel.ID, date)
	if err != nil {
		return makeup.RequestResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil {
		request.OriginalCheckInTime = &existing.CheckInTime
		request.OriginalCheckOutTime = &existing.CheckOutTime
		request.AttendanceID = &existing.ID
	}

	var resolved []approval.ResolvedLevel
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err := s.RequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create makeup request: %w", err)
		}
		request = created

		_, chain, err := s.chain.CreateChain(ctx, approval.KindMakeup, created.ID, rel.ID, 0)
		if err != nil {
			return err
		}
		resolved = chain
		return nil
	})
	if err != nil {
		return makeup.RequestResponse{}, err
	}

	s.notifier.Notify(approvalsvc.PendingNotice(approval.KindMakeup, request.ID, resolved[0].ApproverID, requestTitle(request)))

	resp := mapRequestToResponse(request)
	remaining := account.Remaining
	resp.QuotaRemaining = &remaining
	for _, lvl := range resolved {
		resp.Chain = append(resp.Chain, makeup.ChainLevel{Level: lvl.Level, Role: lvl.Role, ApproverID: lvl.ApproverID})
	}
	return resp, nil
}

func (s *ServiceImpl) CancelRequest(ctx context.Context, requestID, employeeID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return makeup.ErrNotRequester
	}
	if request.Status.Terminal() {
		return makeup.ErrAlreadyProcessed
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, makeup.StatusCancelled); err != nil {
			return err
		}
		return s.chain.CancelSteps(ctx, approval.KindMakeup, requestID)
	})
}

func (s *ServiceImpl) GetRequest(ctx context.Context, id string) (makeup.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return makeup.RequestResponse{}, err
	}

	resp := mapRequestToResponse(request)
	steps, err := s.chain.ListByRequest(ctx, approval.KindMakeup, id)
	if err != nil {
		return makeup.RequestResponse{}, err
	}
	for _, st := range steps {
		resp.Chain = append(resp.Chain, makeup.ChainLevel{Level: st.Level, ApproverID: st.ApproverID, Status: string(st.Status)})
	}
	return resp, nil
}

func (s *ServiceImpl) ListRequests(ctx context.Context, companyID string, filter makeup.RequestFilter) (makeup.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	requests, total, err := s.RequestRepository.List(ctx, companyID, filter)
	if err != nil {
		return makeup.ListResponse{}, fmt.Errorf("failed to list makeup requests: %w", err)
	}

	resp := makeup.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]makeup.RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, mapRequestToResponse(r))
	}
	return resp, nil
}

// Info implements approvalsvc.RequestSource. A makeup correction is a
// single-day action, so its chain always resolves as a zero-duration
// request.
func (s *ServiceImpl) Info(ctx context.Context, requestID string) (approvalsvc.RequestInfo, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return approvalsvc.RequestInfo{}, err
	}
	return approvalsvc.RequestInfo{
		EmployeeID:   request.EmployeeID,
		RelationID:   request.RelationID,
		CompanyID:    request.CompanyID,
		DurationDays: 0,
		Title:        requestTitle(request),
	}, nil
}

// applyPunches patches an existing event or creates one for the target date,
// flagged as a makeup so reporting can tell corrected punches apart.
func (s *ServiceImpl) applyPunches(ctx context.Context, request makeup.Request) (string, error) {
	day := time.Date(request.Date.Year(), request.Date.Month(), request.Date.Day(), 0, 0, 0, 0, time.UTC)
	existing, err := s.EventRepository.GetByRelationAndDate(ctx, request.RelationID, day)
	if err != nil {
		return "", fmt.Errorf("failed to load attendance for makeup: %w", err)
	}

	if existing == nil {
		ev := attendance.Event{
			RelationID: request.RelationID,
			CompanyID:  request.CompanyID,
			Date:       day,
			IsMakeup:   true,
			CreatedAt:  s.clock.Now(),
		}
		if request.RequestedCheckInTime != nil {
			ev.CheckInTime = *request.RequestedCheckInTime
		}
		if request.RequestedCheckOutTime != nil {
			ev.CheckOutTime = *request.RequestedCheckOutTime
		} else {
			ev.CheckOutTime = ev.CheckInTime
		}
		if ev.CheckInTime.IsZero() {
			ev.CheckInTime = ev.CheckOutTime
		}
		if ev.CheckOutTime.After(ev.CheckInTime) {
			ev.WorkHours = ev.CheckOutTime.Sub(ev.CheckInTime).Hours()
		}
		created, err := s.EventRepository.Create(ctx, ev)
		if err != nil {
			return "", fmt.Errorf("failed to create makeup attendance: %w", err)
		}
		return created.ID, nil
	}

	if request.RequestedCheckInTime != nil {
		existing.CheckInTime = *request.RequestedCheckInTime
		existing.IsLate = false
		existing.LateMinutes = 0
	}
	if request.RequestedCheckOutTime != nil {
		existing.CheckOutTime = *request.RequestedCheckOutTime
		existing.IsEarlyLeave = false
		existing.EarlyLeaveMinutes = 0
	}
	if existing.CheckOutTime.After(existing.CheckInTime) {
		existing.WorkHours = existing.CheckOutTime.Sub(existing.CheckInTime).Hours()
	}
	existing.IsMakeup = true
	existing.UpdatedAt = s.clock.Now()
	if err := s.EventRepository.Update(ctx, *existing); err != nil {
		return "", fmt.Errorf("failed to patch attendance: %w", err)
	}
	return existing.ID, nil
}

// Finalize implements approvalsvc.RequestSource. A terminal approval writes
// the corrected punches and consumes one unit of the annual makeup quota,
// atomically with the status flip.
func (s *ServiceImpl) Finalize(ctx context.Context, requestID string, approved bool) (*approval.LedgerDelta, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return nil, makeup.ErrAlreadyProcessed
	}

	if !approved {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, makeup.StatusRejected); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.RequestRepository.UpdateStatus(ctx, requestID, makeup.StatusApproved); err != nil {
		return nil, err
	}

	attendanceID, err := s.applyPunches(ctx, request)
	if err != nil {
		return nil, err
	}
	if err := s.RequestRepository.LinkAttendance(ctx, requestID, attendanceID); err != nil {
		return nil, fmt.Errorf("failed to link attendance: %w", err)
	}

	if err := s.Repository.Deduct(ctx, request.EmployeeID, request.Date.Year(), ledger.CategoryMakeup, 1); err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return nil, ledger.ErrQuotaExceeded
		}
		return nil, err
	}
	return &approval.LedgerDelta{
		Category: string(ledger.CategoryMakeup),
		Amount:   1,
		Kind:     "deduct",
	}, nil
}

var _ makeup.Service = (*ServiceImpl)(nil)
var _ approvalsvc.RequestSource = (*ServiceImpl)(nil)

func mapRequestToResponse(r makeup.Request) makeup.RequestResponse {
	formatPtr := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}
	return makeup.RequestResponse{
		ID:                    r.ID,
		RelationID:            r.RelationID,
		EmployeeID:            r.EmployeeID,
		EmployeeName:          r.EmployeeName,
		Date:                  r.Date.Format("2006-01-02"),
		Type:                  string(r.Type),
		OriginalCheckInTime:   formatPtr(r.OriginalCheckInTime),
		OriginalCheckOutTime:  formatPtr(r.OriginalCheckOutTime),
		RequestedCheckInTime:  formatPtr(r.RequestedCheckInTime),
		RequestedCheckOutTime: formatPtr(r.RequestedCheckOutTime),
		Reason:                r.Reason,
		Status:                string(r.Status),
		AttendanceID:          r.AttendanceID,
		CreatedAt:             r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
