package overtime

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/domain/overtime"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	approvalsvc "github.com/attendly/attendance-backend-go/internal/service/approval"
)

// hoursEpsilon absorbs float noise when checking the pay/compensatory split.
const hoursEpsilon = 0.01

type ServiceImpl struct {
	overtime.RequestRepository
	employee.RelationRepository
	ledger.Repository
	chain    *approvalsvc.ChainService
	tx       database.TxManager
	notifier notification.Service
	clock    clock.Clock
}

func NewService(
	requestRepo overtime.RequestRepository,
	relationRepo employee.RelationRepository,
	ledgerRepo ledger.Repository,
	chain *approvalsvc.ChainService,
	tx database.TxManager,
	notifier notification.Service,
	clk clock.Clock,
) *ServiceImpl {
	s := &ServiceImpl{
		RequestRepository:  requestRepo,
		RelationRepository: relationRepo,
		Repository:         ledgerRepo,
		chain:              chain,
		tx:                 tx,
		notifier:           notifier,
		clock:              clk,
	}
	chain.Register(approval.KindOvertime, s)
	return s
}

// normalizeSplit forces a single-sided compensation to absorb the full
// amount and verifies a mixed split sums to the total.
func normalizeSplit(comp overtime.Compensation, hours, payHours, compHours float64) (float64, float64, error) {
	switch comp {
	case overtime.CompensationPay:
		return hours, 0, nil
	case overtime.CompensationCompensatory:
		return 0, hours, nil
	case overtime.CompensationMixed:
		if payHours < 0 || compHours < 0 || math.Abs(payHours+compHours-hours) > hoursEpsilon {
			return 0, 0, overtime.ErrInvalidSplit
		}
		return payHours, compHours, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown compensation %q", overtime.ErrInvalidSplit, comp)
	}
}

func requestTitle(req overtime.Request) string {
	return fmt.Sprintf("overtime %s %.1f hours (%s)",
		req.Date.Format("2006-01-02"), req.Hours, req.Compensation)
}

// CreateRequest validates an overtime application and opens its approval
// chain. There is no quota to check; the compensatory credit happens at
// terminal approval.
func (s *ServiceImpl) CreateRequest(ctx context.Context, req overtime.CreateRequest) (overtime.RequestResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to parse overtime date: %w", err)
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return overtime.RequestResponse{}, fmt.Errorf("failed to parse end time: %w", err)
	}
	if !endTime.After(startTime) {
		return overtime.RequestResponse{}, overtime.ErrInvalidRange
	}

	rel, err := s.RelationRepository.GetByID(ctx, req.RelationID)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	if rel.EmployeeID != req.EmployeeID {
		return overtime.RequestResponse{}, overtime.ErrNotRequester
	}

	hours := endTime.Sub(startTime).Hours()
	payHours, compHours, err := normalizeSplit(overtime.Compensation(req.Compensation), hours, req.PayHours, req.CompensatoryHours)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	request := overtime.Request{
		RelationID:        rel.ID,
		EmployeeID:        rel.EmployeeID,
		CompanyID:         rel.CompanyID,
		Date:              date,
		StartTime:         startTime,
		EndTime:           endTime,
		Hours:             hours,
		Reason:            req.Reason,
		Compensation:      overtime.Compensation(req.Compensation),
		PayHours:          payHours,
		CompensatoryHours: compHours,
		Status:            overtime.StatusPending,
		CreatedAt:         s.clock.Now(),
	}

	durationDays := hours / 24
	var resolved []approval.ResolvedLevel
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err := s.RequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create overtime request: %w", err)
		}
		request = created

		_, chain, err := s.chain.CreateChain(ctx, approval.KindOvertime, created.ID, rel.ID, durationDays)
		if err != nil {
			return err
		}
		resolved = chain
		return nil
	})
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	s.notifier.Notify(approvalsvc.PendingNotice(approval.KindOvertime, request.ID, resolved[0].ApproverID, requestTitle(request)))

	resp := mapRequestToResponse(request)
	for _, lvl := range resolved {
		resp.Chain = append(resp.Chain, overtime.ChainLevel{Level: lvl.Level, Role: lvl.Role, ApproverID: lvl.ApproverID})
	}
	return resp, nil
}

func (s *ServiceImpl) CancelRequest(ctx context.Context, requestID, employeeID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return overtime.ErrNotRequester
	}
	if request.Status.Terminal() {
		return overtime.ErrAlreadyProcessed
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, overtime.StatusCancelled); err != nil {
			return err
		}
		return s.chain.CancelSteps(ctx, approval.KindOvertime, requestID)
	})
}

func (s *ServiceImpl) GetRequest(ctx context.Context, id string) (overtime.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.RequestResponse{}, err
	}

	resp := mapRequestToResponse(request)
	steps, err := s.chain.ListByRequest(ctx, approval.KindOvertime, id)
	if err != nil {
		return overtime.RequestResponse{}, err
	}
	for _, st := range steps {
		resp.Chain = append(resp.Chain, overtime.ChainLevel{Level: st.Level, ApproverID: st.ApproverID, Status: string(st.Status)})
	}
	return resp, nil
}

func (s *ServiceImpl) ListRequests(ctx context.Context, companyID string, filter overtime.RequestFilter) (overtime.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	requests, total, err := s.RequestRepository.List(ctx, companyID, filter)
	if err != nil {
		return overtime.ListResponse{}, fmt.Errorf("failed to list overtime requests: %w", err)
	}

	resp := overtime.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]overtime.RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, mapRequestToResponse(r))
	}
	return resp, nil
}

// Info implements approvalsvc.RequestSource.
func (s *ServiceImpl) Info(ctx context.Context, requestID string) (approvalsvc.RequestInfo, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return approvalsvc.RequestInfo{}, err
	}
	return approvalsvc.RequestInfo{
		EmployeeID:   request.EmployeeID,
		RelationID:   request.RelationID,
		CompanyID:    request.CompanyID,
		DurationDays: request.Hours / 24,
		Title:        requestTitle(request),
	}, nil
}

// Finalize implements approvalsvc.RequestSource. A terminal approval credits
// the compensatory side of the split, if any, to the compensatory ledger of
// the overtime's year.
func (s *ServiceImpl) Finalize(ctx context.Context, requestID string, approved bool) (*approval.LedgerDelta, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return nil, overtime.ErrAlreadyProcessed
	}

	if !approved {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, overtime.StatusRejected); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.RequestRepository.UpdateStatus(ctx, requestID, overtime.StatusApproved); err != nil {
		return nil, err
	}
	if request.CompensatoryHours <= 0 {
		return nil, nil
	}

	year := request.Date.Year()
	if _, err := s.Repository.GetOrCreate(ctx, request.EmployeeID, year, ledger.CategoryCompensatory, ledger.DefaultTotal(ledger.CategoryCompensatory)); err != nil {
		return nil, fmt.Errorf("failed to load compensatory account: %w", err)
	}
	if err := s.Repository.Credit(ctx, request.EmployeeID, year, ledger.CategoryCompensatory, request.CompensatoryHours); err != nil {
		return nil, fmt.Errorf("failed to credit compensatory hours: %w", err)
	}
	return &approval.LedgerDelta{
		Category: string(ledger.CategoryCompensatory),
		Amount:   request.CompensatoryHours,
		Kind:     "credit",
	}, nil
}

var _ overtime.Service = (*ServiceImpl)(nil)
var _ approvalsvc.RequestSource = (*ServiceImpl)(nil)

func mapRequestToResponse(r overtime.Request) overtime.RequestResponse {
	return overtime.RequestResponse{
		ID:                r.ID,
		RelationID:        r.RelationID,
		EmployeeID:        r.EmployeeID,
		EmployeeName:      r.EmployeeName,
		Date:              r.Date.Format("2006-01-02"),
		StartTime:         r.StartTime.Format(time.RFC3339),
		EndTime:           r.EndTime.Format(time.RFC3339),
		Hours:             r.Hours,
		Reason:            r.Reason,
		Compensation:      string(r.Compensation),
		PayHours:          r.PayHours,
		CompensatoryHours: r.CompensatoryHours,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
