package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/leave"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	approvalsvc "github.com/attendly/attendance-backend-go/internal/service/approval"
)

type ServiceImpl struct {
	leave.RequestRepository
	employee.RelationRepository
	ledger.Repository
	chain    *approvalsvc.ChainService
	tx       database.TxManager
	notifier notification.Service
	clock    clock.Clock
}

func NewService(
	requestRepo leave.RequestRepository,
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
	chain.Register(approval.KindLeave, s)
	return s
}

func validCategory(c string) bool {
	for _, cat := range leave.Categories() {
		if string(cat) == c {
			return true
		}
	}
	return false
}

// annualDefault returns the initial total for an account created on first
// touch. Annual leave comes from the statutory tenure table; the other
// categories use their fixed grants.
func (s *ServiceImpl) annualDefault(rel employee.EmploymentRelation, category ledger.Category) float64 {
	if category == ledger.CategoryAnnual {
		return CalculateEntitlement(rel.HireDate, s.clock.Now()).Hours
	}
	return ledger.DefaultTotal(category)
}

func requestTitle(req leave.Request) string {
	return fmt.Sprintf("%s leave %s ~ %s (%.1f hours)",
		req.Category,
		req.StartTime.Format("2006-01-02 15:04"),
		req.EndTime.Format("2006-01-02 15:04"),
		req.Hours,
	)
}

// CreateRequest validates a leave application, checks the quota covers it
// and opens the approval chain. The quota is only checked here; the debit
// happens once, at terminal approval.
func (s *ServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequest) (leave.RequestResponse, error) {
	if !validCategory(req.Category) {
		return leave.RequestResponse{}, fmt.Errorf("%w: %q", leave.ErrInvalidCategory, req.Category)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse start time: %w", err)
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to parse end time: %w", err)
	}
	if !endTime.After(startTime) {
		return leave.RequestResponse{}, leave.ErrInvalidRange
	}

	rel, err := s.RelationRepository.GetByID(ctx, req.RelationID)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if rel.EmployeeID != req.EmployeeID {
		return leave.RequestResponse{}, leave.ErrNotRequester
	}

	category := ledger.Category(req.Category)
	durationDays := leave.DurationDays(startTime, endTime)
	hours := req.Hours
	if hours <= 0 {
		hours = durationDays * 8
	}

	account, err := s.Repository.GetOrCreate(ctx, rel.EmployeeID, startTime.Year(), category, s.annualDefault(rel, category))
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to load quota account: %w", err)
	}
	if !account.CanDeduct(hours) {
		return leave.RequestResponse{}, ledger.ErrInsufficientBalance
	}

	request := leave.Request{
		RelationID:   rel.ID,
		EmployeeID:   rel.EmployeeID,
		CompanyID:    rel.CompanyID,
		Category:     category,
		StartTime:    startTime,
		EndTime:      endTime,
		Hours:        hours,
		Reason:       req.Reason,
		SubstituteID: req.SubstituteID,
		Status:       leave.StatusPending,
		CreatedAt:    s.clock.Now(),
	}

	var resolved []approval.ResolvedLevel
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		created, err := s.RequestRepository.Create(ctx, request)
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		request = created

		_, chain, err := s.chain.CreateChain(ctx, approval.KindLeave, created.ID, rel.ID, durationDays)
		if err != nil {
			return err
		}
		resolved = chain
		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	s.notifier.Notify(approvalsvc.PendingNotice(approval.KindLeave, request.ID, resolved[0].ApproverID, requestTitle(request)))

	resp := mapRequestToResponse(request)
	for _, lvl := range resolved {
		resp.Chain = append(resp.Chain, leave.ChainLevel{Level: lvl.Level, Role: lvl.Role, ApproverID: lvl.ApproverID})
	}
	return resp, nil
}

// CancelRequest withdraws a pending request. Only the requester may cancel,
// and since nothing was debited yet there is no ledger effect.
func (s *ServiceImpl) CancelRequest(ctx context.Context, requestID, employeeID string) error {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrNotRequester
	}
	if request.Status.Terminal() {
		return leave.ErrAlreadyProcessed
	}

	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, leave.StatusCancelled); err != nil {
			return err
		}
		return s.chain.CancelSteps(ctx, approval.KindLeave, requestID)
	})
}

// GetRequest returns one request with its full approval chain.
func (s *ServiceImpl) GetRequest(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.RequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	resp := mapRequestToResponse(request)
	steps, err := s.chain.ListByRequest(ctx, approval.KindLeave, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	for _, st := range steps {
		resp.Chain = append(resp.Chain, leave.ChainLevel{Level: st.Level, ApproverID: st.ApproverID, Status: string(st.Status)})
	}
	return resp, nil
}

func (s *ServiceImpl) ListRequests(ctx context.Context, companyID string, filter leave.RequestFilter) (leave.ListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	requests, total, err := s.RequestRepository.List(ctx, companyID, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   make([]leave.RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, mapRequestToResponse(r))
	}
	return resp, nil
}

// GetBalances materializes and returns every leave account for the year.
func (s *ServiceImpl) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.BalanceResponse, error) {
	balances := make([]leave.BalanceResponse, 0, len(leave.Categories()))
	for _, category := range leave.Categories() {
		account, err := s.Repository.GetOrCreate(ctx, employeeID, year, category, ledger.DefaultTotal(category))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s account: %w", category, err)
		}
		balances = append(balances, leave.BalanceResponse{
			Category:  string(account.Category),
			Total:     account.Total,
			Used:      account.Used,
			Remaining: account.Remaining,
		})
	}
	return balances, nil
}

// RefreshAnnualEntitlement recomputes the statutory annual total from the
// relation's hire date. Used hours are preserved.
func (s *ServiceImpl) RefreshAnnualEntitlement(ctx context.Context, relationID string, year int) (leave.BalanceResponse, error) {
	rel, err := s.RelationRepository.GetByID(ctx, relationID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	ent := CalculateEntitlement(rel.HireDate, s.clock.Now())
	if _, err := s.Repository.GetOrCreate(ctx, rel.EmployeeID, year, ledger.CategoryAnnual, ent.Hours); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to load annual account: %w", err)
	}
	if err := s.Repository.ResetTotal(ctx, rel.EmployeeID, year, ledger.CategoryAnnual, ent.Hours); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to reset annual total: %w", err)
	}

	account, err := s.Repository.Get(ctx, rel.EmployeeID, year, ledger.CategoryAnnual)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to reload annual account: %w", err)
	}
	return leave.BalanceResponse{
		Category:  string(account.Category),
		Total:     account.Total,
		Used:      account.Used,
		Remaining: account.Remaining,
	}, nil
}

// AdjustBalance applies a corrective HR action against one quota account:
// restore hours debited in error, override the total, or both. Used hours
// survive a total override.
func (s *ServiceImpl) AdjustBalance(ctx context.Context, req leave.AdjustBalanceRequest) (leave.BalanceResponse, error) {
	category := ledger.Category(req.Category)
	if !validCategory(req.Category) && category != ledger.CategoryMakeup {
		return leave.BalanceResponse{}, fmt.Errorf("%w: %q", leave.ErrInvalidCategory, req.Category)
	}

	if _, err := s.Repository.GetOrCreate(ctx, req.EmployeeID, req.Year, category, ledger.DefaultTotal(category)); err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to load %s account: %w", category, err)
	}
	if req.RestoreHours > 0 {
		if err := s.Repository.Restore(ctx, req.EmployeeID, req.Year, category, req.RestoreHours); err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to restore %s hours: %w", category, err)
		}
	}
	if req.Total != nil {
		if err := s.Repository.ResetTotal(ctx, req.EmployeeID, req.Year, category, *req.Total); err != nil {
			return leave.BalanceResponse{}, fmt.Errorf("failed to reset %s total: %w", category, err)
		}
	}

	account, err := s.Repository.Get(ctx, req.EmployeeID, req.Year, category)
	if err != nil {
		return leave.BalanceResponse{}, fmt.Errorf("failed to reload %s account: %w", category, err)
	}
	return leave.BalanceResponse{
		Category:  string(account.Category),
		Total:     account.Total,
		Used:      account.Used,
		Remaining: account.Remaining,
	}, nil
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
		DurationDays: request.DurationDays(),
		Title:        requestTitle(request),
	}, nil
}

// Finalize implements approvalsvc.RequestSource. A terminal approval flips
// the request status and debits the quota in the same transaction; a
// rejection only flips the status.
func (s *ServiceImpl) Finalize(ctx context.Context, requestID string, approved bool) (*approval.LedgerDelta, error) {
	request, err := s.RequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.Terminal() {
		return nil, leave.ErrAlreadyProcessed
	}

	if !approved {
		if err := s.RequestRepository.UpdateStatus(ctx, requestID, leave.StatusRejected); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.RequestRepository.UpdateStatus(ctx, requestID, leave.StatusApproved); err != nil {
		return nil, err
	}
	if err := s.Repository.Deduct(ctx, request.EmployeeID, request.StartTime.Year(), request.Category, request.Hours); err != nil {
		return nil, err
	}
	return &approval.LedgerDelta{
		Category: string(request.Category),
		Amount:   request.Hours,
		Kind:     "deduct",
	}, nil
}

var _ leave.Service = (*ServiceImpl)(nil)
var _ approvalsvc.RequestSource = (*ServiceImpl)(nil)

func mapRequestToResponse(r leave.Request) leave.RequestResponse {
	return leave.RequestResponse{
		ID:           r.ID,
		RelationID:   r.RelationID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Category:     string(r.Category),
		StartTime:    r.StartTime.Format(time.RFC3339),
		EndTime:      r.EndTime.Format(time.RFC3339),
		Hours:        r.Hours,
		DurationDays: r.DurationDays(),
		Reason:       r.Reason,
		SubstituteID: r.SubstituteID,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
