package approval

import (
	"context"
	"fmt"
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
)

// RequestInfo is what the chain engine needs to know about a parent request
// without importing its package.
type RequestInfo struct {
	EmployeeID   string
	RelationID   string
	CompanyID    string
	DurationDays float64
	// Title is the human-readable label used in notifications, e.g.
	// "annual leave 2025-03-01 ~ 2025-03-03".
	Title string
}

// RequestSource is implemented by the leave, overtime and makeup services.
// Finalize applies the terminal effect of the last approval level, or of a
// rejection, to the parent request and its ledger accounts. It runs inside
// the chain's transaction.
type RequestSource interface {
	Info(ctx context.Context, requestID string) (RequestInfo, error)
	Finalize(ctx context.Context, requestID string, approved bool) (*approval.LedgerDelta, error)
}

// ChainService drives multi-level approval chains. Steps are created
// lazily: only the first level exists when a request is submitted, and each
// approval materializes the next level until the chain is exhausted.
type ChainService struct {
	approval.StepRepository
	resolver *Resolver
	tx       database.TxManager
	notifier notification.Service
	sources  map[approval.RequestKind]RequestSource
	clock    clock.Clock
}

func NewChainService(
	stepRepo approval.StepRepository,
	resolver *Resolver,
	tx database.TxManager,
	notifier notification.Service,
	clk clock.Clock,
) *ChainService {
	return &ChainService{
		StepRepository: stepRepo,
		resolver:       resolver,
		tx:             tx,
		notifier:       notifier,
		sources:        make(map[approval.RequestKind]RequestSource),
		clock:          clk,
	}
}

// Register binds a request kind to its owning service. Called once per kind
// at wiring time; Register and the decision methods are never concurrent.
func (s *ChainService) Register(kind approval.RequestKind, src RequestSource) {
	s.sources[kind] = src
}

func (s *ChainService) source(kind approval.RequestKind) (RequestSource, error) {
	src, ok := s.sources[kind]
	if !ok {
		return nil, fmt.Errorf("no request source registered for kind %s", kind)
	}
	return src, nil
}

// CreateChain resolves the approver chain for a new request and creates its
// first pending step. It runs inside the caller's transaction; the caller
// notifies the returned step's approver after commit.
func (s *ChainService) CreateChain(ctx context.Context, kind approval.RequestKind, requestID, relationID string, durationDays float64) (approval.Step, []approval.ResolvedLevel, error) {
	resolved, err := s.resolver.Chain(ctx, relationID, durationDays)
	if err != nil {
		return approval.Step{}, nil, err
	}

	step, err := s.StepRepository.Create(ctx, approval.Step{
		RequestKind: kind,
		RequestID:   requestID,
		Level:       resolved[0].Level,
		ApproverID:  resolved[0].ApproverID,
		Status:      approval.StepPending,
		CreatedAt:   s.clock.Now(),
	})
	if err != nil {
		return approval.Step{}, nil, fmt.Errorf("failed to create approval step: %w", err)
	}
	return step, resolved, nil
}

// loadActionable fetches a step and checks that the actor may decide it.
func (s *ChainService) loadActionable(ctx context.Context, req approval.ActionRequest) (approval.Step, RequestSource, RequestInfo, error) {
	step, err := s.StepRepository.GetByID(ctx, req.StepID)
	if err != nil {
		return approval.Step{}, nil, RequestInfo{}, err
	}
	if step.ApproverID != req.ApproverID {
		return approval.Step{}, nil, RequestInfo{}, approval.ErrNotStepApprover
	}
	if step.Status != approval.StepPending {
		return approval.Step{}, nil, RequestInfo{}, approval.ErrStepNotPending
	}

	src, err := s.source(step.RequestKind)
	if err != nil {
		return approval.Step{}, nil, RequestInfo{}, err
	}
	info, err := src.Info(ctx, step.RequestID)
	if err != nil {
		return approval.Step{}, nil, RequestInfo{}, err
	}
	return step, src, info, nil
}

// Approve records one level's sign-off. A mid-chain approval creates the
// next level's step; the last level's approval finalizes the parent request
// and applies its ledger effect, all within one transaction.
func (s *ChainService) Approve(ctx context.Context, req approval.ActionRequest) (approval.ActionResponse, error) {
	step, src, info, err := s.loadActionable(ctx, req)
	if err != nil {
		return approval.ActionResponse{}, err
	}

	resolved, err := s.resolver.Chain(ctx, info.RelationID, info.DurationDays)
	if err != nil {
		return approval.ActionResponse{}, err
	}
	var next *approval.ResolvedLevel
	for i, lvl := range resolved {
		if lvl.Level == step.Level && i+1 < len(resolved) {
			next = &resolved[i+1]
			break
		}
	}

	resp := approval.ActionResponse{
		StepID:      step.ID,
		RequestKind: step.RequestKind,
		RequestID:   step.RequestID,
		Level:       step.Level,
	}
	var comment *string
	if c := strings.TrimSpace(req.Comment); c != "" {
		comment = &c
	}

	var notices []notification.CreateRequest
	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.StepRepository.Decide(ctx, step.ID, approval.StepApproved, comment, s.clock.Now()); err != nil {
			return err
		}

		if next != nil {
			created, err := s.StepRepository.Create(ctx, approval.Step{
				RequestKind: step.RequestKind,
				RequestID:   step.RequestID,
				Level:       next.Level,
				ApproverID:  next.ApproverID,
				Status:      approval.StepPending,
				CreatedAt:   s.clock.Now(),
			})
			if err != nil {
				return fmt.Errorf("failed to create next approval step: %w", err)
			}
			resp.ParentStatus = "pending"
			resp.NextLevel = &created.Level
			resp.NextApproverID = &created.ApproverID
			notices = append(notices, PendingNotice(step.RequestKind, step.RequestID, created.ApproverID, info.Title))
			return nil
		}

		delta, err := src.Finalize(ctx, step.RequestID, true)
		if err != nil {
			return err
		}
		resp.ParentStatus = "approved"
		resp.LedgerDelta = delta
		notices = append(notices, decisionNotice(step.RequestKind, step.RequestID, info.EmployeeID, info.Title, true))
		return nil
	})
	if err != nil {
		return approval.ActionResponse{}, err
	}

	for _, n := range notices {
		s.notifier.Notify(n)
	}
	return resp, nil
}

// Reject terminates the chain at any level. A comment is mandatory so the
// requester always learns why.
func (s *ChainService) Reject(ctx context.Context, req approval.ActionRequest) (approval.ActionResponse, error) {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return approval.ActionResponse{}, approval.ErrCommentRequired
	}

	step, src, info, err := s.loadActionable(ctx, req)
	if err != nil {
		return approval.ActionResponse{}, err
	}

	resp := approval.ActionResponse{
		StepID:      step.ID,
		RequestKind: step.RequestKind,
		RequestID:   step.RequestID,
		Level:       step.Level,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.StepRepository.Decide(ctx, step.ID, approval.StepRejected, &comment, s.clock.Now()); err != nil {
			return err
		}
		delta, err := src.Finalize(ctx, step.RequestID, false)
		if err != nil {
			return err
		}
		resp.ParentStatus = "rejected"
		resp.LedgerDelta = delta
		return nil
	})
	if err != nil {
		return approval.ActionResponse{}, err
	}

	s.notifier.Notify(decisionNotice(step.RequestKind, step.RequestID, info.EmployeeID, info.Title, false))
	return resp, nil
}

// CancelSteps closes the open step of a request the employee withdrew. It
// runs inside the owning service's transaction.
func (s *ChainService) CancelSteps(ctx context.Context, kind approval.RequestKind, requestID string) error {
	steps, err := s.StepRepository.ListByRequest(ctx, kind, requestID)
	if err != nil {
		return fmt.Errorf("failed to list approval steps: %w", err)
	}
	comment := "request cancelled by employee"
	for _, st := range steps {
		if st.Status != approval.StepPending {
			continue
		}
		if err := s.StepRepository.Decide(ctx, st.ID, approval.StepRejected, &comment, s.clock.Now()); err != nil {
			return err
		}
	}
	return nil
}

// ListPending returns the steps currently waiting on an approver.
func (s *ChainService) ListPending(ctx context.Context, approverID string) ([]approval.StepResponse, error) {
	steps, err := s.StepRepository.ListPendingByApprover(ctx, approverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	resp := make([]approval.StepResponse, 0, len(steps))
	for _, st := range steps {
		resp = append(resp, mapStepToResponse(st))
	}
	return resp, nil
}

// ListByRequest returns every step of one request's chain in level order.
func (s *ChainService) ListByRequest(ctx context.Context, kind approval.RequestKind, requestID string) ([]approval.StepResponse, error) {
	steps, err := s.StepRepository.ListByRequest(ctx, kind, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval steps: %w", err)
	}
	resp := make([]approval.StepResponse, 0, len(steps))
	for _, st := range steps {
		resp = append(resp, mapStepToResponse(st))
	}
	return resp, nil
}

func mapStepToResponse(st approval.Step) approval.StepResponse {
	resp := approval.StepResponse{
		ID:           st.ID,
		RequestKind:  st.RequestKind,
		RequestID:    st.RequestID,
		Level:        st.Level,
		ApproverID:   st.ApproverID,
		ApproverName: st.ApproverName,
		Status:       st.Status,
		Comment:      st.Comment,
		CreatedAt:    st.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if st.ApprovedAt != nil {
		ts := st.ApprovedAt.Format("2006-01-02 15:04:05")
		resp.ApprovedAt = &ts
	}
	return resp
}

func kindLabel(kind approval.RequestKind) string {
	switch kind {
	case approval.KindLeave:
		return "Leave"
	case approval.KindOvertime:
		return "Overtime"
	case approval.KindMakeup:
		return "Makeup punch"
	default:
		return "Request"
	}
}

// PendingNotice builds the notification sent to an approver whose step was
// just created. Owning services emit it after their creation transaction
// commits.
func PendingNotice(kind approval.RequestKind, requestID, approverID, title string) notification.CreateRequest {
	rk := string(kind)
	return notification.CreateRequest{
		RecipientID: approverID,
		Type:        notification.TypeApprovalPending,
		Title:       fmt.Sprintf("%s request awaiting your approval", kindLabel(kind)),
		Content:     title,
		RelatedKind: &rk,
		RelatedID:   &requestID,
	}
}

func decisionNotice(kind approval.RequestKind, requestID, employeeID, title string, approved bool) notification.CreateRequest {
	rk := string(kind)
	var typ notification.Type
	verb := "approved"
	if !approved {
		verb = "rejected"
	}
	switch kind {
	case approval.KindLeave:
		typ = notification.TypeLeaveApproved
		if !approved {
			typ = notification.TypeLeaveRejected
		}
	case approval.KindOvertime:
		typ = notification.TypeOvertimeApproved
		if !approved {
			typ = notification.TypeOvertimeRejected
		}
	default:
		typ = notification.TypeMakeupApproved
		if !approved {
			typ = notification.TypeMakeupRejected
		}
	}
	return notification.CreateRequest{
		RecipientID: employeeID,
		Type:        typ,
		Title:       fmt.Sprintf("%s request %s", kindLabel(kind), verb),
		Content:     title,
		RelatedKind: &rk,
		RelatedID:   &requestID,
	}
}
