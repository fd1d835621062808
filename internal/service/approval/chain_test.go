package approval

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/notification"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

var testNow = time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

type fakeStepRepo struct {
	steps  map[string]*approval.Step
	nextID int
}

func newFakeStepRepo() *fakeStepRepo {
	return &fakeStepRepo{steps: make(map[string]*approval.Step)}
}

func (r *fakeStepRepo) Create(_ context.Context, s approval.Step) (approval.Step, error) {
	r.nextID++
	s.ID = fmt.Sprintf("step-%d", r.nextID)
	r.steps[s.ID] = &s
	return s, nil
}

func (r *fakeStepRepo) GetByID(_ context.Context, id string) (approval.Step, error) {
	s, ok := r.steps[id]
	if !ok {
		return approval.Step{}, approval.ErrStepNotFound
	}
	return *s, nil
}

func (r *fakeStepRepo) ListByRequest(_ context.Context, kind approval.RequestKind, requestID string) ([]approval.Step, error) {
	var out []approval.Step
	for i := 1; i <= r.nextID; i++ {
		s := r.steps[fmt.Sprintf("step-%d", i)]
		if s != nil && s.RequestKind == kind && s.RequestID == requestID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStepRepo) ListPendingByApprover(_ context.Context, approverID string) ([]approval.Step, error) {
	var out []approval.Step
	for i := 1; i <= r.nextID; i++ {
		s := r.steps[fmt.Sprintf("step-%d", i)]
		if s != nil && s.ApproverID == approverID && s.Status == approval.StepPending {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStepRepo) Decide(_ context.Context, stepID string, status approval.StepStatus, comment *string, decidedAt time.Time) error {
	s, ok := r.steps[stepID]
	if !ok {
		return approval.ErrStepNotFound
	}
	if s.Status != approval.StepPending {
		return approval.ErrStepNotPending
	}
	s.Status = status
	s.Comment = comment
	s.ApprovedAt = &decidedAt
	return nil
}

type fakePolicyRepo struct {
	policies []approval.Policy
}

func (r *fakePolicyRepo) Create(_ context.Context, p approval.Policy) (approval.Policy, error) {
	r.policies = append(r.policies, p)
	return p, nil
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id string) (approval.Policy, error) {
	for _, p := range r.policies {
		if p.ID == id {
			return p, nil
		}
	}
	return approval.Policy{}, approval.ErrPolicyNotFound
}

func (r *fakePolicyRepo) ListActive(_ context.Context, _ string) ([]approval.Policy, error) {
	return r.policies, nil
}

func (r *fakePolicyRepo) Update(_ context.Context, _ approval.Policy) error { return nil }

type fakeRelationRepo struct {
	relations map[string]employee.EmploymentRelation
}

func (r *fakeRelationRepo) Create(_ context.Context, rel employee.EmploymentRelation) (employee.EmploymentRelation, error) {
	r.relations[rel.ID] = rel
	return rel, nil
}

func (r *fakeRelationRepo) GetByID(_ context.Context, id string) (employee.EmploymentRelation, error) {
	rel, ok := r.relations[id]
	if !ok {
		return employee.EmploymentRelation{}, employee.ErrRelationNotFound
	}
	return rel, nil
}

func (r *fakeRelationRepo) GetActiveByEmployee(_ context.Context, _ string) ([]employee.EmploymentRelation, error) {
	return nil, nil
}

func (r *fakeRelationRepo) ListActive(_ context.Context) ([]employee.EmploymentRelation, error) {
	return nil, nil
}

func (r *fakeRelationRepo) Update(_ context.Context, _ employee.EmploymentRelation) error {
	return nil
}

type fakeManagerialRepo struct {
	managers map[string]string
}

func (r *fakeManagerialRepo) Create(_ context.Context, mr employee.ManagerialRelationship) (employee.ManagerialRelationship, error) {
	return mr, nil
}

func (r *fakeManagerialRepo) GetActiveManager(_ context.Context, employeeID string, _ time.Time) (string, error) {
	managerID, ok := r.managers[employeeID]
	if !ok {
		return "", employee.ErrEmployeeNotFound
	}
	return managerID, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]string // role -> approver
}

func (r *fakeAssignmentRepo) Upsert(_ context.Context, a employee.ApproverAssignment) (employee.ApproverAssignment, error) {
	r.assignments[a.Role] = a.ApproverID
	return a, nil
}

func (r *fakeAssignmentRepo) GetApprover(_ context.Context, _, role string) (string, error) {
	approverID, ok := r.assignments[role]
	if !ok {
		return "", employee.ErrEmployeeNotFound
	}
	return approverID, nil
}

type passTx struct{}

func (passTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeNotifier struct {
	sent []notification.CreateRequest
}

func (n *fakeNotifier) Notify(req notification.CreateRequest) { n.sent = append(n.sent, req) }

func (n *fakeNotifier) List(_ context.Context, _ string, _ bool, _ int) ([]notification.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) MarkRead(_ context.Context, _, _ string) error { return nil }

func (n *fakeNotifier) Close() {}

type fakeSource struct {
	info      RequestInfo
	finalized []bool
	delta     *approval.LedgerDelta
}

func (s *fakeSource) Info(_ context.Context, _ string) (RequestInfo, error) {
	return s.info, nil
}

func (s *fakeSource) Finalize(_ context.Context, _ string, approved bool) (*approval.LedgerDelta, error) {
	s.finalized = append(s.finalized, approved)
	if approved {
		return s.delta, nil
	}
	return nil, nil
}

type chainFixture struct {
	steps    *fakeStepRepo
	source   *fakeSource
	notifier *fakeNotifier
	chain    *ChainService
}

// newChainFixture builds a chain over a three-level policy for the employee
// "emp-1" on relation "rel-1": manager "mgr-1", HR "hr-1", CEO "ceo-1".
func newChainFixture(t *testing.T, durationDays float64) *chainFixture {
	t.Helper()

	maxShort := 1.99
	maxStandard := 3.99
	policyRepo := &fakePolicyRepo{policies: []approval.Policy{
		{ID: "p1", MinDays: 0, MaxDays: &maxShort, IsActive: true, Levels: []approval.PolicyLevel{
			{Level: 1, Role: approval.RoleManager},
		}},
		{ID: "p2", MinDays: 2, MaxDays: &maxStandard, IsActive: true, Levels: []approval.PolicyLevel{
			{Level: 1, Role: approval.RoleManager},
			{Level: 2, Role: approval.RoleHR},
		}},
		{ID: "p3", MinDays: 4, IsActive: true, Levels: []approval.PolicyLevel{
			{Level: 1, Role: approval.RoleManager},
			{Level: 2, Role: approval.RoleHR},
			{Level: 3, Role: approval.RoleCEO},
		}},
	}}

	managerID := "mgr-1"
	relationRepo := &fakeRelationRepo{relations: map[string]employee.EmploymentRelation{
		"rel-1": {ID: "rel-1", EmployeeID: "emp-1", CompanyID: "c1", DirectManagerID: &managerID},
	}}
	managerialRepo := &fakeManagerialRepo{managers: map[string]string{}}
	assignmentRepo := &fakeAssignmentRepo{assignments: map[string]string{
		approval.RoleHR:  "hr-1",
		approval.RoleCEO: "ceo-1",
	}}

	clk := clock.Fixed(testNow)
	resolver := NewResolver(policyRepo, relationRepo, managerialRepo, assignmentRepo, clk)

	steps := newFakeStepRepo()
	notifier := &fakeNotifier{}
	chain := NewChainService(steps, resolver, passTx{}, notifier, clk)

	source := &fakeSource{
		info: RequestInfo{
			EmployeeID:   "emp-1",
			RelationID:   "rel-1",
			CompanyID:    "c1",
			DurationDays: durationDays,
			Title:        "annual leave",
		},
		delta: &approval.LedgerDelta{Category: "annual", Amount: 16, Kind: "deduct"},
	}
	chain.Register(approval.KindLeave, source)

	return &chainFixture{steps: steps, source: source, notifier: notifier, chain: chain}
}

func (f *chainFixture) createChain(t *testing.T, durationDays float64) approval.Step {
	t.Helper()
	step, _, err := f.chain.CreateChain(context.Background(), approval.KindLeave, "req-1", "rel-1", durationDays)
	require.NoError(t, err)
	return step
}

func TestCreateChain(t *testing.T) {
	t.Run("only the first level is materialized", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		assert.Equal(t, 1, step.Level)
		assert.Equal(t, "mgr-1", step.ApproverID)
		assert.Equal(t, approval.StepPending, step.Status)
		assert.Len(t, f.steps.steps, 1)
	})

	t.Run("resolved chain covers every level", func(t *testing.T) {
		f := newChainFixture(t, 5)
		_, resolved, err := f.chain.CreateChain(context.Background(), approval.KindLeave, "req-1", "rel-1", 5)
		require.NoError(t, err)
		require.Len(t, resolved, 3)
		assert.Equal(t, "mgr-1", resolved[0].ApproverID)
		assert.Equal(t, "hr-1", resolved[1].ApproverID)
		assert.Equal(t, "ceo-1", resolved[2].ApproverID)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("mid-chain approval creates the next step", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		resp, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		require.NoError(t, err)

		assert.Equal(t, "pending", resp.ParentStatus)
		require.NotNil(t, resp.NextLevel)
		assert.Equal(t, 2, *resp.NextLevel)
		require.NotNil(t, resp.NextApproverID)
		assert.Equal(t, "hr-1", *resp.NextApproverID)
		assert.Empty(t, f.source.finalized)

		// The new approver is notified.
		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, "hr-1", f.notifier.sent[0].RecipientID)
		assert.Equal(t, notification.TypeApprovalPending, f.notifier.sent[0].Type)
	})

	t.Run("terminal approval finalizes the request once", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		_, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		require.NoError(t, err)
		_, err = f.chain.Approve(ctx, approval.ActionRequest{StepID: pendingStepID(t, f, 2), ApproverID: "hr-1"})
		require.NoError(t, err)
		resp, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: pendingStepID(t, f, 3), ApproverID: "ceo-1"})
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.ParentStatus)
		assert.Nil(t, resp.NextLevel)
		require.NotNil(t, resp.LedgerDelta)
		assert.Equal(t, "deduct", resp.LedgerDelta.Kind)
		assert.Equal(t, []bool{true}, f.source.finalized)

		// Final notice goes to the requester.
		last := f.notifier.sent[len(f.notifier.sent)-1]
		assert.Equal(t, "emp-1", last.RecipientID)
		assert.Equal(t, notification.TypeLeaveApproved, last.Type)
	})

	t.Run("single-level chain finalizes immediately", func(t *testing.T) {
		f := newChainFixture(t, 1)
		step := f.createChain(t, 1)

		resp, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.ParentStatus)
		assert.Equal(t, []bool{true}, f.source.finalized)
	})

	t.Run("wrong approver is refused", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		_, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "hr-1"})
		assert.ErrorIs(t, err, approval.ErrNotStepApprover)
	})

	t.Run("double approval is refused", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		_, err := f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		require.NoError(t, err)
		_, err = f.chain.Approve(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		assert.ErrorIs(t, err, approval.ErrStepNotPending)
	})
}

// pendingStepID finds the pending step at the given level; the action
// response carries only the next approver's ID, not the new step's.
func pendingStepID(t *testing.T, f *chainFixture, level int) string {
	t.Helper()
	for id, st := range f.steps.steps {
		if st.Level == level && st.Status == approval.StepPending {
			return id
		}
	}
	t.Fatalf("no pending step at level %d", level)
	return ""
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("comment is mandatory", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		_, err := f.chain.Reject(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1"})
		assert.ErrorIs(t, err, approval.ErrCommentRequired)
		_, err = f.chain.Reject(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1", Comment: "   "})
		assert.ErrorIs(t, err, approval.ErrCommentRequired)
	})

	t.Run("rejection terminates the chain without a ledger effect", func(t *testing.T) {
		f := newChainFixture(t, 5)
		step := f.createChain(t, 5)

		resp, err := f.chain.Reject(ctx, approval.ActionRequest{StepID: step.ID, ApproverID: "mgr-1", Comment: "coverage gap"})
		require.NoError(t, err)

		assert.Equal(t, "rejected", resp.ParentStatus)
		assert.Nil(t, resp.LedgerDelta)
		assert.Equal(t, []bool{false}, f.source.finalized)
		// No further step was created.
		assert.Len(t, f.steps.steps, 1)

		last := f.notifier.sent[len(f.notifier.sent)-1]
		assert.Equal(t, "emp-1", last.RecipientID)
		assert.Equal(t, notification.TypeLeaveRejected, last.Type)
	})
}

func TestCancelSteps(t *testing.T) {
	f := newChainFixture(t, 5)
	step := f.createChain(t, 5)

	err := f.chain.CancelSteps(context.Background(), approval.KindLeave, "req-1")
	require.NoError(t, err)

	got, err := f.steps.GetByID(context.Background(), step.ID)
	require.NoError(t, err)
	assert.Equal(t, approval.StepRejected, got.Status)
	require.NotNil(t, got.Comment)
	assert.Equal(t, "request cancelled by employee", *got.Comment)
}

func TestListPending(t *testing.T) {
	f := newChainFixture(t, 5)
	f.createChain(t, 5)

	pending, err := f.chain.ListPending(context.Background(), "mgr-1")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, approval.StepPending, pending[0].Status)

	pending, err = f.chain.ListPending(context.Background(), "hr-1")
	require.NoError(t, err)
	assert.Empty(t, pending)
}
