package overtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/overtime"
)

func TestNormalizeSplit(t *testing.T) {
	t.Run("pay absorbs the full amount", func(t *testing.T) {
		pay, comp, err := normalizeSplit(overtime.CompensationPay, 3, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, 3.0, pay)
		assert.Zero(t, comp)
	})

	t.Run("compensatory absorbs the full amount", func(t *testing.T) {
		pay, comp, err := normalizeSplit(overtime.CompensationCompensatory, 3, 0, 0)
		require.NoError(t, err)
		assert.Zero(t, pay)
		assert.Equal(t, 3.0, comp)
	})

	t.Run("mixed split that sums to the total", func(t *testing.T) {
		pay, comp, err := normalizeSplit(overtime.CompensationMixed, 3, 1.5, 1.5)
		require.NoError(t, err)
		assert.Equal(t, 1.5, pay)
		assert.Equal(t, 1.5, comp)
	})

	t.Run("mixed split within the rounding tolerance", func(t *testing.T) {
		_, _, err := normalizeSplit(overtime.CompensationMixed, 3, 1.5, 1.495)
		assert.NoError(t, err)
	})

	t.Run("mixed split that does not sum", func(t *testing.T) {
		_, _, err := normalizeSplit(overtime.CompensationMixed, 3, 1, 1)
		assert.ErrorIs(t, err, overtime.ErrInvalidSplit)
	})

	t.Run("negative components are refused", func(t *testing.T) {
		_, _, err := normalizeSplit(overtime.CompensationMixed, 3, 4, -1)
		assert.ErrorIs(t, err, overtime.ErrInvalidSplit)
	})

	t.Run("unknown compensation is refused", func(t *testing.T) {
		_, _, err := normalizeSplit(overtime.Compensation("vacation"), 3, 0, 0)
		assert.ErrorIs(t, err, overtime.ErrInvalidSplit)
	})
}

type fakeRequestRepo struct {
	requests map[string]overtime.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, req overtime.Request) (overtime.Request, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (overtime.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ string, _ overtime.RequestFilter) ([]overtime.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status overtime.Status) error {
	req, ok := f.requests[id]
	if !ok {
		return overtime.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return overtime.ErrAlreadyProcessed
	}
	req.Status = status
	f.requests[id] = req
	return nil
}

type fakeLedger struct {
	accounts map[ledger.Category]*ledger.Account
}

func (f *fakeLedger) GetOrCreate(_ context.Context, employeeID string, year int, category ledger.Category, defaultTotal float64) (ledger.Account, error) {
	if acc, ok := f.accounts[category]; ok {
		return *acc, nil
	}
	acc := &ledger.Account{EmployeeID: employeeID, Year: year, Category: category, Total: defaultTotal, Remaining: defaultTotal}
	f.accounts[category] = acc
	return *acc, nil
}

func (f *fakeLedger) Get(_ context.Context, _ string, _ int, category ledger.Category) (ledger.Account, error) {
	acc, ok := f.accounts[category]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return *acc, nil
}

func (f *fakeLedger) ListByEmployeeYear(_ context.Context, _ string, _ int) ([]ledger.Account, error) {
	return nil, nil
}

func (f *fakeLedger) Deduct(_ context.Context, _ string, _ int, category ledger.Category, amount float64) error {
	acc, ok := f.accounts[category]
	if !ok || acc.Remaining < amount {
		return ledger.ErrInsufficientBalance
	}
	acc.Used += amount
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) Restore(_ context.Context, _ string, _ int, category ledger.Category, amount float64) error {
	acc := f.accounts[category]
	acc.Used -= amount
	if acc.Used < 0 {
		acc.Used = 0
	}
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) Credit(_ context.Context, _ string, _ int, category ledger.Category, amount float64) error {
	acc, ok := f.accounts[category]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	acc.Total += amount
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) ResetTotal(_ context.Context, _ string, _ int, category ledger.Category, total float64) error {
	acc := f.accounts[category]
	acc.Total = total
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func seedFinalizeService(compensation overtime.Compensation, payHours, compHours float64) (*ServiceImpl, *fakeRequestRepo, *fakeLedger) {
	requests := &fakeRequestRepo{requests: make(map[string]overtime.Request)}
	led := &fakeLedger{accounts: make(map[ledger.Category]*ledger.Account)}
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	requests.requests["ot-1"] = overtime.Request{
		ID:                "ot-1",
		RelationID:        "rel-1",
		EmployeeID:        "emp-1",
		CompanyID:         "c1",
		Date:              day,
		StartTime:         day.Add(18 * time.Hour),
		EndTime:           day.Add(21 * time.Hour),
		Hours:             payHours + compHours,
		Compensation:      compensation,
		PayHours:          payHours,
		CompensatoryHours: compHours,
		Status:            overtime.StatusPending,
	}
	svc := &ServiceImpl{
		RequestRepository: requests,
		Repository:        led,
	}
	return svc, requests, led
}

func TestFinalize(t *testing.T) {
	t.Run("approval credits the compensatory hours", func(t *testing.T) {
		svc, requests, led := seedFinalizeService(overtime.CompensationCompensatory, 0, 3)

		delta, err := svc.Finalize(context.Background(), "ot-1", true)
		require.NoError(t, err)
		require.NotNil(t, delta)
		assert.Equal(t, "credit", delta.Kind)
		assert.Equal(t, 3.0, delta.Amount)
		assert.Equal(t, string(ledger.CategoryCompensatory), delta.Category)

		assert.Equal(t, overtime.StatusApproved, requests.requests["ot-1"].Status)
		acc := led.accounts[ledger.CategoryCompensatory]
		require.NotNil(t, acc)
		assert.Equal(t, 3.0, acc.Remaining)
	})

	t.Run("pay-only approval leaves the ledger alone", func(t *testing.T) {
		svc, requests, led := seedFinalizeService(overtime.CompensationPay, 3, 0)

		delta, err := svc.Finalize(context.Background(), "ot-1", true)
		require.NoError(t, err)
		assert.Nil(t, delta)
		assert.Equal(t, overtime.StatusApproved, requests.requests["ot-1"].Status)
		assert.Empty(t, led.accounts)
	})

	t.Run("rejection never credits", func(t *testing.T) {
		svc, requests, led := seedFinalizeService(overtime.CompensationCompensatory, 0, 3)

		delta, err := svc.Finalize(context.Background(), "ot-1", false)
		require.NoError(t, err)
		assert.Nil(t, delta)
		assert.Equal(t, overtime.StatusRejected, requests.requests["ot-1"].Status)
		assert.Empty(t, led.accounts)
	})

	t.Run("a terminal request cannot be finalized twice", func(t *testing.T) {
		svc, _, led := seedFinalizeService(overtime.CompensationCompensatory, 0, 3)

		_, err := svc.Finalize(context.Background(), "ot-1", true)
		require.NoError(t, err)

		_, err = svc.Finalize(context.Background(), "ot-1", true)
		assert.ErrorIs(t, err, overtime.ErrAlreadyProcessed)

		assert.Equal(t, 3.0, led.accounts[ledger.CategoryCompensatory].Remaining)
	})
}
