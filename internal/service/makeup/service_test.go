package makeup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/ledger"
	"github.com/attendly/attendance-backend-go/internal/domain/makeup"
	"github.com/attendly/attendance-backend-go/internal/pkg/clock"
)

func TestWithinWindow(t *testing.T) {
	now := time.Date(2026, 3, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"same day", time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC), true},
		{"yesterday", time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC), true},
		{"oldest eligible day", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), true},
		{"one day past the window", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), false},
		{"tomorrow", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, withinWindow(tt.date, now))
		})
	}
}

func TestParseOptionalTime(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		got, err := parseOptionalTime(nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty string passes through", func(t *testing.T) {
		s := ""
		got, err := parseOptionalTime(&s)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("valid RFC3339", func(t *testing.T) {
		s := "2026-03-10T09:00:00Z"
		got, err := parseOptionalTime(&s)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), *got)
	})

	t.Run("invalid format", func(t *testing.T) {
		s := "10/03/2026 09:00"
		_, err := parseOptionalTime(&s)
		assert.Error(t, err)
	})
}

type fakeRequestRepo struct {
	requests map[string]makeup.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, req makeup.Request) (makeup.Request, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (makeup.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return makeup.Request{}, makeup.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(_ context.Context, _ string, _ makeup.RequestFilter) ([]makeup.Request, int64, error) {
	return nil, 0, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id string, status makeup.Status) error {
	req, ok := f.requests[id]
	if !ok {
		return makeup.ErrRequestNotFound
	}
	if req.Status.Terminal() {
		return makeup.ErrAlreadyProcessed
	}
	req.Status = status
	f.requests[id] = req
	return nil
}

func (f *fakeRequestRepo) LinkAttendance(_ context.Context, id string, attendanceID string) error {
	req := f.requests[id]
	req.AttendanceID = &attendanceID
	f.requests[id] = req
	return nil
}

type fakeEventRepo struct {
	events map[string]attendance.Event
}

func (f *fakeEventRepo) Create(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	ev.ID = "ev-new"
	f.events[ev.ID] = ev
	return ev, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (attendance.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return attendance.Event{}, attendance.ErrRecordNotFound
	}
	return ev, nil
}

func (f *fakeEventRepo) GetByRelationAndDate(_ context.Context, relationID string, date time.Time) (*attendance.Event, error) {
	for _, ev := range f.events {
		if ev.RelationID == relationID && ev.Date.Equal(date) {
			found := ev
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeEventRepo) List(_ context.Context, _ string, _ attendance.EventFilter) ([]attendance.Event, int64, error) {
	return nil, 0, nil
}

func (f *fakeEventRepo) Update(_ context.Context, ev attendance.Event) error {
	f.events[ev.ID] = ev
	return nil
}

type fakeLedger struct {
	accounts map[string]*ledger.Account
}

func ledgerKey(employeeID string, year int, category ledger.Category) string {
	return employeeID + "|" + string(category)
}

func (f *fakeLedger) GetOrCreate(_ context.Context, employeeID string, year int, category ledger.Category, defaultTotal float64) (ledger.Account, error) {
	key := ledgerKey(employeeID, year, category)
	if acc, ok := f.accounts[key]; ok {
		return *acc, nil
	}
	acc := &ledger.Account{EmployeeID: employeeID, Year: year, Category: category, Total: defaultTotal, Remaining: defaultTotal}
	f.accounts[key] = acc
	return *acc, nil
}

func (f *fakeLedger) Get(_ context.Context, employeeID string, year int, category ledger.Category) (ledger.Account, error) {
	acc, ok := f.accounts[ledgerKey(employeeID, year, category)]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return *acc, nil
}

func (f *fakeLedger) ListByEmployeeYear(_ context.Context, _ string, _ int) ([]ledger.Account, error) {
	return nil, nil
}

func (f *fakeLedger) Deduct(_ context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	acc, ok := f.accounts[ledgerKey(employeeID, year, category)]
	if !ok || acc.Remaining < amount {
		return ledger.ErrInsufficientBalance
	}
	acc.Used += amount
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) Restore(_ context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	acc := f.accounts[ledgerKey(employeeID, year, category)]
	acc.Used -= amount
	if acc.Used < 0 {
		acc.Used = 0
	}
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) Credit(_ context.Context, employeeID string, year int, category ledger.Category, amount float64) error {
	acc, ok := f.accounts[ledgerKey(employeeID, year, category)]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	acc.Total += amount
	acc.Remaining = acc.Total - acc.Used
	return nil
}

func (f *fakeLedger) ResetTotal(_ context.Context, employeeID string, year int, category ledger.Category, total float64) error {
	acc := f.accounts[ledgerKey(employeeID, year, category)]
	acc.Total = total
	acc.Remaining = acc.Total - acc.Used
	return nil
}

var finalizeNow = time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)

type finalizeFixture struct {
	requests *fakeRequestRepo
	events   *fakeEventRepo
	ledger   *fakeLedger
	service  *ServiceImpl
}

func newFinalizeFixture() *finalizeFixture {
	requests := &fakeRequestRepo{requests: make(map[string]makeup.Request)}
	events := &fakeEventRepo{events: make(map[string]attendance.Event)}
	led := &fakeLedger{accounts: make(map[string]*ledger.Account)}
	svc := &ServiceImpl{
		RequestRepository: requests,
		EventRepository:   events,
		Repository:        led,
		clock:             clock.Fixed(finalizeNow),
	}
	return &finalizeFixture{requests: requests, events: events, ledger: led, service: svc}
}

func (f *finalizeFixture) seedQuota(used float64) {
	f.ledger.accounts[ledgerKey("emp-1", 2026, ledger.CategoryMakeup)] = &ledger.Account{
		EmployeeID: "emp-1",
		Year:       2026,
		Category:   ledger.CategoryMakeup,
		Total:      24,
		Used:       used,
		Remaining:  24 - used,
	}
}

func (f *finalizeFixture) seedRequest() makeup.Request {
	checkIn := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)
	req := makeup.Request{
		ID:                   "mk-1",
		RelationID:           "rel-1",
		EmployeeID:           "emp-1",
		CompanyID:            "c1",
		Date:                 time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Type:                 makeup.TypeCheckIn,
		RequestedCheckInTime: &checkIn,
		Status:               makeup.StatusPending,
	}
	f.requests.requests[req.ID] = req
	return req
}

func TestFinalize(t *testing.T) {
	t.Run("approval patches the existing event and consumes one quota unit", func(t *testing.T) {
		f := newFinalizeFixture()
		f.seedQuota(0)
		f.seedRequest()
		f.events.events["ev-1"] = attendance.Event{
			ID:           "ev-1",
			RelationID:   "rel-1",
			Date:         time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			CheckInTime:  time.Date(2026, 3, 13, 9, 45, 0, 0, time.UTC),
			CheckOutTime: time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC),
			IsLate:       true,
			LateMinutes:  45,
		}

		delta, err := f.service.Finalize(context.Background(), "mk-1", true)
		require.NoError(t, err)
		require.NotNil(t, delta)
		assert.Equal(t, "deduct", delta.Kind)
		assert.Equal(t, 1.0, delta.Amount)

		req := f.requests.requests["mk-1"]
		assert.Equal(t, makeup.StatusApproved, req.Status)
		require.NotNil(t, req.AttendanceID)
		assert.Equal(t, "ev-1", *req.AttendanceID)

		ev := f.events.events["ev-1"]
		assert.True(t, ev.IsMakeup)
		assert.False(t, ev.IsLate)
		assert.Zero(t, ev.LateMinutes)
		assert.Equal(t, time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), ev.CheckInTime)
		assert.Equal(t, 9.0, ev.WorkHours)

		acc := f.ledger.accounts[ledgerKey("emp-1", 2026, ledger.CategoryMakeup)]
		assert.Equal(t, 1.0, acc.Used)
		assert.Equal(t, 23.0, acc.Remaining)
	})

	t.Run("approval creates the event when the day has none", func(t *testing.T) {
		f := newFinalizeFixture()
		f.seedQuota(0)
		f.seedRequest()

		_, err := f.service.Finalize(context.Background(), "mk-1", true)
		require.NoError(t, err)

		ev, ok := f.events.events["ev-new"]
		require.True(t, ok)
		assert.True(t, ev.IsMakeup)
		assert.Equal(t, "rel-1", ev.RelationID)
	})

	t.Run("rejection never touches the quota", func(t *testing.T) {
		f := newFinalizeFixture()
		f.seedQuota(0)
		f.seedRequest()

		delta, err := f.service.Finalize(context.Background(), "mk-1", false)
		require.NoError(t, err)
		assert.Nil(t, delta)

		assert.Equal(t, makeup.StatusRejected, f.requests.requests["mk-1"].Status)
		assert.Zero(t, f.ledger.accounts[ledgerKey("emp-1", 2026, ledger.CategoryMakeup)].Used)
	})

	t.Run("a terminal request cannot be finalized twice", func(t *testing.T) {
		f := newFinalizeFixture()
		f.seedQuota(0)
		f.seedRequest()

		_, err := f.service.Finalize(context.Background(), "mk-1", true)
		require.NoError(t, err)

		_, err = f.service.Finalize(context.Background(), "mk-1", true)
		assert.ErrorIs(t, err, makeup.ErrAlreadyProcessed)

		assert.Equal(t, 1.0, f.ledger.accounts[ledgerKey("emp-1", 2026, ledger.CategoryMakeup)].Used)
	})

	t.Run("exhausted quota surfaces as quota exceeded", func(t *testing.T) {
		f := newFinalizeFixture()
		f.seedQuota(24)
		f.seedRequest()

		_, err := f.service.Finalize(context.Background(), "mk-1", true)
		assert.ErrorIs(t, err, ledger.ErrQuotaExceeded)
	})
}
