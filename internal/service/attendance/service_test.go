package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/company"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
)

type fakeEventRepo struct {
	events map[string]attendance.Event
	nextID int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]attendance.Event)}
}

func (f *fakeEventRepo) Create(_ context.Context, ev attendance.Event) (attendance.Event, error) {
	f.nextID++
	ev.ID = fmt.Sprintf("ev-%d", f.nextID)
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

func (f *fakeEventRepo) List(_ context.Context, companyID string, _ attendance.EventFilter) ([]attendance.Event, int64, error) {
	var out []attendance.Event
	for _, ev := range f.events {
		if ev.CompanyID == companyID {
			out = append(out, ev)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventRepo) Update(_ context.Context, ev attendance.Event) error {
	f.events[ev.ID] = ev
	return nil
}

type fakeCompanyRepo struct {
	companies []company.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	f.companies = append(f.companies, c)
	return c, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	for _, c := range f.companies {
		if c.ID == id {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) GetByCoordinates(_ context.Context, lat, lon float64) (company.Company, error) {
	for _, c := range f.companies {
		if c.Latitude == lat && c.Longitude == lon {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) List(_ context.Context) ([]company.Company, error) {
	return f.companies, nil
}

func (f *fakeCompanyRepo) Update(_ context.Context, c company.Company) error {
	for i := range f.companies {
		if f.companies[i].ID == c.ID {
			f.companies[i] = c
			return nil
		}
	}
	return company.ErrCompanyNotFound
}

type fakeRelationRepo struct {
	relations map[string]employee.EmploymentRelation
}

func (f *fakeRelationRepo) Create(_ context.Context, rel employee.EmploymentRelation) (employee.EmploymentRelation, error) {
	f.relations[rel.ID] = rel
	return rel, nil
}

func (f *fakeRelationRepo) GetByID(_ context.Context, id string) (employee.EmploymentRelation, error) {
	rel, ok := f.relations[id]
	if !ok {
		return employee.EmploymentRelation{}, employee.ErrRelationNotFound
	}
	return rel, nil
}

func (f *fakeRelationRepo) GetActiveByEmployee(_ context.Context, employeeID string) ([]employee.EmploymentRelation, error) {
	var out []employee.EmploymentRelation
	for _, rel := range f.relations {
		if rel.EmployeeID == employeeID && rel.Active {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (f *fakeRelationRepo) ListActive(_ context.Context) ([]employee.EmploymentRelation, error) {
	var out []employee.EmploymentRelation
	for _, rel := range f.relations {
		if rel.Active {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (f *fakeRelationRepo) Update(_ context.Context, rel employee.EmploymentRelation) error {
	f.relations[rel.ID] = rel
	return nil
}

type fakeScheduleRepo struct {
	schedules map[string]schedule.WorkSchedule
	defaults  map[string]string
}

func (f *fakeScheduleRepo) Create(_ context.Context, ws schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	f.schedules[ws.ID] = ws
	return ws, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id string) (schedule.WorkSchedule, error) {
	ws, ok := f.schedules[id]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return ws, nil
}

func (f *fakeScheduleRepo) GetCompanyDefault(_ context.Context, companyID string) (schedule.WorkSchedule, error) {
	id, ok := f.defaults[companyID]
	if !ok {
		return schedule.WorkSchedule{}, schedule.ErrScheduleNotFound
	}
	return f.schedules[id], nil
}

func (f *fakeScheduleRepo) ListByCompany(_ context.Context, companyID string) ([]schedule.WorkSchedule, error) {
	var out []schedule.WorkSchedule
	for _, ws := range f.schedules {
		if ws.CompanyID == companyID {
			out = append(out, ws)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, ws schedule.WorkSchedule) error {
	f.schedules[ws.ID] = ws
	return nil
}

// stepClock lets a test move time forward between clock-in and clock-out.
type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testNow is mid-morning so a clock-in at the test instant lands after the
// 9:00 schedule start plus grace.
var testNow = time.Date(2026, 3, 16, 9, 30, 0, 0, time.UTC)

type fixture struct {
	events    *fakeEventRepo
	clock     *stepClock
	service   attendance.Service
	companyID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	events := newFakeEventRepo()
	companies := &fakeCompanyRepo{companies: []company.Company{{
		ID:           "c1",
		Name:         "Attendly HQ",
		Latitude:     25.0330,
		Longitude:    121.5654,
		RadiusMeters: 200,
	}}}
	relations := &fakeRelationRepo{relations: map[string]employee.EmploymentRelation{
		"rel-1": {ID: "rel-1", EmployeeID: "emp-1", CompanyID: "c1", Active: true},
	}}
	schedules := &fakeScheduleRepo{
		schedules: map[string]schedule.WorkSchedule{
			"ws-1": {
				ID:                 "ws-1",
				CompanyID:          "c1",
				WorkStartTime:      time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
				WorkEndTime:        time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
				GracePeriodMinutes: 10,
				IsDefault:          true,
				IsActive:           true,
			},
		},
		defaults: map[string]string{"c1": "ws-1"},
	}

	clk := &stepClock{now: testNow}
	svc := NewService(events, companies, relations, schedules, clk)
	return &fixture{events: events, clock: clk, service: svc, companyID: "c1"}
}

func clockInAtOffice() attendance.ClockInRequest {
	return attendance.ClockInRequest{
		RelationID:    "rel-1",
		QRLatitude:    25.0330,
		QRLongitude:   121.5654,
		UserLatitude:  25.0331,
		UserLongitude: 121.5654,
		Location:      "lobby",
	}
}

func TestClockIn(t *testing.T) {
	t.Run("records a late arrival against the default schedule", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.service.ClockIn(context.Background(), clockInAtOffice())
		require.NoError(t, err)

		assert.Equal(t, "rel-1", resp.RelationID)
		assert.Equal(t, "2026-03-16", resp.Date)
		assert.True(t, resp.IsLate)
		assert.Equal(t, 30, resp.LateMinutes)
		assert.Less(t, resp.DistanceMeters, 200.0)
	})

	t.Run("rejects a second clock-in on the same day", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ClockIn(context.Background(), clockInAtOffice())
		require.NoError(t, err)

		_, err = f.service.ClockIn(context.Background(), clockInAtOffice())
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	})

	t.Run("rejects unregistered QR coordinates", func(t *testing.T) {
		f := newFixture(t)

		req := clockInAtOffice()
		req.QRLatitude = 24.0
		_, err := f.service.ClockIn(context.Background(), req)
		assert.ErrorIs(t, err, company.ErrInvalidQRCode)
	})

	t.Run("rejects a device outside the geofence", func(t *testing.T) {
		f := newFixture(t)

		req := clockInAtOffice()
		req.UserLatitude = 25.3 // roughly 30 km north
		_, err := f.service.ClockIn(context.Background(), req)
		assert.ErrorIs(t, err, attendance.ErrLocationOutOfRange)
	})

	t.Run("unknown relation", func(t *testing.T) {
		f := newFixture(t)

		req := clockInAtOffice()
		req.RelationID = "rel-missing"
		_, err := f.service.ClockIn(context.Background(), req)
		assert.ErrorIs(t, err, employee.ErrRelationNotFound)
	})
}

func TestClockOut(t *testing.T) {
	clockOutAtOffice := func() attendance.ClockOutRequest {
		return attendance.ClockOutRequest{
			RelationID:    "rel-1",
			QRLatitude:    25.0330,
			QRLongitude:   121.5654,
			UserLatitude:  25.0331,
			UserLongitude: 121.5654,
		}
	}

	t.Run("closes today's open event", func(t *testing.T) {
		f := newFixture(t)

		in, err := f.service.ClockIn(context.Background(), clockInAtOffice())
		require.NoError(t, err)

		f.clock.Advance(8 * time.Hour) // 17:30, before the 18:00 schedule end

		out, err := f.service.ClockOut(context.Background(), clockOutAtOffice())
		require.NoError(t, err)

		assert.Equal(t, in.ID, out.ID)
		assert.Equal(t, 8.0, out.WorkHours)
		assert.True(t, out.IsEarlyLeave)
		assert.Equal(t, 30, out.EarlyLeaveMinutes)
	})

	t.Run("requires a prior clock-in", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ClockOut(context.Background(), clockOutAtOffice())
		assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
	})

	t.Run("rejects a second clock-out", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.ClockIn(context.Background(), clockInAtOffice())
		require.NoError(t, err)

		f.clock.Advance(8 * time.Hour)
		_, err = f.service.ClockOut(context.Background(), clockOutAtOffice())
		require.NoError(t, err)

		_, err = f.service.ClockOut(context.Background(), clockOutAtOffice())
		assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)
	})
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 8.5, RoundHours(8*time.Hour+30*time.Minute))
	assert.Equal(t, 8.01, RoundHours(8*time.Hour+30*time.Second))
	assert.Equal(t, 0.0, RoundHours(0))
}
