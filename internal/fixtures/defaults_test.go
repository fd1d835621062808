package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
)

func TestDefaultApprovalPoliciesAreDisjoint(t *testing.T) {
	policies := GetDefaultApprovalPolicies()

	cases := []struct {
		days       float64
		wantLevels int
	}{
		{0.5, 1},
		{1.99, 1},
		{2, 2},
		{3.99, 2},
		{4, 3},
		{30, 3},
	}

	for _, tc := range cases {
		matched := 0
		for _, p := range policies {
			if p.Matches(tc.days, "any-company") {
				matched++
			}
		}
		assert.Equalf(t, 1, matched, "%.2f days must match exactly one policy", tc.days)

		levels := approval.SelectPolicy(policies, tc.days, "any-company")
		assert.Lenf(t, levels, tc.wantLevels, "%.2f days", tc.days)
	}
}

func TestDefaultWorkSchedule(t *testing.T) {
	ws := GetDefaultWorkSchedule("c1")

	assert.Equal(t, "c1", ws.CompanyID)
	assert.Equal(t, 9, ws.WorkStartTime.Hour())
	assert.Equal(t, 18, ws.WorkEndTime.Hour())
	assert.Equal(t, 8.0, ws.StandardWorkHours)
	assert.Equal(t, 60, ws.LunchBreakMinutes)
	assert.Equal(t, 10, ws.GracePeriodMinutes)
	assert.True(t, ws.IsDefault)
	assert.True(t, ws.IsActive)
}
