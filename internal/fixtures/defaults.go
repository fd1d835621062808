package fixtures

import (
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/approval"
	"github.com/attendly/attendance-backend-go/internal/domain/schedule"
)

func float64Ptr(f float64) *float64 { return &f }

// GetDefaultApprovalPolicies returns the company-agnostic policy set applied
// when no custom policies exist: requests under 2 days stop at the direct
// manager, 2 to under 4 days add HR, and 4 days or more go all the way to
// the CEO. Both policy bounds are inclusive, so the ranges are kept disjoint
// to never produce an ambiguous match.
func GetDefaultApprovalPolicies() []approval.Policy {
	return []approval.Policy{
		{
			Name:    "Short leave",
			MinDays: 0,
			MaxDays: float64Ptr(1.99),
			Levels: []approval.PolicyLevel{
				{Level: 1, Role: approval.RoleManager, Description: "direct manager"},
			},
			IsActive: true,
		},
		{
			Name:    "Standard leave",
			MinDays: 2,
			MaxDays: float64Ptr(3.99),
			Levels: []approval.PolicyLevel{
				{Level: 1, Role: approval.RoleManager, Description: "direct manager"},
				{Level: 2, Role: approval.RoleHR, Description: "human resources"},
			},
			IsActive: true,
		},
		{
			Name:    "Extended leave",
			MinDays: 4,
			MaxDays: nil,
			Levels: []approval.PolicyLevel{
				{Level: 1, Role: approval.RoleManager, Description: "direct manager"},
				{Level: 2, Role: approval.RoleHR, Description: "human resources"},
				{Level: 3, Role: approval.RoleCEO, Description: "general manager"},
			},
			IsActive: true,
		},
	}
}

// GetDefaultWorkSchedule returns the standard nine-to-six schedule created
// for a new company.
func GetDefaultWorkSchedule(companyID string) schedule.WorkSchedule {
	return schedule.WorkSchedule{
		CompanyID:          companyID,
		Name:               "Standard",
		WorkStartTime:      time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		WorkEndTime:        time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC),
		StandardWorkHours:  8,
		LunchBreakMinutes:  60,
		GracePeriodMinutes: 10,
		IsDefault:          true,
		IsActive:           true,
	}
}
