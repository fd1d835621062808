package leave

import (
	"fmt"
	"time"
)

// Entitlement is the statutory annual-leave grant derived from tenure.
type Entitlement struct {
	Days        float64
	Hours       float64
	Description string
}

// monthsOfService counts whole months between hire and asOf.
func monthsOfService(hireDate, asOf time.Time) int {
	months := (asOf.Year()-hireDate.Year())*12 + int(asOf.Month()) - int(hireDate.Month())
	if asOf.Day() < hireDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// CalculateEntitlement returns the statutory annual-leave grant for an
// employee hired at hireDate, evaluated at asOf. The function is pure and
// idempotent so the ledger total can be refreshed at any time without
// touching used hours.
//
// Tier table (months of service):
//
//	< 6         0 days
//	[6, 12)     3 days
//	[12, 24)    7 days
//	[24, 36)    10 days
//	[36, 60)    14 days
//	[60, 120)   15 days
//	>= 120      15 + (years - 10), capped at 30 days
func CalculateEntitlement(hireDate, asOf time.Time) Entitlement {
	months := monthsOfService(hireDate, asOf)

	var days float64
	switch {
	case months < 6:
		days = 0
	case months < 12:
		days = 3
	case months < 24:
		days = 7
	case months < 36:
		days = 10
	case months < 60:
		days = 14
	case months < 120:
		days = 15
	default:
		years := months / 12
		days = float64(15 + (years - 10))
		if days > 30 {
			days = 30
		}
	}

	return Entitlement{
		Days:        days,
		Hours:       days * 8,
		Description: fmt.Sprintf("%d months of service: %.0f days annual leave", months, days),
	}
}
