package ledger

import "time"

// Category identifies which quota an account tracks. Leave categories are
// measured in hours; the makeup category counts retroactive-punch requests.
type Category string

const (
	CategoryAnnual       Category = "annual"
	CategorySick         Category = "sick"
	CategoryPersonal     Category = "personal"
	CategoryMarriage     Category = "marriage"
	CategoryBereavement  Category = "bereavement"
	CategoryMaternity    Category = "maternity"
	CategoryPaternity    Category = "paternity"
	CategoryCompensatory Category = "compensatory"
	CategoryMakeup       Category = "makeup"
)

// LeaveCategories lists the hour-denominated categories in display order.
func LeaveCategories() []Category {
	return []Category{
		CategoryAnnual,
		CategorySick,
		CategoryPersonal,
		CategoryMarriage,
		CategoryBereavement,
		CategoryMaternity,
		CategoryPaternity,
		CategoryCompensatory,
	}
}

// Account is a per-employee, per-year quota. Invariant on every observed
// state: Remaining == Total - Used.
type Account struct {
	ID         string
	EmployeeID string
	Year       int
	Category   Category
	Total      float64
	Used       float64
	Remaining  float64
	UpdatedAt  time.Time
}

// CanDeduct reports whether the account still covers amount.
func (a Account) CanDeduct(amount float64) bool {
	return a.Remaining >= amount
}

// DefaultTotal is the quota granted when an account is first touched and no
// statutory calculator supplies the total.
func DefaultTotal(c Category) float64 {
	switch c {
	case CategoryAnnual:
		return 80
	case CategorySick:
		return 240
	case CategoryPersonal:
		return 112
	case CategoryMakeup:
		return 24
	default:
		return 0
	}
}
