package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func defaultPolicySet() []Policy {
	return []Policy{
		{
			ID:      "p-short",
			MinDays: 0,
			MaxDays: f64Ptr(1.99),
			Levels: []PolicyLevel{
				{Level: 1, Role: RoleManager},
			},
			IsActive: true,
		},
		{
			ID:      "p-standard",
			MinDays: 2,
			MaxDays: f64Ptr(3.99),
			Levels: []PolicyLevel{
				{Level: 1, Role: RoleManager},
				{Level: 2, Role: RoleHR},
			},
			IsActive: true,
		},
		{
			ID:      "p-extended",
			MinDays: 4,
			Levels: []PolicyLevel{
				{Level: 1, Role: RoleManager},
				{Level: 2, Role: RoleHR},
				{Level: 3, Role: RoleCEO},
			},
			IsActive: true,
		},
	}
}

func TestPolicyMatches(t *testing.T) {
	p := Policy{MinDays: 2, MaxDays: f64Ptr(3.99), IsActive: true}

	assert.True(t, p.Matches(2, "c1"))
	assert.True(t, p.Matches(3.99, "c1"))
	assert.False(t, p.Matches(1.99, "c1"))
	assert.False(t, p.Matches(4, "c1"))

	t.Run("inactive never matches", func(t *testing.T) {
		inactive := p
		inactive.IsActive = false
		assert.False(t, inactive.Matches(3, "c1"))
	})

	t.Run("company-scoped policy only matches its company", func(t *testing.T) {
		scoped := p
		scoped.CompanyID = strPtr("c1")
		assert.True(t, scoped.Matches(3, "c1"))
		assert.False(t, scoped.Matches(3, "c2"))
	})

	t.Run("nil max days is unbounded", func(t *testing.T) {
		open := Policy{MinDays: 4, IsActive: true}
		assert.True(t, open.Matches(365, "c1"))
	})
}

func TestSelectPolicy(t *testing.T) {
	policies := defaultPolicySet()

	t.Run("one day resolves to a single manager level", func(t *testing.T) {
		levels := SelectPolicy(policies, 1.0, "c1")
		assert.Len(t, levels, 1)
		assert.Equal(t, RoleManager, levels[0].Role)
	})

	t.Run("two and a half days escalates to HR", func(t *testing.T) {
		levels := SelectPolicy(policies, 2.5, "c1")
		assert.Len(t, levels, 2)
		assert.Equal(t, RoleHR, levels[1].Role)
	})

	t.Run("four days escalates to the CEO", func(t *testing.T) {
		levels := SelectPolicy(policies, 4.0, "c1")
		assert.Len(t, levels, 3)
		assert.Equal(t, RoleCEO, levels[2].Role)
	})

	t.Run("levels come back ordered", func(t *testing.T) {
		levels := SelectPolicy(policies, 10, "c1")
		for i, lvl := range levels {
			assert.Equal(t, i+1, lvl.Level)
		}
	})

	t.Run("no match falls back to the default chain", func(t *testing.T) {
		levels := SelectPolicy(nil, 1, "c1")
		assert.Equal(t, DefaultLevels(), levels)
	})

	t.Run("company-scoped policy beats the agnostic one", func(t *testing.T) {
		scoped := Policy{
			ID:        "p-scoped",
			CompanyID: strPtr("c1"),
			MinDays:   0,
			MaxDays:   f64Ptr(30),
			Levels: []PolicyLevel{
				{Level: 1, Role: RoleHR},
			},
			IsActive: true,
		}
		levels := SelectPolicy(append(policies, scoped), 1, "c1")
		assert.Len(t, levels, 1)
		assert.Equal(t, RoleHR, levels[0].Role)

		// Another company still gets the agnostic chain.
		levels = SelectPolicy(append(policies, scoped), 1, "c2")
		assert.Equal(t, RoleManager, levels[0].Role)
	})

	t.Run("overlapping ranges break ties on smallest min days", func(t *testing.T) {
		overlapping := []Policy{
			{ID: "b", MinDays: 1, MaxDays: f64Ptr(5), Levels: []PolicyLevel{{Level: 1, Role: RoleHR}}, IsActive: true},
			{ID: "a", MinDays: 0, MaxDays: f64Ptr(5), Levels: []PolicyLevel{{Level: 1, Role: RoleManager}}, IsActive: true},
		}
		levels := SelectPolicy(overlapping, 3, "c1")
		assert.Equal(t, RoleManager, levels[0].Role)
	})
}
