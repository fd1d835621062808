package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountCanDeduct(t *testing.T) {
	acc := Account{Total: 80, Used: 72, Remaining: 8}

	assert.True(t, acc.CanDeduct(4))
	assert.True(t, acc.CanDeduct(8))
	assert.False(t, acc.CanDeduct(8.01))
	assert.True(t, acc.CanDeduct(0))
}

func TestDefaultTotal(t *testing.T) {
	tests := []struct {
		category Category
		want     float64
	}{
		{CategoryAnnual, 80},
		{CategorySick, 240},
		{CategoryPersonal, 112},
		{CategoryMakeup, 24},
		{CategoryCompensatory, 0},
		{CategoryMarriage, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultTotal(tt.category))
		})
	}
}

func TestLeaveCategoriesExcludeMakeup(t *testing.T) {
	for _, c := range LeaveCategories() {
		assert.NotEqual(t, CategoryMakeup, c)
	}
}
