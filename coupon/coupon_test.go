package coupon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCouponExhausted(t *testing.T) {
	c := Coupon{Code: "SOULX1079", MaxUses: 2}

	assert.False(t, c.Exhausted(0))
	assert.False(t, c.Exhausted(1))
	// the cap is inclusive, recorded uses at MaxUses means no redemptions left
	assert.True(t, c.Exhausted(2))
	assert.True(t, c.Exhausted(3))
}

func TestDefinedCoupons(t *testing.T) {
	table := Defined()
	assert.NotEmpty(t, table)

	for code, c := range table {
		assert.Equal(t, code, c.Code)
		assert.Greater(t, c.MaxUses, int64(0), code)
		assert.Greater(t, c.DiscountPercent, 0, code)
		assert.LessOrEqual(t, c.DiscountPercent, 100, code)
	}

	beta, ok := table["BETA1!2!3!"]
	assert.True(t, ok)
	assert.Equal(t, 100, beta.DiscountPercent)
	assert.NotEmpty(t, beta.AppliesTo)
}
