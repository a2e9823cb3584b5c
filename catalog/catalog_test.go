package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceMediumFallback(t *testing.T) {
	products := Defined()

	bundle, ok := products.Get("mealtime_bundle")
	assert.True(t, ok)

	// paperback carries the +$2 print premium
	assert.Equal(t, 14.99, bundle.Price("paperback"))
	assert.Equal(t, 12.99, bundle.Price("pdf"))
	// online has no override and falls back to the base sale price
	assert.Equal(t, 12.99, bundle.Price("online"))
	assert.Equal(t, 12.99, bundle.Price(""))
}

func TestDefinedCatalog(t *testing.T) {
	products := Defined()

	t.Run("SubscriptionsAreMonthlyAndNeverCouponEligible", func(t *testing.T) {
		for _, id := range []string{"subscription_adult", "subscription_youth", "subscription_instructor"} {
			p, ok := products.Get(id)
			assert.True(t, ok, id)
			assert.True(t, p.IsSubscription(), id)
			assert.Equal(t, "month", p.BillingCycle, id)
			if assert.NotNil(t, p.CouponEligible, id) {
				assert.False(t, *p.CouponEligible, id)
			}
		}
	})

	t.Run("OneTimeProductsHaveNoBillingCycle", func(t *testing.T) {
		for id, p := range products {
			if p.IsSubscription() {
				continue
			}
			assert.Empty(t, p.BillingCycle, id)
		}
	})

	t.Run("EverythingPricedInUSD", func(t *testing.T) {
		for id, p := range products {
			assert.Equal(t, "usd", p.Currency, id)
			assert.GreaterOrEqual(t, p.ListPrice, p.SalePrice, id)
		}
	})

	t.Run("IDsMatchMapKeys", func(t *testing.T) {
		for id, p := range products {
			assert.Equal(t, id, p.ID)
		}
	})
}

func TestLookupKeyStability(t *testing.T) {
	products := Defined()
	adult, _ := products.Get("subscription_adult")
	nibble, _ := products.Get("nibble")

	// subscriptions key on their billing cycle, one-time products on "once"
	assert.Contains(t, adult.lookupKey(), "_month_")
	assert.Contains(t, nibble.lookupKey(), "_once_")

	// same definition always produces the same key
	again, _ := products.Get("subscription_adult")
	assert.Equal(t, adult.lookupKey(), again.lookupKey())
}
