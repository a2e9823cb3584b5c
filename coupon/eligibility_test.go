package coupon

import (
	"testing"

	"github.com/kingdomliving/soulfood/catalog"

	"github.com/stretchr/testify/assert"
)

func TestValidateCouponForProduct(t *testing.T) {
	products := catalog.Defined()

	t.Run("UnknownProductFailsFirst", func(t *testing.T) {
		valid, reason := ValidateCouponForProduct("nonexistent_id", products)
		assert.False(t, valid)
		assert.Equal(t, ReasonInvalidProduct, reason)
	})

	t.Run("SubscriptionProductsNeverTakeCoupons", func(t *testing.T) {
		for _, id := range []string{"subscription_adult", "subscription_youth", "subscription_instructor"} {
			valid, reason := ValidateCouponForProduct(id, products)
			assert.False(t, valid, id)
			assert.Equal(t, ReasonSubscriptionProduct, reason, id)
		}
	})

	t.Run("UnsetFlagMeansEligible", func(t *testing.T) {
		// nibble predates the flag and never sets it
		valid, reason := ValidateCouponForProduct("nibble", products)
		assert.True(t, valid)
		assert.Equal(t, ReasonEligible, reason)
	})

	t.Run("ExplicitFalseFlagBlocksOneTimeProduct", func(t *testing.T) {
		no := false
		custom := catalog.Catalog{
			"collector_plate": {
				ID:             "collector_plate",
				Type:           catalog.TypeOneTime,
				CouponEligible: &no,
			},
		}
		valid, reason := ValidateCouponForProduct("collector_plate", custom)
		assert.False(t, valid)
		assert.Equal(t, ReasonNotEligible, reason)
	})

	t.Run("TypeCheckPrecedesFlagCheck", func(t *testing.T) {
		// a subscription product with the flag unset still fails on type,
		// the reason string must come from the type check
		custom := catalog.Catalog{
			"subscription_legacy": {
				ID:   "subscription_legacy",
				Type: catalog.TypeSubscription,
			},
		}
		valid, reason := ValidateCouponForProduct("subscription_legacy", custom)
		assert.False(t, valid)
		assert.Equal(t, ReasonSubscriptionProduct, reason)
	})
}
