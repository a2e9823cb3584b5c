package coupon

import "github.com/kingdomliving/soulfood/catalog"

// Reasons returned by ValidateCouponForProduct. The wording is shown to the
// customer at checkout, so it is part of the contract.
const (
	ReasonInvalidProduct      = "Invalid product"
	ReasonSubscriptionProduct = "Coupons cannot be applied to subscription products"
	ReasonNotEligible         = "This product is not eligible for coupon discounts"
	ReasonEligible            = "Coupon can be applied"
)

// ValidateCouponForProduct decides whether a coupon may be applied to the given
// catalog product. Subscriptions never take coupons (no double reductions on
// recurring rates); the per-product flag additionally opts one-time products
// out. The check order is observable through the returned reason: existence,
// then product type, then the explicit flag.
//
// Products predating the CouponEligible flag never set it; an unset flag means
// eligible.
func ValidateCouponForProduct(productID string, products catalog.Catalog) (bool, string) {
	product, ok := products.Get(productID)
	if !ok {
		return false, ReasonInvalidProduct
	}

	if product.IsSubscription() {
		return false, ReasonSubscriptionProduct
	}

	if product.CouponEligible != nil && !*product.CouponEligible {
		return false, ReasonNotEligible
	}

	return true, ReasonEligible
}
