package catalog

func boolPtr(b bool) *bool {
	return &b
}

// Defined returns the compiled-in Soul Food catalog.
// Subscription products are never coupon eligible: the flag is set explicitly
// on top of the type check so the intent survives serialization.
func Defined() Catalog {
	return Catalog{
		"nibble": {
			ID:          "nibble",
			Name:        "Nibble (Single Lesson)",
			Description: "One lesson - choose your mealtime, edition, and format",
			Cost:        1.09,
			ListPrice:   4.99,
			SalePrice:   1.99,
			Currency:    "usd",
			Unit:        "ea",
			Type:        TypeOneTime,
			Options: map[string][]string{
				"mealtime": {"breakfast", "lunch", "dinner", "supper", "holiday"},
				"edition":  {"adult", "youth", "instructor"},
				"medium":   {"pdf"},
			},
			Note: "PDF download only - no print available for single lessons",
		},
		"snack_pack": {
			ID:          "snack_pack",
			Name:        "Snack Pack (4 Lessons)",
			Description: "Monthly pack of 4 lessons - choose your mealtime, edition, and format",
			Cost:        3.99,
			ListPrice:   6.75,
			SalePrice:   5.99,
			MediumPricing: map[string]PricePair{
				"pdf": {List: 6.75, Sale: 5.99},
			},
			Currency: "usd",
			Unit:     "set",
			Type:     TypeOneTime,
			Options: map[string][]string{
				"mealtime": {"breakfast", "lunch", "dinner", "supper"},
				"edition":  {"adult", "youth", "instructor"},
				"medium":   {"pdf", "online"},
			},
			Note: "Online medium is for monthly subscribers only - no print for Snack Pack",
		},
		"holiday_bundle": {
			ID:          "holiday_bundle",
			Name:        "Holiday Bundle (6 Lessons)",
			Description: "Holiday Series: The 4 C's of Christianity - Covenant, Cradle, Cross, Comforter",
			Cost:        3.99,
			ListPrice:   6.75,
			SalePrice:   5.99,
			MediumPricing: map[string]PricePair{
				"pdf":       {List: 6.75, Sale: 5.99},
				"paperback": {List: 8.75, Sale: 7.99},
			},
			Currency: "usd",
			Unit:     "set",
			Type:     TypeOneTime,
			Options: map[string][]string{
				"mealtime": {"holiday"},
				"edition":  {"adult", "youth", "instructor"},
				"medium":   {"pdf", "paperback"},
			},
			Note: "Paperback fulfilled via print-on-demand",
		},
		"mealtime_bundle": {
			ID:          "mealtime_bundle",
			Name:        "Mealtime Bundle (12 Lessons)",
			Description: "Complete mealtime series - choose your mealtime, edition, and format",
			Cost:        11.99,
			ListPrice:   13.99,
			SalePrice:   12.99,
			MediumPricing: map[string]PricePair{
				"pdf":       {List: 13.99, Sale: 12.99},
				"paperback": {List: 15.99, Sale: 14.99}, // +$2 for print
			},
			Currency: "usd",
			Unit:     "set",
			Type:     TypeOneTime,
			Options: map[string][]string{
				"mealtime": {"breakfast", "lunch", "dinner", "supper"},
				"edition":  {"adult", "youth", "instructor"},
				"medium":   {"pdf", "paperback", "online"},
			},
		},
		"combo_bundle": {
			ID:          "combo_bundle",
			Name:        "Combo Bundle (24 Lessons)",
			Description: "Two complete mealtime series - choose your mealtimes, edition, and format",
			Cost:        19.99,
			ListPrice:   24.99,
			SalePrice:   22.99,
			Currency:    "usd",
			Unit:        "set",
			Type:        TypeOneTime,
			Options: map[string][]string{
				"mealtime": {"breakfast", "lunch", "dinner", "supper", "holiday"},
				"edition":  {"adult", "youth", "instructor"},
				"medium":   {"ebook", "paperback"},
			},
		},
		"instructor_set": {
			ID:          "instructor_set",
			Name:        "Instructor Set (36 Lessons)",
			Description: "Box set: Breakfast, Lunch, Dinner, Supper (all editions available)",
			Cost:        36.99,
			ListPrice:   44.99,
			SalePrice:   39.99,
			Currency:    "usd",
			Unit:        "set",
			Type:        TypeOneTime,
			Options: map[string][]string{
				"edition": {"adult", "youth", "instructor"},
				"medium":  {"ebook", "paperback"},
			},
		},
		"gaming_day_pass": {
			ID:          "gaming_day_pass",
			Name:        "Gaming Day Pass",
			Description: "24-hour access to all game modes",
			Cost:        25.00,
			ListPrice:   40.00,
			SalePrice:   29.99,
			Currency:    "usd",
			Unit:        "set",
			Type:        TypeOneTime,
		},
		"bonus_free": {
			ID:          "bonus_free",
			Name:        "Bonus Lessons (Free)",
			Description: "Names of God & Times and Seasons - Free download with no restrictions",
			Cost:        0.00,
			ListPrice:   0.00,
			SalePrice:   0.00,
			Currency:    "usd",
			Unit:        "set",
			Type:        TypeOneTime,
			Options: map[string][]string{
				"edition": {"adult", "youth", "instructor"},
				"medium":  {"pdf"},
			},
			Note: "Free to download and distribute - no restrictions",
		},
		"subscription_adult": {
			ID:             "subscription_adult",
			Name:           "Adult Edition Subscription",
			Description:    "Monthly subscription with all Soul Food series lessons",
			ListPrice:      9.99,
			SalePrice:      9.99,
			Currency:       "usd",
			Type:           TypeSubscription,
			BillingCycle:   "month",
			CouponEligible: boolPtr(false),
		},
		"subscription_youth": {
			ID:             "subscription_youth",
			Name:           "Youth Edition Subscription",
			Description:    "Monthly subscription for ages 12-20",
			ListPrice:      9.99,
			SalePrice:      9.99,
			Currency:       "usd",
			Type:           TypeSubscription,
			BillingCycle:   "month",
			CouponEligible: boolPtr(false),
		},
		"subscription_instructor": {
			ID:             "subscription_instructor",
			Name:           "Instructor Edition Subscription",
			Description:    "Monthly subscription with teaching toolkit",
			ListPrice:      14.99,
			SalePrice:      14.99,
			Currency:       "usd",
			Type:           TypeSubscription,
			BillingCycle:   "month",
			CouponEligible: boolPtr(false),
		},
	}
}
