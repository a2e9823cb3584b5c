package coupon

import (
	"encoding/json"
	"io/ioutil"
	"time"

	extErrors "github.com/pkg/errors"
)

// Coupon describes a discount code and its redemption limits
type Coupon struct {
	Code            string   `json:"code"`
	MaxUses         int64    `json:"maxUses"`
	DiscountPercent int      `json:"discountPercent"`
	Conditions      string   `json:"conditions"`
	AppliesTo       []string `json:"appliesTo,omitempty"` // restrict to specific product ids, empty means all coupon-eligible products
}

// Exhausted reports whether the coupon's redemption cap has been reached
func (c *Coupon) Exhausted(uses int64) bool {
	return uses >= c.MaxUses
}

// Usage records a single redemption of a coupon against a checkout session
type Usage struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Code            string    `json:"code" gorm:"index"`
	SessionID       string    `json:"sessionId" gorm:"index"`
	DiscountPercent int       `json:"discountPercent"`
	UsedAt          time.Time `json:"usedAt"`
}

// Defined returns the compiled-in coupon table
func Defined() map[string]Coupon {
	single := "All items, single purchase transaction"
	return map[string]Coupon{
		"SOULX1079": {Code: "SOULX1079", MaxUses: 50, DiscountPercent: 15, Conditions: single},
		"SOULX1003": {Code: "SOULX1003", MaxUses: 50, DiscountPercent: 15, Conditions: single},
		"SOULX1060": {Code: "SOULX1060", MaxUses: 50, DiscountPercent: 10, Conditions: single},
		"SOULX1072": {Code: "SOULX1072", MaxUses: 50, DiscountPercent: 10, Conditions: single},
		"SOULX1080": {Code: "SOULX1080", MaxUses: 50, DiscountPercent: 10, Conditions: single},
		"SOULX1059": {Code: "SOULX1059", MaxUses: 50, DiscountPercent: 10, Conditions: single},
		"SOULX1073": {Code: "SOULX1073", MaxUses: 50, DiscountPercent: 10, Conditions: single},
		"BETA1!2!3!": {
			Code:            "BETA1!2!3!",
			MaxUses:         20,
			DiscountPercent: 100,
			Conditions:      "Games, holiday, breakfast set 24hr pass, single login session",
			AppliesTo:       []string{"gaming_day_pass", "mealtime_bundle", "combo_bundle", "instructor_set"},
		},
	}
}

// LoadFromFile will read from the coupon JSON file to override the compiled-in table
func LoadFromFile(filename string) (map[string]Coupon, error) {
	jsonBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot open coupons JSON file")
	}
	coupons := make([]Coupon, 0, 8)
	if err := json.Unmarshal(jsonBytes, &coupons); err != nil {
		return nil, extErrors.Wrap(err, "Invalid coupons JSON file")
	}
	table := make(map[string]Coupon, len(coupons))
	for _, c := range coupons {
		table[c.Code] = c
	}
	return table, nil
}
