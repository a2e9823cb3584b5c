package catalog

import (
	"encoding/json"
	"io/ioutil"

	extErrors "github.com/pkg/errors"
)

// ProductType is the custom type to distinguish one-time purchases from recurring subscriptions
type ProductType string

// Defining the product types
const (
	TypeOneTime      ProductType = "one_time"
	TypeSubscription             = "subscription"
)

// PricePair holds the list (MSRP) and the current selling price of a product
type PricePair struct {
	List float64 `json:"list"`
	Sale float64 `json:"sale"`
}

// Product describes a purchasable item in the Soul Food catalog.
// Lesson bundles are one-time purchases; monthly editions are subscriptions.
type Product struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Cost          float64              `json:"cost"`      // wholesale/production cost, not shown to customers
	ListPrice     float64              `json:"listPrice"` // MSRP
	SalePrice     float64              `json:"salePrice"` // current selling price
	MediumPricing map[string]PricePair `json:"mediumPricing,omitempty"` // per-medium override (pdf/paperback/...), falls back to ListPrice/SalePrice
	Currency      string               `json:"currency"`
	Unit          string               `json:"unit"`
	Type          ProductType          `json:"type"`
	BillingCycle  string               `json:"billingCycle,omitempty"` // e.g. month, only for subscriptions
	CouponEligible *bool               `json:"couponEligible,omitempty"` // nil means eligible, products predating the flag never set it
	Options       map[string][]string  `json:"options,omitempty"` // mealtime/edition/medium choices
	Note          string               `json:"note,omitempty"`

	StripeProductID string `json:"stripeProductId,omitempty"` // populated by EnsureExistence
	StripePriceID   string `json:"stripePriceId,omitempty"`   // populated by EnsureExistence
}

// Catalog maps a product identifier to its definition
type Catalog map[string]Product

// Get returns the product with the given id
func (c Catalog) Get(id string) (Product, bool) {
	p, ok := c[id]
	return p, ok
}

// IsSubscription reports whether the product bills on a recurring cycle
func (p *Product) IsSubscription() bool {
	return p.Type == TypeSubscription
}

// Price returns the selling price for the given delivery medium,
// falling back to the base sale price when the medium has no override
func (p *Product) Price(medium string) float64 {
	if pair, ok := p.MediumPricing[medium]; ok {
		return pair.Sale
	}
	return p.SalePrice
}

// LoadFromFile will read from the catalog JSON file to override the compiled-in product definitions.
// Changing a subscription product's SalePrice only affects new signups: existing
// subscribers keep the rate locked at their signup time.
func LoadFromFile(filename string) (Catalog, error) {
	jsonBytes, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot open catalog JSON file")
	}
	products := make([]Product, 0, 8)
	if err := json.Unmarshal(jsonBytes, &products); err != nil {
		return nil, extErrors.Wrap(err, "Invalid catalog JSON file")
	}
	catalog := make(Catalog, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}
	return catalog, nil
}
