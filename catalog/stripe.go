package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	extErrors "github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

var lookupKeyRegex = regexp.MustCompile("[^a-zA-Z0-9]+")

// lookupKey will generate a unique LookupKey on Stripe to identify the Price of a Product.
// Note, if you change Product.Name, Product.SalePrice, Product.Currency, or
// Product.BillingCycle, a new Product and Price will be created on Stripe.
// Existing subscriptions keep billing on their locked rate either way.
func (p *Product) lookupKey() string {
	name := lookupKeyRegex.ReplaceAllString(p.Name, "-")
	cycle := p.BillingCycle
	if p.Type != TypeSubscription {
		cycle = "once"
	}
	return strings.ToLower(fmt.Sprintf("%s_%s_%f_%s", name, cycle, p.SalePrice, p.Currency))
}

// EnsureExistence will ensure that a corresponding Product and Price exist on Stripe,
// and populate the StripeProductID/StripePriceID fields
func (p *Product) EnsureExistence(ctx context.Context, s *client.API) error {
	if len(p.StripePriceID) > 0 {
		return nil
	}
	lookupParams := &stripe.PriceListParams{
		ListParams: stripe.ListParams{
			Context: ctx,
		},
		Active: stripe.Bool(true),
		LookupKeys: []*string{
			stripe.String(p.lookupKey()),
		},
	}
	pricesIter := s.Prices.List(lookupParams)
	for pricesIter.Next() {
		price := pricesIter.Price()
		p.StripePriceID = price.ID
		p.StripeProductID = price.Product.ID
	}
	if pricesIter.Err() != nil {
		return extErrors.Wrap(pricesIter.Err(), "Cannot ensure Product existence on Stripe")
	}
	if len(p.StripePriceID) > 0 {
		return nil
	}
	return p.createOnStripe(ctx, s)
}

// createOnStripe will create the corresponding Product and Price on Stripe
func (p *Product) createOnStripe(ctx context.Context, s *client.API) error {
	prodParams := &stripe.ProductParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"Type":   string(p.Type),
				"Source": "soul_food_catalog",
			},
		},
		Active:      stripe.Bool(true),
		Name:        stripe.String(p.Name),
		Description: stripe.String(p.Description),
	}
	stripeProduct, err := s.Products.New(prodParams)
	if err != nil {
		return extErrors.Wrap(err, "Cannot create Product on Stripe")
	}
	p.StripeProductID = stripeProduct.ID

	priceParams := &stripe.PriceParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Active:            stripe.Bool(true),
		Nickname:          stripe.String(p.Name),
		BillingScheme:     stripe.String("per_unit"),
		Currency:          stripe.String(p.Currency),
		UnitAmountDecimal: stripe.Float64(p.SalePrice * 100),
		Product:           stripe.String(p.StripeProductID),
		LookupKey:         stripe.String(p.lookupKey()),
	}
	if p.Type == TypeSubscription {
		priceParams.Recurring = &stripe.PriceRecurringParams{
			Interval:      stripe.String(p.BillingCycle),
			IntervalCount: stripe.Int64(1),
			UsageType:     stripe.String("licensed"),
		}
	}
	stripePrice, err := s.Prices.New(priceParams)
	if err != nil {
		return extErrors.Wrap(err, "Cannot create Price on Stripe")
	}
	p.StripePriceID = stripePrice.ID

	return nil
}
