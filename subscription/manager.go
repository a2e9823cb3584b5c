package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kingdomliving/soulfood/catalog"

	"github.com/lithammer/shortuuid/v3"
	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ManagerOptions contains the configuration for subscription Manager
type ManagerOptions struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	Catalog catalog.Catalog
}

// Manager handles the persistence and lifecycle of Subscriptions. All charging
// happens in the billing Task; the Manager never talks to Stripe directly.
type Manager struct {
	ManagerOptions
}

// NewManager returns a new Manager for subscriptions
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.DB == nil {
		return nil, fmt.Errorf("nil DB is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.Catalog == nil {
		return nil, fmt.Errorf("nil Catalog is invalid")
	}
	if err := option.DB.AutoMigrate(&Subscription{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize subscription.Manager")
	}
	return &Manager{
		ManagerOptions: option,
	}, nil
}

// SignupOptions specifies which customer subscribes to which catalog product
type SignupOptions struct {
	CustomerID string
	ProductID  string
	StartDate  time.Time
}

// Signup creates a subscription with the rate locked at the product's current
// sale price. The first billing date lands one month after signup, on the same
// day of the month; the billing Task collects it off-session against the
// customer's saved payment method.
func (m *Manager) Signup(ctx context.Context, opt SignupOptions) (*Subscription, error) {
	if len(opt.CustomerID) == 0 {
		return nil, fmt.Errorf("SignupOptions.CustomerID is required")
	}
	product, ok := m.Catalog.Get(opt.ProductID)
	if !ok {
		return nil, fmt.Errorf("Unknown product: %s", opt.ProductID)
	}
	if !product.IsSubscription() {
		return nil, fmt.Errorf("Product %s is not a subscription product", opt.ProductID)
	}
	if opt.StartDate.IsZero() {
		opt.StartDate = time.Now().UTC()
	}

	nextBilling := NextBillingDate(opt.StartDate, 1)
	sub := &Subscription{
		ID:               shortuuid.New(),
		CustomerID:       opt.CustomerID,
		ProductID:        product.ID,
		Rate:             product.SalePrice, // locked for the lifetime of the subscription
		Currency:         product.Currency,
		StartDate:        opt.StartDate,
		NextBillingDate:  nextBilling,
		CurrentPeriodEnd: nextBilling,
		MonthsElapsed:    0,
		Status:           StatusActive,
	}

	result := m.DB.WithContext(ctx).Create(sub)
	if result.Error != nil {
		m.Logger.Error("Unable to create new subscription in database",
			zap.Error(result.Error),
		)
		return nil, extErrors.Wrap(result.Error, "Cannot create subscription")
	}
	return sub, nil
}

// GetOption specifies the customer and subscription to look up
type GetOption struct {
	CustomerID     string
	SubscriptionID string
}

// Get returns the subscription, or nil if the customer has no such subscription
func (m *Manager) Get(ctx context.Context, opt GetOption) (*Subscription, error) {
	if len(opt.CustomerID) == 0 {
		return nil, fmt.Errorf("GetOption.CustomerID is required")
	}
	if len(opt.SubscriptionID) == 0 {
		return nil, fmt.Errorf("GetOption.SubscriptionID is required")
	}
	var sub Subscription
	result := m.DB.WithContext(ctx).
		Where("customer_id = ?", opt.CustomerID).
		Where("id = ?", opt.SubscriptionID).
		First(&sub)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, extErrors.Wrap(result.Error, "Cannot get subscription")
	}

	return &sub, nil
}

// ListOption specifies the filters when listing subscriptions
type ListOption struct {
	CustomerID string
	Before     time.Time
	Limit      int
}

// List returns a customer's subscriptions, newest first
func (m *Manager) List(ctx context.Context, opt ListOption) ([]Subscription, error) {
	if len(opt.CustomerID) == 0 {
		return nil, fmt.Errorf("ListOption.CustomerID is required")
	}
	baseQuery := m.DB.WithContext(ctx).Order("created_at desc").Where("customer_id = ?", opt.CustomerID)
	if opt.Limit > 0 {
		baseQuery = baseQuery.Limit(opt.Limit)
	}
	if !opt.Before.IsZero() {
		baseQuery = baseQuery.Where("created_at < ?", opt.Before)
	}

	results := make([]Subscription, 0, 1)
	result := baseQuery.Find(&results)
	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, result.Error
	}
	return results, nil
}

// ListDue returns the subscriptions whose billing date has arrived: active ones
// for a regular charge, and pending cancellations awaiting their final charge
func (m *Manager) ListDue(ctx context.Context, now time.Time) ([]Subscription, error) {
	results := make([]Subscription, 0, 1)
	result := m.DB.WithContext(ctx).
		Where("next_billing_date <= ?", now).
		Where("status IN ?", []Status{StatusActive, StatusCancelledPending}).
		Find(&results)
	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, result.Error
	}
	return results, nil
}

// ListInGrace returns the subscriptions currently in their post-failure grace window
func (m *Manager) ListInGrace(ctx context.Context) ([]Subscription, error) {
	results := make([]Subscription, 0, 1)
	result := m.DB.WithContext(ctx).
		Where("status = ?", StatusGracePeriod).
		Find(&results)
	if result.Error != nil {
		m.Logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, result.Error
	}
	return results, nil
}

// LambdaUpdateFunc is used when a transaction is required for update. The return value
// determines if the Manager should commit the changes. Note that current and desired
// may be nil if no Subscription with the given id was found, and the lambda must
// return false in that case
type LambdaUpdateFunc func(current *Subscription, desired *Subscription) (shouldSave bool)

// LambdaUpdate will perform a transactional update based on the lambda function.
// The selected Subscription is locked with FOR UPDATE, so a user-initiated
// cancellation and a scheduler-initiated billing attempt cannot interleave.
func (m *Manager) LambdaUpdate(ctx context.Context, id string, lambda LambdaUpdateFunc) (*Subscription, error) {
	var desired Subscription
	var shouldReturn bool
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Subscription
		lookupRes := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&current)
		if errors.Is(lookupRes.Error, gorm.ErrRecordNotFound) {
			lambda(nil, nil)
			return nil
		}
		if lookupRes.Error != nil {
			return lookupRes.Error
		}
		desired = current
		if !lambda(&current, &desired) {
			return nil
		}
		shouldReturn = true
		return tx.Save(&desired).Error
	})
	if err != nil {
		return nil, err
	}
	if !shouldReturn {
		return nil, nil
	}
	return &desired, nil
}

// Cancel applies a cancellation decision to a customer's subscription. Only an
// active subscription can be cancelled; the decision (which branch of the
// notice rule applied) is returned for the caller to show to the user.
func (m *Manager) Cancel(ctx context.Context, opt GetOption, now time.Time) (*CancellationDecision, error) {
	sub, err := m.Get(ctx, opt)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	var decision CancellationDecision
	var wrongStatus bool
	updated, err := m.LambdaUpdate(ctx, sub.ID, func(current *Subscription, desired *Subscription) bool {
		if current == nil {
			return false
		}
		if current.Status != StatusActive {
			wrongStatus = true
			return false
		}
		decision = ProcessCancellation(current, now)
		desired.Status = decision.Status
		desired.CancellationRequestedDate = &decision.CancellationDate
		desired.CurrentPeriodEnd = decision.AccessEndDate
		return true
	})
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot update subscription status")
	}
	if wrongStatus {
		return nil, fmt.Errorf("Only an active subscription can be cancelled")
	}
	if updated == nil {
		return nil, nil
	}

	return &decision, nil
}

// RecordChargeSuccess advances the billing cycle after a successful charge.
// A subscription recovering from its grace period becomes active again; a
// pending cancellation that just received its final charge becomes cancelled.
func (m *Manager) RecordChargeSuccess(ctx context.Context, id string) (*Subscription, error) {
	return m.LambdaUpdate(ctx, id, func(current *Subscription, desired *Subscription) bool {
		if current == nil {
			return false
		}
		return ApplyChargeSuccess(desired)
	})
}

// RecordChargeFailure moves a subscription into its grace period after a failed charge
func (m *Manager) RecordChargeFailure(ctx context.Context, id string, now time.Time) (*Subscription, error) {
	return m.LambdaUpdate(ctx, id, func(current *Subscription, desired *Subscription) bool {
		if current == nil {
			return false
		}
		return ApplyChargeFailure(desired, now)
	})
}

// Expire marks a grace-period subscription as expired once the grace window has
// lapsed with no successful retry
func (m *Manager) Expire(ctx context.Context, id string, now time.Time) (*Subscription, error) {
	return m.LambdaUpdate(ctx, id, func(current *Subscription, desired *Subscription) bool {
		if current == nil {
			return false
		}
		return ApplyExpiry(desired, now)
	})
}
