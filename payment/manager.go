package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/kingdomliving/soulfood/broker"
	"github.com/kingdomliving/soulfood/catalog"
	"github.com/kingdomliving/soulfood/coupon"

	extErrors "github.com/pkg/errors"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ManagerOptions contains the configuration for payment Manager
type ManagerOptions struct {
	StripeClient  *client.API
	DB            *gorm.DB
	Logger        *zap.Logger
	Catalog       catalog.Catalog
	CouponManager *coupon.Manager
	Producer      broker.Producer
	WebhookSecret string
}

// Manager handles checkout sessions and their webhook lifecycle
type Manager struct {
	ManagerOptions
}

// NewManager returns a new Manager for payments
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.StripeClient == nil {
		return nil, fmt.Errorf("nil StripeClient is invalid")
	}
	if option.DB == nil {
		return nil, fmt.Errorf("nil DB is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.Catalog == nil {
		return nil, fmt.Errorf("nil Catalog is invalid")
	}
	if option.CouponManager == nil {
		return nil, fmt.Errorf("nil CouponManager is invalid")
	}
	if option.Producer == nil {
		return nil, fmt.Errorf("nil Producer is invalid")
	}
	if len(option.WebhookSecret) == 0 {
		return nil, fmt.Errorf("empty WebhookSecret is invalid")
	}
	if err := option.DB.AutoMigrate(&Transaction{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize payment.Manager")
	}
	return &Manager{
		ManagerOptions: option,
	}, nil
}

// CheckoutOption describes a checkout session request
type CheckoutOption struct {
	ProductID  string
	Medium     string
	Quantity   int64
	CouponCode string
	OriginURL  string
}

// CheckoutSession is what the frontend needs to redirect the customer to Stripe
type CheckoutSession struct {
	URL       string  `json:"url"`
	SessionID string  `json:"sessionId"`
	Product   string  `json:"product"`
	Amount    float64 `json:"amount"`
}

// CreateCheckoutSession prices the cart (sale price, optional per-medium
// override, optional coupon), creates the Stripe checkout session, and stores
// a pending transaction
func (m *Manager) CreateCheckoutSession(ctx context.Context, opt CheckoutOption) (*CheckoutSession, error) {
	product, ok := m.Catalog.Get(opt.ProductID)
	if !ok {
		return nil, fmt.Errorf("Invalid product ID")
	}
	if opt.Quantity <= 0 {
		opt.Quantity = 1
	}

	amount := product.Price(opt.Medium) * float64(opt.Quantity)
	discountPercent := 0
	if len(opt.CouponCode) > 0 {
		result, err := m.CouponManager.Validate(ctx, coupon.ValidateOption{
			Code:       opt.CouponCode,
			ProductIDs: []string{opt.ProductID},
		})
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, errors.New(result.Message)
		}
		discountPercent = result.DiscountPercent
		amount = amount * float64(100-discountPercent) / 100
	}

	successURL := opt.OriginURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := opt.OriginURL + "/payment-cancel"

	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
			Metadata: map[string]string{
				"product_id":   product.ID,
				"product_name": product.Name,
				"quantity":     fmt.Sprintf("%d", opt.Quantity),
				"source":       "soul_food_web",
			},
		},
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(product.Currency),
					UnitAmount: stripe.Int64(int64(math.Round(amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(product.Name),
					},
				},
			},
		},
	}

	session, err := m.StripeClient.CheckoutSessions.New(params)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot create checkout session")
	}

	transaction := &Transaction{
		SessionID:       session.ID,
		ProductID:       product.ID,
		ProductName:     product.Name,
		Quantity:        opt.Quantity,
		Amount:          amount,
		Currency:        product.Currency,
		CouponCode:      opt.CouponCode,
		DiscountPercent: discountPercent,
		PaymentStatus:   PaymentPending,
		Status:          TransactionInitiated,
	}
	if err := m.DB.WithContext(ctx).Create(transaction).Error; err != nil {
		m.Logger.Error("Unable to store pending transaction",
			zap.String("SessionID", session.ID),
			zap.Error(err),
		)
		return nil, extErrors.Wrap(err, "Cannot store pending transaction")
	}

	return &CheckoutSession{
		URL:       session.URL,
		SessionID: session.ID,
		Product:   product.Name,
		Amount:    amount,
	}, nil
}

// CheckoutStatus combines the live Stripe view of a session with our transaction record
type CheckoutStatus struct {
	SessionID     string       `json:"sessionId"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus"`
	AmountTotal   int64        `json:"amountTotal"`
	Currency      string       `json:"currency"`
	Transaction   *Transaction `json:"transaction"`
}

// GetCheckoutStatus fetches the session from Stripe and synchronizes the
// transaction record. Marking paid is guarded on the previous status so a
// concurrent webhook cannot double-fulfill.
func (m *Manager) GetCheckoutStatus(ctx context.Context, sessionID string) (*CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Context: ctx,
		},
	}
	session, err := m.StripeClient.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot fetch checkout session from Stripe")
	}

	var transaction Transaction
	result := m.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&transaction)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, extErrors.Wrap(result.Error, "Cannot look up transaction")
	}

	if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid && transaction.PaymentStatus != PaymentPaid {
		if err := m.markPaid(ctx, &transaction, false); err != nil {
			return nil, err
		}
	} else if session.Status == stripe.CheckoutSessionStatusExpired && transaction.Status != TransactionExpired {
		res := m.DB.WithContext(ctx).Model(&Transaction{}).
			Where("session_id = ?", sessionID).
			Update("status", TransactionExpired)
		if res.Error != nil {
			return nil, extErrors.Wrap(res.Error, "Cannot mark transaction as expired")
		}
		transaction.Status = TransactionExpired
	}

	return &CheckoutStatus{
		SessionID:     sessionID,
		Status:        string(session.Status),
		PaymentStatus: string(session.PaymentStatus),
		AmountTotal:   session.AmountTotal,
		Currency:      string(session.Currency),
		Transaction:   &transaction,
	}, nil
}

// markPaid flips the transaction to paid exactly once and hands it to the
// fulfillment worker. The conditional update is the idempotency guard: the
// status route and the webhook can both observe the payment.
func (m *Manager) markPaid(ctx context.Context, transaction *Transaction, viaWebhook bool) error {
	updates := map[string]interface{}{
		"payment_status": PaymentPaid,
		"status":         TransactionCompleted,
	}
	if viaWebhook {
		updates["webhook_processed"] = true
	}
	res := m.DB.WithContext(ctx).Model(&Transaction{}).
		Where("session_id = ?", transaction.SessionID).
		Where("payment_status <> ?", PaymentPaid).
		Updates(updates)
	if res.Error != nil {
		return extErrors.Wrap(res.Error, "Cannot mark transaction as paid")
	}
	if res.RowsAffected == 0 {
		// already recorded by the other path
		return nil
	}
	transaction.PaymentStatus = PaymentPaid
	transaction.Status = TransactionCompleted

	if len(transaction.CouponCode) > 0 {
		if err := m.CouponManager.Apply(ctx, transaction.CouponCode, transaction.SessionID); err != nil {
			m.Logger.Error("Unable to record coupon usage for paid session",
				zap.String("SessionID", transaction.SessionID),
				zap.Error(err),
			)
		}
	}

	if err := m.Producer.SendFulfillmentEvent(&broker.FulfillmentEvent{
		SessionID:     transaction.SessionID,
		ProductID:     transaction.ProductID,
		ProductName:   transaction.ProductName,
		Quantity:      transaction.Quantity,
		Amount:        transaction.Amount,
		Currency:      transaction.Currency,
		CustomerEmail: transaction.CustomerEmail,
		OccurredAt:    time.Now().UTC(),
	}); err != nil {
		m.Logger.Error("Cannot publish fulfillment event",
			zap.String("SessionID", transaction.SessionID),
			zap.Error(err),
		)
	}
	return nil
}

// HandleWebhook verifies the Stripe signature and processes the event
func (m *Manager) HandleWebhook(ctx context.Context, payload []byte, signature string) (string, error) {
	event, err := webhook.ConstructEvent(payload, signature, m.WebhookSecret)
	if err != nil {
		return "", extErrors.Wrap(err, "Cannot verify webhook signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return event.Type, extErrors.Wrap(err, "Cannot decode checkout session from event")
		}
		var transaction Transaction
		result := m.DB.WithContext(ctx).Where("session_id = ?", session.ID).First(&transaction)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			m.Logger.Warn("Webhook for unknown checkout session",
				zap.String("SessionID", session.ID),
			)
			return event.Type, nil
		}
		if result.Error != nil {
			return event.Type, extErrors.Wrap(result.Error, "Cannot look up transaction")
		}
		if session.CustomerDetails != nil && len(session.CustomerDetails.Email) > 0 {
			transaction.CustomerEmail = session.CustomerDetails.Email
			m.DB.WithContext(ctx).Model(&Transaction{}).
				Where("session_id = ?", session.ID).
				Update("customer_email", transaction.CustomerEmail)
		}
		if err := m.markPaid(ctx, &transaction, true); err != nil {
			return event.Type, err
		}
	}

	return event.Type, nil
}
