package payment

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// ServiceOptions contains the configuration for the payment Service router
type ServiceOptions struct {
	PaymentManager *Manager
	Logger         *zap.Logger
}

// Service is the payment API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the payment API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.PaymentManager == nil {
		return nil, fmt.Errorf("nil PaymentManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

// CheckoutRequest is the model of a checkout session request
type CheckoutRequest struct {
	ProductID  string `json:"productId" validate:"required"`
	Medium     string `json:"medium"`
	Quantity   int64  `json:"quantity"`
	CouponCode string `json:"couponCode"`
}

func (s *Service) createCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	origin := r.Header.Get("Origin")
	if len(origin) == 0 {
		origin = "https://" + r.Host
	}

	session, err := s.PaymentManager.CreateCheckoutSession(ctx, CheckoutOption{
		ProductID:  req.ProductID,
		Medium:     req.Medium,
		Quantity:   req.Quantity,
		CouponCode: req.CouponCode,
		OriginURL:  origin,
	})
	if err != nil {
		s.Logger.Error("Unable to create checkout session",
			zap.String("ProductID", req.ProductID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	resp.WriteResponse(w, r, session)
}

func (s *Service) checkoutStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "id")

	status, err := s.PaymentManager.GetCheckoutStatus(ctx, sessionID)
	if err != nil {
		s.Logger.Error("Unable to get checkout status",
			zap.String("SessionID", sessionID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if status == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Checkout session not found"))
		return
	}

	resp.WriteResponse(w, r, status)
}

func (s *Service) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, 65536))
	if err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages("Cannot read request body"))
		return
	}

	eventType, err := s.PaymentManager.HandleWebhook(ctx, payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		s.Logger.Error("Unable to process Stripe webhook",
			zap.String("EventType", eventType),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages("Webhook verification failed"))
		return
	}

	resp.WriteResponse(w, r, map[string]string{
		"received": eventType,
	})
}

// LargeOrderRequest is the model of a bulk order inquiry
type LargeOrderRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=25"`
	Email     string `json:"email" validate:"required,email"`
	Message   string `json:"message"`
}

func (s *Service) notifyLargeOrder(w http.ResponseWriter, r *http.Request) {
	var req LargeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	// bulk orders are handled manually, ops watches for this log line
	s.Logger.Info("Large order inquiry received",
		zap.String("ProductID", req.ProductID),
		zap.Int64("Quantity", req.Quantity),
		zap.String("Email", req.Email),
	)

	resp.WriteResponse(w, r, map[string]string{
		"message": "Thank you! Our team will contact you about your bulk order.",
	})
}

// Router will return the routes under payment API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/checkout/session", s.createCheckout)
	r.Get("/checkout/status/{id}", s.checkoutStatus)
	r.Post("/webhook/stripe", s.stripeWebhook)
	r.Post("/notify-large-order", s.notifyLargeOrder)

	return r
}
