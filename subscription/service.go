package subscription

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/kingdomliving/soulfood/auth"
	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// ServiceOptions contains the configuration for the subscription Service router
type ServiceOptions struct {
	SubscriptionManager *Manager
	Logger              *zap.Logger
}

// Service is the subscription API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the subscription API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.SubscriptionManager == nil {
		return nil, fmt.Errorf("nil SubscriptionManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

// SignupRequest is the model of a subscription signup request
type SignupRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (s *Service) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	logger := s.Logger.With(zap.String("CustomerID", claims.ID))

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	sub, err := s.SubscriptionManager.Signup(ctx, SignupOptions{
		CustomerID: claims.ID,
		ProductID:  req.ProductID,
		StartDate:  time.Now().UTC(),
	})
	if err != nil {
		logger.Error("Unable to create subscription",
			zap.String("ProductID", req.ProductID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected().AddMessages("Unable to setup subscription"))
		return
	}

	resp.WriteResponse(w, r, sub)
}

func (s *Service) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	subs, err := s.SubscriptionManager.List(ctx, ListOption{
		CustomerID: claims.ID,
	})
	if err != nil {
		s.Logger.Error("Unable to list subscriptions",
			zap.String("CustomerID", claims.ID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	resp.WriteResponse(w, r, subs)
}

func (s *Service) getSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)
	subscriptionID := chi.URLParam(r, "id")

	sub, err := s.SubscriptionManager.Get(ctx, GetOption{
		CustomerID:     claims.ID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		s.Logger.Error("Unable to get subscription",
			zap.String("CustomerID", claims.ID),
			zap.String("SubscriptionID", subscriptionID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if sub == nil {
		resp.WriteError(w, r, resp.ErrNotFound())
		return
	}

	resp.WriteResponse(w, r, sub)
}

func (s *Service) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)
	subscriptionID := chi.URLParam(r, "id")

	logger := s.Logger.With(
		zap.String("CustomerID", claims.ID),
		zap.String("SubscriptionID", subscriptionID),
	)

	decision, err := s.SubscriptionManager.Cancel(ctx, GetOption{
		CustomerID:     claims.ID,
		SubscriptionID: subscriptionID,
	}, time.Now().UTC())
	if err != nil {
		logger.Error("Unable to cancel subscription",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected().AddMessages("Unable to cancel subscription"))
		return
	}
	if decision == nil {
		resp.WriteError(w, r, resp.ErrNotFound())
		return
	}

	resp.WriteResponse(w, r, decision)
}

// Router will return the routes under subscription API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.signup)
	r.Get("/", s.listSubscriptions)
	r.Get("/{id}", s.getSubscription)
	r.Post("/{id}/cancel", s.cancelSubscription)

	return r
}
