package coupon

import (
	"encoding/json"
	"fmt"
	"net/http"

	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// ServiceOptions contains the configuration for the coupon Service router
type ServiceOptions struct {
	CouponManager *Manager
	Logger        *zap.Logger
}

// Service is the coupon API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the coupon API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.CouponManager == nil {
		return nil, fmt.Errorf("nil CouponManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

// ValidateRequest is the model of a coupon validation request
type ValidateRequest struct {
	Code       string   `json:"code" validate:"required"`
	ProductIDs []string `json:"productIds" validate:"required"`
}

func (s *Service) validateCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	result, err := s.CouponManager.Validate(ctx, ValidateOption{
		Code:       req.Code,
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		s.Logger.Error("Unable to validate coupon",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	resp.WriteResponse(w, r, result)
}

// ApplyRequest is the model of a coupon redemption record request
type ApplyRequest struct {
	Code      string `json:"code" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

func (s *Service) applyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	if err := s.CouponManager.Apply(ctx, req.Code, req.SessionID); err != nil {
		s.Logger.Error("Unable to record coupon usage",
			zap.String("Code", req.Code),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages("Invalid coupon code"))
		return
	}

	resp.WriteResponse(w, r, map[string]string{
		"message": "Coupon usage recorded",
		"code":    req.Code,
	})
}

func (s *Service) couponStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := chi.URLParam(r, "code")

	stats, err := s.CouponManager.GetStats(ctx, code)
	if err != nil {
		s.Logger.Error("Unable to get coupon stats",
			zap.String("Code", code),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if stats == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Coupon not found"))
		return
	}

	resp.WriteResponse(w, r, stats)
}

// Router will return the routes under coupon API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/validate", s.validateCoupon)
	r.Post("/apply", s.applyCoupon)
	r.Get("/stats/{code}", s.couponStats)

	return r
}
