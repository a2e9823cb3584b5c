package customer

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kingdomliving/soulfood/auth"
	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// ServiceOptions contains the configuration for the customer Service router
type ServiceOptions struct {
	Auth            *auth.Auth
	CustomerManager *Manager
	Logger          *zap.Logger
}

// Service is the customer API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the customer API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.Auth == nil {
		return nil, fmt.Errorf("nil Auth is invalid")
	}
	if option.CustomerManager == nil {
		return nil, fmt.Errorf("nil CustomerManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

// LoginRequest is the model of user request for login pin
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (s *Service) requestLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	logger := s.Logger.With(zap.String("Email", req.Email))

	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	if err := s.Auth.Request(r.Context(), req.Email, req.Email); err != nil {
		logger.Error("Unable to send login PIN",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TokenResponse carries the JWT pair after a successful login
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := chi.URLParam(r, "uid")
	token := chi.URLParam(r, "token")

	logger := s.Logger.With(zap.String("Email", email))

	valid, err := s.Auth.Verify(ctx, email, token)
	if err != nil {
		logger.Error("Unable to verify login PIN",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	if !valid {
		resp.WriteError(w, r, resp.ErrUnauthorized().AddMessages("Invalid login PIN"))
		return
	}

	// "upsert" a customer
	cust, err := s.CustomerManager.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("Unable to look up Customer",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	if cust == nil {
		// new customer! yay
		cust, err = s.CustomerManager.NewCustomer(ctx, email)
		if err != nil {
			logger.Error("Unable to create Customer",
				zap.Error(err),
			)
			resp.WriteError(w, r, resp.ErrUnexpected())
			return
		}
	}

	s.writeTokenPair(w, r, cust)
}

func (s *Service) writeTokenPair(w http.ResponseWriter, r *http.Request, cust *Customer) {
	claims := auth.Claims{
		ID:      cust.ID,
		Email:   cust.Email,
		Edition: cust.Edition,
	}
	jwtToken, err := s.Auth.CreateTokenFromClaims(claims)
	if err != nil {
		s.Logger.Error("Unable to generate token",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	refreshToken, err := s.Auth.CreateRefreshTokenFromClaims(claims)
	if err != nil {
		s.Logger.Error("Unable to generate refresh token",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	resp.WriteResponse(w, r, TokenResponse{
		Token:        jwtToken,
		RefreshToken: refreshToken,
	})
}

// RefreshRequest is the model of a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

func (s *Service) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	refresh, err := s.Auth.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		s.Logger.Error("Unable to verify refresh token",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if refresh == nil {
		resp.WriteError(w, r, resp.ErrUnauthorized().AddMessages("Invalid refresh token"))
		return
	}

	cust, err := s.CustomerManager.GetByID(ctx, refresh.ID)
	if err != nil {
		s.Logger.Error("Unable to look up Customer",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if cust == nil {
		resp.WriteError(w, r, resp.ErrUnauthorized().AddMessages("Customer no longer exists"))
		return
	}

	s.writeTokenPair(w, r, cust)
}

// EditionRequest is the model of an edition selection
type EditionRequest struct {
	Edition string `json:"edition" validate:"required,oneof=adult youth instructor"`
}

func (s *Service) setEdition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	var req EditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	cust, err := s.CustomerManager.SetEdition(ctx, claims.ID, req.Edition)
	if err != nil {
		s.Logger.Error("Unable to update edition",
			zap.String("CustomerID", claims.ID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if cust == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Customer not found"))
		return
	}

	resp.WriteResponse(w, r, cust)
}

func (s *Service) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	cust, err := s.CustomerManager.GetByID(ctx, claims.ID)
	if err != nil {
		s.Logger.Error("Unable to look up Customer",
			zap.String("CustomerID", claims.ID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if cust == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Customer not found"))
		return
	}

	resp.WriteResponse(w, r, cust)
}

// Router will return the routes under customer API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/", s.requestLogin)
	r.Get("/{uid}/{token}", s.handleLogin)
	r.Post("/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.Auth.Middleware())
		r.Use(s.Auth.ClaimCheck())
		r.Get("/profile", s.profile)
		r.Post("/edition", s.setEdition)
	})

	return r
}
