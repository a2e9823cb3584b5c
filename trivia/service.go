package trivia

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kingdomliving/soulfood/auth"
	resp "github.com/kingdomliving/soulfood/response"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate *validator.Validate = validator.New()

// ServiceOptions contains the configuration for the trivia Service router
type ServiceOptions struct {
	Auth          *auth.Auth
	TriviaManager *Manager
	Logger        *zap.Logger
}

// Service is the trivia API router
type Service struct {
	ServiceOptions
}

// NewService will create an instance of the trivia API router
func NewService(option ServiceOptions) (*Service, error) {
	if option.Auth == nil {
		return nil, fmt.Errorf("nil Auth is invalid")
	}
	if option.TriviaManager == nil {
		return nil, fmt.Errorf("nil TriviaManager is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	return &Service{
		ServiceOptions: option,
	}, nil
}

func (s *Service) accessTiers(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, DefinedTiers())
}

func (s *Service) gameModes(w http.ResponseWriter, r *http.Request) {
	tierName := r.URL.Query().Get("access_tier")
	tiers := DefinedTiers()
	tier, ok := tiers[tierName]
	if !ok {
		tier = tiers["free"]
	}

	modes := DefinedModes()
	available := make(map[string]GameMode)
	for key, mode := range modes {
		if TierAllowsMode(tier, key) {
			available[key] = mode
		}
	}
	resp.WriteResponse(w, r, map[string]interface{}{
		"gameModes":  available,
		"accessTier": tier.Name,
	})
}

func (s *Service) badges(w http.ResponseWriter, r *http.Request) {
	resp.WriteResponse(w, r, DefinedBadges())
}

// StartRequest is the model of a new game session request
type StartRequest struct {
	GameMode   string `json:"gameMode" validate:"required"`
	AccessTier string `json:"accessTier"`
	Quarter    string `json:"quarter"`
	Theme      string `json:"theme"`
}

func (s *Service) startSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	start, err := s.TriviaManager.StartSession(ctx, StartOption{
		CustomerID: claims.ID,
		GameMode:   req.GameMode,
		AccessTier: req.AccessTier,
		Quarter:    req.Quarter,
		Theme:      req.Theme,
	})
	if err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	resp.WriteResponse(w, r, start)
}

func (s *Service) getQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages("Question ID must be a number"))
		return
	}

	question, err := s.TriviaManager.GetQuestion(id)
	if err != nil {
		s.Logger.Error("Unable to get question",
			zap.Int("QuestionID", id),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}
	if question == nil {
		resp.WriteError(w, r, resp.ErrNotFound().AddMessages("Question not found"))
		return
	}

	resp.WriteResponse(w, r, question)
}

// AnswerRequest is the model of an answer submission
type AnswerRequest struct {
	SessionID  string `json:"sessionId" validate:"required"`
	QuestionID int    `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	TimeTaken  int    `json:"timeTaken"`
}

func (s *Service) submitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	result, err := s.TriviaManager.SubmitAnswer(ctx, AnswerOption{
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
		TimeTaken:  req.TimeTaken,
	})
	if err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	resp.WriteResponse(w, r, result)
}

// LifelineRequest is the model of a lifeline use
type LifelineRequest struct {
	SessionID  string `json:"sessionId" validate:"required"`
	Lifeline   string `json:"lifeline" validate:"required"`
	QuestionID int    `json:"questionId" validate:"required"`
}

func (s *Service) useLifeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LifelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.WriteError(w, r, resp.ErrInvalidJson())
		return
	}
	if err := validate.Struct(&req); err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	result, err := s.TriviaManager.UseLifeline(ctx, req.SessionID, req.Lifeline, req.QuestionID)
	if err != nil {
		resp.WriteError(w, r, resp.ErrBadRequest().AddMessages(err.Error()))
		return
	}

	resp.WriteResponse(w, r, result)
}

func (s *Service) leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var limit int64 = 10
	if l := r.URL.Query().Get("limit"); len(l) > 0 {
		if parsed, err := strconv.ParseInt(l, 10, 64); err == nil {
			limit = parsed
		}
	}

	board, err := s.TriviaManager.Leaderboard(ctx, r.URL.Query().Get("game_mode"), limit)
	if err != nil {
		s.Logger.Error("Unable to fetch leaderboard",
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	resp.WriteResponse(w, r, board)
}

func (s *Service) playerStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims := ctx.Value(auth.Context).(*auth.Claims)

	stats, err := s.TriviaManager.GetPlayerStats(ctx, claims.ID)
	if err != nil {
		s.Logger.Error("Unable to get player stats",
			zap.String("CustomerID", claims.ID),
			zap.Error(err),
		)
		resp.WriteError(w, r, resp.ErrUnexpected())
		return
	}

	resp.WriteResponse(w, r, stats)
}

// Router will return the routes under trivia API
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/access-tiers", s.accessTiers)
	r.Get("/game-modes", s.gameModes)
	r.Get("/badges", s.badges)
	r.Get("/question/{id}", s.getQuestion)
	r.Get("/leaderboard", s.leaderboard)

	r.Group(func(r chi.Router) {
		r.Use(s.Auth.Middleware())
		r.Use(s.Auth.ClaimCheck())
		r.Post("/session/start", s.startSession)
		r.Post("/answer/submit", s.submitAnswer)
		r.Post("/lifeline/use", s.useLifeline)
		r.Get("/stats", s.playerStats)
	})

	return r
}
