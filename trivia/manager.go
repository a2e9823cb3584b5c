package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardKeyPrefix = "trivia:leaderboard"

// ManagerOptions contains the configuration for trivia Manager
type ManagerOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *zap.Logger
	Bank   Bank
}

// Manager runs the Trivia Mix-up game
type Manager struct {
	ManagerOptions
	tiers     map[string]AccessTier
	modes     map[string]GameMode
	lifelines map[string]Lifeline
}

// NewManager returns a new Manager for trivia games
func NewManager(option ManagerOptions) (*Manager, error) {
	if option.DB == nil {
		return nil, fmt.Errorf("nil DB is invalid")
	}
	if option.Redis == nil {
		return nil, fmt.Errorf("nil Redis is invalid")
	}
	if option.Logger == nil {
		return nil, fmt.Errorf("nil Logger is invalid")
	}
	if option.Bank == nil {
		option.Bank = DefinedBank()
	}
	if err := option.DB.AutoMigrate(&Session{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize trivia.Manager")
	}
	return &Manager{
		ManagerOptions: option,
		tiers:          DefinedTiers(),
		modes:          DefinedModes(),
		lifelines:      DefinedLifelines(),
	}, nil
}

// StartOption describes a new game session request
type StartOption struct {
	CustomerID string
	GameMode   string
	AccessTier string
	Quarter    string
	Theme      string
}

// SessionStart is everything the client needs to begin playing
type SessionStart struct {
	Session       *Session            `json:"session"`
	ModeConfig    GameMode            `json:"modeConfig"`
	Lifelines     map[string]Lifeline `json:"lifelines"`
	FirstQuestion *Question           `json:"firstQuestion,omitempty"`
}

// StartSession validates tier access, draws questions, and persists a session
func (m *Manager) StartSession(ctx context.Context, opt StartOption) (*SessionStart, error) {
	tier, ok := m.tiers[opt.AccessTier]
	if !ok {
		tier = m.tiers["free"]
		opt.AccessTier = "free"
	}
	if !TierAllowsMode(tier, opt.GameMode) {
		return nil, fmt.Errorf("Game mode '%s' not available for %s", opt.GameMode, tier.Name)
	}
	mode, ok := m.modes[opt.GameMode]
	if !ok {
		return nil, fmt.Errorf("Game mode not found")
	}

	pool := m.Bank.Filter(opt.Quarter, opt.Theme)
	selected := drawQuestions(pool, mode)
	if len(selected) == 0 {
		return nil, fmt.Errorf("No questions match the requested filters")
	}
	if tier.QuestionsLimit > 0 && len(selected) > tier.QuestionsLimit {
		selected = selected[:tier.QuestionsLimit]
	}

	ids := make(IntList, 0, len(selected))
	for _, q := range selected {
		ids = append(ids, q.ID)
	}

	session := &Session{
		ID:              uuid.New().String(),
		CustomerID:      opt.CustomerID,
		GameMode:        opt.GameMode,
		AccessTier:      opt.AccessTier,
		Questions:       ids,
		LifelinesBudget: tier.Lifelines,
		StartTime:       time.Now().UTC(),
	}
	if err := m.DB.WithContext(ctx).Create(session).Error; err != nil {
		m.Logger.Error("Unable to store game session",
			zap.Error(err),
		)
		return nil, extErrors.Wrap(err, "Cannot store game session")
	}

	first := selected[0].Public()
	return &SessionStart{
		Session:       session,
		ModeConfig:    mode,
		Lifelines:     m.lifelines,
		FirstQuestion: &first,
	}, nil
}

// drawQuestions picks questions for a mode. Progressive modes climb from easy
// through hard; mixed modes draw uniformly.
func drawQuestions(pool []Question, mode GameMode) []Question {
	if mode.Difficulty == "progressive" {
		byDifficulty := map[string][]Question{}
		for _, q := range pool {
			byDifficulty[q.Difficulty] = append(byDifficulty[q.Difficulty], q)
		}
		selected := make([]Question, 0, mode.Questions)
		selected = append(selected, sample(byDifficulty["easy"], 5)...)
		selected = append(selected, sample(byDifficulty["medium"], 7)...)
		selected = append(selected, sample(byDifficulty["hard"], 3)...)
		return selected
	}
	return sample(pool, mode.Questions)
}

func sample(pool []Question, n int) []Question {
	shuffled := make([]Question, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// GetQuestion returns a question with the answer fields stripped
func (m *Manager) GetQuestion(id int) (*Question, error) {
	q, ok := m.Bank.Get(id)
	if !ok {
		return nil, nil
	}
	public := q.Public()
	return &public, nil
}

// AnswerOption describes an answer submission
type AnswerOption struct {
	SessionID  string
	QuestionID int
	Answer     string
	TimeTaken  int
}

// AnswerResult is the feedback after an answer
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	ScriptureHint string `json:"scriptureHint,omitempty"`
	PointsEarned  int    `json:"pointsEarned"`
	Difficulty    string `json:"difficulty"`
	SessionScore  int    `json:"sessionScore"`
	Completed     bool   `json:"completed"`
}

// SubmitAnswer grades an answer, advances the session, and credits the
// leaderboard when the tier allows it
func (m *Manager) SubmitAnswer(ctx context.Context, opt AnswerOption) (*AnswerResult, error) {
	question, ok := m.Bank.Get(opt.QuestionID)
	if !ok {
		return nil, fmt.Errorf("Question not found")
	}

	var session Session
	result := m.DB.WithContext(ctx).Where("id = ?", opt.SessionID).First(&session)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Game session not found")
	}
	if result.Error != nil {
		return nil, extErrors.Wrap(result.Error, "Cannot look up game session")
	}
	if session.Completed {
		return nil, fmt.Errorf("Game session already completed")
	}

	correct := question.IsCorrect(opt.Answer)
	points := ScoreAnswer(question.Difficulty, correct, opt.TimeTaken)

	session.Score += points
	session.CurrentIndex++
	if correct {
		session.CorrectAnswers++
	}
	if session.CurrentIndex >= len(session.Questions) {
		session.Completed = true
		now := time.Now().UTC()
		session.EndTime = &now
	}
	if err := m.DB.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, extErrors.Wrap(err, "Cannot update game session")
	}

	if points > 0 {
		m.creditLeaderboard(ctx, &session, points)
	}

	return &AnswerResult{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
		Explanation:   question.Explanation,
		ScriptureHint: question.ScriptureHint,
		PointsEarned:  points,
		Difficulty:    question.Difficulty,
		SessionScore:  session.Score,
		Completed:     session.Completed,
	}, nil
}

func (m *Manager) creditLeaderboard(ctx context.Context, session *Session, points int) {
	tier := m.tiers[session.AccessTier]
	if !tier.Leaderboard {
		return
	}
	client := m.Redis.WithContext(ctx)
	for _, key := range []string{
		leaderboardKeyPrefix,
		leaderboardKeyPrefix + ":" + session.GameMode,
	} {
		if err := client.ZIncrBy(key, float64(points), session.CustomerID).Err(); err != nil {
			m.Logger.Error("Unable to update leaderboard",
				zap.String("Key", key),
				zap.Error(err),
			)
		}
	}
}

// LifelineResult carries whatever the lifeline produced
type LifelineResult struct {
	Lifeline         string         `json:"lifeline"`
	QuestionID       int            `json:"questionId"`
	RemainingOptions []string       `json:"remainingOptions,omitempty"`
	PollResults      map[string]int `json:"pollResults,omitempty"`
	Hint             string         `json:"hint,omitempty"`
	TimeAdded        int            `json:"timeAdded,omitempty"`
}

// UseLifeline spends one lifeline from the session budget
func (m *Manager) UseLifeline(ctx context.Context, sessionID, lifeline string, questionID int) (*LifelineResult, error) {
	if _, ok := m.lifelines[lifeline]; !ok {
		return nil, fmt.Errorf("Invalid lifeline")
	}
	question, ok := m.Bank.Get(questionID)
	if !ok {
		return nil, fmt.Errorf("Question not found")
	}

	var session Session
	result := m.DB.WithContext(ctx).Where("id = ?", sessionID).First(&session)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("Game session not found")
	}
	if result.Error != nil {
		return nil, extErrors.Wrap(result.Error, "Cannot look up game session")
	}
	if session.LifelinesUsed >= session.LifelinesBudget {
		return nil, fmt.Errorf("No lifelines remaining")
	}
	session.LifelinesUsed++
	if err := m.DB.WithContext(ctx).Save(&session).Error; err != nil {
		return nil, extErrors.Wrap(err, "Cannot update game session")
	}

	out := &LifelineResult{
		Lifeline:   lifeline,
		QuestionID: questionID,
	}
	switch lifeline {
	case "fifty_fifty":
		wrong := make([]string, 0, len(question.Options))
		for _, opt := range question.Options {
			if opt != question.CorrectAnswer {
				wrong = append(wrong, opt)
			}
		}
		out.RemainingOptions = []string{question.CorrectAnswer}
		if len(wrong) > 0 {
			out.RemainingOptions = append(out.RemainingOptions, wrong[rand.Intn(len(wrong))])
		}
	case "ask_congregation":
		// simulated poll weighted toward the correct answer
		poll := map[string]int{}
		total := 0
		for _, opt := range question.Options {
			votes := 5 + rand.Intn(16)
			if opt == question.CorrectAnswer {
				votes = 40 + rand.Intn(31)
			}
			poll[opt] = votes
			total += votes
		}
		for opt, votes := range poll {
			poll[opt] = votes * 100 / total
		}
		out.PollResults = poll
	case "scripture_hint":
		out.Hint = question.ScriptureHint
		if len(out.Hint) == 0 {
			out.Hint = "Trust in the Lord!"
		}
	case "prayer_pause":
		out.TimeAdded = 30
	}
	return out, nil
}

// LeaderboardEntry is one ranked row
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	CustomerID string  `json:"customerId"`
	Score      float64 `json:"score"`
}

// Leaderboard returns the top players, optionally scoped to one game mode
func (m *Manager) Leaderboard(ctx context.Context, gameMode string, limit int64) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	key := leaderboardKeyPrefix
	if len(gameMode) > 0 {
		key = leaderboardKeyPrefix + ":" + gameMode
	}
	entries, err := m.Redis.WithContext(ctx).ZRevRangeWithScores(key, 0, limit-1).Result()
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot fetch leaderboard")
	}
	board := make([]LeaderboardEntry, 0, len(entries))
	for i, e := range entries {
		member, _ := e.Member.(string)
		board = append(board, LeaderboardEntry{
			Rank:       i + 1,
			CustomerID: member,
			Score:      e.Score,
		})
	}
	return board, nil
}

// PlayerStats summarizes a player's game history
type PlayerStats struct {
	TotalGames     int64   `json:"totalGames"`
	TotalQuestions int64   `json:"totalQuestions"`
	CorrectAnswers int64   `json:"correctAnswers"`
	Accuracy       float64 `json:"accuracy"`
	TotalPoints    int64   `json:"totalPoints"`
}

// GetPlayerStats aggregates completed sessions for one player
func (m *Manager) GetPlayerStats(ctx context.Context, customerID string) (*PlayerStats, error) {
	sessions := make([]Session, 0)
	if err := m.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Find(&sessions).Error; err != nil {
		return nil, extErrors.Wrap(err, "Cannot list game sessions")
	}
	stats := &PlayerStats{}
	for _, s := range sessions {
		stats.TotalGames++
		stats.TotalQuestions += int64(s.CurrentIndex)
		stats.CorrectAnswers += int64(s.CorrectAnswers)
		stats.TotalPoints += int64(s.Score)
	}
	if stats.TotalQuestions > 0 {
		stats.Accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalQuestions) * 100
	}
	return stats, nil
}
