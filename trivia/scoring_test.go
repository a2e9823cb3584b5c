package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAnswer(t *testing.T) {
	t.Run("WrongAnswerEarnsNothing", func(t *testing.T) {
		assert.Equal(t, 0, ScoreAnswer("hard", false, 1))
	})

	t.Run("DifficultyBasePoints", func(t *testing.T) {
		assert.Equal(t, 100, ScoreAnswer("easy", true, 30))
		assert.Equal(t, 250, ScoreAnswer("medium", true, 30))
		assert.Equal(t, 500, ScoreAnswer("hard", true, 30))
	})

	t.Run("UnknownDifficultyScoresAsEasy", func(t *testing.T) {
		assert.Equal(t, 100, ScoreAnswer("legendary", true, 30))
	})

	t.Run("SpeedBonuses", func(t *testing.T) {
		assert.Equal(t, 150, ScoreAnswer("easy", true, 9))
		assert.Equal(t, 125, ScoreAnswer("easy", true, 15))
		// 20 seconds is just past the quick threshold
		assert.Equal(t, 100, ScoreAnswer("easy", true, 20))
	})
}

func TestQuestionIsCorrect(t *testing.T) {
	q := Question{CorrectAnswer: "Mordecai"}

	assert.True(t, q.IsCorrect("Mordecai"))
	assert.True(t, q.IsCorrect("  mordecai "))
	assert.True(t, q.IsCorrect("MORDECAI"))
	assert.False(t, q.IsCorrect("Haman"))
}

func TestTierAllowsMode(t *testing.T) {
	tiers := DefinedTiers()

	assert.True(t, TierAllowsMode(tiers["free"], "practice"))
	assert.False(t, TierAllowsMode(tiers["free"], "millionaire_mode"))
	assert.True(t, TierAllowsMode(tiers["subscription"], "millionaire_mode"))
	// instructors carry the "all" wildcard
	assert.True(t, TierAllowsMode(tiers["instructor"], "millionaire_mode"))
}

func TestBankFilter(t *testing.T) {
	bank := DefinedBank()

	q1 := bank.Filter("Q1", "")
	for _, q := range q1 {
		assert.Equal(t, "Q1", q.Quarter)
	}
	assert.NotEmpty(t, q1)

	themed := bank.Filter("", "The Covenant")
	assert.Len(t, themed, 1)
	assert.Equal(t, 341, themed[0].ID)

	assert.Empty(t, bank.Filter("Q9", ""))
}

func TestDrawQuestionsProgressiveOrdering(t *testing.T) {
	pool := make([]Question, 0)
	for i := 0; i < 10; i++ {
		pool = append(pool, Question{ID: i, Difficulty: "easy"})
	}
	for i := 10; i < 20; i++ {
		pool = append(pool, Question{ID: i, Difficulty: "medium"})
	}
	for i := 20; i < 30; i++ {
		pool = append(pool, Question{ID: i, Difficulty: "hard"})
	}

	selected := drawQuestions(pool, GameMode{Difficulty: "progressive", Questions: 15})
	assert.Len(t, selected, 15)
	// easy questions first, hard questions last
	for _, q := range selected[:5] {
		assert.Equal(t, "easy", q.Difficulty)
	}
	for _, q := range selected[12:] {
		assert.Equal(t, "hard", q.Difficulty)
	}
}
