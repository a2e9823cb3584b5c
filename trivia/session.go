package trivia

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// IntList stores a list of question IDs as a JSON text column
type IntList []int

// Value implements driver.Valuer
func (l IntList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *IntList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for IntList: %T", src)
	}
}

// Session is one play-through of a game mode
type Session struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	CustomerID      string     `json:"customerId" gorm:"index"`
	GameMode        string     `json:"gameMode"`
	AccessTier      string     `json:"accessTier"`
	Questions       IntList    `json:"questions" gorm:"type:text"`
	CurrentIndex    int        `json:"currentQuestionIndex"`
	Score           int        `json:"score"`
	CorrectAnswers  int        `json:"correctAnswers"`
	LifelinesUsed   int        `json:"lifelinesUsed"`
	LifelinesBudget int        `json:"lifelinesBudget"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	Completed       bool       `json:"completed"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
