package lesson

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tier is the custom type for the access level a lesson requires
type Tier string

// Defining the access tiers for lessons
const (
	TierFree         Tier = "free"
	TierSubscription      = "subscription"
	TierEbook             = "ebook"
)

// StringList stores a list of strings as a JSON text column
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported type for StringList: %T", src)
	}
}

// Contains reports whether the list holds the given entry
func (l StringList) Contains(entry string) bool {
	for _, e := range l {
		if e == entry {
			return true
		}
	}
	return false
}

// Lesson is one unit of the curriculum. Instructor fields are only populated
// for the instructor edition.
type Lesson struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Content       string     `json:"content"`
	Series        string     `json:"series" gorm:"index"`
	LessonNumber  int        `json:"lessonNumber"`
	EditionAccess StringList `json:"editionAccess" gorm:"type:text"`
	TierRequired  Tier       `json:"tierRequired"`

	AudioPrayerURL string `json:"audioPrayerUrl,omitempty"`
	AudioThemeURL  string `json:"audioThemeUrl,omitempty"`
	VideoAdultURL  string `json:"videoAdultUrl,omitempty"`
	VideoYouthURL  string `json:"videoYouthUrl,omitempty"`

	InstructorNotes   string     `json:"instructorNotes,omitempty"`
	MathConnections   string     `json:"mathConnections,omitempty"`
	DiscussionPrompts StringList `json:"discussionPrompts,omitempty" gorm:"type:text"`

	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
