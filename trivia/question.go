package trivia

import (
	"encoding/json"
	"io/ioutil"
	"strings"

	extErrors "github.com/pkg/errors"
)

// Question is one entry in the trivia question bank
type Question struct {
	ID            int      `json:"id"`
	Quarter       string   `json:"quarter"`
	Month         string   `json:"month"`
	Theme         string   `json:"theme"`
	Lesson        string   `json:"lesson"`
	Category      string   `json:"category"`
	Type          string   `json:"type"` // "multiple_choice", "true_false", "fill_in"
	Difficulty    string   `json:"difficulty"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	ScriptureHint string   `json:"scripture_hint,omitempty"`
}

// Public strips the answer fields so the question can be shown during play
func (q Question) Public() Question {
	q.CorrectAnswer = ""
	q.Explanation = ""
	return q
}

// IsCorrect compares an answer ignoring case and surrounding whitespace
func (q Question) IsCorrect(answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer))
}

// Bank holds the question bank indexed by ID
type Bank map[int]Question

// Get looks up a question by ID
func (b Bank) Get(id int) (Question, bool) {
	q, ok := b[id]
	return q, ok
}

// Filter returns questions matching the given quarter and theme.
// Empty filters match everything.
func (b Bank) Filter(quarter, theme string) []Question {
	out := make([]Question, 0, len(b))
	for _, q := range b {
		if len(quarter) > 0 && q.Quarter != quarter {
			continue
		}
		if len(theme) > 0 && q.Theme != theme {
			continue
		}
		out = append(out, q)
	}
	return out
}

// LoadBankFromFile bulk loads questions from a JSON file, deduplicating by ID
func LoadBankFromFile(path string) (Bank, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot read question bank file")
	}
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, extErrors.Wrap(err, "Cannot parse question bank file")
	}
	bank := make(Bank, len(questions))
	for _, q := range questions {
		bank[q.ID] = q
	}
	return bank, nil
}

// DefinedBank returns the built-in starter questions. The full 404-question
// set is bulk loaded from JSON via LoadBankFromFile.
func DefinedBank() Bank {
	questions := []Question{
		{
			ID:            1,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Esther: Second Is the Best",
			Category:      "Series Structure",
			Type:          "multiple_choice",
			Difficulty:    "easy",
			Question:      "In the Soul Food 'Prayer, the First Resort' quarter, which lesson focuses on Esther's story of being a 'second' queen used by God?",
			Options:       []string{"Esther: Second Is the Best", "Solomon: The Question That Unlocked a Legacy", "Jesus: Prayer as First Resort", "Paul & Silas: Faith in the Dark"},
			CorrectAnswer: "Esther: Second Is the Best",
			Explanation:   "Esther's position as second queen became her divine assignment.",
			ScriptureHint: "Esther 4:14 - 'For such a time as this'",
		},
		{
			ID:            2,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Solomon: The Question That Unlocked a Legacy",
			Category:      "Series Structure",
			Type:          "multiple_choice",
			Difficulty:    "easy",
			Question:      "Which lesson in the 'Prayer, the First Resort' theme centers on Solomon's request for wisdom?",
			Options:       []string{"Esther: Second Is the Best", "Solomon: The Question That Unlocked a Legacy", "Paul & Silas: Faith in the Dark", "Joseph: The Young Dreamer"},
			CorrectAnswer: "Solomon: The Question That Unlocked a Legacy",
			Explanation:   "Solomon's wise request pleased God and unlocked a legacy.",
			ScriptureHint: "1 Kings 3:9 - 'Give your servant a discerning heart'",
		},
		{
			ID:            81,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Esther: Second Is the Best",
			Category:      "Biblical Knowledge",
			Type:          "multiple_choice",
			Difficulty:    "easy",
			Question:      "In the Esther lesson, who challenges her not to stay silent in the palace?",
			Options:       []string{"Haman", "Mordecai", "King Ahasuerus", "Vashti"},
			CorrectAnswer: "Mordecai",
			Explanation:   "Mordecai urged Esther to speak up for her people.",
			ScriptureHint: "Esther 4:13-14",
		},
		{
			ID:            82,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Esther: Second Is the Best",
			Category:      "Biblical Knowledge",
			Type:          "multiple_choice",
			Difficulty:    "medium",
			Question:      "What risk did Esther take when she approached the king uninvited?",
			Options:       []string{"Losing her crown only", "Being publicly embarrassed", "Facing possible death", "Being sent back to Mordecai's house"},
			CorrectAnswer: "Facing possible death",
			Explanation:   "Approaching the king uninvited could result in death unless he extended his scepter.",
			ScriptureHint: "Esther 4:11",
		},
		{
			ID:            83,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Esther: Second Is the Best",
			Category:      "Application",
			Type:          "true_false",
			Difficulty:    "easy",
			Question:      "True or False: In the Soul Food lesson, Esther's position is described as both privilege and assignment.",
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
			Explanation:   "Her royal position was both a privilege and a divine assignment.",
			ScriptureHint: "Esther 4:14",
		},
		{
			ID:            84,
			Quarter:       "Q1",
			Month:         "M1",
			Theme:         "Prayer, the First Resort",
			Lesson:        "Esther: Second Is the Best",
			Category:      "Biblical Knowledge",
			Type:          "fill_in",
			Difficulty:    "medium",
			Question:      "Fill in the blank: Before going to the king, Esther called the people to ______ and pray for three days.",
			CorrectAnswer: "fast",
			Explanation:   "Esther asked for a three-day fast before her dangerous mission.",
			ScriptureHint: "Esther 4:16",
		},
		{
			ID:            341,
			Quarter:       "Bonus",
			Month:         "4Cs",
			Theme:         "The Covenant",
			Lesson:        "God's Promises",
			Category:      "4Cs of Christianity",
			Type:          "multiple_choice",
			Difficulty:    "easy",
			Question:      "In the 'Covenant' lesson, God's covenant with Abraham ultimately points forward to:",
			Options:       []string{"Only land and livestock", "A temporary agreement that ends at his death", "Jesus, the promised Seed who blesses all nations", "A promise to never send prophets again"},
			CorrectAnswer: "Jesus, the promised Seed who blesses all nations",
			Explanation:   "The covenant with Abraham ultimately points to Jesus, the promised Seed",
			ScriptureHint: "Genesis 12:3; Galatians 3:16",
		},
		{
			ID:            404,
			Quarter:       "Overview",
			Month:         "Meta",
			Theme:         "Soul Food Philosophy",
			Lesson:        "Main Course",
			Category:      "Curriculum Design",
			Type:          "fill_in",
			Difficulty:    "hard",
			Question:      "Fill in the blank: The Soul Food series keeps circling one big idea - Jesus is not just part of the menu; He is the ______ Course.",
			CorrectAnswer: "Main",
			Explanation:   "Jesus is the Main Course - the center of everything in Soul Food curriculum",
			ScriptureHint: "John 6:35",
		},
	}
	bank := make(Bank, len(questions))
	for _, q := range questions {
		bank[q.ID] = q
	}
	return bank
}
