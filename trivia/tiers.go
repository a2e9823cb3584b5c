package trivia

// AccessTier describes what a player at a given tier may do
type AccessTier struct {
	Name            string   `json:"name"`
	Price           float64  `json:"price,omitempty"`
	QuestionsLimit  int      `json:"questionsLimit"` // 0 means unlimited
	GameModes       []string `json:"gameModes"`
	Lifelines       int      `json:"lifelines"`
	Leaderboard     bool     `json:"leaderboard"`
	DurationHours   int      `json:"durationHours,omitempty"`
	SpecialFeatures []string `json:"specialFeatures,omitempty"`
	Note            string   `json:"note,omitempty"`
}

// GameMode describes one way to play
type GameMode struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Questions   int    `json:"questions"`
	Timer       bool   `json:"timer"`
	Difficulty  string `json:"difficulty"` // "mixed" or "progressive"
	PrizeLadder []int  `json:"prizeLadder,omitempty"`
}

// Lifeline describes one in-game assist
type Lifeline struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Uses        int    `json:"uses"`
}

// Badge describes one achievement
type Badge struct {
	Name        string `json:"name"`
	Requirement string `json:"requirement"`
}

// DefinedTiers returns the game access tiers
func DefinedTiers() map[string]AccessTier {
	return map[string]AccessTier{
		"free": {
			Name:           "Preview Mode",
			QuestionsLimit: 5,
			GameModes:      []string{"practice"},
			Lifelines:      1,
			Leaderboard:    false,
		},
		"day_pass": {
			Name:          "Day Pass",
			Price:         40.00,
			GameModes:     []string{"practice", "quarter_challenge", "series_challenge"},
			Lifelines:     3,
			Leaderboard:   true,
			DurationHours: 24,
		},
		"ebook_courtesy": {
			Name:           "eBook Courtesy Access",
			QuestionsLimit: 50,
			GameModes:      []string{"practice", "quarter_challenge"},
			Lifelines:      2,
			Leaderboard:    true,
			Note:           "Access to questions from purchased series only",
		},
		"subscription": {
			Name:            "Full Subscription Access",
			GameModes:       []string{"practice", "quarter_challenge", "series_challenge", "4cs_special", "millionaire_mode"},
			Lifelines:       3,
			Leaderboard:     true,
			SpecialFeatures: []string{"custom_quiz", "multiplayer"},
		},
		"instructor": {
			Name:            "Instructor/Admin",
			GameModes:       []string{"all", "custom_builder"},
			Lifelines:       3,
			Leaderboard:     true,
			SpecialFeatures: []string{"create_custom_quiz", "class_mode", "progress_tracking", "unlock_greater_modes"},
		},
	}
}

// DefinedModes returns the game modes
func DefinedModes() map[string]GameMode {
	return map[string]GameMode{
		"practice": {
			Name:        "Practice Mode",
			Description: "Casual play with 10 random questions",
			Questions:   10,
			Timer:       false,
			Difficulty:  "mixed",
		},
		"quarter_challenge": {
			Name:        "Quarter Challenge",
			Description: "Master a specific quarter (Q1, Q2, Q3, Q4)",
			Questions:   15,
			Timer:       true,
			Difficulty:  "progressive",
		},
		"series_challenge": {
			Name:        "Series Challenge",
			Description: "Focus on one theme (Prayer, Friends, etc.)",
			Questions:   12,
			Timer:       true,
			Difficulty:  "mixed",
		},
		"4cs_special": {
			Name:        "4C's Holiday Special",
			Description: "Master the Covenant, Cradle, Cross, Comforter",
			Questions:   10,
			Timer:       true,
			Difficulty:  "progressive",
		},
		"millionaire_mode": {
			Name:        "Soul Food Millionaire",
			Description: "Classic 15-question climb to victory!",
			Questions:   15,
			Timer:       true,
			Difficulty:  "progressive",
			PrizeLadder: []int{100, 200, 500, 1000, 2000, 5000, 10000, 25000, 50000, 100000, 250000, 500000, 750000, 1000000},
		},
	}
}

// DefinedLifelines returns the in-game assists
func DefinedLifelines() map[string]Lifeline {
	return map[string]Lifeline{
		"fifty_fifty": {
			Name:        "50/50",
			Description: "Remove two wrong answers",
			Uses:        1,
		},
		"ask_congregation": {
			Name:        "Ask the Congregation",
			Description: "See poll results from other players",
			Uses:        1,
		},
		"scripture_hint": {
			Name:        "Scripture Hint",
			Description: "Get a related Bible verse",
			Uses:        1,
		},
		"prayer_pause": {
			Name:        "Prayer Pause",
			Description: "Freeze timer for 30 seconds",
			Uses:        1,
		},
	}
}

// DefinedBadges returns the achievements a player can earn
func DefinedBadges() map[string]Badge {
	return map[string]Badge{
		"prayer_warrior":  {Name: "Prayer Warrior", Requirement: "Complete Prayer quarter"},
		"faithful_friend": {Name: "Faithful Friend", Requirement: "Complete Friends & Friction"},
		"purpose_finder":  {Name: "Purpose Finder", Requirement: "Complete ID in Christ"},
		"persistent_soul": {Name: "Persistent Soul", Requirement: "Complete Persistent Pursuit"},
		"4cs_master":      {Name: "4C's Master", Requirement: "Perfect score on Holiday Series"},
		"millionaire":     {Name: "Soul Food Millionaire", Requirement: "Reach 1M in Millionaire Mode"},
		"speed_demon":     {Name: "Speed Demon", Requirement: "Answer 10 correct in under 60 seconds"},
		"perfect_game":    {Name: "Perfect Game", Requirement: "15/15 correct answers"},
		"comeback_kid":    {Name: "Comeback Kid", Requirement: "Win after using all lifelines"},
	}
}

// TierAllowsMode reports whether a tier can play the given mode
func TierAllowsMode(tier AccessTier, mode string) bool {
	for _, m := range tier.GameModes {
		if m == "all" || m == mode {
			return true
		}
	}
	return false
}
