package catalog

// Series describes a Soul Food lesson series and its availability window
type Series struct {
	Name          string `json:"name"`
	Theme         string `json:"theme"`
	Description   string `json:"description"`
	Available     bool   `json:"available"`
	UnlockDate    string `json:"unlockDate,omitempty"`
	UnlockQuarter string `json:"unlockQuarter,omitempty"`
	Order         int    `json:"order"`
}

// Edition describes a content tier (adult/youth/instructor) and its pricing
type Edition struct {
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	AgeRange      string   `json:"ageRange,omitempty"`
	PriceMonthly  float64  `json:"priceMonthly"`
	PriceEbook    float64  `json:"priceEbook"`
	PricePhysical float64  `json:"pricePhysical"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
}

// DefinedSeries returns the Soul Food series with availability status.
// Lunch/Dinner/Supper unlock quarterly through 2026.
func DefinedSeries() map[string]Series {
	return map[string]Series{
		"breakfast": {
			Name:        "Break*fast",
			Theme:       "Foundation in Christ",
			Description: "Start your spiritual journey with a strong foundation in Christ",
			Available:   true,
			Order:       1,
		},
		"lunch": {
			Name:          "Lunch",
			Theme:         "Kingdom Relationships",
			Description:   "Build meaningful relationships in the Kingdom of God",
			Available:     false,
			UnlockDate:    "2026-03-01",
			UnlockQuarter: "Q1 2026",
			Order:         2,
		},
		"dinner": {
			Name:          "Dinner",
			Theme:         "Finding Your Purpose",
			Description:   "Discover your calling and purpose in God's Kingdom",
			Available:     false,
			UnlockDate:    "2026-06-01",
			UnlockQuarter: "Q2 2026",
			Order:         3,
		},
		"supper": {
			Name:          "Supper",
			Theme:         "Maturity in the Faith",
			Description:   "Grow into spiritual maturity and wisdom",
			Available:     false,
			UnlockDate:    "2026-09-01",
			UnlockQuarter: "Q3 2026",
			Order:         4,
		},
		"holiday": {
			Name:        "Holiday Series",
			Theme:       "4 C's of Christianity",
			Description: "The Covenant, The Cradle, The Cross, and The Comforter",
			Available:   true,
			Order:       5,
		},
		"leap_of_faith": {
			Name:        "Leap of Faith",
			Theme:       "Mini-Series",
			Description: "Platform exclusive marketing content",
			Available:   true,
			Order:       6,
		},
		"bonus": {
			Name:        "Bonus Content",
			Theme:       "Special Lessons",
			Description: "Names of God, Times & Seasons, and more",
			Available:   true,
			Order:       7,
		},
	}
}

// DefinedEditions returns the available content editions
func DefinedEditions() map[string]Edition {
	return map[string]Edition{
		"adult": {
			Name:          "Adult Edition (AE)",
			Code:          "AE",
			PriceMonthly:  9.99,
			PriceEbook:    31.99,
			PricePhysical: 39.99,
			Description:   "Core lessons using WEB (World English Bible) for clarity. Includes interactive workbooks, monthly audible prayers, theme videos, and meal series audio files.",
			Features: []string{
				"All Soul Food series lessons",
				"WEB Bible for modern clarity",
				"Interactive workbook format",
				"Monthly audible prayers (adult-targeted)",
				"Theme-based teaching videos",
				"General audio per meal series",
				"Community discussion access",
			},
		},
		"youth": {
			Name:          "Youth Edition (YE)",
			Code:          "YE",
			AgeRange:      "12-20",
			PriceMonthly:  9.99,
			PriceEbook:    31.99,
			PricePhysical: 39.99,
			Description:   "Age-appropriate content with WEB Bible, designed for young believers ages 12-20. Includes engaging activities, youth-targeted prayers, videos, and audio content.",
			Features: []string{
				"Youth-focused lessons (WEB Bible)",
				"Engaging interactive activities",
				"Monthly youth-targeted prayers",
				"Youth-specific teaching videos",
				"Audio content per meal theme",
				"Peer community access",
				"Parent resources",
			},
		},
		"instructor": {
			Name:          "Instructor Edition (IE)",
			Code:          "IE",
			PriceMonthly:  14.99,
			PriceEbook:    68.99,
			PricePhysical: 79.99,
			Description:   "Complete teaching toolkit for facilitating Adult or Youth classes. Includes math connections, dual scripture view, historical references, teaching guides, and all multimedia content.",
			Features: []string{
				"All Adult & Youth content",
				"Math connections to biblical concepts",
				"Dual scripture view for comparison",
				"Historical reference connections",
				"Teaching guides & answer keys",
				"Discussion prompts & facilitation tips",
				"All multimedia (audio & video)",
				"Downloadable teaching materials",
			},
		},
	}
}
