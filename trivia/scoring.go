package trivia

// point values per difficulty
const (
	pointsEasy   = 100
	pointsMedium = 250
	pointsHard   = 500

	fastBonus      = 50
	fastThreshold  = 10 // seconds
	quickBonus     = 25
	quickThreshold = 20
)

// ScoreAnswer computes the points for an answer. Wrong answers earn nothing;
// correct answers earn difficulty points plus a speed bonus.
func ScoreAnswer(difficulty string, correct bool, timeTakenSeconds int) int {
	if !correct {
		return 0
	}
	points := pointsEasy
	switch difficulty {
	case "medium":
		points = pointsMedium
	case "hard":
		points = pointsHard
	}
	if timeTakenSeconds < fastThreshold {
		points += fastBonus
	} else if timeTakenSeconds < quickThreshold {
		points += quickBonus
	}
	return points
}
