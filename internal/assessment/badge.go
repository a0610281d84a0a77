package assessment

// Badge maps a composite score to its achievement badge. The thresholds are
// fixed and shared with the backend; the same mapping is used whether the
// score comes from a fresh submission or from history.
func Badge(score float64) string {
	switch {
	case score >= 85:
		return "Health Champion"
	case score >= 70:
		return "Wellness Star"
	case score >= 55:
		return "Making Progress"
	case score >= 40:
		return "Getting Started"
	default:
		return "Keep Going"
	}
}

// Message maps a composite score to its encouragement line, on the same
// thresholds as Badge.
func Message(score float64) string {
	switch {
	case score >= 85:
		return "Outstanding! You're crushing your health goals today!"
	case score >= 70:
		return "Great job! You're building excellent health habits."
	case score >= 55:
		return "Good effort! Small improvements add up over time."
	case score >= 40:
		return "You've made a start — tomorrow is another chance to improve!"
	default:
		return "Every day is a new opportunity. You've got this!"
	}
}
