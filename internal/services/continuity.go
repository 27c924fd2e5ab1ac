package services

const (
	continuityStableBand  = 3
	continuitySlightBand  = 8
	continuityNoticedBand = 15

	recoveryMessageThreshold = 35
)

const (
	MessageSimilarToLastWeek = "Similar to last week."
)

// GenerateContinuityMessage describes the week-over-week change. delta is
// current minus previous, so a negative delta is an improvement. It reports
// false on a first check-in.
func GenerateContinuityMessage(currentScore int, previousScore *int, delta int) (string, bool) {
	if previousScore == nil {
		return "", false
	}

	magnitude := delta
	if magnitude < 0 {
		magnitude = -magnitude
	}

	switch {
	case magnitude <= continuityStableBand:
		return MessageSimilarToLastWeek, true
	case delta < 0:
		switch {
		case magnitude <= continuitySlightBand:
			return "Slight improvement from last week.", true
		case magnitude <= continuityNoticedBand:
			return "Noticeable improvement from last week.", true
		default:
			return "Significant improvement from last week.", true
		}
	case delta > 0:
		switch {
		case magnitude <= continuitySlightBand:
			return "Drift increased slightly from last week.", true
		case magnitude <= continuityNoticedBand:
			return "Drift increased noticeably from last week.", true
		default:
			return "Drift increased significantly from last week.", true
		}
	}
	return MessageSimilarToLastWeek, true
}

// DetectRecovery is the two-point signal used for messaging. The recovery
// milestone uses a stricter >50 to <35 transition.
func DetectRecovery(currentScore int, previousScore int) bool {
	return previousScore >= recoveryMessageThreshold && currentScore < recoveryMessageThreshold
}

func ReassuranceMessage(category DriftCategory) string {
	switch category {
	case DriftAligned:
		return "You're maintaining well."
	case DriftMild:
		return "Small adjustments help."
	case DriftModerate:
		return "This is a normal part of maintenance."
	case DriftHeavy, DriftCritical:
		return "Focus on one thing. That's enough."
	default:
		return "This is maintenance, not measurement."
	}
}
