package services

const settingsLink = "/settings"

type MicroAdjustment struct {
	Message     string `json:"message"`
	ActionLabel string `json:"actionLabel,omitempty"`
	ActionLink  string `json:"actionLink,omitempty"`
}

var goodPulseAdjustment = MicroAdjustment{
	Message: "Good to hear. Keep doing what's working this week.",
}

var adjustingAdjustments = map[Dimension]MicroAdjustment{
	DimensionEnergy: {
		Message:     "Try one short walk or stretch break before your afternoon dip.",
		ActionLabel: "Set an energy reminder",
		ActionLink:  settingsLink,
	},
	DimensionSleep: {
		Message:     "Pick a wind-down time tonight and keep it for three nights.",
		ActionLabel: "Set a bedtime reminder",
		ActionLink:  settingsLink,
	},
	DimensionStructure: {
		Message: "Anchor tomorrow with one fixed block you won't move.",
	},
	DimensionInitiation: {
		Message: "Shrink the next task until it takes five minutes to start.",
	},
	DimensionEngagement: {
		Message: "Spend ten minutes today on the part of your work you still enjoy.",
	},
	DimensionSustainability: {
		Message: "Drop one optional commitment from this week's list.",
	},
}

var strugglingAdjustments = map[Dimension]MicroAdjustment{
	DimensionEnergy: {
		Message: "Cancel one non-essential thing today and use the time to rest.",
	},
	DimensionSleep: {
		Message: "Tonight, protect sleep above everything else. Screens off an hour early.",
	},
	DimensionStructure: {
		Message: "Write down the one thing that must happen tomorrow. Only that.",
	},
	DimensionInitiation: {
		Message: "Start the smallest possible version of one task right now, for two minutes.",
	},
	DimensionEngagement: {
		Message: "Step away from the task that drains you most and reach out to someone today.",
	},
	DimensionSustainability: {
		Message: "Say no to the next new request this week. Your current load is enough.",
	},
}

// MicroAdjustmentFor maps a quick pulse response to one of the fixed
// suggestions. currentScore is accepted for future tiering and does not
// affect the result.
func MicroAdjustmentFor(response QuickPulseResponse, weakest Dimension, currentScore int) MicroAdjustment {
	switch response {
	case QuickPulseGood:
		return goodPulseAdjustment
	case QuickPulseAdjusting:
		if adjustment, ok := adjustingAdjustments[weakest]; ok {
			return adjustment
		}
	case QuickPulseStruggling:
		if adjustment, ok := strugglingAdjustments[weakest]; ok {
			return adjustment
		}
	}
	return goodPulseAdjustment
}

// IntNSource is satisfied by *math/rand/v2.Rand.
type IntNSource interface {
	IntN(n int) int
}

var microGoalPhrasings = map[Dimension][]string{
	DimensionEnergy: {
		"Take a ten-minute walk after lunch.",
		"Drink a glass of water before your first coffee.",
		"Schedule one real break away from screens.",
	},
	DimensionSleep: {
		"Go to bed 15 minutes earlier tonight.",
		"Keep your phone out of the bedroom for one night.",
	},
	DimensionStructure: {
		"Plan tomorrow's first hour before you finish today.",
		"Block one focus session in your calendar.",
		"Write a three-item list for the morning.",
	},
	DimensionInitiation: {
		"Start one postponed task for just five minutes.",
		"Pick the easiest open task and do it first.",
	},
	DimensionEngagement: {
		"Spend 15 minutes on something you're curious about.",
		"Share one small win with someone today.",
	},
	DimensionSustainability: {
		"Cancel or delegate one thing this week.",
		"Protect one evening with no obligations.",
		"Leave work at a fixed time once this week.",
	},
}

func GenerateMicroGoalSuggestion(dimension Dimension, source IntNSource) string {
	phrasings, ok := microGoalPhrasings[dimension]
	if !ok || len(phrasings) == 0 {
		return ""
	}
	if source == nil {
		return phrasings[0]
	}
	return phrasings[source.IntN(len(phrasings))]
}
