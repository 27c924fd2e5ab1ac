package services

type Tip struct {
	Focus      string `json:"focus"`
	Constraint string `json:"constraint"`
	Choice     string `json:"choice"`
}

type tipBand int

const (
	tipBandMaintain tipBand = iota
	tipBandAdjust
	tipBandReset
)

func tipBandForCategory(category DriftCategory) tipBand {
	switch category {
	case DriftAligned, DriftMild:
		return tipBandMaintain
	case DriftModerate:
		return tipBandAdjust
	default:
		return tipBandReset
	}
}

var tipTable = map[Dimension][3]Tip{
	DimensionEnergy: {
		tipBandMaintain: {Focus: "Keep your energy routines steady.", Constraint: "Don't add new commitments this week.", Choice: "Pick one energizing habit to repeat daily."},
		tipBandAdjust:   {Focus: "Protect your energy peaks.", Constraint: "Limit demanding work to your best two hours.", Choice: "Choose a short movement break or an earlier lunch."},
		tipBandReset:    {Focus: "Recover before you push.", Constraint: "Cut today's plan in half.", Choice: "Rest for 20 minutes or go outside for 10."},
	},
	DimensionSleep: {
		tipBandMaintain: {Focus: "Keep your sleep window consistent.", Constraint: "Same wake-up time, even on weekends.", Choice: "Read or stretch before bed."},
		tipBandAdjust:   {Focus: "Move bedtime earlier.", Constraint: "No screens in the last 30 minutes.", Choice: "Pick a fixed wind-down cue."},
		tipBandReset:    {Focus: "Sleep is the only priority tonight.", Constraint: "Skip anything that runs past 9pm.", Choice: "Go to bed early or take a short afternoon nap."},
	},
	DimensionStructure: {
		tipBandMaintain: {Focus: "Keep the rhythm you have.", Constraint: "Plan no more than three priorities a day.", Choice: "Review tomorrow's plan in the evening."},
		tipBandAdjust:   {Focus: "Rebuild one anchor in your day.", Constraint: "One fixed start time, nothing more.", Choice: "Anchor mornings or evenings."},
		tipBandReset:    {Focus: "One thing a day.", Constraint: "Write down a single must-do.", Choice: "Do it first thing or right after lunch."},
	},
	DimensionInitiation: {
		tipBandMaintain: {Focus: "Keep starting small.", Constraint: "Break big tasks before you begin.", Choice: "Start with the easiest or the most important task."},
		tipBandAdjust:   {Focus: "Lower the bar to begin.", Constraint: "Five minutes is a full start.", Choice: "Use a timer or a body double."},
		tipBandReset:    {Focus: "Just begin something.", Constraint: "Two minutes, then you may stop.", Choice: "Open the file or write the first sentence."},
	},
	DimensionEngagement: {
		tipBandMaintain: {Focus: "Notice what keeps you interested.", Constraint: "Protect one enjoyable task a day.", Choice: "Learn something or teach something."},
		tipBandAdjust:   {Focus: "Reconnect with the why.", Constraint: "One meaningful task before busywork.", Choice: "Talk to a colleague or try a new approach."},
		tipBandReset:    {Focus: "Find one small spark.", Constraint: "Ten minutes on something you enjoy.", Choice: "Music, a walk, or a conversation."},
	},
	DimensionSustainability: {
		tipBandMaintain: {Focus: "Keep your pace sustainable.", Constraint: "Stop at a fixed time most days.", Choice: "Plan one restful evening."},
		tipBandAdjust:   {Focus: "Trim the load.", Constraint: "Remove one commitment this week.", Choice: "Delegate it or postpone it."},
		tipBandReset:    {Focus: "Protect your limits.", Constraint: "Say no to anything new this week.", Choice: "Cancel one meeting or one errand."},
	},
}

func TipFor(dimension Dimension, category DriftCategory) Tip {
	tips, ok := tipTable[dimension]
	if !ok {
		tips = tipTable[DimensionEnergy]
	}
	return tips[tipBandForCategory(category)]
}
