package services

import (
	"errors"
	"strings"
	"time"
)

var ErrQuickPulseResponseInvalid = errors.New("quick pulse response invalid")

const (
	quickPulseScoreTrigger = 45

	middleOfWeekFirstDay = 2
	middleOfWeekLastDay  = 5
)

type QuickPulseResponse string

const (
	QuickPulseGood       QuickPulseResponse = "good"
	QuickPulseAdjusting  QuickPulseResponse = "adjusting"
	QuickPulseStruggling QuickPulseResponse = "struggling"
)

func ParseQuickPulseResponse(raw string) (QuickPulseResponse, error) {
	switch response := QuickPulseResponse(strings.ToLower(strings.TrimSpace(raw))); response {
	case QuickPulseGood, QuickPulseAdjusting, QuickPulseStruggling:
		return response, nil
	default:
		return "", ErrQuickPulseResponseInvalid
	}
}

type CheckinSummary struct {
	ID               uint          `json:"id"`
	LagScore         int           `json:"lagScore"`
	DriftCategory    DriftCategory `json:"driftCategory"`
	WeakestDimension Dimension     `json:"weakestDimension"`
	CreatedAt        time.Time     `json:"createdAt"`
	ScoreDelta       *int          `json:"scoreDelta,omitempty"`
}

// ShouldShowQuickPulse expects recent newest-first.
func ShouldShowQuickPulse(recent []CheckinSummary) bool {
	if len(recent) == 0 {
		return false
	}
	if recent[0].LagScore >= quickPulseScoreTrigger {
		return true
	}
	if len(recent) < 3 {
		return false
	}

	current, previous, twoBefore := recent[0], recent[1], recent[2]
	scoreRising := current.LagScore > previous.LagScore && previous.LagScore > twoBefore.LagScore
	categoryWorsening := current.DriftCategory.Severity() > previous.DriftCategory.Severity() &&
		previous.DriftCategory.Severity() > twoBefore.DriftCategory.Severity()
	return scoreRising || categoryWorsening
}

func IsMiddleOfWeek(lastCheckinAt time.Time, now time.Time) bool {
	days := WholeDaysBetween(lastCheckinAt, now)
	return days >= middleOfWeekFirstDay && days <= middleOfWeekLastDay
}
