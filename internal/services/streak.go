package services

import (
	"fmt"
	"time"
)

const (
	// Streaks only count aligned or mild weeks.
	streakScoreThreshold = 35
	streakMaxGapDays     = 7
	streakMonthWeeks     = 52
)

func CalculateSoftStreak(currentScore int, lastStreakCount int, lastCheckinAt *time.Time, now time.Time) int {
	qualifies := currentScore < streakScoreThreshold
	if lastCheckinAt == nil || lastCheckinAt.IsZero() {
		return restartedStreak(qualifies)
	}

	if WholeDaysBetween(*lastCheckinAt, now) > streakMaxGapDays {
		return restartedStreak(qualifies)
	}
	if !qualifies {
		return 0
	}
	return lastStreakCount + 1
}

func restartedStreak(qualifies bool) int {
	if qualifies {
		return 1
	}
	return 0
}

// FormatStreakMessage reports false for streaks below two weeks.
func FormatStreakMessage(streakCount int) (string, bool) {
	if streakCount < 2 {
		return "", false
	}
	if streakCount >= streakMonthWeeks {
		return fmt.Sprintf("%d-month maintenance streak", streakCount/4), true
	}
	return fmt.Sprintf("%d-week maintenance streak", streakCount), true
}

// WholeDaysBetween floors the elapsed time from earlier to later into days.
func WholeDaysBetween(earlier time.Time, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
