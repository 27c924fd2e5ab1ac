package services

import (
	"fmt"
	"time"

	"github.com/lifelag/lifelag/internal/models"
)

const (
	recoveryMilestoneValue = 1

	recoveryMilestoneFromAbove = 50
	recoveryMilestoneBelow     = 35
)

var (
	checkinCountMilestones = []int{4, 8, 12, 24, 52}
	streakMilestones       = []int{4, 8, 12, 16, 32, 48}
)

type MilestoneCandidate struct {
	Type  string `json:"type"`
	Value int    `json:"value"`
}

type MilestoneView struct {
	ID         string    `json:"id"`
	Type       string    `json:"milestoneType"`
	Value      int       `json:"milestoneValue"`
	Message    string    `json:"message"`
	AchievedAt time.Time `json:"achievedAt"`
}

// CheckNewMilestones returns every milestone the current check-in crosses
// that is not yet in existing. recentScores runs oldest to newest; only
// the last two entries are inspected for recovery.
func CheckNewMilestones(existing []models.Milestone, checkinCount int, streakCount int, recentScores []int) []MilestoneCandidate {
	recorded := make(map[MilestoneCandidate]bool, len(existing))
	for _, milestone := range existing {
		recorded[MilestoneCandidate{Type: milestone.MilestoneType, Value: milestone.MilestoneValue}] = true
	}

	found := make([]MilestoneCandidate, 0)
	for _, value := range checkinCountMilestones {
		candidate := MilestoneCandidate{Type: models.MilestoneTypeCheckinCount, Value: value}
		if checkinCount == value && !recorded[candidate] {
			found = append(found, candidate)
		}
	}
	for _, value := range streakMilestones {
		candidate := MilestoneCandidate{Type: models.MilestoneTypeStreak, Value: value}
		if streakCount == value && !recorded[candidate] {
			found = append(found, candidate)
		}
	}

	if len(recentScores) >= 2 {
		previous := recentScores[len(recentScores)-2]
		current := recentScores[len(recentScores)-1]
		candidate := MilestoneCandidate{Type: models.MilestoneTypeRecovery, Value: recoveryMilestoneValue}
		if previous > recoveryMilestoneFromAbove && current < recoveryMilestoneBelow && !recorded[candidate] {
			found = append(found, candidate)
		}
	}

	return found
}

var milestoneMessages = map[MilestoneCandidate]string{
	{Type: models.MilestoneTypeCheckinCount, Value: 4}:  "First month of check-ins",
	{Type: models.MilestoneTypeCheckinCount, Value: 8}:  "Two months of check-ins",
	{Type: models.MilestoneTypeCheckinCount, Value: 12}: "Three months of check-ins",
	{Type: models.MilestoneTypeCheckinCount, Value: 24}: "Six months of check-ins",
	{Type: models.MilestoneTypeCheckinCount, Value: 52}: "One year of check-ins",
	{Type: models.MilestoneTypeStreak, Value: 4}:        "4-week maintenance streak",
	{Type: models.MilestoneTypeStreak, Value: 8}:        "8-week maintenance streak",
	{Type: models.MilestoneTypeStreak, Value: 12}:       "12-week maintenance streak",
	{Type: models.MilestoneTypeStreak, Value: 16}:       "16-week maintenance streak",
	{Type: models.MilestoneTypeStreak, Value: 32}:       "32-week maintenance streak",
	{Type: models.MilestoneTypeStreak, Value: 48}:       "48-week maintenance streak",
}

func FormatMilestoneMessage(milestoneType string, value int) string {
	if milestoneType == models.MilestoneTypeRecovery {
		return "Recovered from drift"
	}
	if message, ok := milestoneMessages[MilestoneCandidate{Type: milestoneType, Value: value}]; ok {
		return message
	}
	if milestoneType == models.MilestoneTypeStreak {
		return fmt.Sprintf("%d-week maintenance streak", value)
	}
	return fmt.Sprintf("%d check-ins completed", value)
}

func BuildMilestoneView(milestone models.Milestone) MilestoneView {
	return MilestoneView{
		ID:         milestone.ID,
		Type:       milestone.MilestoneType,
		Value:      milestone.MilestoneValue,
		Message:    FormatMilestoneMessage(milestone.MilestoneType, milestone.MilestoneValue),
		AchievedAt: milestone.AchievedAt,
	}
}
