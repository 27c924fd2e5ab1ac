package services

import (
	"time"

	"github.com/lifelag/lifelag/internal/models"
)

type CheckinResult struct {
	LagScore           int                  `json:"lagScore"`
	DriftCategory      DriftCategory        `json:"driftCategory"`
	WeakestDimension   Dimension            `json:"weakestDimension"`
	Tip                Tip                  `json:"tip"`
	ContinuityMessage  string               `json:"continuityMessage,omitempty"`
	ScoreDelta         *int                 `json:"scoreDelta,omitempty"`
	StreakCount        int                  `json:"streakCount"`
	StreakMessage      string               `json:"streakMessage,omitempty"`
	CheckinCount       int                  `json:"checkinCount"`
	Milestone          *MilestoneView       `json:"milestone,omitempty"`
	Milestones         []MilestoneCandidate `json:"milestones"`
	Recovered          bool                 `json:"recovered"`
	ReassuranceMessage string               `json:"reassuranceMessage"`
	MicroGoal          string               `json:"microGoal,omitempty"`
}

// CheckinComputationInput carries the persisted state read before a new
// check-in is stored.
type CheckinComputationInput struct {
	Answers            Answers
	Now                time.Time
	Previous           *CheckinSummary
	StreakCount        int
	LastCheckinAt      *time.Time
	PriorCheckinCount  int
	ExistingMilestones []models.Milestone
	MicroGoalSource    IntNSource
}

func BuildCheckinResult(input CheckinComputationInput) CheckinResult {
	score := CalculateLagScore(input.Answers)
	category := DriftCategoryForScore(score)
	weakest := WeakestDimension(input.Answers)

	result := CheckinResult{
		LagScore:           score,
		DriftCategory:      category,
		WeakestDimension:   weakest,
		Tip:                TipFor(weakest, category),
		CheckinCount:       input.PriorCheckinCount + 1,
		ReassuranceMessage: ReassuranceMessage(category),
		MicroGoal:          GenerateMicroGoalSuggestion(weakest, input.MicroGoalSource),
	}

	recentScores := []int{score}
	if input.Previous != nil {
		previousScore := input.Previous.LagScore
		delta := score - previousScore
		result.ScoreDelta = &delta
		if message, ok := GenerateContinuityMessage(score, &previousScore, delta); ok {
			result.ContinuityMessage = message
		}
		result.Recovered = DetectRecovery(score, previousScore)
		recentScores = []int{previousScore, score}
	}

	result.StreakCount = CalculateSoftStreak(score, input.StreakCount, input.LastCheckinAt, input.Now)
	if message, ok := FormatStreakMessage(result.StreakCount); ok {
		result.StreakMessage = message
	}

	result.Milestones = CheckNewMilestones(input.ExistingMilestones, result.CheckinCount, result.StreakCount, recentScores)
	if len(result.Milestones) > 0 {
		first := result.Milestones[0]
		result.Milestone = &MilestoneView{
			Type:       first.Type,
			Value:      first.Value,
			Message:    FormatMilestoneMessage(first.Type, first.Value),
			AchievedAt: input.Now,
		}
	}

	return result
}

func SummaryFromCheckin(checkin models.Checkin) CheckinSummary {
	return CheckinSummary{
		ID:               checkin.ID,
		LagScore:         checkin.LagScore,
		DriftCategory:    DriftCategory(checkin.DriftCategory),
		WeakestDimension: Dimension(checkin.WeakestDimension),
		CreatedAt:        checkin.CreatedAt,
		ScoreDelta:       checkin.ScoreDelta,
	}
}

func SummariesFromCheckins(checkins []models.Checkin) []CheckinSummary {
	summaries := make([]CheckinSummary, 0, len(checkins))
	for _, checkin := range checkins {
		summaries = append(summaries, SummaryFromCheckin(checkin))
	}
	return summaries
}
