package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lifelag/lifelag/internal/models"
	"github.com/lifelag/lifelag/internal/notify"
)

var (
	ErrCheckinSaveFailed    = errors.New("save checkin failed")
	ErrCheckinHistoryFailed = errors.New("load checkin history failed")
	ErrMilestonesLoadFailed = errors.New("load milestones failed")
)

const (
	DefaultRecentCheckinLimit = 12
	MaxRecentCheckinLimit     = 104
)

type CheckinRepository interface {
	ListRecentByUser(userID uint, limit int) ([]models.Checkin, error)
	RecordCheckin(userID uint, build func(snapshot models.CheckinSnapshot) (models.CheckinOutcome, error)) (models.CheckinOutcome, error)
}

type MilestoneRepository interface {
	ListByUser(userID uint) ([]models.Milestone, error)
}

type CheckinObserver interface {
	ObserveCheckin(category string, score int)
	ObserveMilestone(milestoneType string)
	ObserveNotification(kind string, err error)
}

type CheckinService struct {
	checkins   CheckinRepository
	milestones MilestoneRepository
	sender     notify.Sender
	observer   CheckinObserver
	random     IntNSource
	now        func() time.Time
}

type CheckinServiceOption func(*CheckinService)

func WithCheckinSender(sender notify.Sender) CheckinServiceOption {
	return func(service *CheckinService) {
		service.sender = sender
	}
}

func WithCheckinObserver(observer CheckinObserver) CheckinServiceOption {
	return func(service *CheckinService) {
		service.observer = observer
	}
}

func WithMicroGoalSource(source IntNSource) CheckinServiceOption {
	return func(service *CheckinService) {
		service.random = source
	}
}

func WithCheckinClock(now func() time.Time) CheckinServiceOption {
	return func(service *CheckinService) {
		service.now = now
	}
}

func NewCheckinService(checkins CheckinRepository, milestones MilestoneRepository, options ...CheckinServiceOption) *CheckinService {
	service := &CheckinService{
		checkins:   checkins,
		milestones: milestones,
		now:        time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

func (service *CheckinService) SubmitCheckin(ctx context.Context, userID uint, answers Answers) (CheckinResult, error) {
	if err := ValidateAnswers(answers); err != nil {
		return CheckinResult{}, err
	}

	now := service.now()
	var result CheckinResult
	var user models.User
	outcome, err := service.checkins.RecordCheckin(userID, func(snapshot models.CheckinSnapshot) (models.CheckinOutcome, error) {
		user = snapshot.User
		input := CheckinComputationInput{
			Answers:            answers,
			Now:                now,
			StreakCount:        snapshot.User.StreakCount,
			LastCheckinAt:      snapshot.User.LastCheckinAt,
			PriorCheckinCount:  snapshot.CheckinCount,
			ExistingMilestones: snapshot.Milestones,
			MicroGoalSource:    service.random,
		}
		if snapshot.Latest != nil {
			previous := SummaryFromCheckin(*snapshot.Latest)
			input.Previous = &previous
		}

		result = BuildCheckinResult(input)
		return buildCheckinOutcome(userID, answers, result, now), nil
	})
	if err != nil {
		log.Printf("checkins: save for user %d failed: %v", userID, err)
		return CheckinResult{}, ErrCheckinSaveFailed
	}

	if result.Milestone != nil && len(outcome.Milestones) > 0 {
		result.Milestone.ID = outcome.Milestones[0].ID
	}

	service.observe(result)
	service.notifyMilestones(ctx, user, outcome.Milestones)
	return result, nil
}

func buildCheckinOutcome(userID uint, answers Answers, result CheckinResult, now time.Time) models.CheckinOutcome {
	milestones := make([]models.Milestone, 0, len(result.Milestones))
	for _, candidate := range result.Milestones {
		milestones = append(milestones, models.Milestone{
			UserID:         userID,
			MilestoneType:  candidate.Type,
			MilestoneValue: candidate.Value,
			AchievedAt:     now,
		})
	}

	return models.CheckinOutcome{
		Checkin: models.Checkin{
			UserID:           userID,
			Energy:           answers.Energy,
			Sleep:            answers.Sleep,
			Structure:        answers.Structure,
			Initiation:       answers.Initiation,
			Engagement:       answers.Engagement,
			Sustainability:   answers.Sustainability,
			LagScore:         result.LagScore,
			DriftCategory:    string(result.DriftCategory),
			WeakestDimension: string(result.WeakestDimension),
			ScoreDelta:       result.ScoreDelta,
			CreatedAt:        now,
		},
		StreakCount:   result.StreakCount,
		LastCheckinAt: now,
		Milestones:    milestones,
	}
}

func (service *CheckinService) observe(result CheckinResult) {
	if service.observer == nil {
		return
	}
	service.observer.ObserveCheckin(string(result.DriftCategory), result.LagScore)
	for _, milestone := range result.Milestones {
		service.observer.ObserveMilestone(milestone.Type)
	}
}

func (service *CheckinService) notifyMilestones(ctx context.Context, user models.User, milestones []models.Milestone) {
	if service.sender == nil || !user.RemindersEnabled {
		return
	}
	recipient := notify.Recipient{UserID: user.ID, Email: user.Email, TelegramChatID: user.TelegramChatID}
	for _, milestone := range milestones {
		message := "Life Lag milestone: " + FormatMilestoneMessage(milestone.MilestoneType, milestone.MilestoneValue)
		err := service.sender.Send(ctx, recipient, message)
		if service.observer != nil {
			service.observer.ObserveNotification("milestone", err)
		}
		if err != nil && !errors.Is(err, notify.ErrRecipientUnreachable) {
			log.Printf("checkins: milestone notification for user %d failed: %v", user.ID, err)
		}
	}
}

func (service *CheckinService) RecentSummaries(userID uint, limit int) ([]CheckinSummary, error) {
	checkins, err := service.checkins.ListRecentByUser(userID, NormalizeRecentLimit(limit))
	if err != nil {
		return nil, ErrCheckinHistoryFailed
	}
	return SummariesFromCheckins(checkins), nil
}

func (service *CheckinService) Milestones(userID uint) ([]MilestoneView, error) {
	milestones, err := service.milestones.ListByUser(userID)
	if err != nil {
		return nil, ErrMilestonesLoadFailed
	}
	views := make([]MilestoneView, 0, len(milestones))
	for _, milestone := range milestones {
		views = append(views, BuildMilestoneView(milestone))
	}
	return views, nil
}

func NormalizeRecentLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecentCheckinLimit
	}
	if limit > MaxRecentCheckinLimit {
		return MaxRecentCheckinLimit
	}
	return limit
}
