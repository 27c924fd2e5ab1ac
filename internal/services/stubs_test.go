package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/lifelag/lifelag/internal/models"
	"github.com/lifelag/lifelag/internal/notify"
)

type stubCheckinRepository struct {
	user       models.User
	checkins   []models.Checkin
	milestones []models.Milestone
	recordErr  error
	listErr    error
	recorded   int
}

func (repo *stubCheckinRepository) ListRecentByUser(userID uint, limit int) ([]models.Checkin, error) {
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	ordered := make([]models.Checkin, 0, len(repo.checkins))
	for _, checkin := range repo.checkins {
		if checkin.UserID == userID {
			ordered = append(ordered, checkin)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered, nil
}

func (repo *stubCheckinRepository) RecordCheckin(userID uint, build func(snapshot models.CheckinSnapshot) (models.CheckinOutcome, error)) (models.CheckinOutcome, error) {
	if repo.recordErr != nil {
		return models.CheckinOutcome{}, repo.recordErr
	}

	recent, _ := repo.ListRecentByUser(userID, 1)
	snapshot := models.CheckinSnapshot{
		User:         repo.user,
		CheckinCount: len(repo.checkins),
		Milestones:   append([]models.Milestone(nil), repo.milestones...),
	}
	if len(recent) > 0 {
		snapshot.Latest = &recent[0]
	}

	outcome, err := build(snapshot)
	if err != nil {
		return models.CheckinOutcome{}, err
	}

	outcome.Checkin.ID = uint(len(repo.checkins) + 1)
	repo.checkins = append(repo.checkins, outcome.Checkin)
	for index := range outcome.Milestones {
		outcome.Milestones[index].ID = fmt.Sprintf("milestone-%d", len(repo.milestones)+1)
		repo.milestones = append(repo.milestones, outcome.Milestones[index])
	}
	repo.user.StreakCount = outcome.StreakCount
	lastCheckinAt := outcome.LastCheckinAt
	repo.user.LastCheckinAt = &lastCheckinAt
	repo.recorded++
	return outcome, nil
}

func (repo *stubCheckinRepository) ListByUser(userID uint) ([]models.Milestone, error) {
	if repo.listErr != nil {
		return nil, repo.listErr
	}
	return repo.milestones, nil
}

type sentMessage struct {
	recipient notify.Recipient
	text      string
}

type stubSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (sender *stubSender) Send(ctx context.Context, recipient notify.Recipient, text string) error {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	sender.sent = append(sender.sent, sentMessage{recipient: recipient, text: text})
	return sender.err
}

func (sender *stubSender) messages() []sentMessage {
	sender.mu.Lock()
	defer sender.mu.Unlock()
	return append([]sentMessage(nil), sender.sent...)
}

type stubObserver struct {
	categories    []string
	milestones    []string
	notifications map[string]int
	failures      int
}

func (observer *stubObserver) ObserveCheckin(category string, score int) {
	observer.categories = append(observer.categories, category)
}

func (observer *stubObserver) ObserveMilestone(milestoneType string) {
	observer.milestones = append(observer.milestones, milestoneType)
}

func (observer *stubObserver) ObserveNotification(kind string, err error) {
	if observer.notifications == nil {
		observer.notifications = make(map[string]int)
	}
	observer.notifications[kind]++
	if err != nil {
		observer.failures++
	}
}

var errStubStorage = errors.New("storage unavailable")
