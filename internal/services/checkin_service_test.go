package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lifelag/lifelag/internal/models"
	"github.com/lifelag/lifelag/internal/notify"
)

func seededCheckinRepository(now time.Time, remindersEnabled bool) *stubCheckinRepository {
	lastCheckinAt := now.AddDate(0, 0, -7)
	return &stubCheckinRepository{
		user: models.User{
			ID:               7,
			Email:            "user@example.com",
			StreakCount:      3,
			LastCheckinAt:    &lastCheckinAt,
			RemindersEnabled: remindersEnabled,
			TelegramChatID:   42,
		},
		checkins: []models.Checkin{
			{ID: 1, UserID: 7, LagScore: 30, DriftCategory: "mild", WeakestDimension: "sleep", CreatedAt: now.AddDate(0, 0, -21)},
			{ID: 2, UserID: 7, LagScore: 25, DriftCategory: "mild", WeakestDimension: "sleep", CreatedAt: now.AddDate(0, 0, -14)},
			{ID: 3, UserID: 7, LagScore: 60, DriftCategory: "heavy", WeakestDimension: "energy", CreatedAt: lastCheckinAt},
		},
	}
}

func TestSubmitCheckinPersistsAndNotifiesMilestones(t *testing.T) {
	now := time.Date(2026, time.March, 23, 9, 0, 0, 0, time.UTC)
	repo := seededCheckinRepository(now, true)
	sender := &stubSender{}
	observer := &stubObserver{}

	service := NewCheckinService(repo, repo,
		WithCheckinSender(sender),
		WithCheckinObserver(observer),
		WithCheckinClock(func() time.Time { return now }),
	)

	result, err := service.SubmitCheckin(context.Background(), 7, uniformAnswers(5))
	if err != nil {
		t.Fatalf("SubmitCheckin returned error: %v", err)
	}

	if result.LagScore != 0 || result.CheckinCount != 4 || result.StreakCount != 4 {
		t.Fatalf("unexpected result %#v", result)
	}
	if result.ScoreDelta == nil || *result.ScoreDelta != -60 {
		t.Fatalf("expected delta against the latest checkin, got %v", result.ScoreDelta)
	}
	if result.Milestone == nil || result.Milestone.ID != "milestone-1" {
		t.Fatalf("expected milestone id from storage, got %#v", result.Milestone)
	}

	stored := repo.checkins[len(repo.checkins)-1]
	if stored.LagScore != 0 || stored.DriftCategory != "aligned" || stored.Energy != 5 || !stored.CreatedAt.Equal(now) {
		t.Fatalf("unexpected stored checkin %#v", stored)
	}
	if repo.user.StreakCount != 4 || repo.user.LastCheckinAt == nil || !repo.user.LastCheckinAt.Equal(now) {
		t.Fatalf("expected user streak state to be updated, got %#v", repo.user)
	}
	if len(repo.milestones) != 3 {
		t.Fatalf("expected 3 stored milestones, got %d", len(repo.milestones))
	}

	messages := sender.messages()
	if len(messages) != 3 {
		t.Fatalf("expected 3 milestone notifications, got %d", len(messages))
	}
	if messages[0].text != "Life Lag milestone: First month of check-ins" {
		t.Fatalf("unexpected notification text %q", messages[0].text)
	}
	if messages[0].recipient.TelegramChatID != 42 || messages[0].recipient.UserID != 7 {
		t.Fatalf("unexpected recipient %#v", messages[0].recipient)
	}

	if len(observer.categories) != 1 || observer.categories[0] != "aligned" {
		t.Fatalf("expected one aligned observation, got %#v", observer.categories)
	}
	if len(observer.milestones) != 3 || observer.notifications["milestone"] != 3 {
		t.Fatalf("unexpected observer state %#v", observer)
	}
}

func TestSubmitCheckinSkipsNotificationsWhenRemindersDisabled(t *testing.T) {
	now := time.Date(2026, time.March, 23, 9, 0, 0, 0, time.UTC)
	repo := seededCheckinRepository(now, false)
	sender := &stubSender{}

	service := NewCheckinService(repo, repo, WithCheckinSender(sender), WithCheckinClock(func() time.Time { return now }))
	if _, err := service.SubmitCheckin(context.Background(), 7, uniformAnswers(5)); err != nil {
		t.Fatalf("SubmitCheckin returned error: %v", err)
	}
	if len(sender.messages()) != 0 {
		t.Fatalf("expected no notifications, got %d", len(sender.messages()))
	}
}

func TestSubmitCheckinToleratesUnreachableRecipient(t *testing.T) {
	now := time.Date(2026, time.March, 23, 9, 0, 0, 0, time.UTC)
	repo := seededCheckinRepository(now, true)
	sender := &stubSender{err: notify.ErrRecipientUnreachable}
	observer := &stubObserver{}

	service := NewCheckinService(repo, repo, WithCheckinSender(sender), WithCheckinObserver(observer), WithCheckinClock(func() time.Time { return now }))
	if _, err := service.SubmitCheckin(context.Background(), 7, uniformAnswers(5)); err != nil {
		t.Fatalf("expected delivery failures to be ignored, got %v", err)
	}
	if observer.failures != 3 {
		t.Fatalf("expected 3 failed notifications to be observed, got %d", observer.failures)
	}
}

func TestSubmitCheckinRejectsInvalidAnswers(t *testing.T) {
	repo := &stubCheckinRepository{user: models.User{ID: 1}}
	service := NewCheckinService(repo, repo)

	_, err := service.SubmitCheckin(context.Background(), 1, Answers{Energy: 3})
	if !errors.Is(err, ErrCheckinAnswersInvalid) {
		t.Fatalf("expected ErrCheckinAnswersInvalid, got %v", err)
	}
	if repo.recorded != 0 {
		t.Fatal("expected nothing to be stored")
	}
}

func TestSubmitCheckinMapsStorageFailure(t *testing.T) {
	repo := &stubCheckinRepository{recordErr: errStubStorage}
	service := NewCheckinService(repo, repo)

	_, err := service.SubmitCheckin(context.Background(), 1, uniformAnswers(3))
	if !errors.Is(err, ErrCheckinSaveFailed) {
		t.Fatalf("expected ErrCheckinSaveFailed, got %v", err)
	}
}

func TestRecentSummariesNewestFirst(t *testing.T) {
	now := time.Date(2026, time.March, 23, 9, 0, 0, 0, time.UTC)
	repo := seededCheckinRepository(now, false)
	service := NewCheckinService(repo, repo)

	summaries, err := service.RecentSummaries(7, 2)
	if err != nil {
		t.Fatalf("RecentSummaries returned error: %v", err)
	}
	if len(summaries) != 2 || summaries[0].ID != 3 || summaries[1].ID != 2 {
		t.Fatalf("unexpected summaries %#v", summaries)
	}

	repo.listErr = errStubStorage
	if _, err := service.RecentSummaries(7, 2); !errors.Is(err, ErrCheckinHistoryFailed) {
		t.Fatalf("expected ErrCheckinHistoryFailed, got %v", err)
	}
}

func TestMilestonesBuildsViews(t *testing.T) {
	achievedAt := time.Date(2026, time.March, 23, 9, 0, 0, 0, time.UTC)
	repo := &stubCheckinRepository{milestones: []models.Milestone{
		{ID: "a", MilestoneType: models.MilestoneTypeStreak, MilestoneValue: 8, AchievedAt: achievedAt},
	}}
	service := NewCheckinService(repo, repo)

	views, err := service.Milestones(1)
	if err != nil {
		t.Fatalf("Milestones returned error: %v", err)
	}
	if len(views) != 1 || views[0].ID != "a" || views[0].Message != "8-week maintenance streak" {
		t.Fatalf("unexpected views %#v", views)
	}
}

func TestNormalizeRecentLimit(t *testing.T) {
	tests := map[int]int{0: DefaultRecentCheckinLimit, -3: DefaultRecentCheckinLimit, 5: 5, 500: MaxRecentCheckinLimit}
	for input, want := range tests {
		if got := NormalizeRecentLimit(input); got != want {
			t.Fatalf("limit %d: expected %d, got %d", input, want, got)
		}
	}
}
