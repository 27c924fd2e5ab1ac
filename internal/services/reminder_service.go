package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lifelag/lifelag/internal/models"
	"github.com/lifelag/lifelag/internal/notify"
	"github.com/robfig/cron/v3"
)

const (
	DefaultCheckinReminderSpec = "0 9 * * 1"
	DefaultPulseReminderSpec   = "0 18 * * *"

	checkinReminderAfterDays = 7
	maxTrackedReminders      = 500
)

const (
	reminderKindCheckin = "checkin_reminder"
	reminderKindPulse   = "pulse_reminder"
)

type ReminderUserReader interface {
	ListReminderRecipients() ([]models.User, error)
}

type ReminderConfig struct {
	CheckinSpec string
	PulseSpec   string
	Location    *time.Location
}

type ReminderService struct {
	users    ReminderUserReader
	checkins QuickPulseCheckinReader
	sender   notify.Sender
	observer CheckinObserver
	config   ReminderConfig
	now      func() time.Time

	mu           sync.Mutex
	sentReminder map[string]time.Time
}

func NewReminderService(users ReminderUserReader, checkins QuickPulseCheckinReader, sender notify.Sender, observer CheckinObserver, config ReminderConfig) *ReminderService {
	if config.CheckinSpec == "" {
		config.CheckinSpec = DefaultCheckinReminderSpec
	}
	if config.PulseSpec == "" {
		config.PulseSpec = DefaultPulseReminderSpec
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	return &ReminderService{
		users:        users,
		checkins:     checkins,
		sender:       sender,
		observer:     observer,
		config:       config,
		now:          time.Now,
		sentReminder: make(map[string]time.Time),
	}
}

// Start schedules both reminder jobs and stops the scheduler when ctx is
// cancelled. Invalid cron specs are reported before anything runs.
func (service *ReminderService) Start(ctx context.Context) error {
	if service.sender == nil {
		return errors.New("reminder sender is required")
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	scheduler := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(service.config.Location),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := scheduler.AddFunc(service.config.CheckinSpec, func() {
		service.RunCheckinReminders(ctx)
	}); err != nil {
		return fmt.Errorf("schedule checkin reminders %q: %w", service.config.CheckinSpec, err)
	}
	if _, err := scheduler.AddFunc(service.config.PulseSpec, func() {
		service.RunPulseReminders(ctx)
	}); err != nil {
		return fmt.Errorf("schedule pulse reminders %q: %w", service.config.PulseSpec, err)
	}

	scheduler.Start()
	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return nil
}

func (service *ReminderService) RunCheckinReminders(ctx context.Context) {
	users, err := service.users.ListReminderRecipients()
	if err != nil {
		log.Printf("reminders: fetch recipients failed: %v", err)
		return
	}

	now := service.now().In(service.config.Location)
	today := DateAtLocation(now, service.config.Location)
	for _, user := range users {
		if user.LastCheckinAt != nil && WholeDaysBetween(*user.LastCheckinAt, now) < checkinReminderAfterDays {
			continue
		}

		key := fmt.Sprintf("%s:%d:%s", reminderKindCheckin, user.ID, today.Format("2006-01-02"))
		if !service.shouldSend(key, today) {
			continue
		}
		service.deliver(ctx, reminderKindCheckin, user, CheckinReminderMessage(user.StreakCount))
	}
}

func (service *ReminderService) RunPulseReminders(ctx context.Context) {
	users, err := service.users.ListReminderRecipients()
	if err != nil {
		log.Printf("reminders: fetch recipients failed: %v", err)
		return
	}

	now := service.now().In(service.config.Location)
	today := DateAtLocation(now, service.config.Location)
	for _, user := range users {
		checkins, err := service.checkins.ListRecentByUser(user.ID, quickPulseHistoryDepth)
		if err != nil {
			log.Printf("reminders: fetch checkins failed for user %d: %v", user.ID, err)
			continue
		}

		recent := SummariesFromCheckins(checkins)
		if len(recent) == 0 || !IsMiddleOfWeek(recent[0].CreatedAt, now) || !ShouldShowQuickPulse(recent) {
			continue
		}

		// One pulse nudge per check-in week.
		key := fmt.Sprintf("%s:%d:%d", reminderKindPulse, user.ID, recent[0].ID)
		if !service.shouldSend(key, today) {
			continue
		}
		service.deliver(ctx, reminderKindPulse, user, PulseReminderMessage(recent[0].DriftCategory))
	}
}

func CheckinReminderMessage(streakCount int) string {
	message := "Time for your weekly Life Lag check-in."
	if streak, ok := FormatStreakMessage(streakCount); ok {
		message += " Keep your " + streak + " going."
	}
	return message
}

func PulseReminderMessage(category DriftCategory) string {
	return "How is this week going? A quick pulse takes ten seconds. " + ReassuranceMessage(category)
}

func (service *ReminderService) deliver(ctx context.Context, kind string, user models.User, message string) {
	recipient := notify.Recipient{UserID: user.ID, Email: user.Email, TelegramChatID: user.TelegramChatID}
	err := service.sender.Send(ctx, recipient, message)
	if service.observer != nil {
		service.observer.ObserveNotification(kind, err)
	}
	if err != nil {
		log.Printf("reminders: send %s to user %d failed: %v", kind, user.ID, err)
	}
}

func (service *ReminderService) shouldSend(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	if _, ok := service.sentReminder[key]; ok {
		return false
	}

	if len(service.sentReminder) >= maxTrackedReminders {
		for trackedKey, sentOn := range service.sentReminder {
			if WholeDaysBetween(sentOn, today) > checkinReminderAfterDays {
				delete(service.sentReminder, trackedKey)
			}
		}
	}
	service.sentReminder[key] = today
	return true
}
