package api

import (
	"errors"
	"time"

	"github.com/lifelag/lifelag/internal/db"
	"github.com/lifelag/lifelag/internal/metrics"
	"github.com/lifelag/lifelag/internal/notify"
	"github.com/lifelag/lifelag/internal/services"
	"gorm.io/gorm"
)

const (
	authTokenTTL           = 30 * 24 * time.Hour
	pulseDismissalTokenTTL = 7 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
)

type HandlerConfig struct {
	SecretKey            string
	Location             *time.Location
	CookieSecure         bool
	CheckinRatePerMinute int
	CheckinRateBurst     int
	Sender               notify.Sender
	Metrics              *metrics.Metrics
	MicroGoalSource      services.IntNSource
}

type Handler struct {
	secretKey      []byte
	location       *time.Location
	cookieSecure   bool
	repositories   *db.Repositories
	authService    *services.AuthService
	checkinService *services.CheckinService
	pulseService   *services.QuickPulseService
	loginLimiter   *attemptLimiter
	checkinLimiter *rateLimiter
}

func NewHandler(database *gorm.DB, config HandlerConfig) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if config.Location == nil {
		config.Location = time.Local
	}

	repositories := db.NewRepositories(database)
	checkinOptions := []services.CheckinServiceOption{
		services.WithMicroGoalSource(config.MicroGoalSource),
	}
	if config.Sender != nil {
		checkinOptions = append(checkinOptions, services.WithCheckinSender(config.Sender))
	}
	if config.Metrics != nil {
		checkinOptions = append(checkinOptions, services.WithCheckinObserver(config.Metrics))
	}

	return &Handler{
		secretKey:      []byte(config.SecretKey),
		location:       config.Location,
		cookieSecure:   config.CookieSecure,
		repositories:   repositories,
		authService:    services.NewAuthService(repositories.Users),
		checkinService: services.NewCheckinService(repositories.Checkins, repositories.Milestones, checkinOptions...),
		pulseService:   services.NewQuickPulseService(repositories.Checkins, nil),
		loginLimiter:   newAttemptLimiter(),
		checkinLimiter: newRateLimiter(config.CheckinRatePerMinute, config.CheckinRateBurst),
	}, nil
}
