package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/lifelag/lifelag/internal/security"
	"github.com/spf13/viper"
)

const defaultSecretKey = "change_me_in_production"

type Config struct {
	Port                 string
	DBPath               string
	SecretKey            string
	Location             *time.Location
	CookieSecure         bool
	TelegramBotToken     string
	CheckinReminderSpec  string
	PulseReminderSpec    string
	CheckinRatePerMinute int
	CheckinRateBurst     int
}

// Load reads configuration from defaults, an optional lifelag.yaml in the
// working directory or configPath, and environment variables. Environment
// variables use the upper-case key names (PORT, DB_PATH, SECRET_KEY, ...).
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("lifelag")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_path", filepath.Join("data", "lifelag.db"))
	v.SetDefault("secret_key", "")
	v.SetDefault("tz", "UTC")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("telegram_bot_token", "")
	v.SetDefault("reminder_checkin_cron", "0 9 * * 1")
	v.SetDefault("reminder_pulse_cron", "0 18 * * *")
	v.SetDefault("checkin_rate_per_minute", 6)
	v.SetDefault("checkin_rate_burst", 3)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                 strings.TrimSpace(v.GetString("port")),
		DBPath:               strings.TrimSpace(v.GetString("db_path")),
		SecretKey:            strings.TrimSpace(v.GetString("secret_key")),
		Location:             loadLocation(v.GetString("tz")),
		CookieSecure:         v.GetBool("cookie_secure"),
		TelegramBotToken:     strings.TrimSpace(v.GetString("telegram_bot_token")),
		CheckinReminderSpec:  strings.TrimSpace(v.GetString("reminder_checkin_cron")),
		PulseReminderSpec:    strings.TrimSpace(v.GetString("reminder_pulse_cron")),
		CheckinRatePerMinute: v.GetInt("checkin_rate_per_minute"),
		CheckinRateBurst:     v.GetInt("checkin_rate_burst"),
	}

	if cfg.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("db_path must not be empty")
	}
	if cfg.CheckinRatePerMinute <= 0 {
		return nil, fmt.Errorf("checkin_rate_per_minute must be positive, got %d", cfg.CheckinRatePerMinute)
	}
	if cfg.CheckinRateBurst <= 0 {
		cfg.CheckinRateBurst = 1
	}

	if cfg.SecretKey == "" || cfg.SecretKey == defaultSecretKey {
		secret, err := security.RandomSecret(32)
		if err != nil {
			return nil, fmt.Errorf("generate secret key: %w", err)
		}
		log.Printf("config: SECRET_KEY not set, using an ephemeral key; sessions will not survive a restart")
		cfg.SecretKey = secret
	}

	return cfg, nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		log.Printf("config: invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
