package models

import "time"

type User struct {
	ID               uint       `gorm:"primaryKey"`
	Email            string     `gorm:"uniqueIndex;not null"`
	PasswordHash     string     `gorm:"not null"`
	DisplayName      string     `gorm:"not null;default:''"`
	StreakCount      int        `gorm:"not null;default:0"`
	LastCheckinAt    *time.Time `gorm:"index"`
	RemindersEnabled bool       `gorm:"not null;default:true"`
	TelegramChatID   int64      `gorm:"not null;default:0"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time
}
