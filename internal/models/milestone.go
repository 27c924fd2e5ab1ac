package models

import "time"

const (
	MilestoneTypeCheckinCount = "checkin_count"
	MilestoneTypeStreak       = "streak"
	MilestoneTypeRecovery     = "recovery"
)

type Milestone struct {
	ID             string    `gorm:"primaryKey"`
	UserID         uint      `gorm:"not null;uniqueIndex:uidx_user_milestone,priority:1"`
	MilestoneType  string    `gorm:"not null;uniqueIndex:uidx_user_milestone,priority:2"`
	MilestoneValue int       `gorm:"not null;uniqueIndex:uidx_user_milestone,priority:3"`
	AchievedAt     time.Time `gorm:"not null"`
}
