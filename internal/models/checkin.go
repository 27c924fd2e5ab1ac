package models

import "time"

const (
	DimensionEnergy         = "energy"
	DimensionSleep          = "sleep"
	DimensionStructure      = "structure"
	DimensionInitiation     = "initiation"
	DimensionEngagement     = "engagement"
	DimensionSustainability = "sustainability"
)

type Checkin struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"not null;index:idx_checkins_user_created,priority:1"`
	Energy           int       `gorm:"not null"`
	Sleep            int       `gorm:"not null"`
	Structure        int       `gorm:"not null"`
	Initiation       int       `gorm:"not null"`
	Engagement       int       `gorm:"not null"`
	Sustainability   int       `gorm:"not null"`
	LagScore         int       `gorm:"not null"`
	DriftCategory    string    `gorm:"not null"`
	WeakestDimension string    `gorm:"not null"`
	ScoreDelta       *int      `gorm:""`
	CreatedAt        time.Time `gorm:"not null;index:idx_checkins_user_created,priority:2"`
}
