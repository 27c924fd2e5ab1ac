package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Checkins   *CheckinRepository
	Milestones *MilestoneRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Checkins:   NewCheckinRepository(database),
		Milestones: NewMilestoneRepository(database),
	}
}
