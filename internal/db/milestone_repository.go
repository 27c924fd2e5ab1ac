package db

import (
	"github.com/lifelag/lifelag/internal/models"
	"gorm.io/gorm"
)

type MilestoneRepository struct {
	database *gorm.DB
}

func NewMilestoneRepository(database *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{database: database}
}

func (repo *MilestoneRepository) ListByUser(userID uint) ([]models.Milestone, error) {
	milestones := make([]models.Milestone, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("achieved_at ASC, milestone_type ASC, milestone_value ASC").
		Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}
