package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lifelag/lifelag/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinRepository struct {
	database *gorm.DB
}

func NewCheckinRepository(database *gorm.DB) *CheckinRepository {
	return &CheckinRepository{database: database}
}

// ListRecentByUser returns at most limit check-ins, newest first.
func (repo *CheckinRepository) ListRecentByUser(userID uint, limit int) ([]models.Checkin, error) {
	checkins := make([]models.Checkin, 0, limit)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

func (repo *CheckinRepository) CountByUser(userID uint) (int, error) {
	var count int64
	if err := repo.database.Model(&models.Checkin{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// RecordCheckin reads the user's check-in state and writes the outcome
// produced by build in one transaction. Milestones that already exist for
// (user, type, value) are skipped and left out of the returned outcome.
func (repo *CheckinRepository) RecordCheckin(userID uint, build func(snapshot models.CheckinSnapshot) (models.CheckinOutcome, error)) (models.CheckinOutcome, error) {
	var stored models.CheckinOutcome
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		snapshot, err := loadCheckinSnapshot(tx, userID)
		if err != nil {
			return err
		}

		outcome, err := build(snapshot)
		if err != nil {
			return err
		}

		outcome.Checkin.UserID = userID
		if err := tx.Create(&outcome.Checkin).Error; err != nil {
			return fmt.Errorf("insert checkin: %w", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"streak_count":    outcome.StreakCount,
			"last_checkin_at": outcome.LastCheckinAt,
		}).Error; err != nil {
			return fmt.Errorf("update streak: %w", err)
		}

		inserted := make([]models.Milestone, 0, len(outcome.Milestones))
		for _, milestone := range outcome.Milestones {
			milestone.UserID = userID
			if milestone.ID == "" {
				milestone.ID = uuid.NewString()
			}
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&milestone)
			if result.Error != nil {
				return fmt.Errorf("insert milestone: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				inserted = append(inserted, milestone)
			}
		}
		outcome.Milestones = inserted

		stored = outcome
		return nil
	})
	if err != nil {
		return models.CheckinOutcome{}, err
	}
	return stored, nil
}

func loadCheckinSnapshot(tx *gorm.DB, userID uint) (models.CheckinSnapshot, error) {
	var snapshot models.CheckinSnapshot
	if err := tx.First(&snapshot.User, userID).Error; err != nil {
		return models.CheckinSnapshot{}, fmt.Errorf("load user: %w", err)
	}

	var latest models.Checkin
	err := tx.Where("user_id = ?", userID).Order("created_at DESC, id DESC").First(&latest).Error
	switch {
	case err == nil:
		snapshot.Latest = &latest
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return models.CheckinSnapshot{}, fmt.Errorf("load latest checkin: %w", err)
	}

	var count int64
	if err := tx.Model(&models.Checkin{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return models.CheckinSnapshot{}, fmt.Errorf("count checkins: %w", err)
	}
	snapshot.CheckinCount = int(count)

	if err := tx.Where("user_id = ?", userID).Order("achieved_at ASC").Find(&snapshot.Milestones).Error; err != nil {
		return models.CheckinSnapshot{}, fmt.Errorf("load milestones: %w", err)
	}
	return snapshot, nil
}
