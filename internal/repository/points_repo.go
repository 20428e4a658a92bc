package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type PointsRepository interface {
	// RecordActivity stores the activity with its metadata rows and adds
	// the points to the user's aggregate in one transaction. levelFor maps
	// the resulting total to a level name.
	RecordActivity(ctx context.Context, activity *model.CustomerActivity, metadata map[string]string, levelFor func(total int) string) error
	GetPoints(ctx context.Context, userID uuid.UUID) (*model.CustomerPoints, error)
	ListActivities(ctx context.Context, userID uuid.UUID, limit int) ([]model.CustomerActivity, error)
}

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) RecordActivity(ctx context.Context, activity *model.CustomerActivity, metadata map[string]string, levelFor func(total int) string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}

		for key, value := range metadata {
			row := model.ActivityMetadata{ActivityID: activity.ID, MetaKey: key, MetaValue: value}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		var points model.CustomerPoints
		err := tx.Where("user_id = ?", activity.UserID).First(&points).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			points = model.CustomerPoints{
				UserID:       activity.UserID,
				TotalPoints:  activity.Points,
				CurrentLevel: levelFor(activity.Points),
			}
			return tx.Create(&points).Error
		}
		if err != nil {
			return err
		}

		points.TotalPoints += activity.Points
		points.CurrentLevel = levelFor(points.TotalPoints)
		return tx.Save(&points).Error
	})
}

func (r *pointsRepository) GetPoints(ctx context.Context, userID uuid.UUID) (*model.CustomerPoints, error) {
	var points model.CustomerPoints
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&points).Error; err != nil {
		return nil, err
	}

	return &points, nil
}

func (r *pointsRepository) ListActivities(ctx context.Context, userID uuid.UUID, limit int) ([]model.CustomerActivity, error) {
	var activities []model.CustomerActivity
	if err := r.db.WithContext(ctx).
		Preload("Metadata").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}
