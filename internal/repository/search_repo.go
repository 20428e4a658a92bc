package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type SearchRepository interface {
	Record(ctx context.Context, history *model.SearchHistory, filters map[string]string) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error)
}

type searchRepository struct {
	db *gorm.DB
}

func NewSearchRepository(db *gorm.DB) SearchRepository {
	return &searchRepository{db: db}
}

func (r *searchRepository) Record(ctx context.Context, history *model.SearchHistory, filters map[string]string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		for key, value := range filters {
			if value == "" {
				continue
			}
			row := model.SearchFilter{SearchID: history.ID, FilterKey: key, FilterValue: value}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *searchRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]model.SearchHistory, error) {
	var history []model.SearchHistory
	if err := r.db.WithContext(ctx).
		Preload("Filters").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&history).Error; err != nil {
		return nil, err
	}

	return history, nil
}
