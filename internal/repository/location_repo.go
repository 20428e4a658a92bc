package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type LocationRepository interface {
	Create(ctx context.Context, location *model.ClientLocation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ClientLocation, error)
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.ClientLocation) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *locationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.ClientLocation, error) {
	var locations []model.ClientLocation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&locations).Error; err != nil {
		return nil, err
	}

	return locations, nil
}
