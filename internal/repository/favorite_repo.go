package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type FavoriteRepository interface {
	// Toggle flips the favorite state and reports whether the property is
	// favorited afterwards.
	Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Toggle(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var favorited bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Favorite
		err := tx.Where("user_id = ? AND property_id = ?", userID, propertyID).
			First(&existing).Error

		if err == nil {
			favorited = false
			return tx.Delete(&existing).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		favorited = true
		fav := model.Favorite{UserID: userID, PropertyID: propertyID}
		return tx.Create(&fav).Error
	})

	return favorited, err
}

func (r *favoriteRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	exists, err := r.IsFavorited(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	fav := model.Favorite{UserID: userID, PropertyID: propertyID}
	return r.db.WithContext(ctx).Create(&fav).Error
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepository) IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Favorite, error) {
	var favorites []model.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Preload("Property.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	return favorites, nil
}

func (r *favoriteRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
