package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property, images, amenities, features []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error)
	FindBySlug(ctx context.Context, slug string) (*model.Property, error)
	FindAll(ctx context.Context, filter dto.PropertyFilter) ([]model.Property, int64, error)
	Update(ctx context.Context, property *model.Property, amenities, features []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	AddImage(ctx context.Context, image *model.PropertyImage) error
	IncrementViews(ctx context.Context, id uuid.UUID, delta int) error
}

type propertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property, images, amenities, features []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(property).Error; err != nil {
			return err
		}

		for i, url := range images {
			img := model.PropertyImage{PropertyID: property.ID, ImageURL: url, SortOrder: i}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}

		return replaceChildren(tx, property.ID, amenities, features)
	})
}

// replaceChildren rewrites the amenity and feature child tables for a
// property. Amenities/features are one row per value, never an embedded
// JSON column.
func replaceChildren(tx *gorm.DB, propertyID uuid.UUID, amenities, features []string) error {
	if amenities != nil {
		if err := tx.Where("property_id = ?", propertyID).Delete(&model.PropertyAmenity{}).Error; err != nil {
			return err
		}
		for _, a := range amenities {
			row := model.PropertyAmenity{PropertyID: propertyID, Amenity: a}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	if features != nil {
		if err := tx.Where("property_id = ?", propertyID).Delete(&model.PropertyFeature{}).Error; err != nil {
			return err
		}
		for _, f := range features {
			row := model.PropertyFeature{PropertyID: propertyID, Feature: f}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Property, error) {
	var property model.Property
	if err := r.preloaded(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyRepository) FindBySlug(ctx context.Context, slug string) (*model.Property, error) {
	var property model.Property
	if err := r.preloaded(ctx).Where("slug = ?", slug).First(&property).Error; err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Amenities").
		Preload("Features").
		Preload("Agent").
		Preload("Agent.Role")
}

func (r *propertyRepository) FindAll(ctx context.Context, filter dto.PropertyFilter) ([]model.Property, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Property{}).Where("status = ?", model.PropertyStatusActive)

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.ListingType != "" {
		query = query.Where("listing_type = ?", filter.ListingType)
	}
	if filter.City != "" {
		query = query.Where("LOWER(city) = LOWER(?)", filter.City)
	}
	if filter.Language != "" {
		query = query.Where("language = ?", filter.Language)
	}
	if filter.MinPrice != "" {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice != "" {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Bedrooms > 0 {
		query = query.Where("bedrooms >= ?", filter.Bedrooms)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "price_asc":
		query = query.Order("price ASC")
	case "price_desc":
		query = query.Order("price DESC")
	case "popular":
		query = query.Order("views DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var properties []model.Property
	offset := (filter.Page - 1) * filter.Limit
	if err := query.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Amenities").
		Preload("Features").
		Offset(offset).
		Limit(filter.Limit).
		Find(&properties).Error; err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *model.Property, amenities, features []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(property).Error; err != nil {
			return err
		}

		return replaceChildren(tx, property.ID, amenities, features)
	})
}

func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Child rows (images, amenities, features, favorites, inquiries)
	// cascade at the database level.
	return r.db.WithContext(ctx).Delete(&model.Property{}, "id = ?", id).Error
}

func (r *propertyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *propertyRepository) AddImage(ctx context.Context, image *model.PropertyImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *propertyRepository) IncrementViews(ctx context.Context, id uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.Property{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", delta)).Error
}
