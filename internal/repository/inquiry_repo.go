package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error)
	FindAll(ctx context.Context, status string, page, limit int) ([]model.Inquiry, int64, error)
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Inquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	if err := r.db.WithContext(ctx).
		Preload("Property").
		Where("id = ?", id).
		First(&inquiry).Error; err != nil {
		return nil, err
	}

	return &inquiry, nil
}

func (r *inquiryRepository) FindAll(ctx context.Context, status string, page, limit int) ([]model.Inquiry, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Inquiry{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []model.Inquiry
	if err := query.
		Preload("Property").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error; err != nil {
		return nil, 0, err
	}

	return inquiries, total, nil
}

func (r *inquiryRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&inquiries).Error; err != nil {
		return nil, err
	}

	return inquiries, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.Inquiry{}).
		Where("id = ?", id).
		Update("status", status).Error
}
