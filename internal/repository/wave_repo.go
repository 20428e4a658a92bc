package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type WaveRepository interface {
	Create(ctx context.Context, wave *model.Wave) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Wave, error)
	FindAll(ctx context.Context, activeOnly bool) ([]model.Wave, error)
	Update(ctx context.Context, wave *model.Wave) error
	Delete(ctx context.Context, id uuid.UUID) error
	GrantPermission(ctx context.Context, perm *model.CustomerWavePermission) error
	FindPermission(ctx context.Context, userID, waveID uuid.UUID) (*model.CustomerWavePermission, error)
	AdjustUsed(ctx context.Context, userID, waveID uuid.UUID, delta int) error
}

type waveRepository struct {
	db *gorm.DB
}

func NewWaveRepository(db *gorm.DB) WaveRepository {
	return &waveRepository{db: db}
}

func (r *waveRepository) Create(ctx context.Context, wave *model.Wave) error {
	return r.db.WithContext(ctx).Create(wave).Error
}

func (r *waveRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Wave, error) {
	var wave model.Wave
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&wave).Error; err != nil {
		return nil, err
	}

	return &wave, nil
}

func (r *waveRepository) FindAll(ctx context.Context, activeOnly bool) ([]model.Wave, error) {
	query := r.db.WithContext(ctx).Model(&model.Wave{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var waves []model.Wave
	if err := query.Order("created_at DESC").Find(&waves).Error; err != nil {
		return nil, err
	}

	return waves, nil
}

func (r *waveRepository) Update(ctx context.Context, wave *model.Wave) error {
	return r.db.WithContext(ctx).Save(wave).Error
}

func (r *waveRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Wave{}, "id = ?", id).Error
}

// GrantPermission creates the permission or raises the cap on an existing
// one; used count is preserved.
func (r *waveRepository) GrantPermission(ctx context.Context, perm *model.CustomerWavePermission) error {
	var existing model.CustomerWavePermission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND wave_id = ?", perm.UserID, perm.WaveID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(perm).Error
	}
	if err != nil {
		return err
	}

	existing.MaxProperties = perm.MaxProperties
	return r.db.WithContext(ctx).Save(&existing).Error
}

func (r *waveRepository) FindPermission(ctx context.Context, userID, waveID uuid.UUID) (*model.CustomerWavePermission, error) {
	var perm model.CustomerWavePermission
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND wave_id = ?", userID, waveID).
		First(&perm).Error; err != nil {
		return nil, err
	}

	return &perm, nil
}

func (r *waveRepository) AdjustUsed(ctx context.Context, userID, waveID uuid.UUID, delta int) error {
	return r.db.WithContext(ctx).
		Model(&model.CustomerWavePermission{}).
		Where("user_id = ? AND wave_id = ?", userID, waveID).
		UpdateColumn("used_properties", gorm.Expr("GREATEST(used_properties + ?, 0)", delta)).Error
}
