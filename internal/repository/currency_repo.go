package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/model"
)

type CurrencyRepository interface {
	// SetRate stores a new rate for a pair and deactivates the previously
	// active one in the same transaction.
	SetRate(ctx context.Context, rate *model.CurrencyRate) error
	FindActiveRate(ctx context.Context, from, to string) (*model.CurrencyRate, error)
	FindAll(ctx context.Context) ([]model.CurrencyRate, error)
	ActivateDue(ctx context.Context, now time.Time) (int64, error)
}

type currencyRepository struct {
	db *gorm.DB
}

func NewCurrencyRepository(db *gorm.DB) CurrencyRepository {
	return &currencyRepository{db: db}
}

func (r *currencyRepository) SetRate(ctx context.Context, rate *model.CurrencyRate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rate.IsActive {
			if err := tx.Model(&model.CurrencyRate{}).
				Where("from_currency = ? AND to_currency = ? AND is_active = ?",
					rate.FromCurrency, rate.ToCurrency, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}

		return tx.Create(rate).Error
	})
}

func (r *currencyRepository) FindActiveRate(ctx context.Context, from, to string) (*model.CurrencyRate, error) {
	var rate model.CurrencyRate
	if err := r.db.WithContext(ctx).
		Where("from_currency = ? AND to_currency = ? AND is_active = ?", from, to, true).
		Order("effective_date DESC").
		First(&rate).Error; err != nil {
		return nil, err
	}

	return &rate, nil
}

func (r *currencyRepository) FindAll(ctx context.Context) ([]model.CurrencyRate, error) {
	var rates []model.CurrencyRate
	if err := r.db.WithContext(ctx).
		Order("from_currency, to_currency, effective_date DESC").
		Find(&rates).Error; err != nil {
		return nil, err
	}

	return rates, nil
}

// ActivateDue flips rates whose effective date has arrived to active and
// deactivates the older active rate for the same pair. Run by the cron job.
func (r *currencyRepository) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	var due []model.CurrencyRate
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND effective_date <= ?", false, now).
		Order("effective_date ASC").
		Find(&due).Error; err != nil {
		return 0, err
	}

	var activated int64
	for _, rate := range due {
		// Skip when a newer rate is already active for the pair.
		active, err := r.FindActiveRate(ctx, rate.FromCurrency, rate.ToCurrency)
		if err == nil && active.EffectiveDate.After(rate.EffectiveDate) {
			continue
		}

		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.CurrencyRate{}).
				Where("from_currency = ? AND to_currency = ? AND is_active = ?",
					rate.FromCurrency, rate.ToCurrency, true).
				Update("is_active", false).Error; err != nil {
				return err
			}

			return tx.Model(&model.CurrencyRate{}).
				Where("id = ?", rate.ID).
				Update("is_active", true).Error
		})
		if err != nil {
			return activated, err
		}
		activated++
	}

	return activated, nil
}
