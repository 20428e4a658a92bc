package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyRate holds one conversion rate per (from, to) pair. Only the row
// with IsActive set is applied for a pair; setting a new rate deactivates
// the previous one.
type CurrencyRate struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FromCurrency  string          `gorm:"size:3;not null;default:'USD';index:idx_currency_pair,priority:1" json:"from_currency"`
	ToCurrency    string          `gorm:"size:3;not null;index:idx_currency_pair,priority:2" json:"to_currency"`
	Rate          decimal.Decimal `gorm:"type:numeric(18,8);not null" json:"rate"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	EffectiveDate time.Time       `json:"effective_date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (r *CurrencyRate) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
