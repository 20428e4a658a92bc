package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SetRateInput struct {
	FromCurrency  string          `json:"from_currency" binding:"omitempty,len=3"`
	ToCurrency    string          `json:"to_currency" binding:"required,len=3"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate *time.Time      `json:"effective_date"`
}

type ConvertQuery struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,len=3"`
	To     string          `form:"to" binding:"required,len=3"`
}

type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}
