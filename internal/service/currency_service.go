package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/repository"
	"aimrealty.com/estateapi/pkg/apperror"
)

type CurrencyService interface {
	SetRate(ctx context.Context, input dto.SetRateInput) (*model.CurrencyRate, error)
	Rates(ctx context.Context) ([]model.CurrencyRate, error)
	Convert(ctx context.Context, query dto.ConvertQuery) (*dto.ConvertResponse, error)
}

type currencyService struct {
	repo repository.CurrencyRepository
}

func NewCurrencyService(repo repository.CurrencyRepository) CurrencyService {
	return &currencyService{repo: repo}
}

func (s *currencyService) SetRate(ctx context.Context, input dto.SetRateInput) (*model.CurrencyRate, error) {
	if input.Rate.Cmp(decimal.Zero) <= 0 {
		return nil, apperror.ErrInvalidInput
	}

	from := strings.ToUpper(input.FromCurrency)
	if from == "" {
		from = "USD"
	}
	to := strings.ToUpper(input.ToCurrency)
	if from == to {
		return nil, apperror.ErrInvalidInput
	}

	effective := time.Now()
	active := true
	if input.EffectiveDate != nil {
		effective = *input.EffectiveDate
		// Future rates stay inactive until the cron job activates them.
		if effective.After(time.Now()) {
			active = false
		}
	}

	rate := &model.CurrencyRate{
		FromCurrency:  from,
		ToCurrency:    to,
		Rate:          input.Rate,
		IsActive:      active,
		EffectiveDate: effective,
	}

	if err := s.repo.SetRate(ctx, rate); err != nil {
		return nil, err
	}

	return rate, nil
}

func (s *currencyService) Rates(ctx context.Context) ([]model.CurrencyRate, error) {
	return s.repo.FindAll(ctx)
}

// Convert applies the active rate for the pair. When only the inverse pair
// has a rate, its reciprocal is used.
func (s *currencyService) Convert(ctx context.Context, query dto.ConvertQuery) (*dto.ConvertResponse, error) {
	from := strings.ToUpper(query.From)
	to := strings.ToUpper(query.To)

	if from == to {
		return &dto.ConvertResponse{
			Amount:    query.Amount,
			From:      from,
			To:        to,
			Rate:      decimal.NewFromInt(1),
			Converted: query.Amount,
		}, nil
	}

	rate, err := s.repo.FindActiveRate(ctx, from, to)
	if err == nil {
		return buildConversion(query.Amount, from, to, rate.Rate), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	inverse, err := s.repo.FindActiveRate(ctx, to, from)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	reciprocal := decimal.NewFromInt(1).DivRound(inverse.Rate, 8)
	return buildConversion(query.Amount, from, to, reciprocal), nil
}

func buildConversion(amount decimal.Decimal, from, to string, rate decimal.Decimal) *dto.ConvertResponse {
	return &dto.ConvertResponse{
		Amount:    amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: amount.Mul(rate).Round(2),
	}
}
