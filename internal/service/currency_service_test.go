package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"aimrealty.com/estateapi/internal/dto"
	"aimrealty.com/estateapi/internal/model"
)

type fakeCurrencyRepo struct {
	rates map[string]decimal.Decimal
}

func (f *fakeCurrencyRepo) SetRate(ctx context.Context, rate *model.CurrencyRate) error {
	f.rates[rate.FromCurrency+rate.ToCurrency] = rate.Rate
	return nil
}

func (f *fakeCurrencyRepo) FindActiveRate(ctx context.Context, from, to string) (*model.CurrencyRate, error) {
	rate, ok := f.rates[from+to]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CurrencyRate{FromCurrency: from, ToCurrency: to, Rate: rate, IsActive: true}, nil
}

func (f *fakeCurrencyRepo) FindAll(ctx context.Context) ([]model.CurrencyRate, error) {
	return nil, nil
}

func (f *fakeCurrencyRepo) ActivateDue(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func newCurrencyFixture(t *testing.T) (CurrencyService, *fakeCurrencyRepo) {
	t.Helper()
	repo := &fakeCurrencyRepo{rates: map[string]decimal.Decimal{
		"USDIQD": decimal.NewFromInt(1310),
	}}
	return NewCurrencyService(repo), repo
}

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	result, err := svc.Convert(context.Background(), dto.ConvertQuery{
		Amount: decimal.NewFromInt(250),
		From:   "usd",
		To:     "USD",
	})

	require.NoError(t, err)
	assert.True(t, result.Converted.Equal(decimal.NewFromInt(250)))
	assert.True(t, result.Rate.Equal(decimal.NewFromInt(1)))
}

func TestConvertDirectRate(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	result, err := svc.Convert(context.Background(), dto.ConvertQuery{
		Amount: decimal.NewFromInt(100),
		From:   "USD",
		To:     "IQD",
	})

	require.NoError(t, err)
	assert.True(t, result.Converted.Equal(decimal.NewFromInt(131000)),
		"got %s", result.Converted)
}

func TestConvertFallsBackToReciprocal(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	// Only USD->IQD is stored; the inverse pair uses its reciprocal.
	result, err := svc.Convert(context.Background(), dto.ConvertQuery{
		Amount: decimal.NewFromInt(131000),
		From:   "IQD",
		To:     "USD",
	})

	require.NoError(t, err)
	expectedRate := decimal.NewFromInt(1).DivRound(decimal.NewFromInt(1310), 8)
	assert.True(t, result.Rate.Equal(expectedRate), "got rate %s", result.Rate)
	assert.True(t, result.Converted.Equal(decimal.RequireFromString("100.00")),
		"got %s", result.Converted)
}

func TestConvertUnknownPair(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	_, err := svc.Convert(context.Background(), dto.ConvertQuery{
		Amount: decimal.NewFromInt(10),
		From:   "EUR",
		To:     "GBP",
	})

	assert.Error(t, err)
}

func TestSetRateRejectsNonPositive(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	_, err := svc.SetRate(context.Background(), dto.SetRateInput{
		ToCurrency: "IQD",
		Rate:       decimal.Zero,
	})

	assert.Error(t, err)
}

func TestSetRateRejectsSamePair(t *testing.T) {
	svc, _ := newCurrencyFixture(t)

	_, err := svc.SetRate(context.Background(), dto.SetRateInput{
		FromCurrency: "USD",
		ToCurrency:   "usd",
		Rate:         decimal.NewFromInt(1),
	})

	assert.Error(t, err)
}
