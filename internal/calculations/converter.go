package calculations

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset обозначает один из трех игровых активов
type Asset string

const (
	// AXS - governance-токен, им оплачивается фиксированный сбор за разведение
	AXS Asset = "AXS"
	// SLP - фарм-токен, стоимость разведения зависит от счетчика разведений
	SLP Asset = "SLP"
	// ETH - базовая монета сети, в ней номинированы цены родителей и потомков
	ETH Asset = "ETH"
)

// ExchangeRates курсы активов к расчетной валюте
type ExchangeRates struct {
	AXS decimal.Decimal `json:"axs_rate"`
	SLP decimal.Decimal `json:"slp_rate"`
	ETH decimal.Decimal `json:"eth_rate"`
}

// RateConverter переводит суммы в активах в расчетную валюту по фиксированным курсам.
// Не изменяется после создания, безопасен для конкурентного использования.
type RateConverter struct {
	rates ExchangeRates
}

// NewRateConverter создает конвертер; все курсы должны быть положительными
func NewRateConverter(rates ExchangeRates) (*RateConverter, error) {
	checks := []struct {
		asset Asset
		rate  decimal.Decimal
	}{{AXS, rates.AXS}, {SLP, rates.SLP}, {ETH, rates.ETH}}

	for _, c := range checks {
		if !c.rate.IsPositive() {
			return nil, fmt.Errorf("%s rate must be positive, got %s: %w", c.asset, c.rate, ErrInvalidArgument)
		}
	}
	return &RateConverter{rates: rates}, nil
}

// Rates возвращает курсы, с которыми создан конвертер
func (c *RateConverter) Rates() ExchangeRates {
	return c.rates
}

// Rate возвращает курс актива
func (r ExchangeRates) Rate(asset Asset) (decimal.Decimal, error) {
	switch asset {
	case AXS:
		return r.AXS, nil
	case SLP:
		return r.SLP, nil
	case ETH:
		return r.ETH, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown asset %q: %w", asset, ErrInvalidArgument)
	}
}

// Convert умножает сумму на курс актива. Округление не выполняется.
func (c *RateConverter) Convert(asset Asset, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s amount %s: %w", asset, amount, ErrInvalidAmount)
	}

	rate, err := c.rates.Rate(asset)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (c *RateConverter) AXSToUSD(amount decimal.Decimal) (decimal.Decimal, error) {
	return c.Convert(AXS, amount)
}

func (c *RateConverter) SLPToUSD(amount decimal.Decimal) (decimal.Decimal, error) {
	return c.Convert(SLP, amount)
}

func (c *RateConverter) ETHToUSD(amount decimal.Decimal) (decimal.Decimal, error) {
	return c.Convert(ETH, amount)
}
