package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// ScholarshipParams - ожидаемая дневная добыча SLP и доля менеджера
type ScholarshipParams struct {
	MinDailyYield   decimal.Decimal `json:"min_daily_yield"`
	MaxDailyYield   decimal.Decimal `json:"max_daily_yield"`
	SharePercentage decimal.Decimal `json:"share_percentage"`
}

// ScholarshipCalculator рассчитывает окупаемость команды, переданной стипендиату
type ScholarshipCalculator struct {
	converter *RateConverter
	params    ScholarshipParams
}

// NewScholarshipCalculator создает калькулятор стипендий
func NewScholarshipCalculator(converter *RateConverter, params ScholarshipParams) (*ScholarshipCalculator, error) {
	if converter == nil {
		return nil, fmt.Errorf("converter is required: %w", ErrInvalidArgument)
	}
	if params.MinDailyYield.IsNegative() {
		return nil, fmt.Errorf("min daily yield %s is negative: %w", params.MinDailyYield, ErrInvalidArgument)
	}
	if params.MinDailyYield.GreaterThan(params.MaxDailyYield) {
		return nil, fmt.Errorf("min daily yield %s exceeds max %s: %w", params.MinDailyYield, params.MaxDailyYield, ErrInvalidArgument)
	}
	if params.SharePercentage.IsNegative() || params.SharePercentage.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("share percentage %s not in [0; 1]: %w", params.SharePercentage, ErrInvalidArgument)
	}

	return &ScholarshipCalculator{converter: converter, params: params}, nil
}

// Params возвращает параметры стипендии
func (c *ScholarshipCalculator) Params() ScholarshipParams {
	return c.params
}

// AverageDailyYield - потенциальная средняя добыча в день
func (c *ScholarshipCalculator) AverageDailyYield() decimal.Decimal {
	return c.params.MinDailyYield.Add(c.params.MaxDailyYield).Div(decimal.NewFromInt(2))
}

// InitialCapital - стоимость команды в валюте, округленная до 2 знаков
func (c *ScholarshipCalculator) InitialCapital(teamPrices []decimal.Decimal) (decimal.Decimal, error) {
	total, err := sumNonNegative("team price", teamPrices)
	if err != nil {
		return decimal.Zero, err
	}

	capital, err := c.converter.ETHToUSD(total)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.Round2(capital), nil
}

// ActualDailyYield - фактическая средняя добыча за прошедшие дни
func (c *ScholarshipCalculator) ActualDailyYield(accumulatedYield decimal.Decimal, days int) (decimal.Decimal, error) {
	if days == 0 {
		return decimal.Zero, fmt.Errorf("days is zero: %w", ErrDivisionByZero)
	}
	if days < 0 {
		return decimal.Zero, fmt.Errorf("days %d is negative: %w", days, ErrInvalidArgument)
	}
	if accumulatedYield.IsNegative() {
		return decimal.Zero, fmt.Errorf("accumulated yield %s is negative: %w", accumulatedYield, ErrInvalidArgument)
	}
	return utils.Round2(accumulatedYield.Div(decimal.NewFromInt(int64(days)))), nil
}

// BreakEvenPeriods - количество периодов длиной periodLengthDays до окупаемости
// с учетом доли, остающейся у менеджера.
func (c *ScholarshipCalculator) BreakEvenPeriods(initialCapital, dailyYield decimal.Decimal, periodLengthDays int) (decimal.Decimal, error) {
	if periodLengthDays <= 0 {
		return decimal.Zero, fmt.Errorf("period length must be positive, got %d: %w", periodLengthDays, ErrInvalidArgument)
	}

	dailyUSD, err := c.converter.SLPToUSD(dailyYield)
	if err != nil {
		return decimal.Zero, err
	}

	periodIncome := dailyUSD.Mul(c.params.SharePercentage).Mul(decimal.NewFromInt(int64(periodLengthDays)))
	if periodIncome.IsZero() {
		return decimal.Zero, fmt.Errorf("income per period is zero: %w", ErrDivisionByZero)
	}
	return utils.Round2(initialCapital.Div(periodIncome)), nil
}
