package validators

import (
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/internal/calculations"
	"github.com/cloud-ru/mcp-roi-go/internal/config"
	"github.com/shopspring/decimal"
)

// ValidateDecimal проверяет, что число в допустимом диапазоне
func ValidateDecimal(name string, value, minInclusive, maxInclusive decimal.Decimal) error {
	if value.LessThan(minInclusive) {
		return fmt.Errorf("%s: значение должно быть ≥ %s: %w", name, minInclusive, calculations.ErrInvalidArgument)
	}
	if value.GreaterThan(maxInclusive) {
		return fmt.Errorf("%s: значение слишком велико (>%s): %w", name, maxInclusive, calculations.ErrInvalidArgument)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]: %w", name, minInclusive, maxInclusive, calculations.ErrInvalidArgument)
	}
	return nil
}

// CheckRates проверяет курсы обмена
func CheckRates(cfg *config.Config, rates calculations.ExchangeRates) error {
	minRate := decimal.New(1, -18)
	if err := ValidateDecimal("axs_rate", rates.AXS, minRate, cfg.MaxRate); err != nil {
		return err
	}
	if err := ValidateDecimal("slp_rate", rates.SLP, minRate, cfg.MaxRate); err != nil {
		return err
	}
	return ValidateDecimal("eth_rate", rates.ETH, minRate, cfg.MaxRate)
}

// CheckPriceRange проверяет диапазон цены продажи
func CheckPriceRange(cfg *config.Config, prices calculations.PriceRange) error {
	if err := ValidateDecimal("price_floor", prices.Floor, decimal.Zero, cfg.MaxPrice); err != nil {
		return err
	}
	return ValidateDecimal("price_ceiling", prices.Ceiling, prices.Floor, cfg.MaxPrice)
}

// CheckPrices проверяет список цен покупки
func CheckPrices(cfg *config.Config, name string, prices []decimal.Decimal) error {
	if err := ValidateIntRange(name+" count", len(prices), 1, cfg.MaxParents); err != nil {
		return err
	}
	for i, price := range prices {
		if err := ValidateDecimal(fmt.Sprintf("%s[%d]", name, i), price, decimal.Zero, cfg.MaxPrice); err != nil {
			return err
		}
	}
	return nil
}

// CheckParents проверяет количество родителей в поколении
func CheckParents(cfg *config.Config, parents int) error {
	return ValidateIntRange("parents_per_generation", parents, 1, cfg.MaxParents)
}

// CheckUnits проверяет количество проданных единиц
func CheckUnits(cfg *config.Config, name string, units int) error {
	return ValidateIntRange(name, units, 0, cfg.MaxUnits)
}

// CheckBreedCount проверяет счетчик разведений по таблице стоимости
func CheckBreedCount(schedule calculations.BreedingSchedule, breedCount int) error {
	return ValidateIntRange("breed_count", breedCount, 0, schedule.MaxBreedCount())
}

// CheckDays проверяет длительность периода в днях
func CheckDays(cfg *config.Config, name string, days int) error {
	return ValidateIntRange(name, days, 1, cfg.MaxDays)
}

// CheckYield проверяет объем добычи
func CheckYield(cfg *config.Config, name string, value decimal.Decimal) error {
	return ValidateDecimal(name, value, decimal.Zero, cfg.MaxYield)
}

// CheckAmount проверяет сумму в активе для конвертации
func CheckAmount(cfg *config.Config, value decimal.Decimal) error {
	return ValidateDecimal("amount", value, decimal.Zero, cfg.MaxAmount)
}

// CheckShare проверяет долю менеджера
func CheckShare(share decimal.Decimal) error {
	return ValidateDecimal("share_percentage", share, decimal.Zero, decimal.NewFromInt(1))
}
