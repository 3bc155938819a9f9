package tools

import (
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/internal/calculations"
	"github.com/cloud-ru/mcp-roi-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// paramError - ошибка разбора или валидации входных параметров
type paramError struct {
	err error
}

func (e *paramError) Error() string { return e.err.Error() }
func (e *paramError) Unwrap() error { return e.err }

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &paramError{err: err}
}

func decimalParam(params map[string]interface{}, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, invalid(fmt.Errorf("invalid parameter: %s", key))
	}
	value, err := utils.ToDecimal(raw)
	if err != nil {
		return decimal.Zero, invalid(fmt.Errorf("invalid parameter: %s: %w", key, err))
	}
	return value, nil
}

func optionalDecimalParam(params map[string]interface{}, key string) (decimal.Decimal, error) {
	if _, ok := params[key]; !ok {
		return decimal.Zero, nil
	}
	return decimalParam(params, key)
}

func intParam(params map[string]interface{}, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, invalid(fmt.Errorf("invalid parameter: %s", key))
	}
	value, err := utils.ToInt(raw)
	if err != nil {
		return 0, invalid(fmt.Errorf("invalid parameter: %s: %w", key, err))
	}
	return value, nil
}

func optionalIntParam(params map[string]interface{}, key string) (int, error) {
	if _, ok := params[key]; !ok {
		return 0, nil
	}
	return intParam(params, key)
}

func stringParam(params map[string]interface{}, key, defaultValue string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return defaultValue, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", invalid(fmt.Errorf("invalid parameter: %s", key))
	}
	return value, nil
}

func decimalListParam(params map[string]interface{}, key string) ([]decimal.Decimal, error) {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil, invalid(fmt.Errorf("invalid parameter: %s", key))
	}
	values := make([]decimal.Decimal, 0, len(raw))
	for i, item := range raw {
		value, err := utils.ToDecimal(item)
		if err != nil {
			return nil, invalid(fmt.Errorf("invalid parameter: %s[%d]: %w", key, i, err))
		}
		values = append(values, value)
	}
	return values, nil
}

func intListParam(params map[string]interface{}, key string) ([]int, error) {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil, invalid(fmt.Errorf("invalid parameter: %s", key))
	}
	values := make([]int, 0, len(raw))
	for i, item := range raw {
		value, err := utils.ToInt(item)
		if err != nil {
			return nil, invalid(fmt.Errorf("invalid parameter: %s[%d]: %w", key, i, err))
		}
		values = append(values, value)
	}
	return values, nil
}

func ratesParam(params map[string]interface{}) (calculations.ExchangeRates, error) {
	var rates calculations.ExchangeRates
	var err error
	if rates.AXS, err = decimalParam(params, "axs_rate"); err != nil {
		return rates, err
	}
	if rates.SLP, err = decimalParam(params, "slp_rate"); err != nil {
		return rates, err
	}
	if rates.ETH, err = decimalParam(params, "eth_rate"); err != nil {
		return rates, err
	}
	return rates, nil
}

func priceRangeParam(params map[string]interface{}) (calculations.PriceRange, error) {
	var prices calculations.PriceRange
	var err error
	if prices.Floor, err = optionalDecimalParam(params, "price_floor"); err != nil {
		return prices, err
	}
	if prices.Ceiling, err = optionalDecimalParam(params, "price_ceiling"); err != nil {
		return prices, err
	}
	return prices, nil
}
