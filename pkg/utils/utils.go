package utils

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var (
	minInt = decimal.NewFromInt(math.MinInt)
	maxInt = decimal.NewFromInt(math.MaxInt)
)

// Round2 округляет число до 2 знаков после запятой (банковское округление)
func Round2(value decimal.Decimal) decimal.Decimal {
	return value.RoundBank(2)
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ToDecimal приводит параметр инструмента к decimal.
// Строки разбираются без потери точности, числа JSON - по кратчайшему представлению.
func ToDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case json.Number:
		return decimal.NewFromString(v.String())
	case float64:
		if !IsFinite(v) {
			return decimal.Zero, fmt.Errorf("значение не является конечным числом")
		}
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported numeric type %T", value)
	}
}

// ToInt приводит параметр инструмента к целому числу
func ToInt(value interface{}) (int, error) {
	d, err := ToDecimal(value)
	if err != nil {
		return 0, err
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("ожидалось целое число, получено %s", d.String())
	}
	if d.LessThan(minInt) || d.GreaterThan(maxInt) {
		return 0, fmt.Errorf("число %s вне диапазона int", d.String())
	}
	return int(d.IntPart()), nil
}
