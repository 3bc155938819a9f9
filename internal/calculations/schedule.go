package calculations

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BreedingSchedule - фиксированная таблица стоимости разведения.
// SLPCosts[i] - стоимость в SLP для одного родителя со счетчиком разведений i,
// AXSFee - фиксированный сбор в AXS с каждого родителя.
type BreedingSchedule struct {
	Name     string
	SLPCosts []decimal.Decimal
	AXSFee   decimal.Decimal
}

var (
	classicSchedule = BreedingSchedule{
		Name:     "classic",
		SLPCosts: slpCosts(150, 300, 450, 750, 1200, 1950, 3150),
		AXSFee:   decimal.NewFromInt(2),
	}

	revisedSchedule = BreedingSchedule{
		Name:     "revised",
		SLPCosts: slpCosts(300, 450, 750, 1200, 1950, 3150, 5100),
		AXSFee:   decimal.RequireFromString("0.5"),
	}
)

// ClassicSchedule возвращает копию таблицы по умолчанию
func ClassicSchedule() BreedingSchedule {
	return classicSchedule.clone()
}

// RevisedSchedule возвращает копию таблицы после пересмотра экономики
func RevisedSchedule() BreedingSchedule {
	return revisedSchedule.clone()
}

func slpCosts(values ...int64) []decimal.Decimal {
	costs := make([]decimal.Decimal, len(values))
	for i, v := range values {
		costs[i] = decimal.NewFromInt(v)
	}
	return costs
}

// ScheduleByName возвращает встроенную таблицу по имени
func ScheduleByName(name string) (BreedingSchedule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", classicSchedule.Name:
		return ClassicSchedule(), nil
	case revisedSchedule.Name:
		return RevisedSchedule(), nil
	default:
		return BreedingSchedule{}, fmt.Errorf("unknown breeding schedule %q: %w", name, ErrInvalidArgument)
	}
}

// MaxBreedCount - количество разведений, покрытое таблицей
func (s BreedingSchedule) MaxBreedCount() int {
	return len(s.SLPCosts)
}

// SLPCost возвращает стоимость в SLP для счетчика разведений
func (s BreedingSchedule) SLPCost(breedCount int) (decimal.Decimal, error) {
	if breedCount < 0 || breedCount >= len(s.SLPCosts) {
		return decimal.Zero, fmt.Errorf("breed count %d not in [0; %d): %w", breedCount, len(s.SLPCosts), ErrIndexOutOfRange)
	}
	return s.SLPCosts[breedCount], nil
}

func (s BreedingSchedule) clone() BreedingSchedule {
	s.SLPCosts = append([]decimal.Decimal(nil), s.SLPCosts...)
	return s
}
