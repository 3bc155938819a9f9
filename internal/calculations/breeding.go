package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/pkg/utils"
	"github.com/shopspring/decimal"
)

var (
	// MarketplaceFeeRate - комиссия маркетплейса с продажи потомков
	MarketplaceFeeRate = decimal.RequireFromString("0.0425")
	// CycleLengthDays - длительность одного цикла разведения в днях
	CycleLengthDays = decimal.NewFromInt(5)
)

// PriceRange - ожидаемый диапазон цены продажи потомка в ETH
type PriceRange struct {
	Floor   decimal.Decimal `json:"price_floor"`
	Ceiling decimal.Decimal `json:"price_ceiling"`
}

// BreakEvenInput - параметры расчета дней до окупаемости.
// Если Cycles > 0, остальные поля не используются.
type BreakEvenInput struct {
	Cycles         decimal.Decimal
	InitialCapital decimal.Decimal
	CumulativeCost decimal.Decimal
	NetProfit      decimal.Decimal
}

// NeverBreaksEven сообщает, что вложения не окупятся: число циклов не задано,
// а прибыль за цикл неположительная.
func (in BreakEvenInput) NeverBreaksEven() bool {
	return !in.Cycles.IsPositive() && !in.NetProfit.IsPositive()
}

// BreedingOption настраивает BreedingCalculator
type BreedingOption func(*BreedingCalculator)

// WithSchedule задает таблицу стоимости разведения. Пустая таблица игнорируется.
func WithSchedule(schedule BreedingSchedule) BreedingOption {
	return func(c *BreedingCalculator) {
		if len(schedule.SLPCosts) > 0 {
			c.schedule = schedule.clone()
		}
	}
}

// BreedingCalculator рассчитывает окупаемость разведения для произвольного
// числа родителей в цикле (ABC, ABCD и т.д.).
type BreedingCalculator struct {
	converter *RateConverter
	prices    PriceRange
	schedule  BreedingSchedule
}

// NewBreedingCalculator создает калькулятор. По умолчанию используется ClassicSchedule.
func NewBreedingCalculator(converter *RateConverter, prices PriceRange, opts ...BreedingOption) (*BreedingCalculator, error) {
	if converter == nil {
		return nil, fmt.Errorf("converter is required: %w", ErrInvalidArgument)
	}
	if prices.Floor.IsNegative() {
		return nil, fmt.Errorf("price floor %s is negative: %w", prices.Floor, ErrInvalidArgument)
	}
	if prices.Floor.GreaterThan(prices.Ceiling) {
		return nil, fmt.Errorf("price floor %s exceeds ceiling %s: %w", prices.Floor, prices.Ceiling, ErrInvalidArgument)
	}

	calc := &BreedingCalculator{
		converter: converter,
		prices:    prices,
		schedule:  ClassicSchedule(),
	}
	for _, opt := range opts {
		opt(calc)
	}
	return calc, nil
}

// Converter возвращает используемый конвертер курсов
func (c *BreedingCalculator) Converter() *RateConverter {
	return c.converter
}

// Schedule возвращает копию таблицы стоимости разведения
func (c *BreedingCalculator) Schedule() BreedingSchedule {
	return c.schedule.clone()
}

// Prices возвращает диапазон цен
func (c *BreedingCalculator) Prices() PriceRange {
	return c.prices
}

// AverageSalePrice - средняя ожидаемая цена продажи потомка
func (c *BreedingCalculator) AverageSalePrice() decimal.Decimal {
	return c.prices.Floor.Add(c.prices.Ceiling).Div(decimal.NewFromInt(2))
}

// InitialCapital переводит суммарную цену покупки родителей (ETH) в валюту. Без округления.
func (c *BreedingCalculator) InitialCapital(parentPrices []decimal.Decimal) (decimal.Decimal, error) {
	total, err := sumNonNegative("parent price", parentPrices)
	if err != nil {
		return decimal.Zero, err
	}
	return c.converter.ETHToUSD(total)
}

// BreedingCost рассчитывает стоимость одного поколения по текущим счетчикам разведений родителей
func (c *BreedingCalculator) BreedingCost(parentBreedCounts []int) (decimal.Decimal, error) {
	if len(parentBreedCounts) == 0 {
		return decimal.Zero, fmt.Errorf("at least one parent is required: %w", ErrInvalidArgument)
	}

	slpTotal := decimal.Zero
	for _, count := range parentBreedCounts {
		if count < 0 {
			return decimal.Zero, fmt.Errorf("breed count %d is negative: %w", count, ErrInvalidArgument)
		}
		cost, err := c.schedule.SLPCost(count)
		if err != nil {
			return decimal.Zero, err
		}
		slpTotal = slpTotal.Add(cost)
	}

	slpUSD, err := c.converter.SLPToUSD(slpTotal)
	if err != nil {
		return decimal.Zero, err
	}
	axsUSD, err := c.converter.AXSToUSD(c.schedule.AXSFee.Mul(decimal.NewFromInt(int64(len(parentBreedCounts)))))
	if err != nil {
		return decimal.Zero, err
	}

	return utils.Round2(slpUSD.Add(axsUSD)), nil
}

// generationCosts возвращает стоимость каждого поколения 0..breedCount-1,
// считая, что счетчики всех родителей совпадают.
func (c *BreedingCalculator) generationCosts(breedCount, parentCount int) ([]decimal.Decimal, error) {
	if breedCount < 0 {
		return nil, fmt.Errorf("breed count %d is negative: %w", breedCount, ErrInvalidArgument)
	}
	if parentCount <= 0 {
		return nil, fmt.Errorf("parent count must be positive, got %d: %w", parentCount, ErrInvalidArgument)
	}

	costs := make([]decimal.Decimal, 0, breedCount)
	counts := make([]int, parentCount)
	for i := 0; i < breedCount; i++ {
		for p := range counts {
			counts[p] = i
		}
		cost, err := c.BreedingCost(counts)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", i, err)
		}
		costs = append(costs, cost)
	}
	return costs, nil
}

// CumulativeBreedingCost - суммарная стоимость разведения до целевого счетчика.
// farmedOffset - уже нафармленные средства (в валюте), идущие в счет оплаты.
func (c *BreedingCalculator) CumulativeBreedingCost(breedCount, parentCount int, farmedOffset decimal.Decimal) (decimal.Decimal, error) {
	if farmedOffset.IsNegative() {
		return decimal.Zero, fmt.Errorf("farmed offset %s is negative: %w", farmedOffset, ErrInvalidArgument)
	}

	costs, err := c.generationCosts(breedCount, parentCount)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, cost := range costs {
		total = total.Add(cost)
	}
	return total.Sub(farmedOffset), nil
}

// SaleRevenue - выручка от продажи потомков за вычетом комиссии маркетплейса
func (c *BreedingCalculator) SaleRevenue(unitsSold int) (decimal.Decimal, error) {
	if unitsSold < 0 {
		return decimal.Zero, fmt.Errorf("units sold %d is negative: %w", unitsSold, ErrInvalidArgument)
	}

	gross := c.AverageSalePrice().Mul(decimal.NewFromInt(int64(unitsSold)))
	net := gross.Mul(decimal.NewFromInt(1).Sub(MarketplaceFeeRate))

	revenue, err := c.converter.ETHToUSD(net)
	if err != nil {
		return decimal.Zero, err
	}
	return utils.Round2(revenue), nil
}

// NetProfit - прибыль после затрат на разведение. parentsSold родителей
// продаются по нижней границе цены.
func (c *BreedingCalculator) NetProfit(cost, revenue decimal.Decimal, parentsSold int) (decimal.Decimal, error) {
	if parentsSold < 0 {
		return decimal.Zero, fmt.Errorf("parents sold %d is negative: %w", parentsSold, ErrInvalidArgument)
	}

	stock, err := c.converter.ETHToUSD(c.prices.Floor.Mul(decimal.NewFromInt(int64(parentsSold))))
	if err != nil {
		return decimal.Zero, err
	}
	return utils.Round2(stock.Add(revenue).Sub(cost)), nil
}

// BreakEvenCycles - количество циклов до окупаемости.
// Отрицательный результат означает, что вложения не окупятся.
func (c *BreedingCalculator) BreakEvenCycles(initialCapital, cumulativeCost, netProfit decimal.Decimal) (decimal.Decimal, error) {
	return BreakEvenCycles(initialCapital, cumulativeCost, netProfit)
}

// BreakEvenDays - количество дней до окупаемости, см. BreakEvenDays
func (c *BreedingCalculator) BreakEvenDays(in BreakEvenInput) (decimal.Decimal, error) {
	return BreakEvenDays(in)
}

// BreakEvenCycles делит капитал и затраты на прибыль за цикл.
// Курсы для расчета не нужны.
func BreakEvenCycles(initialCapital, cumulativeCost, netProfit decimal.Decimal) (decimal.Decimal, error) {
	if netProfit.IsZero() {
		return decimal.Zero, fmt.Errorf("net profit is zero: %w", ErrDivisionByZero)
	}
	return utils.Round2(initialCapital.Add(cumulativeCost).Div(netProfit)), nil
}

// BreakEvenDays - количество дней до окупаемости. Известное число циклов
// используется как есть, иначе оно рассчитывается через BreakEvenCycles.
func BreakEvenDays(in BreakEvenInput) (decimal.Decimal, error) {
	cycles := in.Cycles
	if !cycles.IsPositive() {
		var err error
		cycles, err = BreakEvenCycles(in.InitialCapital, in.CumulativeCost, in.NetProfit)
		if err != nil {
			return decimal.Zero, err
		}
	}
	return utils.Round2(cycles.Mul(CycleLengthDays)), nil
}

func sumNonNegative(name string, values []decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, v := range values {
		if v.IsNegative() {
			return decimal.Zero, fmt.Errorf("%s #%d is negative (%s): %w", name, i+1, v, ErrInvalidArgument)
		}
		total = total.Add(v)
	}
	return total, nil
}
