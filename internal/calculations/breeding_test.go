package calculations

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classicCalculator(t *testing.T) *BreedingCalculator {
	t.Helper()
	calc, err := NewBreedingCalculator(
		newTestConverter(t, "40", "0.26", "2190"),
		PriceRange{Floor: d("0.2358"), Ceiling: d("0.73")},
	)
	require.NoError(t, err)
	return calc
}

func revisedCalculator(t *testing.T) *BreedingCalculator {
	t.Helper()
	calc, err := NewBreedingCalculator(
		newTestConverter(t, "67", "0.08", "3140"),
		PriceRange{Floor: d("0.173"), Ceiling: d("0.69")},
		WithSchedule(RevisedSchedule()),
	)
	require.NoError(t, err)
	return calc
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	if !got.Equal(d(want)) {
		assert.Fail(t, fmt.Sprintf("got %s, want %s", got, want), msgAndArgs...)
	}
}

func TestBreedingCalculatorBasics(t *testing.T) {
	calc := classicCalculator(t)

	assertDecimal(t, "0.4829", calc.AverageSalePrice())

	revenue, err := calc.SaleRevenue(3)
	require.NoError(t, err)
	assertDecimal(t, "3037.82", revenue)

	revised := revisedCalculator(t)
	assertDecimal(t, "0.4315", revised.AverageSalePrice())

	revenue, err = revised.SaleRevenue(2)
	require.NoError(t, err)
	assertDecimal(t, "2594.65", revenue)

	cost, err := revised.BreedingCost([]int{0, 0})
	require.NoError(t, err)
	assertDecimal(t, "115", cost)
}

func TestBreedingCost(t *testing.T) {
	calc := classicCalculator(t)

	tests := []struct {
		name   string
		counts []int
		want   string
	}{
		{name: "fresh pair", counts: []int{0, 0}, want: "238"},
		{name: "second breed", counts: []int{1, 1}, want: "316"},
		{name: "mixed counts", counts: []int{0, 3}, want: "394"},
		{name: "single parent last entry", counts: []int{6}, want: "899"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.BreedingCost(tt.counts)
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestBreedingCostErrors(t *testing.T) {
	calc := classicCalculator(t)

	_, err := calc.BreedingCost([]int{0, 7})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = calc.BreedingCost([]int{-1, 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.BreedingCost(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.CumulativeBreedingCost(8, 2, decimal.Zero)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = calc.CumulativeBreedingCost(4, 0, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.CumulativeBreedingCost(-1, 2, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.CumulativeBreedingCost(4, 2, d("-1"))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.SaleRevenue(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.NetProfit(d("1"), d("2"), -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.InitialCapital([]decimal.Decimal{d("0.5"), d("-0.1")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = calc.BreakEvenCycles(d("3285"), d("1498"), decimal.Zero)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = calc.BreakEvenDays(BreakEvenInput{InitialCapital: d("3285"), CumulativeCost: d("1498")})
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestNewBreedingCalculatorValidation(t *testing.T) {
	conv := newTestConverter(t, "40", "0.26", "2190")

	_, err := NewBreedingCalculator(conv, PriceRange{Floor: d("0.8"), Ceiling: d("0.73")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewBreedingCalculator(conv, PriceRange{Floor: d("-0.1"), Ceiling: d("0.73")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewBreedingCalculator(nil, PriceRange{Floor: d("0.1"), Ceiling: d("0.73")})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	calc, err := NewBreedingCalculator(conv, PriceRange{Floor: d("0.1"), Ceiling: d("0.1")})
	require.NoError(t, err)
	assert.Equal(t, "classic", calc.Schedule().Name)

	calc, err = NewBreedingCalculator(conv, PriceRange{Floor: d("0.1"), Ceiling: d("0.1")}, WithSchedule(BreedingSchedule{}))
	require.NoError(t, err)
	assert.Equal(t, "classic", calc.Schedule().Name)

	calc, err = NewBreedingCalculator(conv, PriceRange{Floor: d("0.1"), Ceiling: d("0.1")}, WithSchedule(RevisedSchedule()))
	require.NoError(t, err)
	assert.Equal(t, "revised", calc.Schedule().Name)
}

func TestBreedingCalculatorScheduleIsolated(t *testing.T) {
	conv := newTestConverter(t, "40", "0.26", "2190")
	schedule := ClassicSchedule()

	calc, err := NewBreedingCalculator(conv, PriceRange{Floor: d("0.2358"), Ceiling: d("0.73")}, WithSchedule(schedule))
	require.NoError(t, err)

	schedule.SLPCosts[0] = d("1")
	calc.Schedule().SLPCosts[0] = d("1")

	cost, err := calc.BreedingCost([]int{0, 0})
	require.NoError(t, err)
	assertDecimal(t, "238", cost)
}

func TestBreakEvenInputNeverBreaksEven(t *testing.T) {
	tests := []struct {
		name string
		in   BreakEvenInput
		want bool
	}{
		{name: "known cycles", in: BreakEvenInput{Cycles: d("3.11"), NetProfit: d("-10")}, want: false},
		{name: "positive profit", in: BreakEvenInput{InitialCapital: d("3285"), NetProfit: d("1539.82")}, want: false},
		{name: "costs covered", in: BreakEvenInput{InitialCapital: d("10"), CumulativeCost: d("-500"), NetProfit: d("100")}, want: false},
		{name: "zero profit", in: BreakEvenInput{InitialCapital: d("3285")}, want: true},
		{name: "negative profit", in: BreakEvenInput{InitialCapital: d("3285"), NetProfit: d("-13.74")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.NeverBreaksEven())
		})
	}
}

// loopScenario описывает цикл разведения и ожидаемые результаты
// для четырех вариантов: базовый, с нафармленным SLP, с продажей родителей и с обоими.
type loopScenario struct {
	name          string
	calc          func(*testing.T) *BreedingCalculator
	parents       int
	breeders      int
	offspringSold int
	farmedSLP     string
	initial       string
	cost          [2]string
	profit        [4]string
	cycles        [4]string
	days          [4]string
}

func TestBreedingLoops(t *testing.T) {
	scenarios := []loopScenario{
		{
			name: "classic ABC", calc: classicCalculator, parents: 3, breeders: 2, offspringSold: 3, farmedSLP: "900",
			initial: "3285",
			cost:    [2]string{"1498", "1264"},
			profit:  [4]string{"1539.82", "1773.82", "2572.62", "2806.62"},
			cycles:  [4]string{"3.11", "2.56", "1.86", "1.62"},
			days:    [4]string{"15.55", "12.80", "9.30", "8.10"},
		},
		{
			name: "classic ABCD", calc: classicCalculator, parents: 4, breeders: 4, offspringSold: 4, farmedSLP: "900",
			initial: "4380",
			cost:    [2]string{"2996", "2762"},
			profit:  [4]string{"1054.42", "1288.42", "3120.03", "3354.03"},
			cycles:  [4]string{"7.00", "5.54", "2.36", "2.13"},
			days:    [4]string{"35", "27.70", "11.80", "10.65"},
		},
		{
			name: "revised ABC", calc: revisedCalculator, parents: 3, breeders: 2, offspringSold: 2, farmedSLP: "900",
			initial: "4710",
			cost:    [2]string{"700", "628"},
			profit:  [4]string{"1894.65", "1966.65", "2981.09", "3053.09"},
			cycles:  [4]string{"2.86", "2.71", "1.81", "1.75"},
			days:    [4]string{"14.3", "13.55", "9.05", "8.75"},
		},
		{
			name: "revised ABCD", calc: revisedCalculator, parents: 4, breeders: 4, offspringSold: 4, farmedSLP: "500",
			initial: "6280",
			cost:    [2]string{"1400", "1360"},
			profit:  [4]string{"3789.31", "3829.31", "5962.19", "6002.19"},
			cycles:  [4]string{"2.03", "2.0", "1.29", "1.27"},
			days:    [4]string{"10.15", "10", "6.45", "6.35"},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			calc := sc.calc(t)

			prices := make([]decimal.Decimal, sc.parents)
			for i := range prices {
				prices[i] = d("0.5")
			}
			initial, err := calc.InitialCapital(prices)
			require.NoError(t, err)
			assertDecimal(t, sc.initial, initial, "initial capital")

			farmed, err := calc.Converter().SLPToUSD(d(sc.farmedSLP))
			require.NoError(t, err)

			revenue, err := calc.SaleRevenue(sc.offspringSold)
			require.NoError(t, err)

			for i, variant := range []struct {
				offset      decimal.Decimal
				parentsSold int
			}{
				{decimal.Zero, 0},
				{farmed, 0},
				{decimal.Zero, sc.breeders},
				{farmed, sc.breeders},
			} {
				cost, err := calc.CumulativeBreedingCost(4, sc.breeders, variant.offset)
				require.NoError(t, err)
				assertDecimal(t, sc.cost[i%2], cost, "cumulative cost #%d", i)

				profit, err := calc.NetProfit(cost, revenue, variant.parentsSold)
				require.NoError(t, err)
				assertDecimal(t, sc.profit[i], profit, "profit #%d", i)

				cycles, err := calc.BreakEvenCycles(initial, cost, profit)
				require.NoError(t, err)
				assertDecimal(t, sc.cycles[i], cycles, "cycles #%d", i)

				days, err := calc.BreakEvenDays(BreakEvenInput{Cycles: cycles})
				require.NoError(t, err)
				assertDecimal(t, sc.days[i], days, "days #%d", i)

				computed, err := calc.BreakEvenDays(BreakEvenInput{
					InitialCapital: initial,
					CumulativeCost: cost,
					NetProfit:      profit,
				})
				require.NoError(t, err)
				assert.True(t, days.Equal(computed), "days via cycles %s != computed %s", days, computed)
			}
		})
	}
}

func TestCumulativeBreedingCostOffset(t *testing.T) {
	calc := classicCalculator(t)

	for _, breeders := range []int{1, 2, 3, 4} {
		for _, offset := range []string{"0", "0.01", "234", "1000.55"} {
			full, err := calc.CumulativeBreedingCost(4, breeders, decimal.Zero)
			require.NoError(t, err)
			reduced, err := calc.CumulativeBreedingCost(4, breeders, d(offset))
			require.NoError(t, err)
			assertDecimal(t, offset, full.Sub(reduced), "breeders=%d", breeders)
		}
	}

	zero, err := calc.CumulativeBreedingCost(0, 2, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestBreedingCalculatorIdempotent(t *testing.T) {
	calc := classicCalculator(t)

	first, err := calc.CumulativeBreedingCost(4, 2, d("234"))
	require.NoError(t, err)
	second, err := calc.CumulativeBreedingCost(4, 2, d("234"))
	require.NoError(t, err)
	assert.True(t, first.Equal(second))

	r1, _ := calc.SaleRevenue(4)
	r2, _ := calc.SaleRevenue(4)
	assert.True(t, r1.Equal(r2))
	assert.True(t, calc.AverageSalePrice().Equal(calc.AverageSalePrice()))
}

func TestBreakEvenNegativeProfit(t *testing.T) {
	calc := classicCalculator(t)

	cycles, err := calc.BreakEvenCycles(d("3285"), d("1498"), d("-100"))
	require.NoError(t, err)
	assert.True(t, cycles.IsNegative())

	days, err := calc.BreakEvenDays(BreakEvenInput{InitialCapital: d("3285"), CumulativeCost: d("1498"), NetProfit: d("-100")})
	require.NoError(t, err)
	assertDecimal(t, "-239.15", days)
}
