package calculations

import (
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProjectBreeding строит полный прогноз: капитал, график поколений, выручку,
// прибыль и срок окупаемости. Неположительная прибыль не считается ошибкой:
// прогноз помечается NeverBreaksEven. Неположительный срок при положительной
// прибыли означает, что капитал и затраты уже покрыты.
func ProjectBreeding(calc *BreedingCalculator, plan BreedingPlan) (*BreedingProjection, error) {
	initialCapital, err := calc.InitialCapital(plan.ParentPrices)
	if err != nil {
		return nil, err
	}

	costs, err := calc.generationCosts(plan.BreedCount, plan.ParentsPerGeneration)
	if err != nil {
		return nil, err
	}

	farmedOffset, err := calc.Converter().SLPToUSD(plan.FarmedSLP)
	if err != nil {
		return nil, err
	}

	generations := make([]GenerationEntry, 0, len(costs))
	cumulative := decimal.Zero
	for i, cost := range costs {
		slp, err := calc.schedule.SLPCost(i)
		if err != nil {
			return nil, err
		}
		cumulative = cumulative.Add(cost)
		generations = append(generations, GenerationEntry{
			Generation:     i + 1,
			BreedCount:     i,
			SLPPerParent:   slp,
			Cost:           cost,
			CumulativeCost: cumulative,
		})
	}
	cumulative = cumulative.Sub(farmedOffset)

	revenue, err := calc.SaleRevenue(plan.OffspringSold)
	if err != nil {
		return nil, err
	}

	profit, err := calc.NetProfit(cumulative, revenue, plan.ParentsSold)
	if err != nil {
		return nil, err
	}

	summary := BreedingSummary{
		Schedule:         calc.schedule.Name,
		AverageSalePrice: calc.AverageSalePrice(),
		InitialCapital:   initialCapital,
		FarmedOffset:     farmedOffset,
		CumulativeCost:   cumulative,
		SaleRevenue:      revenue,
		NetProfit:        profit,
	}

	in := BreakEvenInput{
		InitialCapital: initialCapital,
		CumulativeCost: cumulative,
		NetProfit:      profit,
	}
	if in.NeverBreaksEven() {
		summary.NeverBreaksEven = true
	} else {
		cycles, err := calc.BreakEvenCycles(in.InitialCapital, in.CumulativeCost, in.NetProfit)
		if err != nil {
			return nil, err
		}
		in.Cycles = cycles
		days, err := calc.BreakEvenDays(in)
		if err != nil {
			return nil, err
		}
		summary.BreakEvenCycles = cycles
		summary.BreakEvenDays = days
	}

	return &BreedingProjection{
		Summary:     summary,
		Generations: generations,
	}, nil
}

// ProjectScholarship рассчитывает окупаемость команды по потенциальной и,
// если есть статистика, фактической добыче.
func ProjectScholarship(calc *ScholarshipCalculator, plan ScholarshipPlan) (*ScholarshipProjection, error) {
	initialCapital, err := calc.InitialCapital(plan.TeamPrices)
	if err != nil {
		return nil, err
	}

	potential, err := yieldEstimate(calc, initialCapital, calc.AverageDailyYield(), plan.PeriodLengthDays)
	if err != nil {
		return nil, fmt.Errorf("potential yield: %w", err)
	}

	projection := &ScholarshipProjection{
		InitialCapital:   initialCapital,
		SharePercentage:  calc.Params().SharePercentage,
		PeriodLengthDays: plan.PeriodLengthDays,
		Potential:        potential,
	}

	if plan.DaysPlayed > 0 {
		actualYield, err := calc.ActualDailyYield(plan.AccumulatedYield, plan.DaysPlayed)
		if err != nil {
			return nil, err
		}
		actual, err := yieldEstimate(calc, initialCapital, actualYield, plan.PeriodLengthDays)
		if err != nil {
			return nil, fmt.Errorf("actual yield: %w", err)
		}
		projection.Actual = &actual
	}

	return projection, nil
}

func yieldEstimate(calc *ScholarshipCalculator, initialCapital, dailyYield decimal.Decimal, periodLengthDays int) (YieldEstimate, error) {
	periods, err := calc.BreakEvenPeriods(initialCapital, dailyYield, periodLengthDays)
	if err != nil {
		return YieldEstimate{}, err
	}
	return YieldEstimate{
		DailyYield:       dailyYield,
		BreakEvenPeriods: periods,
		BreakEvenDays:    utils.Round2(periods.Mul(decimal.NewFromInt(int64(periodLengthDays)))),
	}, nil
}
