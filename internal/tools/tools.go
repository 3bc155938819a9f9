package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloud-ru/mcp-roi-go/internal/calculations"
	"github.com/cloud-ru/mcp-roi-go/internal/config"
	"github.com/cloud-ru/mcp-roi-go/internal/logger"
	"github.com/cloud-ru/mcp-roi-go/internal/metrics"
	"github.com/cloud-ru/mcp-roi-go/internal/validators"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

type toolFunc func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error)

// ConversionResult - результат конвертации суммы в валюту
type ConversionResult struct {
	Asset  calculations.Asset `json:"asset"`
	Amount decimal.Decimal    `json:"amount"`
	Rate   decimal.Decimal    `json:"rate"`
	Value  decimal.Decimal    `json:"value"`
}

// BreedingCostResult - стоимость одного поколения
type BreedingCostResult struct {
	Schedule     string          `json:"schedule"`
	BreedCounts  []int           `json:"breed_counts"`
	BreedingCost decimal.Decimal `json:"breeding_cost"`
}

// CumulativeCostResult - суммарная стоимость до целевого счетчика
type CumulativeCostResult struct {
	Schedule       string          `json:"schedule"`
	BreedCount     int             `json:"breed_count"`
	Parents        int             `json:"parents_per_generation"`
	FarmedOffset   decimal.Decimal `json:"farmed_offset"`
	CumulativeCost decimal.Decimal `json:"cumulative_cost"`
}

// BreakEvenResult - срок окупаемости
type BreakEvenResult struct {
	BreakEvenDays   decimal.Decimal `json:"break_even_days"`
	NeverBreaksEven bool            `json:"never_breaks_even"`
}

// Handlers возвращает все инструменты по именам
func Handlers(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) map[string]ToolHandler {
	return map[string]ToolHandler{
		"convert_currency":           ConvertCurrencyHandler(cfg, tracer, log),
		"breeding_cost":              BreedingCostHandler(cfg, tracer, log),
		"cumulative_breeding_cost":   CumulativeBreedingCostHandler(cfg, tracer, log),
		"break_even_days":            BreakEvenDaysHandler(cfg, tracer, log),
		"breeding_roi_projection":    BreedingProjectionHandler(cfg, tracer, log),
		"scholarship_roi_projection": ScholarshipProjectionHandler(cfg, tracer, log),
	}
}

// instrument оборачивает расчет трейсингом, метриками и логированием
func instrument(toolName string, tracer trace.Tracer, log *zap.Logger, fn toolFunc) ToolHandler {
	toolLog := logger.WithTool(log, toolName)

	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		result, err := fn(ctx, span, params)
		if err != nil {
			errorType := classify(err)
			span.RecordError(err)
			span.SetStatus(codes.Error, errorType)
			metrics.CalculationErrors.WithLabelValues(toolName, errorType).Inc()
			metrics.APICalls.WithLabelValues("mcp", toolName, "error").Inc()

			if errorType == "validation" {
				span.SetAttributes(attribute.String("error", "validation_error"))
				metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
				toolLog.Warn("invalid parameters", zap.Error(err))
				return nil, fmt.Errorf("неверные параметры: %w", err)
			}

			span.SetAttributes(attribute.String("error", "calculation_error"))
			metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
			toolLog.Warn("calculation failed", zap.String("error_type", errorType), zap.Error(err))
			return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
		}

		span.SetAttributes(attribute.Bool("success", true))
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
		metrics.APICalls.WithLabelValues("mcp", toolName, "success").Inc()
		toolLog.Debug("tool call completed")

		return result, nil
	}
}

func classify(err error) string {
	var pErr *paramError
	switch {
	case errors.As(err, &pErr),
		errors.Is(err, calculations.ErrInvalidArgument),
		errors.Is(err, calculations.ErrInvalidAmount):
		return "validation"
	case errors.Is(err, calculations.ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, calculations.ErrIndexOutOfRange):
		return "index_out_of_range"
	default:
		return "calculation"
	}
}

func newConverter(cfg *config.Config, params map[string]interface{}) (*calculations.RateConverter, error) {
	rates, err := ratesParam(params)
	if err != nil {
		return nil, err
	}
	if err := validators.CheckRates(cfg, rates); err != nil {
		return nil, invalid(err)
	}
	return calculations.NewRateConverter(rates)
}

func newBreedingCalculator(cfg *config.Config, span trace.Span, params map[string]interface{}) (*calculations.BreedingCalculator, error) {
	converter, err := newConverter(cfg, params)
	if err != nil {
		return nil, err
	}

	prices, err := priceRangeParam(params)
	if err != nil {
		return nil, err
	}
	if err := validators.CheckPriceRange(cfg, prices); err != nil {
		return nil, invalid(err)
	}

	scheduleName, err := stringParam(params, "schedule", cfg.BreedingSchedule)
	if err != nil {
		return nil, err
	}
	schedule, err := calculations.ScheduleByName(scheduleName)
	if err != nil {
		return nil, invalid(err)
	}

	span.SetAttributes(
		attribute.String("schedule", schedule.Name),
		attribute.String("price_floor", prices.Floor.String()),
		attribute.String("price_ceiling", prices.Ceiling.String()),
	)

	return calculations.NewBreedingCalculator(converter, prices, calculations.WithSchedule(schedule))
}

// ConvertCurrencyHandler обрабатывает запрос на конвертацию суммы актива в валюту
func ConvertCurrencyHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	return instrument("convert_currency", tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		assetName, err := stringParam(params, "asset", "")
		if err != nil {
			return nil, err
		}
		asset := calculations.Asset(assetName)

		amount, err := decimalParam(params, "amount")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("asset", assetName),
			attribute.String("amount", amount.String()),
		)

		if err := validators.CheckAmount(cfg, amount); err != nil {
			return nil, invalid(err)
		}

		converter, err := newConverter(cfg, params)
		if err != nil {
			return nil, err
		}

		value, err := converter.Convert(asset, amount)
		if err != nil {
			return nil, err
		}

		rate, err := converter.Rates().Rate(asset)
		if err != nil {
			return nil, err
		}
		return &ConversionResult{Asset: asset, Amount: amount, Rate: rate, Value: value}, nil
	})
}

// BreedingCostHandler обрабатывает запрос на расчет стоимости одного поколения
func BreedingCostHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	return instrument("breeding_cost", tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		counts, err := intListParam(params, "parent_breed_counts")
		if err != nil {
			return nil, err
		}
		span.SetAttributes(attribute.IntSlice("parent_breed_counts", counts))

		if err := validators.CheckParents(cfg, len(counts)); err != nil {
			return nil, invalid(err)
		}

		calc, err := newBreedingCalculator(cfg, span, params)
		if err != nil {
			return nil, err
		}

		cost, err := calc.BreedingCost(counts)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.String("breeding_cost", cost.String()))
		return &BreedingCostResult{Schedule: calc.Schedule().Name, BreedCounts: counts, BreedingCost: cost}, nil
	})
}

// CumulativeBreedingCostHandler обрабатывает запрос на расчет суммарной стоимости разведения
func CumulativeBreedingCostHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	return instrument("cumulative_breeding_cost", tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		breedCount, err := intParam(params, "breed_count")
		if err != nil {
			return nil, err
		}
		parents, err := intParam(params, "parents_per_generation")
		if err != nil {
			return nil, err
		}
		farmedSLP, err := optionalDecimalParam(params, "farmed_slp")
		if err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Int("breed_count", breedCount),
			attribute.Int("parents_per_generation", parents),
			attribute.String("farmed_slp", farmedSLP.String()),
		)

		if err := validators.CheckParents(cfg, parents); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckYield(cfg, "farmed_slp", farmedSLP); err != nil {
			return nil, invalid(err)
		}

		calc, err := newBreedingCalculator(cfg, span, params)
		if err != nil {
			return nil, err
		}
		if err := validators.CheckBreedCount(calc.Schedule(), breedCount); err != nil {
			return nil, invalid(err)
		}

		offset, err := calc.Converter().SLPToUSD(farmedSLP)
		if err != nil {
			return nil, err
		}

		cost, err := calc.CumulativeBreedingCost(breedCount, parents, offset)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.String("cumulative_cost", cost.String()))
		return &CumulativeCostResult{
			Schedule:       calc.Schedule().Name,
			BreedCount:     breedCount,
			Parents:        parents,
			FarmedOffset:   offset,
			CumulativeCost: cost,
		}, nil
	})
}

// BreakEvenDaysHandler обрабатывает запрос на расчет дней до окупаемости.
// Принимает либо cycles, либо initial_capital, cumulative_cost и net_profit.
// Курсы и диапазон цен не требуются.
func BreakEvenDaysHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	const toolName = "break_even_days"

	return instrument(toolName, tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		var in calculations.BreakEvenInput
		var err error
		if in.Cycles, err = optionalDecimalParam(params, "cycles"); err != nil {
			return nil, err
		}
		if !in.Cycles.IsPositive() {
			if in.InitialCapital, err = decimalParam(params, "initial_capital"); err != nil {
				return nil, err
			}
			if in.CumulativeCost, err = decimalParam(params, "cumulative_cost"); err != nil {
				return nil, err
			}
			if in.NetProfit, err = decimalParam(params, "net_profit"); err != nil {
				return nil, err
			}
		}

		span.SetAttributes(
			attribute.String("cycles", in.Cycles.String()),
			attribute.String("net_profit", in.NetProfit.String()),
		)

		days, err := calculations.BreakEvenDays(in)
		if err != nil {
			return nil, err
		}

		neverBreaksEven := in.NeverBreaksEven()
		span.SetAttributes(
			attribute.String("break_even_days", days.String()),
			attribute.Bool("never_breaks_even", neverBreaksEven),
		)
		if days.IsPositive() {
			metrics.BreakEvenDays.WithLabelValues(toolName).Observe(days.InexactFloat64())
		}
		return &BreakEvenResult{BreakEvenDays: days, NeverBreaksEven: neverBreaksEven}, nil
	})
}

// BreedingProjectionHandler обрабатывает запрос на полный прогноз окупаемости разведения
func BreedingProjectionHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	const toolName = "breeding_roi_projection"

	return instrument(toolName, tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		var plan calculations.BreedingPlan
		var err error
		if plan.ParentPrices, err = decimalListParam(params, "parent_prices"); err != nil {
			return nil, err
		}
		if plan.ParentsPerGeneration, err = intParam(params, "parents_per_generation"); err != nil {
			return nil, err
		}
		if plan.BreedCount, err = intParam(params, "breed_count"); err != nil {
			return nil, err
		}
		if plan.OffspringSold, err = intParam(params, "offspring_sold"); err != nil {
			return nil, err
		}
		if plan.ParentsSold, err = optionalIntParam(params, "parents_sold"); err != nil {
			return nil, err
		}
		if plan.FarmedSLP, err = optionalDecimalParam(params, "farmed_slp"); err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.Int("parents", len(plan.ParentPrices)),
			attribute.Int("parents_per_generation", plan.ParentsPerGeneration),
			attribute.Int("breed_count", plan.BreedCount),
			attribute.Int("offspring_sold", plan.OffspringSold),
			attribute.Int("parents_sold", plan.ParentsSold),
		)

		if err := validators.CheckPrices(cfg, "parent_prices", plan.ParentPrices); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckParents(cfg, plan.ParentsPerGeneration); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckUnits(cfg, "offspring_sold", plan.OffspringSold); err != nil {
			return nil, invalid(err)
		}
		if err := validators.ValidateIntRange("parents_sold", plan.ParentsSold, 0, len(plan.ParentPrices)); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckYield(cfg, "farmed_slp", plan.FarmedSLP); err != nil {
			return nil, invalid(err)
		}

		calc, err := newBreedingCalculator(cfg, span, params)
		if err != nil {
			return nil, err
		}
		if err := validators.CheckBreedCount(calc.Schedule(), plan.BreedCount); err != nil {
			return nil, invalid(err)
		}

		projection, err := calculations.ProjectBreeding(calc, plan)
		if err != nil {
			return nil, err
		}

		summary := projection.Summary
		span.SetAttributes(
			attribute.String("net_profit", summary.NetProfit.String()),
			attribute.String("break_even_days", summary.BreakEvenDays.String()),
			attribute.Bool("never_breaks_even", summary.NeverBreaksEven),
		)
		if summary.BreakEvenDays.IsPositive() {
			metrics.BreakEvenDays.WithLabelValues(toolName).Observe(summary.BreakEvenDays.InexactFloat64())
		}

		return projection, nil
	})
}

// ScholarshipProjectionHandler обрабатывает запрос на прогноз окупаемости стипендии
func ScholarshipProjectionHandler(cfg *config.Config, tracer trace.Tracer, log *zap.Logger) ToolHandler {
	const toolName = "scholarship_roi_projection"

	return instrument(toolName, tracer, log, func(ctx context.Context, span trace.Span, params map[string]interface{}) (interface{}, error) {
		var sp calculations.ScholarshipParams
		var plan calculations.ScholarshipPlan
		var err error
		if sp.MinDailyYield, err = decimalParam(params, "min_daily_yield"); err != nil {
			return nil, err
		}
		if sp.MaxDailyYield, err = decimalParam(params, "max_daily_yield"); err != nil {
			return nil, err
		}
		if sp.SharePercentage, err = decimalParam(params, "share_percentage"); err != nil {
			return nil, err
		}
		if plan.TeamPrices, err = decimalListParam(params, "team_prices"); err != nil {
			return nil, err
		}
		if plan.PeriodLengthDays, err = intParam(params, "period_length_days"); err != nil {
			return nil, err
		}
		if plan.AccumulatedYield, err = optionalDecimalParam(params, "accumulated_yield"); err != nil {
			return nil, err
		}
		if plan.DaysPlayed, err = optionalIntParam(params, "days_played"); err != nil {
			return nil, err
		}

		span.SetAttributes(
			attribute.String("min_daily_yield", sp.MinDailyYield.String()),
			attribute.String("max_daily_yield", sp.MaxDailyYield.String()),
			attribute.String("share_percentage", sp.SharePercentage.String()),
			attribute.Int("period_length_days", plan.PeriodLengthDays),
			attribute.Int("days_played", plan.DaysPlayed),
		)

		if err := validators.CheckYield(cfg, "min_daily_yield", sp.MinDailyYield); err != nil {
			return nil, invalid(err)
		}
		if err := validators.ValidateDecimal("max_daily_yield", sp.MaxDailyYield, sp.MinDailyYield, cfg.MaxYield); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckShare(sp.SharePercentage); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckPrices(cfg, "team_prices", plan.TeamPrices); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckDays(cfg, "period_length_days", plan.PeriodLengthDays); err != nil {
			return nil, invalid(err)
		}
		if err := validators.CheckYield(cfg, "accumulated_yield", plan.AccumulatedYield); err != nil {
			return nil, invalid(err)
		}
		if err := validators.ValidateIntRange("days_played", plan.DaysPlayed, 0, cfg.MaxDays); err != nil {
			return nil, invalid(err)
		}

		converter, err := newConverter(cfg, params)
		if err != nil {
			return nil, err
		}
		calc, err := calculations.NewScholarshipCalculator(converter, sp)
		if err != nil {
			return nil, err
		}

		projection, err := calculations.ProjectScholarship(calc, plan)
		if err != nil {
			return nil, err
		}

		span.SetAttributes(attribute.String("initial_capital", projection.InitialCapital.String()))
		metrics.BreakEvenDays.WithLabelValues(toolName).Observe(projection.Potential.BreakEvenDays.InexactFloat64())

		return projection, nil
	})
}
