package calculations

import "github.com/shopspring/decimal"

// GenerationEntry представляет одно поколение в графике разведения
type GenerationEntry struct {
	Generation     int             `json:"generation"`
	BreedCount     int             `json:"breed_count"`
	SLPPerParent   decimal.Decimal `json:"slp_per_parent"`
	Cost           decimal.Decimal `json:"cost"`
	CumulativeCost decimal.Decimal `json:"cumulative_cost"`
}

// BreedingPlan - входные данные прогноза разведения
type BreedingPlan struct {
	ParentPrices         []decimal.Decimal `json:"parent_prices"`
	ParentsPerGeneration int               `json:"parents_per_generation"`
	BreedCount           int               `json:"breed_count"`
	OffspringSold        int               `json:"offspring_sold"`
	ParentsSold          int               `json:"parents_sold"`
	FarmedSLP            decimal.Decimal   `json:"farmed_slp"`
}

// BreedingSummary представляет сводку по разведению
type BreedingSummary struct {
	Schedule         string          `json:"schedule"`
	AverageSalePrice decimal.Decimal `json:"average_sale_price"`
	InitialCapital   decimal.Decimal `json:"initial_capital"`
	FarmedOffset     decimal.Decimal `json:"farmed_offset"`
	CumulativeCost   decimal.Decimal `json:"cumulative_cost"`
	SaleRevenue      decimal.Decimal `json:"sale_revenue"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	BreakEvenCycles  decimal.Decimal `json:"break_even_cycles"`
	BreakEvenDays    decimal.Decimal `json:"break_even_days"`
	NeverBreaksEven  bool            `json:"never_breaks_even"`
}

// BreedingProjection представляет результат прогноза разведения
type BreedingProjection struct {
	Summary     BreedingSummary   `json:"summary"`
	Generations []GenerationEntry `json:"generations"`
}

// ScholarshipPlan - входные данные прогноза стипендии.
// DaysPlayed = 0 означает, что фактической статистики еще нет.
type ScholarshipPlan struct {
	TeamPrices       []decimal.Decimal `json:"team_prices"`
	PeriodLengthDays int               `json:"period_length_days"`
	AccumulatedYield decimal.Decimal   `json:"accumulated_yield"`
	DaysPlayed       int               `json:"days_played"`
}

// YieldEstimate - окупаемость при заданной дневной добыче
type YieldEstimate struct {
	DailyYield       decimal.Decimal `json:"daily_yield"`
	BreakEvenPeriods decimal.Decimal `json:"break_even_periods"`
	BreakEvenDays    decimal.Decimal `json:"break_even_days"`
}

// ScholarshipProjection представляет результат прогноза стипендии
type ScholarshipProjection struct {
	InitialCapital   decimal.Decimal `json:"initial_capital"`
	SharePercentage  decimal.Decimal `json:"share_percentage"`
	PeriodLengthDays int             `json:"period_length_days"`
	Potential        YieldEstimate   `json:"potential"`
	Actual           *YieldEstimate  `json:"actual,omitempty"`
}
