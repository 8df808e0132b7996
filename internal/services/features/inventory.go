package features

import (
	"time"

	"RxPulse/internal/domain/models"
)

// Assumptions baked into the training data for fields the request surface
// does not carry. Changing any of these invalidates the trained artifacts.
const (
	// DefaultDemandCV is used when the demand history is too flat or too
	// short to compute a coefficient of variation.
	DefaultDemandCV = 0.2

	// DefaultLeadTimeDays is the supplier lead time assumed at training
	// time for every medicine.
	DefaultLeadTimeDays = 7

	// CostVolatilityRatio approximates unit cost volatility as a fixed
	// fraction of the current unit cost.
	CostVolatilityRatio = 0.05

	// PopularityDivisor normalizes the lifetime order count into [0, 1].
	PopularityDivisor = 20

	// stockCoverageDays converts a stock level into an estimated daily
	// demand and a per-day holding cost.
	stockCoverageDays = 30

	// minHistoryPoints is the shortest demand history the rolling windows
	// were trained on; shorter inputs fall back to a flat synthetic one.
	minHistoryPoints = 5
)

// BuildInventoryVector reconstructs the exact field sequence the inventory
// optimization model was trained on. Calendar fields are taken from now.
func BuildInventoryVector(req models.InventoryOptimizationRequest, now time.Time) *models.FeatureVector {
	qty := req.HistoricalQty
	if len(qty) < minHistoryPoints {
		qty = make([]float64, minHistoryPoints)
		for i := range qty {
			qty[i] = req.CurrentStock
		}
	}

	unitCost := req.Price
	totalCost := req.CurrentStock * unitCost

	estimatedDailyDemand := 1.0
	if req.CurrentStock > 0 {
		estimatedDailyDemand = req.CurrentStock / stockCoverageDays
	}

	demandCV := DefaultDemandCV
	if m := Mean(qty); m > 0 {
		demandCV = PopStd(qty) / m
	}

	var cumulativeQty float64
	for _, q := range qty {
		cumulativeQty += q
	}

	turnover := 1.0
	if estimatedDailyDemand > 0 {
		turnover = 12.0
	}

	popularity := float64(req.OrderCount) / PopularityDivisor
	if popularity > 1 {
		popularity = 1
	}

	cal := calendarAt(now)

	fv := models.NewFeatureVector(43)
	fv.Append("medicine_id", float64(req.MedicineID))
	fv.Append("quantity_received", req.CurrentStock)
	fv.Append("unit_cost", unitCost)
	fv.Append("total_cost", totalCost)
	fv.Append("days_until_expiry", float64(req.DaysUntilExpiry))
	fv.Append("day_of_week", cal.DayOfWeek)
	fv.Append("day_of_month", cal.DayOfMonth)
	fv.Append("month", cal.Month)
	fv.Append("quarter", cal.Quarter)
	fv.Append("is_weekend", cal.IsWeekend)
	fv.Append("is_month_start", cal.IsMonthStart)
	fv.Append("is_month_end", cal.IsMonthEnd)
	fv.Append("is_quarter_start", cal.IsQuarterStart)
	fv.Append("is_quarter_end", cal.IsQuarterEnd)
	fv.Append("days_since_last_order", float64(req.DaysSinceLastOrder))
	appendRollingStats(fv, qty, 2)
	appendRollingStats(fv, qty, 3)
	appendRollingStats(fv, qty, 5)
	fv.Append("qty_lag_1", qty[len(qty)-1])
	fv.Append("qty_lag_2", qty[len(qty)-2])
	fv.Append("qty_lag_3", qty[len(qty)-3])
	fv.Append("cumulative_qty", cumulativeQty)
	fv.Append("cumulative_cost", cumulativeQty*unitCost)
	fv.Append("avg_order_cycle_days", float64(req.DaysSinceLastOrder))
	fv.Append("estimated_daily_demand", estimatedDailyDemand)
	fv.Append("avg_unit_cost", unitCost)
	fv.Append("unit_cost_diff_from_avg", 0)
	fv.Append("unit_cost_volatility", CostVolatilityRatio*unitCost)
	fv.Append("order_count", float64(req.OrderCount))
	fv.Append("demand_cv", demandCV)
	fv.Append("lead_time_days", DefaultLeadTimeDays)
	fv.Append("demand_cost_interaction", estimatedDailyDemand*unitCost)
	fv.Append("volatility_lead_time", demandCV*DefaultLeadTimeDays)
	fv.Append("cost_per_day_inventory", unitCost/stockCoverageDays)
	fv.Append("stock_turnover_ratio", turnover)
	fv.Append("medicine_popularity", popularity)
	return fv
}

// appendRollingStats emits mean/std/max/min over the trailing window of at
// most n history points, in the order the training columns were laid out.
func appendRollingStats(fv *models.FeatureVector, qty []float64, n int) {
	w := lastN(qty, n)
	prefix := "qty_rolling_" + windowName(n)
	fv.Append(prefix+"_mean", Mean(w))
	fv.Append(prefix+"_std", PopStd(w))
	fv.Append(prefix+"_max", Max(w))
	fv.Append(prefix+"_min", Min(w))
}

func windowName(n int) string {
	switch n {
	case 2:
		return "2orders"
	case 3:
		return "3orders"
	case 5:
		return "5orders"
	}
	return ""
}
