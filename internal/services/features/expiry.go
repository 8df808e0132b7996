package features

import (
	"RxPulse/internal/domain/models"
)

// DaysToSelloutSentinel stands in for "never sells out" when the average
// daily usage is zero. The training data used the same encoding.
const DaysToSelloutSentinel = 999

// Thresholds the expiry model's binary flags were derived with.
const (
	fastMovingDailyUsage = 5
	expensiveUnitPrice   = 10
	largeBatchQuantity   = 500
	shortShelfLifeDays   = 90
)

// BuildExpiryVector reconstructs the field sequence of the expiry risk model.
func BuildExpiryVector(req models.ExpiryPredictionRequest) *models.FeatureVector {
	daysToSellout := float64(DaysToSelloutSentinel)
	if req.AvgDailySales > 0 {
		daysToSellout = req.StockQuantity / req.AvgDailySales
	}

	rotation := 0.0
	if daysToSellout > 0 {
		rotation = float64(req.DaysUntilExpiry) / daysToSellout
	}

	fv := models.NewFeatureVector(14)
	fv.Append("medicine_id", float64(req.MedicineID))
	fv.Append("supplier", float64(req.SupplierID))
	fv.Append("days_until_expiry", float64(req.DaysUntilExpiry))
	fv.Append("stock_quantity", req.StockQuantity)
	fv.Append("unit_price", req.UnitPrice)
	fv.Append("total_value", req.StockQuantity*req.UnitPrice)
	fv.Append("estimated_daily_usage", req.AvgDailySales)
	fv.Append("days_to_sellout", daysToSellout)
	fv.Append("months_until_expiry", float64(req.DaysUntilExpiry)/30)
	fv.Append("stock_rotation_ratio", rotation)
	fv.Append("is_fast_moving", boolFeature(req.AvgDailySales > fastMovingDailyUsage))
	fv.Append("is_expensive", boolFeature(req.UnitPrice > expensiveUnitPrice))
	fv.Append("is_large_batch", boolFeature(req.StockQuantity > largeBatchQuantity))
	fv.Append("is_short_shelf_life", boolFeature(req.DaysUntilExpiry < shortShelfLifeDays))
	return fv
}
