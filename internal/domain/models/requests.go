package models

import (
	"encoding/json"

	"github.com/creasty/defaults"
)

// Requests for prediction HTTP endpoints. Defined in domain for consistency and reuse.
// Validation ranges mirror the schema the consuming pharmacy API was built against.

type DemandForecastRequest struct {
	Periods int `json:"periods" default:"30" validate:"gte=1,lte=365"`
}

type InventoryOptimizationRequest struct {
	MedicineID         int64     `json:"medicine_id" validate:"required"`
	CurrentStock       float64   `json:"current_stock" validate:"gte=0"`
	Price              float64   `json:"price" validate:"gte=0"`
	DaysUntilExpiry    int       `json:"days_until_expiry" default:"180" validate:"gte=0"`
	DaysSinceLastOrder int       `json:"days_since_last_order" default:"30" validate:"gte=0"`
	OrderCount         int       `json:"order_count" default:"10" validate:"gte=0"`
	HistoricalQty      []float64 `json:"historical_qty_data,omitempty"`
}

// UnmarshalJSON seeds the declared defaults before decoding, so a field
// absent from the payload defaults while an explicit zero is kept. Batch
// elements decode through here too, after the enclosing request has already
// had its top-level defaults applied.
func (r *InventoryOptimizationRequest) UnmarshalJSON(data []byte) error {
	type plain InventoryOptimizationRequest
	var p plain
	if err := defaults.Set(&p); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = InventoryOptimizationRequest(p)
	return nil
}

type BatchInventoryRequest struct {
	Medicines []InventoryOptimizationRequest `json:"medicines" validate:"required,min=1,max=100,dive"`
}

type ExpiryPredictionRequest struct {
	MedicineID      int64   `json:"medicine_id" validate:"required"`
	MedicineName    string  `json:"medicine_name"`
	SupplierID      int64   `json:"supplier_id"`
	DaysUntilExpiry int     `json:"days_until_expiry" validate:"gte=0"`
	StockQuantity   float64 `json:"stock_quantity" validate:"gte=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	AvgDailySales   float64 `json:"avg_daily_sales" validate:"gte=0"`
}

type BatchExpiryRequest struct {
	Medicines []ExpiryPredictionRequest `json:"medicines" validate:"required,min=1,max=100,dive"`
}

// SalesPoint is a single day of sales history. Quantity only; monetary fields
// are deliberately absent from this request shape.
type SalesPoint struct {
	Date string  `json:"date" validate:"required,datetime=2006-01-02"`
	Qty  float64 `json:"qty" validate:"gte=0"`
}

type WeeklyDemandRequest struct {
	SalesHistory []SalesPoint `json:"sales_history" validate:"required,min=1,max=1000,dive"`
}

type MedicineForecastRequest struct {
	MedicineID    int64   `json:"medicine_id"`
	AvgDailySales float64 `json:"avg_daily_sales" validate:"gte=0"`
}
