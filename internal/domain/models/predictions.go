package models

import "time"

// Role identifies one of the four prediction tasks, each backed by an
// independently trained model artifact.
type Role string

const (
	RoleDemandTimeseries Role = "demand_timeseries"
	RoleDemandWeekly     Role = "demand_weekly"
	RoleInventory        Role = "inventory"
	RoleExpiry           Role = "expiry"
)

// Roles lists every model role in a stable order.
func Roles() []Role {
	return []Role{RoleDemandTimeseries, RoleDemandWeekly, RoleInventory, RoleExpiry}
}

// RegistryStatus reports per-role artifact availability without reloading.
type RegistryStatus struct {
	MLAvailable            bool   `json:"ml_available"`
	DemandTimeseriesLoaded bool   `json:"demand_timeseries_loaded"`
	DemandWeeklyLoaded     bool   `json:"demand_weekly_loaded"`
	InventoryLoaded        bool   `json:"inventory_loaded"`
	ExpiryLoaded           bool   `json:"expiry_loaded"`
	ModelsPath             string `json:"models_path"`
	ModelsExist            bool   `json:"models_exist"`
}

// ForecastPoint is one day of the global demand forecast.
type ForecastPoint struct {
	Date            string  `json:"date"`
	PredictedDemand float64 `json:"predicted_demand"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// InventoryRecommendation is the derived result of the inventory model.
type InventoryRecommendation struct {
	MedicineID      int64  `json:"medicine_id"`
	CurrentStock    int    `json:"current_stock"`
	OptimalStock    int    `json:"optimal_stock"`
	ReorderQuantity int    `json:"reorder_quantity"`
	DaysOfStock     int    `json:"days_of_stock"`
	Source          string `json:"source"`
}

// ExpiryRisk is the derived result of the expiry model.
type ExpiryRisk struct {
	MedicineID        int64   `json:"medicine_id"`
	RiskProbability   float64 `json:"risk_probability"`
	RiskLevel         string  `json:"risk_level"`
	Recommendation    string  `json:"recommendation"`
	DaysToExpiry      int     `json:"days_to_expiry"`
	ExpectedUnitsSold int     `json:"expected_units_sold"`
	PotentialWaste    int     `json:"potential_waste"`
	Source            string  `json:"source"`
}

// WeeklyDemandResult is the derived result of the weekly demand model.
type WeeklyDemandResult struct {
	PredictedDailyDemand float64 `json:"predicted_daily_demand"`
	Source               string  `json:"source"`
}

// WeeklyForecastPoint describes one forecast week for one medicine, produced
// by rescaling the global demand forecast to the medicine's own sales rate.
type WeeklyForecastPoint struct {
	Week            int     `json:"week"`
	WeekStart       string  `json:"week_start"`
	WeekLabel       string  `json:"week_label"`
	PredictedDaily  float64 `json:"predicted_daily"`
	PredictedWeekly int     `json:"predicted_weekly"`
	LowerBound      int     `json:"lower_bound"`
	UpperBound      int     `json:"upper_bound"`
	TrendFactor     float64 `json:"trend_factor"`
	Source          string  `json:"source"`
}

// InventoryBatchItem carries one element of a batch inventory response.
// A failed element has Error set and Result nil; the batch itself never fails.
type InventoryBatchItem struct {
	MedicineID int64                    `json:"medicine_id"`
	Result     *InventoryRecommendation `json:"result,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// ExpiryBatchItem carries one element of a batch expiry response.
type ExpiryBatchItem struct {
	MedicineID int64       `json:"medicine_id"`
	Result     *ExpiryRisk `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// AuditEvent records a served prediction for the optional audit backend.
type AuditEvent struct {
	Timestamp  time.Time `json:"ts"`
	Role       string    `json:"role"`
	MedicineID int64     `json:"medicine_id"`
	Status     string    `json:"status"`
	Value      float64   `json:"value"`
}
