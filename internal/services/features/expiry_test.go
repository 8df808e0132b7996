package features

import (
	"math"
	"testing"

	"RxPulse/internal/domain/models"
)

func expiryReq() models.ExpiryPredictionRequest {
	return models.ExpiryPredictionRequest{
		MedicineID:      7,
		SupplierID:      3,
		DaysUntilExpiry: 60,
		StockQuantity:   100,
		UnitPrice:       12,
		AvgDailySales:   4,
	}
}

func TestExpiryVectorSchema(t *testing.T) {
	want := []string{
		"medicine_id", "supplier", "days_until_expiry", "stock_quantity",
		"unit_price", "total_value", "estimated_daily_usage", "days_to_sellout",
		"months_until_expiry", "stock_rotation_ratio", "is_fast_moving",
		"is_expensive", "is_large_batch", "is_short_shelf_life",
	}

	fv := BuildExpiryVector(expiryReq())
	if fv.Len() != len(want) {
		t.Fatalf("expected %d features, got %d", len(want), fv.Len())
	}
	for i, name := range want {
		if fv.Names[i] != name {
			t.Errorf("feature %d: got %q, want %q", i, fv.Names[i], name)
		}
	}
}

func TestExpiryVectorDerived(t *testing.T) {
	fv := BuildExpiryVector(expiryReq())

	if v := get(t, fv, "total_value"); v != 1200 {
		t.Errorf("total_value = %v, want 1200", v)
	}
	if v := get(t, fv, "days_to_sellout"); v != 25 {
		t.Errorf("days_to_sellout = %v, want 25", v)
	}
	if v := get(t, fv, "months_until_expiry"); v != 2 {
		t.Errorf("months_until_expiry = %v, want 2", v)
	}
	if v := get(t, fv, "stock_rotation_ratio"); v != 2.4 {
		t.Errorf("stock_rotation_ratio = %v, want 2.4", v)
	}
}

func TestExpiryVectorSelloutSentinel(t *testing.T) {
	req := expiryReq()
	req.AvgDailySales = 0

	fv := BuildExpiryVector(req)
	if v := get(t, fv, "days_to_sellout"); v != DaysToSelloutSentinel {
		t.Errorf("days_to_sellout = %v, want sentinel %d", v, DaysToSelloutSentinel)
	}
	want := 60.0 / DaysToSelloutSentinel
	if v := get(t, fv, "stock_rotation_ratio"); math.Abs(v-want) > 1e-12 {
		t.Errorf("stock_rotation_ratio = %v, want %v", v, want)
	}
}

func TestExpiryVectorFlags(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ExpiryPredictionRequest)
		field  string
		want   float64
	}{
		{"fast moving above threshold", func(r *models.ExpiryPredictionRequest) { r.AvgDailySales = 6 }, "is_fast_moving", 1},
		{"fast moving at threshold", func(r *models.ExpiryPredictionRequest) { r.AvgDailySales = 5 }, "is_fast_moving", 0},
		{"expensive at threshold", func(r *models.ExpiryPredictionRequest) { r.UnitPrice = 10 }, "is_expensive", 0},
		{"large batch", func(r *models.ExpiryPredictionRequest) { r.StockQuantity = 501 }, "is_large_batch", 1},
		{"short shelf life", func(r *models.ExpiryPredictionRequest) { r.DaysUntilExpiry = 89 }, "is_short_shelf_life", 1},
		{"90 days is not short", func(r *models.ExpiryPredictionRequest) { r.DaysUntilExpiry = 90 }, "is_short_shelf_life", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := expiryReq()
			tt.mutate(&req)
			fv := BuildExpiryVector(req)
			if v := get(t, fv, tt.field); v != tt.want {
				t.Errorf("%s = %v, want %v", tt.field, v, tt.want)
			}
		})
	}
}
