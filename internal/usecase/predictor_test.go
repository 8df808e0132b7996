package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RxPulse/internal/domain/models"
	drepo "RxPulse/internal/domain/repository"
	"RxPulse/internal/ml"
	applogger "RxPulse/pkg/logger"
)

type stubModel struct {
	fn func(fv *models.FeatureVector) (float64, error)
}

func (s stubModel) FeatureNames() []string { return nil }

func (s stubModel) Predict(fv *models.FeatureVector) (float64, error) { return s.fn(fv) }

type stubSource struct {
	handles map[models.Role]ml.Model
	ts      ml.TimeSeriesModel
}

func (s stubSource) Model(role models.Role) (ml.Model, bool) {
	m, ok := s.handles[role]
	return m, ok
}

func (s stubSource) TimeSeries() (ml.TimeSeriesModel, bool) {
	if s.ts == nil {
		return nil, false
	}
	return s.ts, true
}

func constModel(v float64) ml.Model {
	return stubModel{fn: func(*models.FeatureVector) (float64, error) { return v, nil }}
}

func testClock() time.Time {
	return time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
}

func newTestPredictor(src stubSource) *Predictor {
	return NewPredictor(src, nil, drepo.NopMetrics{}, applogger.Nop(), testClock)
}

func TestPredictInventoryUnavailable(t *testing.T) {
	p := newTestPredictor(stubSource{})

	_, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{MedicineID: 1, CurrentStock: 10})
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictInventoryDerivation(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleInventory: constModel(150.4)}}
	p := newTestPredictor(src)

	res, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{
		MedicineID:   1,
		CurrentStock: 60,
		Price:        5,
	})
	require.NoError(t, err)
	assert.Equal(t, 150, res.OptimalStock)
	assert.Equal(t, 90, res.ReorderQuantity)
	assert.Equal(t, 30, res.DaysOfStock) // 60 stock at 2/day
	assert.Equal(t, "ML Model (LightGBM)", res.Source)
}

func TestPredictInventoryReorderNeverNegative(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleInventory: constModel(10)}}
	p := newTestPredictor(src)

	res, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{
		MedicineID:   1,
		CurrentStock: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ReorderQuantity)
	assert.Equal(t, 10, res.OptimalStock)
}

func TestPredictInventoryNegativePredictionClamped(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleInventory: constModel(-40)}}
	p := newTestPredictor(src)

	res, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{MedicineID: 1, CurrentStock: 30})
	require.NoError(t, err)
	assert.Equal(t, 0, res.OptimalStock)
}

func TestPredictInventoryTruncatesFractionalStock(t *testing.T) {
	// The trained pipeline saw integer stock counts. A fractional stock of
	// 50.7 must reach the model as 50, not 50.7.
	echoStock := stubModel{fn: func(fv *models.FeatureVector) (float64, error) {
		v, _ := fv.Get("quantity_received")
		return v, nil
	}}
	p := newTestPredictor(stubSource{handles: map[models.Role]ml.Model{models.RoleInventory: echoStock}})

	res, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{
		MedicineID:   1,
		CurrentStock: 50.7,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, res.OptimalStock)
	assert.Equal(t, 50, res.CurrentStock)
	assert.Equal(t, 0, res.ReorderQuantity)
}

func TestPredictInventoryModelFailure(t *testing.T) {
	broken := stubModel{fn: func(*models.FeatureVector) (float64, error) {
		return 0, errors.New("shape mismatch")
	}}
	p := newTestPredictor(stubSource{handles: map[models.Role]ml.Model{models.RoleInventory: broken}})

	_, err := p.PredictInventory(context.Background(), models.InventoryOptimizationRequest{MedicineID: 1})
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestPredictExpiryTiers(t *testing.T) {
	tests := []struct {
		prob      float64
		wantLevel string
	}{
		{0.75, "HIGH"},
		{0.71, "HIGH"},
		{0.7, "MEDIUM"}, // exact threshold falls into the lower tier
		{0.5, "MEDIUM"},
		{0.4, "LOW"},
		{0.1, "LOW"},
	}

	for _, tt := range tests {
		src := stubSource{handles: map[models.Role]ml.Model{models.RoleExpiry: constModel(tt.prob)}}
		p := newTestPredictor(src)

		res, err := p.PredictExpiry(context.Background(), models.ExpiryPredictionRequest{MedicineID: 1, DaysUntilExpiry: 30})
		require.NoError(t, err)
		assert.Equal(t, tt.wantLevel, res.RiskLevel, "prob %v", tt.prob)
	}
}

func TestPredictExpiryBinarizesRawScores(t *testing.T) {
	// A raw score outside [0,1] is treated as a class margin.
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleExpiry: constModel(3)}}
	p := newTestPredictor(src)

	res, err := p.PredictExpiry(context.Background(), models.ExpiryPredictionRequest{MedicineID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.RiskProbability)
	assert.Equal(t, "HIGH", res.RiskLevel)
}

func TestPredictExpiryDerivation(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleExpiry: constModel(0.12345)}}
	p := newTestPredictor(src)

	res, err := p.PredictExpiry(context.Background(), models.ExpiryPredictionRequest{
		MedicineID:      1,
		DaysUntilExpiry: 30,
		StockQuantity:   100,
		AvgDailySales:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.123, res.RiskProbability)
	assert.Equal(t, 60, res.ExpectedUnitsSold)
	assert.Equal(t, 40, res.PotentialWaste)
	assert.Equal(t, "Stock is moving well", res.Recommendation)
}

func TestPredictExpiryBatchIsolation(t *testing.T) {
	// The model fails for medicine 2 only; the batch must still return all
	// three elements with the failure confined to its own slot.
	selective := stubModel{fn: func(fv *models.FeatureVector) (float64, error) {
		if id, _ := fv.Get("medicine_id"); id == 2 {
			return 0, errors.New("bad input")
		}
		return 0.2, nil
	}}
	p := newTestPredictor(stubSource{handles: map[models.Role]ml.Model{models.RoleExpiry: selective}})

	items := p.PredictExpiryBatch(context.Background(), []models.ExpiryPredictionRequest{
		{MedicineID: 1}, {MedicineID: 2}, {MedicineID: 3},
	})
	require.Len(t, items, 3)
	assert.NotNil(t, items[0].Result)
	assert.Nil(t, items[1].Result)
	assert.NotEmpty(t, items[1].Error)
	assert.NotNil(t, items[2].Result)
}

func TestPredictInventoryBatchUnavailable(t *testing.T) {
	p := newTestPredictor(stubSource{})

	items := p.PredictInventoryBatch(context.Background(), []models.InventoryOptimizationRequest{
		{MedicineID: 1}, {MedicineID: 2},
	})
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Nil(t, it.Result)
		assert.NotEmpty(t, it.Error)
	}
}

func TestPredictWeeklyDemand(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleDemandWeekly: constModel(70)}}
	p := newTestPredictor(src)

	res, err := p.PredictWeeklyDemand(context.Background(), models.WeeklyDemandRequest{
		SalesHistory: []models.SalesPoint{
			{Date: "2025-01-06", Qty: 5},
			{Date: "2025-01-13", Qty: 8},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.PredictedDailyDemand)
}

func TestPredictWeeklyDemandFloorsNegative(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleDemandWeekly: constModel(-7)}}
	p := newTestPredictor(src)

	res, err := p.PredictWeeklyDemand(context.Background(), models.WeeklyDemandRequest{
		SalesHistory: []models.SalesPoint{{Date: "2025-01-06", Qty: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.PredictedDailyDemand)
}

func TestPredictWeeklyDemandBadHistory(t *testing.T) {
	src := stubSource{handles: map[models.Role]ml.Model{models.RoleDemandWeekly: constModel(70)}}
	p := newTestPredictor(src)

	_, err := p.PredictWeeklyDemand(context.Background(), models.WeeklyDemandRequest{
		SalesHistory: []models.SalesPoint{{Date: "bad", Qty: 5}},
	})
	require.ErrorIs(t, err, ErrModelUnavailable)
}
