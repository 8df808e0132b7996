package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"RxPulse/internal/domain/models"
	drepo "RxPulse/internal/domain/repository"
	"RxPulse/internal/ml"
	"RxPulse/internal/services/features"
	applogger "RxPulse/pkg/logger"
)

// ModelSource is the registry boundary the prediction services depend on.
type ModelSource interface {
	Model(role models.Role) (ml.Model, bool)
	TimeSeries() (ml.TimeSeriesModel, bool)
}

// Clock supplies wall-clock time for calendar-derived features. Injected so
// tests can pin the date.
type Clock func() time.Time

// DaysOfStockSentinel is reported when the estimated daily demand is zero
// and the stock would notionally never run out.
const DaysOfStockSentinel = 999

// Source labels reported with each result, identifying the model family
// that produced it.
const (
	sourceInventory  = "ML Model (LightGBM)"
	sourceExpiry     = "ML Model (XGBoost)"
	sourceWeekly     = "ML Model (LightGBM)"
	sourceTimeseries = "ML Model (Prophet)"
)

// Expiry risk tier thresholds; probabilities exactly at a threshold fall
// into the lower tier.
const (
	expiryHighThreshold   = 0.7
	expiryMediumThreshold = 0.4
)

// Predictor serves single and batch predictions for the three trained
// per-role models. Every operation checks model availability before any
// feature computation, and every failure surfaces as ErrModelUnavailable.
type Predictor struct {
	source  ModelSource
	audit   *AuditRecorder
	metrics drepo.Metrics
	logger  *applogger.Logger
	clock   Clock
}

// NewPredictor creates a Predictor. A nil clock defaults to time.Now.
func NewPredictor(
	source ModelSource,
	audit *AuditRecorder,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	clock Clock,
) *Predictor {
	if clock == nil {
		clock = time.Now
	}
	return &Predictor{
		source:  source,
		audit:   audit,
		metrics: metrics,
		logger:  logger,
		clock:   clock,
	}
}

// PredictInventory recommends an optimal stock level for one medicine.
func (p *Predictor) PredictInventory(ctx context.Context, req models.InventoryOptimizationRequest) (*models.InventoryRecommendation, error) {
	model, ok := p.source.Model(models.RoleInventory)
	if !ok {
		p.metrics.RecordPrediction(string(models.RoleInventory), "unavailable")
		return nil, ErrModelUnavailable
	}

	start := time.Now()
	// Stock is an integer unit count in the training data; fractional input
	// is truncated before any feature is derived from it.
	req.CurrentStock = math.Trunc(req.CurrentStock)
	fv := features.BuildInventoryVector(req, p.clock())
	pred, err := model.Predict(fv)
	if err != nil {
		return nil, p.failed(models.RoleInventory, req.MedicineID, err)
	}

	optimal := math.Round(math.Max(0, pred))
	daysOfStock := DaysOfStockSentinel
	if daily, _ := fv.Get("estimated_daily_demand"); daily > 0 {
		daysOfStock = int(math.Round(req.CurrentStock / daily))
	}

	res := &models.InventoryRecommendation{
		MedicineID:      req.MedicineID,
		CurrentStock:    int(math.Round(req.CurrentStock)),
		OptimalStock:    int(optimal),
		ReorderQuantity: int(math.Max(0, math.Round(optimal-req.CurrentStock))),
		DaysOfStock:     daysOfStock,
		Source:          sourceInventory,
	}
	p.served(ctx, models.RoleInventory, req.MedicineID, optimal, start)
	return res, nil
}

// PredictInventoryBatch applies the single-item contract independently per
// element. One element's failure never aborts the batch.
func (p *Predictor) PredictInventoryBatch(ctx context.Context, reqs []models.InventoryOptimizationRequest) []models.InventoryBatchItem {
	out := make([]models.InventoryBatchItem, 0, len(reqs))
	for _, req := range reqs {
		item := models.InventoryBatchItem{MedicineID: req.MedicineID}
		res, err := p.PredictInventory(ctx, req)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = res
		}
		out = append(out, item)
	}
	return out
}

// PredictExpiry estimates the probability of stock expiring unsold and maps
// it onto a three-tier risk level with a human-actionable recommendation.
func (p *Predictor) PredictExpiry(ctx context.Context, req models.ExpiryPredictionRequest) (*models.ExpiryRisk, error) {
	model, ok := p.source.Model(models.RoleExpiry)
	if !ok {
		p.metrics.RecordPrediction(string(models.RoleExpiry), "unavailable")
		return nil, ErrModelUnavailable
	}

	start := time.Now()
	fv := features.BuildExpiryVector(req)

	var prob float64
	var err error
	if pm, hasProba := model.(ml.ProbabilityModel); hasProba {
		prob, err = pm.PredictProbability(fv)
	} else {
		prob, err = model.Predict(fv)
		if err == nil && (prob < 0 || prob > 1) {
			if prob > 0.5 {
				prob = 1
			} else {
				prob = 0
			}
		}
	}
	if err != nil {
		return nil, p.failed(models.RoleExpiry, req.MedicineID, err)
	}

	var level, rec string
	switch {
	case prob > expiryHighThreshold:
		level, rec = "HIGH", "Urgent: Apply discount or return to supplier"
	case prob > expiryMediumThreshold:
		level, rec = "MEDIUM", "Consider promotional pricing"
	default:
		level, rec = "LOW", "Stock is moving well"
	}

	expectedSold := int(math.Round(req.AvgDailySales * float64(req.DaysUntilExpiry)))
	waste := int(req.StockQuantity) - expectedSold
	if waste < 0 {
		waste = 0
	}

	res := &models.ExpiryRisk{
		MedicineID:        req.MedicineID,
		RiskProbability:   math.Round(prob*1000) / 1000,
		RiskLevel:         level,
		Recommendation:    rec,
		DaysToExpiry:      req.DaysUntilExpiry,
		ExpectedUnitsSold: expectedSold,
		PotentialWaste:    waste,
		Source:            sourceExpiry,
	}
	p.served(ctx, models.RoleExpiry, req.MedicineID, res.RiskProbability, start)
	return res, nil
}

// PredictExpiryBatch applies the single-item contract per element.
func (p *Predictor) PredictExpiryBatch(ctx context.Context, reqs []models.ExpiryPredictionRequest) []models.ExpiryBatchItem {
	out := make([]models.ExpiryBatchItem, 0, len(reqs))
	for _, req := range reqs {
		item := models.ExpiryBatchItem{MedicineID: req.MedicineID}
		res, err := p.PredictExpiry(ctx, req)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Result = res
		}
		out = append(out, item)
	}
	return out
}

// PredictWeeklyDemand forecasts the daily demand rate for the week after the
// supplied sales history ends.
func (p *Predictor) PredictWeeklyDemand(ctx context.Context, req models.WeeklyDemandRequest) (*models.WeeklyDemandResult, error) {
	model, ok := p.source.Model(models.RoleDemandWeekly)
	if !ok {
		p.metrics.RecordPrediction(string(models.RoleDemandWeekly), "unavailable")
		return nil, ErrModelUnavailable
	}

	start := time.Now()
	buckets, err := features.AggregateWeekly(req.SalesHistory)
	if err != nil {
		return nil, p.failed(models.RoleDemandWeekly, 0, err)
	}
	if len(buckets) == 0 {
		return nil, p.failed(models.RoleDemandWeekly, 0, fmt.Errorf("empty sales history"))
	}

	fv, _ := features.BuildWeeklyFutureVector(buckets)
	weekly, err := model.Predict(fv)
	if err != nil {
		return nil, p.failed(models.RoleDemandWeekly, 0, err)
	}

	daily := math.Max(0, weekly/7)
	res := &models.WeeklyDemandResult{
		PredictedDailyDemand: daily,
		Source:               sourceWeekly,
	}
	p.served(ctx, models.RoleDemandWeekly, 0, daily, start)
	return res, nil
}

// failed logs a feature or model failure and collapses it into the
// unavailability error the caller sees.
func (p *Predictor) failed(role models.Role, medicineID int64, err error) error {
	p.metrics.RecordPrediction(string(role), "failed")
	p.metrics.RecordError("prediction")
	p.logger.Error("prediction failed",
		applogger.String("role", string(role)),
		applogger.Int64("medicine_id", medicineID),
		applogger.Error(err),
	)
	return ErrModelUnavailable
}

func (p *Predictor) served(ctx context.Context, role models.Role, medicineID int64, value float64, start time.Time) {
	p.metrics.RecordPrediction(string(role), "ok")
	p.metrics.RecordLatency(string(role), time.Since(start).Seconds())
	p.audit.Record(ctx, &models.AuditEvent{
		Timestamp:  p.clock(),
		Role:       string(role),
		MedicineID: medicineID,
		Status:     "ok",
		Value:      value,
	})
}
