package ml

import (
	"math"
	"time"

	"RxPulse/internal/domain/models"
)

// Mock handles for environments without model artifacts. They implement the
// same interfaces as real handles with deterministic rule-based outputs, so
// the full request path stays exercisable.

type mockInventory struct{}

func newMockInventory() Model { return mockInventory{} }

func (mockInventory) FeatureNames() []string { return nil }

// Predict recommends thirty days of cover at the estimated daily demand.
func (mockInventory) Predict(fv *models.FeatureVector) (float64, error) {
	daily, _ := fv.Get("estimated_daily_demand")
	return daily * 30, nil
}

type mockExpiry struct{}

func newMockExpiry() Model { return mockExpiry{} }

func (mockExpiry) FeatureNames() []string { return nil }

func (mockExpiry) Predict(fv *models.FeatureVector) (float64, error) {
	days, _ := fv.Get("days_until_expiry")
	switch {
	case days < 30:
		return 0.85, nil
	case days < 90:
		return 0.45, nil
	default:
		return 0.1, nil
	}
}

func (mockExpiry) PredictProbability(fv *models.FeatureVector) (float64, error) {
	return mockExpiry{}.Predict(fv)
}

type mockWeekly struct{}

func newMockWeekly() Model { return mockWeekly{} }

func (mockWeekly) FeatureNames() []string { return nil }

// Predict carries last week's quantity forward.
func (mockWeekly) Predict(fv *models.FeatureVector) (float64, error) {
	lag, _ := fv.Get("y_lag_1w")
	return lag, nil
}

type mockTimeSeries struct{}

func newMockTimeSeries() TimeSeriesModel { return mockTimeSeries{} }

func (mockTimeSeries) Forecast(start time.Time, periods int) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, periods)
	for i := 0; i < periods; i++ {
		v := 100 + 20*math.Sin(float64(i)*0.5)
		out = append(out, models.ForecastPoint{
			Date:            start.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedDemand: v,
			LowerBound:      math.Max(0, v-15),
			UpperBound:      v + 15,
		})
	}
	return out
}

var _ ProbabilityModel = mockExpiry{}
