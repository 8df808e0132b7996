package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"RxPulse/internal/domain/models"
)

// seasonalArtifact is the on-disk dump of the global demand time-series
// model: an additive level/trend curve with weekly seasonality and a fixed
// uncertainty interval, fitted offline across all medicines.
type seasonalArtifact struct {
	SchemaVersion int        `json:"schema_version"`
	ModelType     string     `json:"model_type"`
	Level         float64    `json:"level"`
	TrendPerDay   float64    `json:"trend_per_day"`
	Weekly        [7]float64 `json:"weekly"`
	IntervalSigma float64    `json:"interval_sigma"`
}

// SeasonalModel implements TimeSeriesModel over a loaded seasonal artifact.
type SeasonalModel struct {
	artifact seasonalArtifact
}

// LoadSeasonal reads and validates a seasonal time-series artifact from path.
func LoadSeasonal(path string) (*SeasonalModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a seasonalArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if a.IntervalSigma < 0 {
		return nil, fmt.Errorf("artifact %s: negative interval_sigma", path)
	}

	return &SeasonalModel{artifact: a}, nil
}

// Forecast generates daily forecast points starting at start. Values and
// bounds are floored at zero.
func (m *SeasonalModel) Forecast(start time.Time, periods int) []models.ForecastPoint {
	out := make([]models.ForecastPoint, 0, periods)
	for i := 0; i < periods; i++ {
		date := start.AddDate(0, 0, i)
		yhat := m.artifact.Level + m.artifact.TrendPerDay*float64(i) + m.artifact.Weekly[int(date.Weekday())]
		out = append(out, models.ForecastPoint{
			Date:            date.Format("2006-01-02"),
			PredictedDemand: floorZero(yhat),
			LowerBound:      floorZero(yhat - m.artifact.IntervalSigma),
			UpperBound:      floorZero(yhat + m.artifact.IntervalSigma),
		})
	}
	return out
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var _ TimeSeriesModel = (*SeasonalModel)(nil)
