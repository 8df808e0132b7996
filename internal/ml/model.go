package ml

import (
	"time"

	"RxPulse/internal/domain/models"
)

// Model is a loaded trained-model handle. Implementations are read-only after
// load and safe for concurrent use.
type Model interface {
	// FeatureNames returns the ordered feature schema the model was trained
	// on, or nil when the model accepts any vector.
	FeatureNames() []string
	Predict(fv *models.FeatureVector) (float64, error)
}

// ProbabilityModel is implemented by classifiers that expose a calibrated
// probability in addition to the raw prediction.
type ProbabilityModel interface {
	Model
	PredictProbability(fv *models.FeatureVector) (float64, error)
}

// TimeSeriesModel produces a daily forecast from a trained global
// time-series artifact.
type TimeSeriesModel interface {
	Forecast(start time.Time, periods int) []models.ForecastPoint
}
