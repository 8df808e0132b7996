package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"RxPulse/internal/domain/models"
	drepo "RxPulse/internal/domain/repository"
	"RxPulse/pkg/cache"
	applogger "RxPulse/pkg/logger"
)

// rescaleWindowDays is the span of global forecast required to rescale onto
// four per-medicine weeks. Shorter forecasts yield an empty result rather
// than a partial one.
const rescaleWindowDays = 28

// Forecaster serves the global demand forecast and rescales it onto
// individual medicines. The global forecast is entity-agnostic, so it is the
// only result that ever passes through the cache.
type Forecaster struct {
	source   ModelSource
	cache    cache.Service
	cacheTTL time.Duration
	metrics  drepo.Metrics
	logger   *applogger.Logger
	clock    Clock
}

// NewForecaster creates a Forecaster. cacheSvc may be nil to disable
// caching; a nil clock defaults to time.Now.
func NewForecaster(
	source ModelSource,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	clock Clock,
) *Forecaster {
	if clock == nil {
		clock = time.Now
	}
	return &Forecaster{
		source:   source,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		metrics:  metrics,
		logger:   logger,
		clock:    clock,
	}
}

// GlobalForecast returns the next periods days of the global demand
// forecast, starting tomorrow.
func (f *Forecaster) GlobalForecast(ctx context.Context, periods int) ([]models.ForecastPoint, error) {
	ts, ok := f.source.TimeSeries()
	if !ok {
		f.metrics.RecordPrediction(string(models.RoleDemandTimeseries), "unavailable")
		return nil, ErrModelUnavailable
	}

	key := fmt.Sprintf("forecast:demand:%d", periods)
	if f.cache != nil {
		var cached []models.ForecastPoint
		if err := f.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		} else if err != cache.ErrCacheMiss {
			f.logger.Warn("forecast cache read failed", applogger.Error(err))
		}
	}

	start := time.Now()
	points := ts.Forecast(f.clock().AddDate(0, 0, 1), periods)
	f.metrics.RecordPrediction(string(models.RoleDemandTimeseries), "ok")
	f.metrics.RecordLatency(string(models.RoleDemandTimeseries), time.Since(start).Seconds())

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, points, f.cacheTTL); err != nil {
			f.logger.Warn("forecast cache write failed", applogger.Error(err))
		}
	}
	return points, nil
}

// ForecastForMedicine rescales the 28-day global forecast onto one medicine
// using its average daily sales as the scaling anchor. When the global model
// is unavailable or its forecast is short, the result is empty; there is no
// heuristic fallback.
func (f *Forecaster) ForecastForMedicine(ctx context.Context, avgDailySales float64) ([]models.WeeklyForecastPoint, error) {
	global, err := f.GlobalForecast(ctx, rescaleWindowDays)
	if err != nil || len(global) < rescaleWindowDays {
		return []models.WeeklyForecastPoint{}, nil
	}

	var total float64
	for _, p := range global[:rescaleWindowDays] {
		total += p.PredictedDemand
	}
	globalAvg := total / rescaleWindowDays

	scale := 0.0
	if globalAvg > 0 {
		scale = avgDailySales / globalAvg
	}

	today := f.clock()
	out := make([]models.WeeklyForecastPoint, 0, 4)
	for week := 1; week <= 4; week++ {
		window := global[(week-1)*7 : week*7]

		var demand, lower, upper float64
		for _, p := range window {
			demand += p.PredictedDemand
			lower += p.LowerBound
			upper += p.UpperBound
		}
		windowAvg := demand / 7

		trend := 1.0
		if globalAvg > 0 {
			trend = windowAvg / globalAvg
		}

		daily := windowAvg * scale
		out = append(out, models.WeeklyForecastPoint{
			Week:            week,
			WeekStart:       today.AddDate(0, 0, (week-1)*7).Format("2006-01-02"),
			WeekLabel:       fmt.Sprintf("Week %d", week),
			PredictedDaily:  math.Round(daily*10) / 10,
			PredictedWeekly: int(math.Round(daily * 7)),
			LowerBound:      int(math.Max(0, math.Round(lower*scale))),
			UpperBound:      int(math.Round(upper * scale)),
			TrendFactor:     math.Round(trend*100) / 100,
			Source:          sourceTimeseries,
		})
	}
	return out, nil
}
