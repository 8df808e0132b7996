package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RxPulse/internal/domain/models"
	drepo "RxPulse/internal/domain/repository"
	"RxPulse/pkg/cache"
	applogger "RxPulse/pkg/logger"
)

type stubTimeSeries struct {
	value float64
	sigma float64
	limit int // when >0, cap the returned points regardless of periods
	calls int
}

func (s *stubTimeSeries) Forecast(start time.Time, periods int) []models.ForecastPoint {
	s.calls++
	n := periods
	if s.limit > 0 && s.limit < n {
		n = s.limit
	}
	out := make([]models.ForecastPoint, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ForecastPoint{
			Date:            start.AddDate(0, 0, i).Format("2006-01-02"),
			PredictedDemand: s.value,
			LowerBound:      s.value - s.sigma,
			UpperBound:      s.value + s.sigma,
		})
	}
	return out
}

func newTestForecaster(ts *stubTimeSeries, c cache.Service) *Forecaster {
	src := stubSource{}
	if ts != nil {
		src.ts = ts
	}
	return NewForecaster(src, c, time.Minute, drepo.NopMetrics{}, applogger.Nop(), testClock)
}

func TestGlobalForecastUnavailable(t *testing.T) {
	f := newTestForecaster(nil, nil)

	_, err := f.GlobalForecast(context.Background(), 28)
	require.ErrorIs(t, err, ErrModelUnavailable)
}

func TestGlobalForecastCachesResult(t *testing.T) {
	ts := &stubTimeSeries{value: 100, sigma: 15}
	mem := cache.NewMemoryCache(time.Minute)
	defer mem.Close()
	f := newTestForecaster(ts, mem)

	first, err := f.GlobalForecast(context.Background(), 28)
	require.NoError(t, err)
	second, err := f.GlobalForecast(context.Background(), 28)
	require.NoError(t, err)

	assert.Equal(t, 1, ts.calls)
	assert.Equal(t, first, second)
}

func TestForecastForMedicineRescale(t *testing.T) {
	ts := &stubTimeSeries{value: 100, sigma: 15}
	f := newTestForecaster(ts, nil)

	out, err := f.ForecastForMedicine(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, out, 4)

	for i, p := range out {
		assert.Equal(t, i+1, p.Week)
		assert.Equal(t, 50.0, p.PredictedDaily)
		assert.Equal(t, 350, p.PredictedWeekly) // scale 0.5 over a flat 100/day
		assert.Equal(t, 298, p.LowerBound)      // 85*7*0.5 rounded
		assert.Equal(t, 403, p.UpperBound)      // 115*7*0.5 rounded
		assert.Equal(t, 1.0, p.TrendFactor)
	}
	assert.Equal(t, "Week 1", out[0].WeekLabel)
	assert.Equal(t, "2025-03-31", out[0].WeekStart)
	assert.Equal(t, "2025-04-07", out[1].WeekStart)
}

func TestForecastForMedicineShortGlobal(t *testing.T) {
	ts := &stubTimeSeries{value: 100, sigma: 15, limit: 20}
	f := newTestForecaster(ts, nil)

	out, err := f.ForecastForMedicine(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestForecastForMedicineUnavailable(t *testing.T) {
	f := newTestForecaster(nil, nil)

	out, err := f.ForecastForMedicine(context.Background(), 50)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestForecastForMedicineZeroGlobalAverage(t *testing.T) {
	// A flat-zero global forecast must not propagate Infinity; the scale
	// factor collapses to zero instead.
	ts := &stubTimeSeries{value: 0, sigma: 0}
	f := newTestForecaster(ts, nil)

	out, err := f.ForecastForMedicine(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, p := range out {
		assert.Equal(t, 0.0, p.PredictedDaily)
		assert.Equal(t, 0, p.PredictedWeekly)
	}
}
