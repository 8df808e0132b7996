package ml

import (
	"path/filepath"
	"testing"
	"time"
)

const seasonalBody = `{
	"schema_version": 1,
	"model_type": "seasonal_trend",
	"level": 100,
	"trend_per_day": 1,
	"weekly": [5, 0, 0, 0, 0, 0, -5],
	"interval_sigma": 15
}`

func loadTestSeasonal(t *testing.T, body string) (*SeasonalModel, error) {
	t.Helper()
	dir := t.TempDir()
	writeArtifact(t, dir, "ts.json", body)
	return LoadSeasonal(filepath.Join(dir, "ts.json"))
}

func TestSeasonalForecast(t *testing.T) {
	m, err := loadTestSeasonal(t, seasonalBody)
	if err != nil {
		t.Fatal(err)
	}

	start := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC) // Sunday
	out := m.Forecast(start, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out))
	}

	// Sunday: level + 0*trend + weekly[0]
	if out[0].PredictedDemand != 105 {
		t.Errorf("day 0 = %v, want 105", out[0].PredictedDemand)
	}
	// Monday: level + 1*trend + weekly[1]
	if out[1].PredictedDemand != 101 {
		t.Errorf("day 1 = %v, want 101", out[1].PredictedDemand)
	}
	if out[0].Date != "2025-03-30" || out[2].Date != "2025-04-01" {
		t.Errorf("unexpected dates %s..%s", out[0].Date, out[2].Date)
	}
	if out[0].LowerBound != 90 || out[0].UpperBound != 120 {
		t.Errorf("bounds = [%v, %v], want [90, 120]", out[0].LowerBound, out[0].UpperBound)
	}
}

func TestSeasonalForecastFloorsAtZero(t *testing.T) {
	m, err := loadTestSeasonal(t, `{"level": 2, "trend_per_day": -10, "weekly": [0,0,0,0,0,0,0], "interval_sigma": 5}`)
	if err != nil {
		t.Fatal(err)
	}

	out := m.Forecast(time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC), 2)
	if out[0].LowerBound != 0 {
		t.Errorf("lower bound = %v, want 0", out[0].LowerBound)
	}
	if out[1].PredictedDemand != 0 {
		t.Errorf("day 1 = %v, want 0", out[1].PredictedDemand)
	}
}

func TestLoadSeasonalRejectsNegativeSigma(t *testing.T) {
	if _, err := loadTestSeasonal(t, `{"level": 1, "interval_sigma": -1, "weekly": [0,0,0,0,0,0,0]}`); err == nil {
		t.Error("expected error for negative sigma")
	}
}
