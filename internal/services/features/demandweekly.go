package features

import (
	"fmt"
	"sort"
	"time"

	"RxPulse/internal/domain/models"
)

// WeeklyBucket is one aggregated week of sales, Monday week start.
type WeeklyBucket struct {
	WeekStart  time.Time
	Qty        float64
	OrderCount float64
}

const salesDateLayout = "2006-01-02"

// AggregateWeekly sums a daily sales history into weekly buckets ordered by
// week start. Quantities are summed, orders counted.
func AggregateWeekly(history []models.SalesPoint) ([]WeeklyBucket, error) {
	byWeek := make(map[time.Time]*WeeklyBucket)
	for _, p := range history {
		t, err := time.Parse(salesDateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("parse sales date %q: %w", p.Date, err)
		}
		ws := weekStart(t)
		b, ok := byWeek[ws]
		if !ok {
			b = &WeeklyBucket{WeekStart: ws}
			byWeek[ws] = b
		}
		b.Qty += p.Qty
		b.OrderCount++
	}

	out := make([]WeeklyBucket, 0, len(byWeek))
	for _, b := range byWeek {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WeekStart.Before(out[j].WeekStart) })
	return out, nil
}

// weekStart truncates a date to the Monday of its week.
func weekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return d.AddDate(0, 0, -pythonWeekday(d))
}

// BuildWeeklyFutureVector reconstructs the weekly demand model's field
// sequence for the one unobserved week following the aggregated history.
// Every statistic is computed over weeks strictly before the predicted one,
// so the target week's own quantity can never reach its features. The cost
// field is pinned to zero: the model shape carries it but monetary values
// must not flow into this role. Returns the vector and the predicted week's
// start date.
func BuildWeeklyFutureVector(buckets []WeeklyBucket) (*models.FeatureVector, time.Time) {
	n := len(buckets)
	future := buckets[n-1].WeekStart.AddDate(0, 0, 7)

	qty := make([]float64, n)
	counts := make([]float64, n)
	for i, b := range buckets {
		qty[i] = b.Qty
		counts[i] = b.OrderCount
	}

	lag1 := qty[n-1]
	lag4 := 0.0
	if n >= 4 {
		lag4 = qty[n-4]
	}

	prevCount := counts[n-1]
	if prevCount == 0 {
		prevCount = 1
	}

	day := future.Day()
	month := future.Month()
	lastDay := future.AddDate(0, 0, 1).Month() != month

	fv := models.NewFeatureVector(17)
	fv.Append("cost", 0)
	fv.Append("order_count", 0)
	fv.Append("medicine_count", 1)
	fv.Append("is_month_start", boolFeature(day == 1))
	fv.Append("is_month_end", boolFeature(lastDay))
	fv.Append("is_quarter_start", boolFeature(day == 1 && (month == time.January || month == time.April || month == time.July || month == time.October)))
	fv.Append("is_quarter_end", boolFeature(lastDay && (month == time.March || month == time.June || month == time.September || month == time.December)))
	fv.Append("week_of_month", float64(day/7+1))
	fv.Append("month", float64(month))
	fv.Append("y_rolling_4w", Mean(lastN(qty, 4)))
	fv.Append("y_rolling_8w", Mean(lastN(qty, 8)))
	fv.Append("y_rolling_12w", Mean(lastN(qty, 12)))
	fv.Append("y_lag_1w", lag1)
	fv.Append("y_lag_4w", lag4)
	fv.Append("order_count_trend", Mean(lastN(counts, 4)))
	fv.Append("avg_order_size", lag1/prevCount)
	fv.Append("y_volatility", SampleStd(lastN(qty, 4)))
	return fv, future
}
