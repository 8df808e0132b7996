package features

import "time"

// pythonWeekday maps Go's Sunday=0 convention onto the Monday=0 numbering
// the training data was encoded with.
func pythonWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func quarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// calendarFields holds the shared calendar-derived fields both the inventory
// and weekly vectors embed. All cutoffs mirror the encodings used at
// training time.
type calendarFields struct {
	DayOfWeek      float64
	DayOfMonth     float64
	Month          float64
	Quarter        float64
	IsWeekend      float64
	IsMonthStart   float64
	IsMonthEnd     float64
	IsQuarterStart float64
	IsQuarterEnd   float64
}

func calendarAt(t time.Time) calendarFields {
	day := t.Day()
	month := t.Month()
	wd := pythonWeekday(t)
	return calendarFields{
		DayOfWeek:      float64(wd),
		DayOfMonth:     float64(day),
		Month:          float64(month),
		Quarter:        float64(quarter(month)),
		IsWeekend:      boolFeature(wd >= 5),
		IsMonthStart:   boolFeature(day <= 3),
		IsMonthEnd:     boolFeature(day >= 28),
		IsQuarterStart: boolFeature((month == time.January || month == time.April || month == time.July || month == time.October) && day <= 3),
		IsQuarterEnd:   boolFeature((month == time.March || month == time.June || month == time.September || month == time.December) && day >= 28),
	}
}
