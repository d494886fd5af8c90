package analysis

import (
	"time"

	"paperpulse/internal/cleaning"
	"paperpulse/pkg/contracts/domain"
)

// Year bounds used when clamping a caller-supplied range to something
// sane. The fallbacks match the window the corpus actually covers.
const (
	YearFloor         = 1900
	yearCeilingMargin = 5
	fallbackMinYear   = 2015
	fallbackMaxYear   = 2023
)

// YearRange is an inclusive [Min, Max] filter over publication years.
type YearRange struct {
	Min int
	Max int
}

// Contains reports whether year falls inside the range.
func (yr YearRange) Contains(year int) bool {
	return year >= yr.Min && year <= yr.Max
}

// FullYearRange covers every representable year; use it to count
// without filtering.
func FullYearRange() YearRange {
	return YearRange{Min: 0, Max: int(^uint(0) >> 1)}
}

// ClampYearRange substitutes sane defaults for out-of-domain bounds
// before they reach CountByYear, which filters literally. Bounds below
// the floor or above the current year plus a small margin are replaced
// with the fallback window.
func ClampYearRange(min, max int) YearRange {
	ceiling := time.Now().Year() + yearCeilingMargin
	if min < YearFloor || min > ceiling {
		min = fallbackMinYear
	}
	if max < YearFloor || max > ceiling {
		max = fallbackMaxYear
	}
	if min > max {
		min, max = max, min
	}
	return YearRange{Min: min, Max: max}
}

// DataYearRange returns the span of years with at least one parseable
// date in the dataset, and ok=false when there is none.
func DataYearRange(ds domain.Dataset, dateField string) (YearRange, bool) {
	var yr YearRange
	found := false
	for _, rec := range ds.Records {
		v, ok := rec.Lookup(dateField)
		if !ok {
			continue
		}
		t, ok := cleaning.ParseDate(v)
		if !ok {
			continue
		}
		y := t.Year()
		if !found {
			yr = YearRange{Min: y, Max: y}
			found = true
			continue
		}
		if y < yr.Min {
			yr.Min = y
		}
		if y > yr.Max {
			yr.Max = y
		}
	}
	return yr, found
}

// CountByYear counts records per publication year, keeping only years
// inside the given range. Records whose date field is absent or still
// unparseable are skipped; post-imputation that should not happen, but
// the aggregator does not rely on it. An empty result is a normal
// outcome, not an error.
func CountByYear(ds domain.Dataset, dateField string, yr YearRange) domain.YearCount {
	counts := make(domain.YearCount)
	for _, rec := range ds.Records {
		v, ok := rec.Lookup(dateField)
		if !ok {
			continue
		}
		t, ok := cleaning.ParseDate(v)
		if !ok {
			continue
		}
		if y := t.Year(); yr.Contains(y) {
			counts[y]++
		}
	}
	return counts
}
