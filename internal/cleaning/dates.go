package cleaning

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// dateLayouts are tried in order when coercing a raw cell to a date.
// Source data mixes full dates, year-month, bare years, and the
// occasional RFC 3339 timestamp.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01",
	"2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
	"02/01/2006",
}

// ParseDate coerces a raw cell value to a date. It accepts values that
// are already times as well as strings in any of the known layouts.
// Unparseable, empty, and nil values all report ok=false; callers treat
// them exactly like missing values.
func ParseDate(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	}

	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
