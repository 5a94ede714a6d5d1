package models

import (
	"strings"
	"time"
)

// WIB is the fixed civil timezone every calendar decision is made in.
// GreatDay timestamps describe wall-clock times in this zone even when
// they carry a trailing "Z", so the suffix is stripped rather than honored.
var WIB = time.FixedZone("WIB", 7*60*60)

// DateLayout is the canonical calendar-day format used for window
// boundaries, idempotency keys and day bucketing. Fixed-width, so day
// strings compare correctly with plain string comparison.
const DateLayout = "2006-01-02"

var wallClockLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWIBTime interprets a GreatDay timestamp as a WIB wall-clock time.
// A trailing UTC designator is informational only and is dropped. An
// empty or unparseable value returns nil: absence of evidence, not a
// zero instant.
func ParseWIBTime(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if strings.HasSuffix(trimmed, "Z") {
		trimmed = strings.TrimSuffix(trimmed, "Z")
	}

	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, WIB); err == nil {
			return &t
		}
	}
	return nil
}

// FormatDateYMD renders the WIB calendar day a time falls on.
func FormatDateYMD(t time.Time) string {
	return t.In(WIB).Format(DateLayout)
}

// DayOf returns the WIB calendar day of a raw timestamp, or "" when the
// timestamp has no value.
func DayOf(value string) string {
	t := ParseWIBTime(value)
	if t == nil {
		return ""
	}
	return FormatDateYMD(*t)
}
