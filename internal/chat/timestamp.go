package chat

import (
	"strings"
	"time"
)

// TimestampLayout is the display layout, e.g. "Jan 5, 2024, 03:04:05 PM".
const TimestampLayout = "Jan 2, 2006, 03:04:05 PM"

// zoned layouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
}

// naive layouts have no zone and are read as UTC
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a server timestamp. Values without a zone are UTC.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders a raw server timestamp in the local time zone.
// Unparseable values are returned unchanged.
func FormatTimestamp(raw string) string {
	return FormatTimestampIn(raw, time.Local)
}

// FormatTimestampIn renders a raw server timestamp in loc.
func FormatTimestampIn(raw string, loc *time.Location) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return raw
	}
	return t.In(loc).Format(TimestampLayout)
}
