package timeutil

import (
	"strings"
	"time"
)

// Local is the weighbridge's wall-clock zone (Egypt)
var Local *time.Location

func init() {
	var err error
	Local, err = time.LoadLocation("Africa/Cairo")
	if err != nil {
		// Fallback: fixed zone if tzdata is not available
		Local = time.FixedZone("EET", 2*60*60) // UTC+2
	}
}

// Now returns the current time in the local zone
func Now() time.Time {
	return time.Now().In(Local)
}

// ToLocal converts any time to the local zone
func ToLocal(t time.Time) time.Time {
	return t.In(Local)
}

// FormatLocal formats a time in the local zone using the given layout
func FormatLocal(t time.Time, layout string) string {
	return t.In(Local).Format(layout)
}

// Ticket dates are stored as wall time without a zone
const (
	DateLayout          = "2006-01-02"
	TimeLayout          = "15:04:05"
	DateTimeLayout      = "2006-01-02 15:04:05"
	LocalDateTimeLayout = "2006-01-02T15:04:05"
	LocalMinuteLayout   = "2006-01-02T15:04"
)

var localLayouts = []string{
	LocalDateTimeLayout,
	LocalMinuteLayout,
	DateTimeLayout,
	"2006-01-02 15:04",
	time.RFC3339,
	DateLayout,
}

// ParseLocal reads a ticket date. Zoned values are converted to the local zone;
// zone-less values are taken as local wall time. ok is false for empty or unparseable input.
func ParseLocal(value string) (t time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range localLayouts {
		if layout == time.RFC3339 {
			if parsed, err := time.Parse(layout, value); err == nil {
				return parsed.In(Local), true
			}
			continue
		}
		if parsed, err := time.ParseInLocation(layout, value, Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
