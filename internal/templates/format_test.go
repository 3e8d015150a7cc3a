package templates

import (
	"testing"
	"time"
)

func TestNumberFormats(t *testing.T) {
	tests := []struct {
		name   string
		format func(float64) string
		in     float64
		want   string
	}{
		{"grouped", GroupedNumber, 4860, "4,860"},
		{"grouped small", GroupedNumber, 35, "35"},
		{"grouped million", GroupedNumber, 1234567, "1,234,567"},
		{"plain", PlainNumber, 4860, "4860"},
		{"arabic grouped", ArabicGrouped, 4860, "٤٬٨٦٠"},
		{"arabic plain", ArabicPlain, 3860, "٣٨٦٠"},
		{"shortest integer", ShortestNumber, 35, "35"},
		{"shortest fraction", ShortestNumber, 35.5, "35.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateFormats(t *testing.T) {
	morning := time.Date(2025, 10, 5, 10, 29, 0, 0, time.UTC)
	evening := time.Date(2025, 10, 31, 21, 14, 0, 0, time.UTC)
	midnight := time.Date(2025, 1, 2, 0, 5, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format func(time.Time) string
		in     time.Time
		want   string
	}{
		{"clock12 morning", Clock12, morning, "١٠:٢٩:٠٠ ص"},
		{"clock12 evening", Clock12, evening, "٠٩:١٤:٠٠ م"},
		{"clock12 midnight", Clock12, midnight, "١٢:٠٥:٠٠ ص"},
		{"short clock", ShortClock12, evening, "٩:١٤ م"},
		{"clock24", Clock24, evening, "٢١:١٤"},
		{"period am", Period, morning, "ص"},
		{"period pm", Period, evening, "م"},
		{"day month year", DayMonthYear, morning, "05/10/2025"},
		{"year month day", YearMonthDay, morning, "2025/10/05"},
		{"long date", LongDate, morning, "٥ أكتوبر ٢٠٢٥"},
		{"arabic day month year", arabicDayMonthYear, morning, "٠٥\u200f/١٠\u200f/٢٠٢٥"},
		{"arabic day month year clock", arabicDayMonthYearClock, evening, "٣١\u200f/١٠\u200f/٢٠٢٥، ٠٩:١٤:٠٠ م"},
		{"long date january", LongDate, midnight, "٢ يناير ٢٠٢٥"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateFormatBlankOnBadInput(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2025-02-30T10:00"} {
		if got := dateFormat(in, YearMonthDay); got != "" {
			t.Errorf("dateFormat(%q) = %q, want blank", in, got)
		}
	}
}
