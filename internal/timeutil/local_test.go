package timeutil

import "testing"

func TestParseLocal(t *testing.T) {
	tests := []struct {
		in           string
		ok           bool
		hour, minute int
	}{
		{"2025-10-05T10:29:00", true, 10, 29},
		{"2025-10-31T21:14", true, 21, 14},
		{"2025-10-31 21:14:05", true, 21, 14},
		{"", false, 0, 0},
		{"not a date", false, 0, 0},
		{"2025-13-01T10:00", false, 0, 0},
	}

	for _, tt := range tests {
		got, ok := ParseLocal(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseLocal(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && (got.Hour() != tt.hour || got.Minute() != tt.minute) {
			t.Errorf("ParseLocal(%q) = %v", tt.in, got)
		}
	}
}
