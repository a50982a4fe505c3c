package shared

import (
	"fmt"
	"testing"
)

func TestParseDuration(t *testing.T) {
	tc := []struct {
		name     string
		duration string
		want     int
	}{
		{name: "full duration", duration: "PT1H2M3S", want: 3723},
		{name: "seconds only", duration: "PT45S", want: 45},
		{name: "minutes only", duration: "PT10M", want: 600},
		{name: "hours only", duration: "PT2H", want: 7200},
		{name: "hours and seconds", duration: "PT1H30S", want: 3630},
		{name: "garbage", duration: "garbage", want: 0},
		{name: "empty string", duration: "", want: 0},
		{name: "missing prefix", duration: "1H2M3S", want: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDuration(tt.duration); got != tt.want {
				t.Errorf("ParseDuration(%q) = %d, want %d", tt.duration, got, tt.want)
			}
		})
	}

	t.Run("round trips constructed durations", func(t *testing.T) {
		for _, want := range []int{0, 1, 59, 60, 3599, 3600, 3723, 86399} {
			h := want / 3600
			m := (want % 3600) / 60
			s := want % 60
			constructed := fmt.Sprintf("PT%dH%dM%dS", h, m, s)
			if got := ParseDuration(constructed); got != want {
				t.Errorf("ParseDuration(%q) = %d, want %d", constructed, got, want)
			}
		}
	})
}

func TestFormatDurationCompact(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "exact hours", seconds: 7200, want: "2h"},
		{name: "remainder", seconds: 7260, want: "2+h"},
		{name: "under an hour", seconds: 45, want: "0+h"},
		{name: "zero", seconds: 0, want: "0h"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDurationCompact(tt.seconds); got != tt.want {
				t.Errorf("FormatDurationCompact(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDurationParts(t *testing.T) {
	tc := []struct {
		name     string
		duration string
		want     string
	}{
		{name: "full duration", duration: "PT1H2M3S", want: "1h 2m 3s"},
		{name: "seconds only", duration: "PT45S", want: "45s"},
		{name: "hours and minutes", duration: "PT12H5M", want: "12h 5m"},
		{name: "garbage", duration: "garbage", want: UnknownDuration},
		{name: "empty components", duration: "PT", want: UnknownDuration},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDurationParts(tt.duration); got != tt.want {
				t.Errorf("FormatDurationParts(%q) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
