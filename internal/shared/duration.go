package shared

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// iso8601Duration matches the restricted duration shape the video API
// returns: PT[nH][nM][nS], every component optional.
var iso8601Duration = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// UnknownDuration is the display sentinel for durations that fail to parse.
const UnknownDuration = "Unknown"

// ParseDuration converts an ISO-8601 duration string to total seconds.
//
// Malformed input yields 0, never an error; sort keys and summary totals
// treat an unparseable duration as empty rather than failing the run.
func ParseDuration(duration string) int {
	m := iso8601Duration.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}

	hours, _ := strconv.Atoi(zeroed(m[1]))
	minutes, _ := strconv.Atoi(zeroed(m[2]))
	seconds, _ := strconv.Atoi(zeroed(m[3]))

	return hours*3600 + minutes*60 + seconds
}

func zeroed(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// FormatDurationCompact renders total seconds as whole hours with a marker
// for any remainder: "2h" for exactly two hours, "2+h" otherwise.
//
// Used for summary lines where minute precision is noise.
func FormatDurationCompact(totalSeconds int) string {
	hours := totalSeconds / 3600
	if totalSeconds%3600 > 0 {
		return fmt.Sprintf("%d+h", hours)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatDurationParts renders an ISO-8601 duration as its present components,
// e.g. "1h 2m 3s" or "45s". Returns [UnknownDuration] for malformed input.
//
// Used for per-video display where the full breakdown matters.
func FormatDurationParts(duration string) string {
	m := iso8601Duration.FindStringSubmatch(duration)
	if m == nil {
		return UnknownDuration
	}

	var parts []string
	if m[1] != "" {
		parts = append(parts, m[1]+"h")
	}
	if m[2] != "" {
		parts = append(parts, m[2]+"m")
	}
	if m[3] != "" {
		parts = append(parts, m[3]+"s")
	}

	if len(parts) == 0 {
		return UnknownDuration
	}

	return strings.Join(parts, " ")
}
