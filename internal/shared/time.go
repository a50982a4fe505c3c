package shared

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders how long ago t was in the largest sensible
// unit ("3 days ago", "2 years ago"). Zero and future times render as an
// empty string.
func FormatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	elapsed := time.Since(t)
	if elapsed < 0 {
		return ""
	}

	plural := func(n int64, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int64(elapsed.Minutes()), "minute")
	case elapsed < 24*time.Hour:
		return plural(int64(elapsed.Hours()), "hour")
	case elapsed < 30*24*time.Hour:
		return plural(int64(elapsed.Hours()/24), "day")
	case elapsed < 365*24*time.Hour:
		return plural(int64(elapsed.Hours()/(24*30)), "month")
	default:
		return plural(int64(elapsed.Hours()/(24*365)), "year")
	}
}
