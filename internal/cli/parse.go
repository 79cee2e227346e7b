package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var startLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

// parseStart reads a start time in loc. A bare "15:04" means today; an empty
// string means now.
func parseStart(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Truncate(time.Minute), nil
	}
	if clock, err := time.ParseInLocation("15:04", s, loc); err == nil {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), nil
	}
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid start time %q (use HH:MM or YYYY-MM-DD HH:MM)", s)
}

// parseMonth accepts 1-12 or an English month name or prefix.
func parseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month %d outside 1-12", n)
		}
		return time.Month(n), nil
	}
	lower := strings.ToLower(s)
	if len(lower) >= 3 {
		for m := time.January; m <= time.December; m++ {
			if strings.HasPrefix(strings.ToLower(m.String()), lower) {
				return m, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}
