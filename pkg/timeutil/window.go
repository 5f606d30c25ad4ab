// Package timeutil parses human-friendly lookback windows like "2w" or
// "3d12h", used to filter meetings by age.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultWindow is the fallback lookback used when none is provided.
const DefaultWindow = "2w"

var units = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "wk": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
}

// ParseWindow parses a window like "1w", "3d" or "1w2d6h" and returns the
// duration plus its canonical compact form. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(input), " ", ""))
	if s == "" {
		s = DefaultWindow
	}

	var total time.Duration
	for len(s) > 0 {
		i := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, "", fmt.Errorf("timeutil: window segment %q has no count", s)
		}
		var n int64
		for _, c := range s[:i] {
			n = n*10 + int64(c-'0')
		}
		j := i
		for j < len(s) && (s[j] < '0' || s[j] > '9') {
			j++
		}
		unit, ok := units[s[i:j]]
		if !ok {
			return 0, "", fmt.Errorf("timeutil: unknown window unit %q", s[i:j])
		}
		total += time.Duration(n) * unit
		s = s[j:]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("timeutil: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders a duration with week/day/hour/minute/second tokens.
func FormatWindow(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}

	type unit struct {
		label string
		value time.Duration
	}
	order := []unit{
		{"w", 7 * 24 * time.Hour},
		{"d", 24 * time.Hour},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	rest := d
	for _, u := range order {
		if rest < u.value {
			continue
		}
		count := rest / u.value
		rest -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}

// Since reports whether t falls inside the window ending now. Zero times
// never match.
func Since(t time.Time, window time.Duration) bool {
	if t.IsZero() {
		return false
	}
	return time.Since(t) <= window
}
