package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToMinutes parses a wall-clock string ("HH:MM" or "HH:MM:SS") into
// minutes since midnight. Seconds are accepted and discarded.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}

	return hours*60 + minutes, nil
}

// Clock formats minutes since midnight as "HH:MM".
func Clock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DurationHours returns the span between two minutes-since-midnight values
// in hours, rounded to 2 decimals. Returns nil when either side is missing
// or end precedes (or equals) start; overnight spans are not supported.
func DurationHours(start, end *int) *float64 {
	if start == nil || end == nil {
		return nil
	}
	if *end <= *start {
		return nil
	}

	hours := math.Round(float64(*end-*start)/60*100) / 100
	return &hours
}
