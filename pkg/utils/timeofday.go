package utils

import (
	"fmt"
	"strconv"
	"strings"

	"arrivals-board/internal/domain/entity"
)

// minutesPerDay is the wraparound added when an estimate rolls past midnight.
const minutesPerDay = 24 * 60

// ParseTimeOfDay parses a strict 24-hour "HH:mm" string into minutes since
// midnight. Anything but two colon-separated in-range integers fails with
// entity.ErrFormat.
func ParseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", entity.ErrFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", entity.ErrFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", entity.ErrFormat, s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", entity.ErrFormat, s)
	}

	return hours*60 + minutes, nil
}

// DelayMinutes computes estimated minus scheduled in minutes. A negative
// difference is treated as the estimate rolling into the next day and is
// wrapped by +1440. This is a simplifying heuristic, not a calendar
// computation.
func DelayMinutes(scheduled, estimated string) (int, error) {
	schedMin, err := ParseTimeOfDay(scheduled)
	if err != nil {
		return 0, err
	}
	estMin, err := ParseTimeOfDay(estimated)
	if err != nil {
		return 0, err
	}

	diff := estMin - schedMin
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff, nil
}

// FormatDelay renders a delay duration for display: "<h>ч <m>м" from one
// hour up, "<m> мин" below that, and the empty string for a non-positive
// delay. Callers that need an "unknown" placeholder supply it themselves.
func FormatDelay(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dч %dм", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d мин", minutes)
}
