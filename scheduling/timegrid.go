// Package scheduling converts the salon's service catalog and existing
// reservations into a fixed-granularity day grid and decides whether a new
// booking fits. Everything here is a pure function of its arguments; the
// business rules arrive as an immutable Rules value.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultSlotMinutes is the grid granularity when none is configured.
	DefaultSlotMinutes = 15
	// DefaultDurationMinutes stands in for a missing booking duration.
	DefaultDurationMinutes = 30
)

// TimeToMinutes parses "H:M" or "HH:MM" into minutes since midnight.
// A missing or malformed component counts as 0; seconds are ignored.
func TimeToMinutes(hhmm string) int {
	parts := strings.Split(hhmm, ":")
	h := atoiOrZero(parts[0])
	m := 0
	if len(parts) > 1 {
		m = atoiOrZero(parts[1])
	}
	return h*60 + m
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// MinutesToTime formats minutes since midnight as zero-padded HH:MM.
// There is no day rollover: 1440 renders as "24:00".
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots returns every slot start t with open <= t < close,
// stepping by step minutes.
func GenerateTimeSlots(open, close string, step int) []string {
	if step <= 0 {
		step = DefaultSlotMinutes
	}
	start := TimeToMinutes(open)
	end := TimeToMinutes(close)
	if end <= start {
		return nil
	}

	slots := make([]string, 0, (end-start+step-1)/step)
	for m := start; m < end; m += step {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}
