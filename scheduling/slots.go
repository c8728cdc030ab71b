package scheduling

import "salonbook-backend/models"

// ExpandToSlots returns every grid tick in [start, start+duration).
// A non-positive duration is treated as absent and becomes 30 minutes;
// a non-positive step falls back to the default granularity.
func ExpandToSlots(start string, duration, step int) []string {
	if start == "" {
		return nil
	}
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	if step <= 0 {
		step = DefaultSlotMinutes
	}
	return expand(TimeToMinutes(start), duration, step)
}

func expand(startMinutes, duration, step int) []string {
	end := startMinutes + duration
	slots := make([]string, 0, (duration+step-1)/step)
	for m := startMinutes; m < end; m += step {
		slots = append(slots, MinutesToTime(m))
	}
	return slots
}

// RequiredSlotsForStart expands a candidate booking on the configured grid.
func (r Rules) RequiredSlotsForStart(start string, duration int) []string {
	return ExpandToSlots(start, duration, r.step())
}

// ExpandBooking expands a stored booking on the configured grid.
func (r Rules) ExpandBooking(b models.Booking) []string {
	return ExpandToSlots(b.Time, b.DurationMinutes, r.step())
}
