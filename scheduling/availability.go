package scheduling

import (
	"time"

	"salonbook-backend/models"
)

// Visibility decides which reservations block the grid.
type Visibility int

const (
	// CustomerView: only approved bookings block.
	CustomerView Visibility = iota
	// AdminView: every booking except rejected ones blocks.
	AdminView
)

// Blocks reports whether a booking with status s occupies its slots.
func (v Visibility) Blocks(s models.BookingStatus) bool {
	s = s.OrDefault()
	if v == CustomerView {
		return s == models.StatusApproved
	}
	return s != models.StatusRejected
}

// FilterBlocking keeps the bookings that block under policy v.
func FilterBlocking(bookings []models.Booking, v Visibility) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if v.Blocks(b.Status) {
			out = append(out, b)
		}
	}
	return out
}

// OccupiedSlots is the union of every booking's expansion. Bookings must
// already be filtered to one date and to the caller's visibility policy.
func (r Rules) OccupiedSlots(bookings []models.Booking) map[string]bool {
	occupied := make(map[string]bool)
	for _, b := range bookings {
		for _, s := range r.ExpandBooking(b) {
			occupied[s] = true
		}
	}
	return occupied
}

// IsSlotOccupied reports whether any booking covers slot.
func (r Rules) IsSlotOccupied(slot string, bookings []models.Booking) bool {
	for _, b := range bookings {
		for _, s := range r.ExpandBooking(b) {
			if s == slot {
				return true
			}
		}
	}
	return false
}

// IsRangeAvailable reports whether every slot a candidate booking needs is
// free. It only checks overlap; opening hours are FitsBusinessHours' job.
func (r Rules) IsRangeAvailable(start string, duration int, bookings []models.Booking) bool {
	return rangeFree(r.RequiredSlotsForStart(start, duration), r.OccupiedSlots(bookings))
}

func rangeFree(required []string, occupied map[string]bool) bool {
	for _, s := range required {
		if occupied[s] {
			return false
		}
	}
	return true
}

// FitsBusinessHours reports whether [start, start+duration) lies within
// opening hours.
func (r Rules) FitsBusinessHours(start string, duration int) bool {
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}
	s := TimeToMinutes(start)
	return s >= TimeToMinutes(r.OpenTime) && s+duration <= TimeToMinutes(r.CloseTime)
}

// OnGrid reports whether start is one of the day's slot starts.
func (r Rules) OnGrid(start string) bool {
	m := TimeToMinutes(start) - TimeToMinutes(r.OpenTime)
	return m >= 0 && m%r.step() == 0 && TimeToMinutes(start) < TimeToMinutes(r.CloseTime)
}

// Slot state reasons.
const (
	ReasonBooked   = "booked"
	ReasonPast     = "past"
	ReasonClosing  = "closing"
	ReasonConflict = "conflict"
	ReasonClosed   = "closed"
)

// SlotState is one start time as offered to a customer.
type SlotState struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// DaySlots lays out every slot of date for a booking of duration minutes.
// bookings must be the latest fetch for that date, already filtered by
// visibility; nothing is cached between calls.
func (r Rules) DaySlots(date, now time.Time, duration int, bookings []models.Booking) []SlotState {
	all := r.AllSlots()
	states := make([]SlotState, 0, len(all))
	if r.IsClosedDay(date) {
		for _, s := range all {
			states = append(states, SlotState{Time: s, Reason: ReasonClosed})
		}
		return states
	}

	startable := make(map[string]bool)
	for _, s := range r.AvailableStartTimesFor(date, all, now) {
		startable[s] = true
	}
	occupied := r.OccupiedSlots(bookings)

	for _, s := range all {
		st := SlotState{Time: s}
		switch {
		case occupied[s]:
			st.Reason = ReasonBooked
		case !startable[s]:
			st.Reason = ReasonPast
		case !r.FitsBusinessHours(s, duration):
			st.Reason = ReasonClosing
		case !rangeFree(r.RequiredSlotsForStart(s, duration), occupied):
			st.Reason = ReasonConflict
		default:
			st.Available = true
		}
		states = append(states, st)
	}
	return states
}

// OfferedStartTimes lists only the available starts from DaySlots.
func OfferedStartTimes(states []SlotState) []string {
	out := make([]string, 0, len(states))
	for _, st := range states {
		if st.Available {
			out = append(out, st.Time)
		}
	}
	return out
}
