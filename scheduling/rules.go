package scheduling

import (
	"errors"
	"fmt"
	"time"

	"salonbook-backend/utils"
)

// Rules is the salon's booking configuration. It is built once at startup
// and passed by value; nothing mutates it afterwards.
type Rules struct {
	OpenTime            string
	CloseTime           string
	SlotMinutes         int
	ClosedDays          []time.Weekday
	MinBookingDays      int
	MaxBookingDaysAhead int // 0 disables the look-ahead limit
	Location            *time.Location
}

// DefaultRules mirrors the salon's published hours: Monday to Saturday
// 08:00-17:00 on a 15 minute grid, bookable from two days out up to 90.
func DefaultRules() Rules {
	return Rules{
		OpenTime:            "08:00",
		CloseTime:           "17:00",
		SlotMinutes:         DefaultSlotMinutes,
		ClosedDays:          []time.Weekday{time.Sunday},
		MinBookingDays:      2,
		MaxBookingDaysAhead: 90,
		Location:            time.UTC,
	}
}

// Validate rejects configurations the engine cannot work with.
func (r Rules) Validate() error {
	if !utils.ValidateClock(r.OpenTime) || !utils.ValidateClock(r.CloseTime) {
		return fmt.Errorf("invalid opening hours %q-%q", r.OpenTime, r.CloseTime)
	}
	if TimeToMinutes(r.CloseTime) <= TimeToMinutes(r.OpenTime) {
		return errors.New("closing time must be after opening time")
	}
	if r.SlotMinutes <= 0 || r.SlotMinutes > 240 {
		return fmt.Errorf("slot minutes must be between 1 and 240, got %d", r.SlotMinutes)
	}
	if r.MinBookingDays < 0 || r.MaxBookingDaysAhead < 0 {
		return errors.New("booking day limits must not be negative")
	}
	if r.MaxBookingDaysAhead > 0 && r.MaxBookingDaysAhead < r.MinBookingDays {
		return errors.New("look-ahead window is shorter than the minimum lead time")
	}
	open := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !r.IsClosedWeekday(d) {
			open++
		}
	}
	if open == 0 {
		return errors.New("at least one weekday must be open")
	}
	return nil
}

func (r Rules) step() int {
	if r.SlotMinutes <= 0 {
		return DefaultSlotMinutes
	}
	return r.SlotMinutes
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// AllSlots is the full grid of start times for an open day.
func (r Rules) AllSlots() []string {
	return GenerateTimeSlots(r.OpenTime, r.CloseTime, r.step())
}

// Today is the salon-local calendar day containing now, at midnight.
func (r Rules) Today(now time.Time) time.Time {
	return utils.BeginningOfDay(now.In(r.location()))
}

// ParseDate reads an ISO day in the salon's time zone.
func (r Rules) ParseDate(s string) (time.Time, error) {
	return utils.ParseDate(s, r.location())
}

func (r Rules) IsClosedWeekday(d time.Weekday) bool {
	for _, closed := range r.ClosedDays {
		if closed == d {
			return true
		}
	}
	return false
}

// IsClosedDay reports whether no slots are ever offered on date.
func (r Rules) IsClosedDay(date time.Time) bool {
	return r.IsClosedWeekday(date.Weekday())
}

// MinimumBookableDate is today plus the lead time, moved forward to the
// next open day when it lands on a closed one.
func (r Rules) MinimumBookableDate(today time.Time) time.Time {
	d := utils.BeginningOfDay(today).AddDate(0, 0, r.MinBookingDays)
	for i := 0; i < 7 && r.IsClosedDay(d); i++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// MaximumBookableDate is the last day inside the look-ahead window, or the
// zero time when the window is unlimited.
func (r Rules) MaximumBookableDate(today time.Time) time.Time {
	if r.MaxBookingDaysAhead <= 0 {
		return time.Time{}
	}
	return utils.BeginningOfDay(today).AddDate(0, 0, r.MaxBookingDaysAhead)
}

// CheckDate explains why a customer may not book date, or returns nil.
func (r Rules) CheckDate(date, today time.Time) error {
	if r.IsClosedDay(date) {
		return ErrClosedDay
	}
	if utils.DaysBetween(r.MinimumBookableDate(today), date) < 0 {
		return ErrBeforeLeadTime
	}
	if r.MaxBookingDaysAhead > 0 && utils.DaysBetween(today, date) > r.MaxBookingDaysAhead {
		return ErrBeyondLookAhead
	}
	return nil
}

// IsDateSelectable reports whether a customer may pick date.
func (r Rules) IsDateSelectable(date, today time.Time) bool {
	return r.CheckDate(date, today) == nil
}

// AvailableStartTimesFor drops the slots of today that are not strictly
// after the current minute. Any other date gets allSlots unchanged.
func (r Rules) AvailableStartTimesFor(date time.Time, allSlots []string, now time.Time) []string {
	local := now.In(r.location())
	if utils.DaysBetween(local, date) != 0 {
		return allSlots
	}

	current := utils.MinuteOfDay(local)
	out := make([]string, 0, len(allSlots))
	for _, s := range allSlots {
		if TimeToMinutes(s) > current {
			out = append(out, s)
		}
	}
	return out
}
