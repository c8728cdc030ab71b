package scheduling

import (
	"sort"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/utils"
)

// WeekDatesContaining returns Monday through Sunday of d's week.
func WeekDatesContaining(d time.Time) []time.Time {
	day := utils.BeginningOfDay(d)
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// WeekCell is one slot of one day. Booking is nil when the cell is free.
type WeekCell struct {
	Time    string          `json:"time"`
	Booking *models.Booking `json:"booking,omitempty"`
	// Start is true on the first cell a booking covers.
	Start bool `json:"start,omitempty"`
}

type WeekDay struct {
	Date    string     `json:"date"`
	Weekday string     `json:"weekday"`
	Closed  bool       `json:"closed"`
	Today   bool       `json:"today"`
	Cells   []WeekCell `json:"cells,omitempty"`
}

// WeekGrid is the admin calendar for one Monday-first week.
type WeekGrid struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Slots []string  `json:"slots"`
	Days  []WeekDay `json:"days"`
}

// BuildWeekGrid places bookings on the week containing anchor. Rejected
// bookings are ignored; when two bookings cover the same cell the earlier
// one by start time wins. Closed days carry no cells.
func (r Rules) BuildWeekGrid(anchor, now time.Time, bookings []models.Booking) WeekGrid {
	dates := WeekDatesContaining(anchor)
	slots := r.AllSlots()
	today := utils.FormatDate(r.Today(now))

	byDate := make(map[string][]models.Booking)
	for _, b := range FilterBlocking(bookings, AdminView) {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	grid := WeekGrid{
		Start: utils.FormatDate(dates[0]),
		End:   utils.FormatDate(dates[6]),
		Slots: slots,
		Days:  make([]WeekDay, 0, len(dates)),
	}

	for _, d := range dates {
		key := utils.FormatDate(d)
		day := WeekDay{
			Date:    key,
			Weekday: d.Weekday().String(),
			Closed:  r.IsClosedDay(d),
			Today:   key == today,
		}
		if !day.Closed {
			day.Cells = r.dayCells(slots, byDate[key])
		}
		grid.Days = append(grid.Days, day)
	}
	return grid
}

func (r Rules) dayCells(slots []string, bookings []models.Booking) []WeekCell {
	sort.SliceStable(bookings, func(i, j int) bool {
		return TimeToMinutes(bookings[i].Time) < TimeToMinutes(bookings[j].Time)
	})

	owner := make(map[string]int, len(slots))
	for i, b := range bookings {
		for _, s := range r.ExpandBooking(b) {
			if _, taken := owner[s]; !taken {
				owner[s] = i
			}
		}
	}

	cells := make([]WeekCell, len(slots))
	for i, s := range slots {
		cells[i].Time = s
		idx, ok := owner[s]
		if !ok {
			continue
		}
		cells[i].Booking = &bookings[idx]
		cells[i].Start = TimeToMinutes(bookings[idx].Time) == TimeToMinutes(s)
	}
	return cells
}
