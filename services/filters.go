package services

import (
	"strings"

	"salonbook-backend/models"
)

// Time ranges accepted by BookingFilter.Range.
const (
	RangeAll      = "all"
	RangeUpcoming = "upcoming"
	RangePast     = "past"
)

// BookingFilter narrows the admin booking list. Empty fields match all.
type BookingFilter struct {
	Range  string
	Status string
	Search string
}

// FilterBookings applies the range, status and search filters in that
// order. today is an ISO day; dates compare lexically.
func FilterBookings(bookings []models.Booking, f BookingFilter, today string) []models.Booking {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	status := models.BookingStatus(f.Status)

	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		switch f.Range {
		case RangeUpcoming:
			if b.Date < today {
				continue
			}
		case RangePast:
			if b.Date >= today {
				continue
			}
		}
		if f.Status != "" && f.Status != RangeAll && b.Status.OrDefault() != status {
			continue
		}
		if term != "" && !matchesSearch(b, term) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesSearch(b models.Booking, term string) bool {
	return strings.Contains(strings.ToLower(b.Name), term) ||
		strings.Contains(b.Phone, term) ||
		strings.Contains(strings.ToLower(b.Email), term) ||
		strings.Contains(b.Date, term) ||
		strings.Contains(b.Time, term)
}

// BookingStats are the dashboard counters.
type BookingStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Upcoming int `json:"upcoming"`
	Past     int `json:"past"`
	// Revenue sums approved bookings only.
	Revenue int `json:"revenue"`
}

func ComputeStats(bookings []models.Booking, today string) BookingStats {
	stats := BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status.OrDefault() {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
			stats.Revenue += b.TotalPrice
		case models.StatusRejected:
			stats.Rejected++
		}
		if b.Date >= today {
			stats.Upcoming++
		} else {
			stats.Past++
		}
	}
	return stats
}
