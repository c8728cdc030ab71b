package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/scheduling"

	"github.com/gin-gonic/gin"
)

// SalonProfile is the public description of the salon.
type SalonProfile struct {
	Name           string                   `json:"name"`
	Phone          string                   `json:"phone"`
	Email          string                   `json:"email,omitempty"`
	Address        string                   `json:"address"`
	OpenTime       string                   `json:"openTime"`
	CloseTime      string                   `json:"closeTime"`
	HoursText      string                   `json:"hoursText"`
	SlotMinutes    int                      `json:"slotMinutes"`
	ClosedDays     []time.Weekday           `json:"closedDays"`
	MinBookingDays int                      `json:"minBookingDays"`
	MaxDaysAhead   int                      `json:"maxBookingDaysAhead"`
	Categories     []models.ServiceCategory `json:"categories"`
	Statuses       []models.BookingStatus   `json:"statuses"`
}

type ProfileController struct {
	Profile SalonProfile
}

// NewSalonProfile fills the hours fields from the business rules.
func NewSalonProfile(name, phone, email, address string, r scheduling.Rules) SalonProfile {
	return SalonProfile{
		Name:           name,
		Phone:          phone,
		Email:          email,
		Address:        address,
		OpenTime:       r.OpenTime,
		CloseTime:      r.CloseTime,
		HoursText:      hoursText(r),
		SlotMinutes:    r.SlotMinutes,
		ClosedDays:     r.ClosedDays,
		MinBookingDays: r.MinBookingDays,
		MaxDaysAhead:   r.MaxBookingDaysAhead,
		Categories:     models.ServiceCategories,
		Statuses:       []models.BookingStatus{models.StatusPending, models.StatusApproved, models.StatusRejected},
	}
}

// hoursText renders e.g. "Mon-Sat 08:00-17:00".
func hoursText(r scheduling.Rules) string {
	var open []string
	for i := 0; i < 7; i++ {
		d := time.Weekday((i + 1) % 7)
		if !r.IsClosedWeekday(d) {
			open = append(open, d.String()[:3])
		}
	}
	days := strings.Join(open, ", ")
	if len(open) > 2 && len(open) == contiguousRun(r) {
		days = open[0] + "-" + open[len(open)-1]
	}
	return fmt.Sprintf("%s %s-%s", days, r.OpenTime, r.CloseTime)
}

// contiguousRun is the length of the longest Monday-first run of open days.
func contiguousRun(r scheduling.Rules) int {
	best, cur := 0, 0
	for i := 0; i < 7; i++ {
		if r.IsClosedWeekday(time.Weekday((i + 1) % 7)) {
			cur = 0
			continue
		}
		cur++
		if cur > best {
			best = cur
		}
	}
	return best
}

func (pc *ProfileController) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, pc.Profile)
}
