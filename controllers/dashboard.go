package controllers

import (
	"net/http"
	"sort"

	"salonbook-backend/models"
	"salonbook-backend/services"

	"github.com/gin-gonic/gin"
)

// DashboardOverview is the admin landing page.
type DashboardOverview struct {
	Stats           services.BookingStats `json:"stats"`
	PendingRequests []models.Booking      `json:"pendingRequests"`
	TopServices     []ServiceSummary      `json:"topServices"`
}

type ServiceSummary struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Revenue int    `json:"revenue"`
}

type DashboardController struct {
	Bookings *services.BookingService
}

const topServicesLimit = 5

func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	ctx := c.Request.Context()

	pending := dc.Bookings.List(ctx, services.BookingFilter{Range: services.RangeUpcoming, Status: string(models.StatusPending)})
	approved := dc.Bookings.List(ctx, services.BookingFilter{Status: string(models.StatusApproved)})

	c.JSON(http.StatusOK, DashboardOverview{
		Stats:           dc.Bookings.Stats(ctx),
		PendingRequests: pending,
		TopServices:     topServices(approved, topServicesLimit),
	})
}

// topServices ranks services by how often approved bookings include them.
// Revenue uses the price recorded on the booking.
func topServices(bookings []models.Booking, limit int) []ServiceSummary {
	byID := make(map[string]*ServiceSummary)
	for _, b := range bookings {
		for _, s := range b.Services {
			sum, ok := byID[s.ID]
			if !ok {
				sum = &ServiceSummary{ID: s.ID, Label: s.Label}
				byID[s.ID] = sum
			}
			sum.Count++
			sum.Revenue += int(s.Price)
		}
	}

	out := make([]ServiceSummary, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
