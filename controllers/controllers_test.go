package controllers

import (
	"testing"
	"time"

	"salonbook-backend/models"
	"salonbook-backend/scheduling"
)

func TestHoursText(t *testing.T) {
	r := scheduling.DefaultRules()
	if got := hoursText(r); got != "Mon-Sat 08:00-17:00" {
		t.Fatalf("unexpected hours text %q", got)
	}

	r.ClosedDays = []time.Weekday{time.Sunday, time.Wednesday}
	if got := hoursText(r); got != "Mon, Tue, Thu, Fri, Sat 08:00-17:00" {
		t.Fatalf("unexpected hours text with a midweek break %q", got)
	}
}

func TestTopServicesRanksByCountThenRevenue(t *testing.T) {
	facial := models.ServiceSnapshot{ID: "tisztito-kezeles", Label: "Tisztító kezelés", Price: 10000, Duration: 60}
	brow := models.ServiceSnapshot{ID: "szemoldokfestes", Label: "Szemöldökfestés", Price: 1500, Duration: 15}
	lash := models.ServiceSnapshot{ID: "szempillafestes", Label: "Szempillafestés", Price: 2000, Duration: 15}

	bookings := []models.Booking{
		{Services: models.ServiceSnapshots{brow, facial}},
		{Services: models.ServiceSnapshots{brow}},
		{Services: models.ServiceSnapshots{lash}},
	}
	top := topServices(bookings, 2)
	if len(top) != 2 {
		t.Fatalf("expected the limit to apply, got %+v", top)
	}
	if top[0].ID != "szemoldokfestes" || top[0].Count != 2 || top[0].Revenue != 3000 {
		t.Fatalf("unexpected leader %+v", top[0])
	}
	if top[1].ID != "tisztito-kezeles" {
		t.Fatalf("equal counts should rank by revenue, got %+v", top[1])
	}
}
