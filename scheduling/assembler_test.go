package scheduling

import (
	"reflect"
	"testing"

	"salonbook-backend/models"
)

func testCatalog() []models.Service {
	return []models.Service{
		{ID: "szempilla-festes", Label: "Eyelash tint", Price: 2500, Duration: 15, Active: true},
		{ID: "arctisztitas", Label: "Facial cleanse", Price: 9000, Duration: 60, Active: true},
		{ID: "regi-kezeles", Label: "Retired treatment", Price: 4000, Duration: 30, Active: false},
	}
}

func TestBuildBookingPayloadSnapshotsAndTotals(t *testing.T) {
	form := BookingForm{Name: " Anna ", Phone: "+36 30 123 4567", Date: "2026-10-21", Time: "10:00"}
	b := BuildBookingPayload([]string{"arctisztitas", "szempilla-festes", "arctisztitas"}, testCatalog(), form, nil)

	if !reflect.DeepEqual([]string(b.ServiceIDs), []string{"arctisztitas", "szempilla-festes"}) {
		t.Fatalf("unexpected ids: %v", b.ServiceIDs)
	}
	if b.TotalPrice != 11500 || b.DurationMinutes != 75 {
		t.Fatalf("expected 11500/75, got %d/%d", b.TotalPrice, b.DurationMinutes)
	}
	if b.Services[0].Label != "Facial cleanse" || b.Services[1].Price != 2500 {
		t.Fatalf("unexpected snapshots: %+v", b.Services)
	}
	if b.Status != models.StatusPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if b.Name != "Anna" || b.Phone != "+36301234567" {
		t.Fatalf("form fields not normalised: %q %q", b.Name, b.Phone)
	}
}

func TestBuildBookingPayloadDropsInactiveAndUnknown(t *testing.T) {
	b := BuildBookingPayload([]string{"regi-kezeles", "missing"}, testCatalog(), BookingForm{}, nil)
	if len(b.Services) != 0 || len(b.ServiceIDs) != 0 {
		t.Fatalf("expected no resolved services, got %+v", b.Services)
	}
	if b.TotalPrice != 0 || b.DurationMinutes != 0 {
		t.Fatalf("expected zero totals, got %d/%d", b.TotalPrice, b.DurationMinutes)
	}
}

func TestBuildBookingPayloadMergesIdentity(t *testing.T) {
	id := &models.Identity{ID: "u-1", DisplayName: "Kata", Email: "kata@example.com"}

	b := BuildBookingPayload([]string{"szempilla-festes"}, testCatalog(), BookingForm{Phone: "+36301234567"}, id)
	if b.UserID != "u-1" || b.UserName != "Kata" {
		t.Fatalf("identity not merged: %+v", b)
	}
	if b.Email != "kata@example.com" || b.Name != "Kata" {
		t.Fatalf("expected identity fallbacks, got %q %q", b.Email, b.Name)
	}

	typed := BuildBookingPayload(nil, testCatalog(), BookingForm{Name: "Other", Email: "other@example.com"}, id)
	if typed.Email != "other@example.com" || typed.Name != "Other" {
		t.Fatalf("typed fields must win over identity, got %q %q", typed.Email, typed.Name)
	}
}
