package config

import (
	"testing"
	"time"

	"salonbook-backend/scheduling"
)

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays(" 0, 6 ,")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(days) != 2 || days[0] != time.Sunday || days[1] != time.Saturday {
		t.Fatalf("unexpected days: %v", days)
	}

	if days, err := parseWeekdays(""); err != nil || len(days) != 0 {
		t.Fatalf("empty list should mean no closed days, got %v %v", days, err)
	}
	for _, bad := range []string{"7", "-1", "sun"} {
		if _, err := parseWeekdays(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SALON_TIMEZONE", "UTC")
	t.Setenv("CLOSED_DAYS", "0,6")
	t.Setenv("SLOT_MINUTES", "30")

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Port != "9090" || s.JWTExpiryHours != 72 || s.MinBookingDays != 2 {
		t.Fatalf("unexpected settings: %+v", s)
	}
	if origins := s.Origins(); len(origins) != 2 || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}

	rules, err := s.Rules()
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if rules.SlotMinutes != 30 || !rules.IsClosedWeekday(time.Saturday) || rules.Location != time.UTC {
		t.Fatalf("unexpected rules: %+v", rules)
	}
	if got := len(rules.AllSlots()); got != 18 {
		t.Fatalf("expected 18 half-hour slots, got %d", got)
	}
}

func TestRulesRejectsBadValues(t *testing.T) {
	base := Settings{
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		SlotMinutes: scheduling.DefaultSlotMinutes,
		ClosedDays:  "0",
		Timezone:    "UTC",
	}
	if _, err := base.Rules(); err != nil {
		t.Fatalf("base settings should be valid: %v", err)
	}

	tz := base
	tz.Timezone = "Nowhere/Special"
	if _, err := tz.Rules(); err == nil {
		t.Fatalf("expected an unknown timezone to fail")
	}

	hours := base
	hours.CloseTime = "07:00"
	if _, err := hours.Rules(); err == nil {
		t.Fatalf("expected closing before opening to fail")
	}
}
