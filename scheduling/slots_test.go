package scheduling

import (
	"reflect"
	"testing"

	"salonbook-backend/models"
)

func TestExpandToSlotsOneHour(t *testing.T) {
	got := ExpandToSlots("10:00", 60, 15)
	want := []string{"10:00", "10:15", "10:30", "10:45"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExpandToSlotsLength(t *testing.T) {
	for _, step := range []int{5, 10, 15, 20, 30} {
		for duration := 1; duration <= 240; duration += 7 {
			slots := ExpandToSlots("09:00", duration, step)
			want := (duration + step - 1) / step
			if len(slots) != want {
				t.Fatalf("duration %d step %d: expected %d slots, got %d", duration, step, want, len(slots))
			}
			if slots[0] != "09:00" {
				t.Fatalf("duration %d step %d: first slot %s", duration, step, slots[0])
			}
		}
	}
}

func TestExpandToSlotsDefaults(t *testing.T) {
	if got := ExpandToSlots("", 60, 15); got != nil {
		t.Fatalf("expected nil for a missing start, got %v", got)
	}
	if got := ExpandToSlots("10:00", 0, 15); len(got) != 2 {
		t.Fatalf("expected a missing duration to mean 30 minutes, got %v", got)
	}
	if got := ExpandToSlots("10:00", 30, -1); len(got) != 2 {
		t.Fatalf("expected the default step, got %v", got)
	}
}

func TestRequiredSlotsUseConfiguredGrid(t *testing.T) {
	r := DefaultRules()
	r.SlotMinutes = 30
	got := r.RequiredSlotsForStart("10:00", 60)
	if !reflect.DeepEqual(got, []string{"10:00", "10:30"}) {
		t.Fatalf("unexpected slots: %v", got)
	}
	stored := r.ExpandBooking(models.Booking{Time: "10:00", DurationMinutes: 60})
	if !reflect.DeepEqual(got, stored) {
		t.Fatalf("candidate %v and stored %v expansions differ", got, stored)
	}
}
