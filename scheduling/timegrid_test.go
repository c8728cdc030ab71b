package scheduling

import (
	"testing"
)

func TestTimeToMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		if got := TimeToMinutes(MinutesToTime(m)); got != m {
			t.Fatalf("round trip of %d gave %d", m, got)
		}
	}
}

func TestTimeToMinutesMalformed(t *testing.T) {
	cases := map[string]int{
		"":         0,
		"9":        540,
		"9:5":      545,
		"xx:30":    30,
		"10:yy":    600,
		"08:00":    480,
		"10:30:00": 630,
		"10:30:45": 630,
	}
	for in, want := range cases {
		if got := TimeToMinutes(in); got != want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestMinutesToTimeNoRollover(t *testing.T) {
	if got := MinutesToTime(1440); got != "24:00" {
		t.Fatalf("expected 24:00, got %s", got)
	}
	if got := MinutesToTime(65); got != "01:05" {
		t.Fatalf("expected 01:05, got %s", got)
	}
}

func TestGenerateTimeSlotsBusinessDay(t *testing.T) {
	slots := GenerateTimeSlots("08:00", "17:00", 15)
	if len(slots) != 36 {
		t.Fatalf("expected 36 slots, got %d", len(slots))
	}
	if slots[0] != "08:00" || slots[len(slots)-1] != "16:45" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestGenerateTimeSlotsLengthAndOrder(t *testing.T) {
	cases := []struct {
		open, close string
		step        int
	}{
		{"08:00", "17:00", 15},
		{"08:00", "17:00", 20},
		{"09:10", "12:00", 25},
		{"00:00", "23:59", 7},
		{"10:00", "10:01", 60},
	}
	for _, tc := range cases {
		slots := GenerateTimeSlots(tc.open, tc.close, tc.step)
		span := TimeToMinutes(tc.close) - TimeToMinutes(tc.open)
		want := (span + tc.step - 1) / tc.step
		if len(slots) != want {
			t.Errorf("%s-%s/%d: expected %d slots, got %d", tc.open, tc.close, tc.step, want, len(slots))
			continue
		}
		for i := 1; i < len(slots); i++ {
			if TimeToMinutes(slots[i]) <= TimeToMinutes(slots[i-1]) {
				t.Errorf("%s-%s/%d: not strictly ascending at %d: %v", tc.open, tc.close, tc.step, i, slots)
				break
			}
		}
	}
}

func TestGenerateTimeSlotsEmptyAndDefaults(t *testing.T) {
	if slots := GenerateTimeSlots("17:00", "08:00", 15); len(slots) != 0 {
		t.Fatalf("expected no slots for an inverted range, got %v", slots)
	}
	if slots := GenerateTimeSlots("08:00", "09:00", 0); len(slots) != 4 {
		t.Fatalf("expected the default step to apply, got %v", slots)
	}
}
