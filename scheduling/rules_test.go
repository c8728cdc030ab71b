package scheduling

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMinimumBookableDateSkipsClosedDay(t *testing.T) {
	r := DefaultRules()
	friday := day(2026, 10, 16)
	got := r.MinimumBookableDate(friday)
	if want := day(2026, 10, 19); !got.Equal(want) {
		t.Fatalf("expected Monday %s, got %s", want, got)
	}
}

func TestMinimumBookableDateConsecutiveClosedDays(t *testing.T) {
	r := DefaultRules()
	r.ClosedDays = []time.Weekday{time.Saturday, time.Sunday}
	thursday := day(2026, 10, 15)
	got := r.MinimumBookableDate(thursday)
	if want := day(2026, 10, 19); !got.Equal(want) {
		t.Fatalf("expected Monday %s, got %s", want, got)
	}
}

func TestCheckDate(t *testing.T) {
	r := DefaultRules()
	today := day(2026, 10, 15)
	cases := []struct {
		date time.Time
		want error
	}{
		{day(2026, 10, 14), ErrBeforeLeadTime},
		{day(2026, 10, 16), ErrBeforeLeadTime},
		{day(2026, 10, 17), nil},
		{day(2026, 10, 18), ErrClosedDay},
		{today.AddDate(0, 0, 90), nil},
		{today.AddDate(0, 0, 91), ErrBeyondLookAhead},
	}
	for _, tc := range cases {
		err := r.CheckDate(tc.date, today)
		if !errors.Is(err, tc.want) {
			t.Errorf("CheckDate(%s) = %v, want %v", tc.date.Format("2006-01-02"), err, tc.want)
		}
		if r.IsDateSelectable(tc.date, today) != (tc.want == nil) {
			t.Errorf("IsDateSelectable(%s) disagrees with CheckDate", tc.date.Format("2006-01-02"))
		}
	}
}

func TestCheckDateUnlimitedLookAhead(t *testing.T) {
	r := DefaultRules()
	r.MaxBookingDaysAhead = 0
	today := day(2026, 10, 15)
	if err := r.CheckDate(today.AddDate(2, 0, 1), today); err != nil {
		t.Fatalf("expected no look-ahead limit, got %v", err)
	}
}

func TestAvailableStartTimesForToday(t *testing.T) {
	r := DefaultRules()
	all := r.AllSlots()
	now := time.Date(2026, 10, 21, 14, 37, 0, 0, time.UTC)

	got := r.AvailableStartTimesFor(day(2026, 10, 21), all, now)
	if got[0] != "14:45" {
		t.Fatalf("expected 14:45 to be the first start, got %v", got)
	}
	for _, s := range got {
		if TimeToMinutes(s) <= 14*60+37 {
			t.Fatalf("%s has already begun", s)
		}
	}

	onTick := time.Date(2026, 10, 21, 14, 45, 0, 0, time.UTC)
	if got := r.AvailableStartTimesFor(day(2026, 10, 21), all, onTick); got[0] != "15:00" {
		t.Fatalf("a slot starting this minute must be excluded, got %v", got)
	}

	tomorrow := r.AvailableStartTimesFor(day(2026, 10, 22), all, now)
	if !reflect.DeepEqual(tomorrow, all) {
		t.Fatalf("other days must keep every slot")
	}
}

func TestTodayUsesSalonLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := DefaultRules()
	r.Location = loc
	now := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	if got := r.Today(now); got.Day() != 16 {
		t.Fatalf("expected the salon's calendar day to be the 16th, got %s", got)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules should be valid: %v", err)
	}

	broken := []func(*Rules){
		func(r *Rules) { r.CloseTime = "07:00" },
		func(r *Rules) { r.OpenTime = "8am" },
		func(r *Rules) { r.SlotMinutes = 0 },
		func(r *Rules) { r.MinBookingDays = -1 },
		func(r *Rules) { r.MaxBookingDaysAhead = 1 },
		func(r *Rules) {
			r.ClosedDays = []time.Weekday{0, 1, 2, 3, 4, 5, 6}
		},
	}
	for i, mutate := range broken {
		r := DefaultRules()
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("case %d: expected a validation error", i)
		}
	}
}
