package dates

import (
	"testing"
	"time"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)

func TestResolve_Tomorrow(t *testing.T) {
	got, ok := Resolve("tomorrow", "Europe/London", monday)
	if !ok {
		t.Fatal("tomorrow did not resolve")
	}
	loc, _ := time.LoadLocation("Europe/London")
	want := time.Date(2026, 3, 3, 23, 59, 59, 999_000_000, loc)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolve_TodayEndOfDay(t *testing.T) {
	got, ok := Resolve("today", "UTC", monday)
	if !ok {
		t.Fatal("today did not resolve")
	}
	if got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 || got.Nanosecond() != 999_000_000 {
		t.Errorf("not end of day: %v", got)
	}
	if got.Day() != monday.Day() {
		t.Errorf("wrong day: %v", got)
	}
}

func TestResolve_TimezoneChangesCalendarDay(t *testing.T) {
	// 23:30 UTC on Monday is already Tuesday in Tokyo, so "today" there
	// must be the Tokyo Tuesday.
	lateMonday := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC)
	got, ok := Resolve("today", "Asia/Tokyo", lateMonday)
	if !ok {
		t.Fatal("today did not resolve")
	}
	if got.Day() != 3 {
		t.Errorf("expected Tokyo calendar day 3, got %v", got)
	}
}

func TestResolve_InNDays(t *testing.T) {
	got, ok := Resolve("in 3 days", "UTC", monday)
	if !ok {
		t.Fatal("in 3 days did not resolve")
	}
	if got.Day() != 5 || got.Hour() != 23 {
		t.Errorf("got %v, want end of March 5", got)
	}
	if _, ok := Resolve("in a few days", "UTC", monday); ok {
		t.Error("non-numeric phrase should not resolve")
	}
}

func TestResolve_NextWeekday_NeverToday(t *testing.T) {
	// Evaluated on a Monday, "next monday" is seven days later.
	got, ok := Resolve("next monday", "UTC", monday)
	if !ok {
		t.Fatal("next monday did not resolve")
	}
	if got.Day() != 9 {
		t.Errorf("got day %d, want 9 (a full week ahead)", got.Day())
	}
	if got.Weekday() != time.Monday {
		t.Errorf("got %v, want Monday", got.Weekday())
	}
}

func TestResolve_NextWeekday_Forward(t *testing.T) {
	got, ok := Resolve("next friday", "UTC", monday)
	if !ok {
		t.Fatal("next friday did not resolve")
	}
	if got.Day() != 6 || got.Weekday() != time.Friday {
		t.Errorf("got %v, want Friday March 6", got)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	for _, phrase := range []string{"", "whenever", "eventually", "friday", "next month"} {
		if _, ok := Resolve(phrase, "UTC", monday); ok {
			t.Errorf("Resolve(%q) resolved, want unresolved", phrase)
		}
	}
}

func TestResolve_BadZoneFallsBackToUTC(t *testing.T) {
	got, ok := Resolve("tomorrow", "Not/AZone", monday)
	if !ok {
		t.Fatal("tomorrow did not resolve")
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC fallback, got %v", got.Location())
	}
}
