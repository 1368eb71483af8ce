package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/casey/aide/internal/intent"
)

// Wednesday morning, London.
var testNow = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)

func at(day, hour, min int) EventTime {
	return EventTime{Time: time.Date(2026, 3, day, hour, min, 0, 0, time.UTC)}
}

func TestAnswer_SpecificDay_Listing(t *testing.T) {
	events := []EventRef{
		{ID: "1", Summary: "Standup", Start: at(5, 9, 30)},
		{ID: "2", Summary: "Lunch with Sam", Location: "Cafe", Start: at(5, 12, 0)},
		{ID: "3", Summary: "Not that day", Start: at(6, 10, 0)},
	}
	it := intent.Classify("what's on thursday?")
	got := Answer(it, "what's on thursday?", "UTC", events, testNow)

	if !strings.Contains(got, "Thursday") {
		t.Errorf("missing day name: %q", got)
	}
	if !strings.Contains(got, "Standup") || !strings.Contains(got, "Lunch with Sam") {
		t.Errorf("missing events: %q", got)
	}
	if strings.Contains(got, "Not that day") {
		t.Errorf("event from the wrong day leaked in: %q", got)
	}
	// Ascending by start time.
	if strings.Index(got, "Standup") > strings.Index(got, "Lunch") {
		t.Errorf("events not in ascending time order: %q", got)
	}
	if !strings.Contains(got, "(Cafe)") {
		t.Errorf("missing location: %q", got)
	}
}

func TestAnswer_SpecificDay_Empty(t *testing.T) {
	it := intent.Classify("anything tomorrow?")
	got := Answer(it, "anything tomorrow?", "UTC", nil, testNow)
	if got != "No events found for tomorrow." {
		t.Errorf("got %q", got)
	}
}

func TestAnswer_SpecificDay_Cap(t *testing.T) {
	var events []EventRef
	for i := 0; i < 13; i++ {
		events = append(events, EventRef{Summary: "Slot", Start: at(5, 8+0, i)})
	}
	it := intent.Classify("show me thursday")
	got := Answer(it, "show me thursday", "UTC", events, testNow)
	if strings.Count(got, "Slot") != 10 {
		t.Errorf("expected 10 listed events, got %d: %q", strings.Count(got, "Slot"), got)
	}
	if !strings.Contains(got, "+3 more") {
		t.Errorf("missing +N more suffix: %q", got)
	}
}

func TestAnswer_Contextual_EarliestFutureMatch(t *testing.T) {
	events := []EventRef{
		{ID: "later", Summary: "Flight home", Location: "Heathrow Airport", Start: at(20, 18, 0)},
		{ID: "sooner", Summary: "Take mum to terminal 5", Location: "Heathrow Airport", Start: at(5, 14, 30)},
		{ID: "unrelated", Summary: "Dentist", Start: at(6, 10, 0)},
	}
	utt := "when do I take mum to the airport"
	got := Answer(intent.Classify(utt), utt, "UTC", events, testNow)

	if !strings.Contains(got, "You're taking mum to the airport") {
		t.Errorf("wrong prefix: %q", got)
	}
	if !strings.Contains(got, "tomorrow") {
		t.Errorf("expected day-phrase tomorrow: %q", got)
	}
	if !strings.Contains(got, "That's tomorrow!") {
		t.Errorf("expected time-remaining sentence: %q", got)
	}
	if !strings.Contains(got, "2:30 PM") {
		t.Errorf("expected start time: %q", got)
	}
}

func TestAnswer_Contextual_SameDayRemaining(t *testing.T) {
	events := []EventRef{
		{Summary: "GP visit", Location: "High St Clinic", Start: at(4, 11, 45)},
	}
	utt := "when is my doctor appointment"
	got := Answer(intent.Classify(utt), utt, "UTC", events, testNow)
	// doctor expands to clinic via the synonym table
	if !strings.Contains(got, "today") {
		t.Errorf("expected today: %q", got)
	}
	if !strings.Contains(got, "That's in 2 hours and 45 minutes.") {
		t.Errorf("expected remaining time: %q", got)
	}
}

func TestAnswer_Contextual_PastMostRecent(t *testing.T) {
	events := []EventRef{
		{ID: "older", Summary: "Team meeting", Start: at(1, 9, 0)},  // 3 days ago
		{ID: "recent", Summary: "Team meeting", Start: at(3, 9, 0)}, // yesterday
	}
	utt := "when was my last meeting"
	got := Answer(intent.Classify(utt), utt, "UTC", events, testNow)
	if !strings.Contains(got, "yesterday") {
		t.Errorf("expected most recent past match (yesterday): %q", got)
	}
}

func TestAnswer_Contextual_NoMatch(t *testing.T) {
	utt := "when do I take mum to the airport"
	got := Answer(intent.Classify(utt), utt, "UTC", nil, testNow)
	if !strings.HasPrefix(got, "I couldn't find any events matching") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "mum") || !strings.Contains(got, "airport") {
		t.Errorf("not-found message should name the keyword set: %q", got)
	}
}

func TestAnswer_Contextual_FarFutureDate(t *testing.T) {
	events := []EventRef{
		{Summary: "Conference keynote", Start: EventTime{Time: time.Date(2027, 1, 15, 10, 0, 0, 0, time.UTC)}},
	}
	utt := "when is the conference"
	got := Answer(intent.Classify(utt), utt, "UTC", events, testNow)
	if !strings.Contains(got, "Friday, January 15, 2027") {
		t.Errorf("expected full date with year: %q", got)
	}
}

func TestElapsedPhrase(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{6 * time.Hour, "today"},
		{30 * time.Hour, "yesterday"},
		{3 * 24 * time.Hour, "3 days ago"},
		{10 * 24 * time.Hour, "1 week ago"},
		{21 * 24 * time.Hour, "3 weeks ago"},
		{70 * 24 * time.Hour, "2 months ago"},
	}
	for _, c := range cases {
		if got := elapsedPhrase(c.d); got != c.want {
			t.Errorf("elapsedPhrase(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}

func TestExtractKeywords(t *testing.T) {
	kws := extractKeywords("mum", "airport", "when do I take mum to the airport?")
	has := func(w string) bool {
		for _, k := range kws {
			if k == w {
				return true
			}
		}
		return false
	}
	for _, w := range []string{"mum", "family", "airport", "flight", "plane", "terminal"} {
		if !has(w) {
			t.Errorf("missing keyword %q in %v", w, kws)
		}
	}
	for _, w := range []string{"the", "do", "when", "take"} {
		if has(w) {
			t.Errorf("stop word or short token %q leaked into %v", w, kws)
		}
	}
}
