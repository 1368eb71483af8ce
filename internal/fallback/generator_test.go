package fallback

import (
	"strings"
	"testing"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/intent"
	"github.com/casey/aide/internal/store"
)

var now = time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC) // Wednesday morning

func input(utterance string) Input {
	return Input{
		Utterance: utterance,
		Intent:    intent.Classify(utterance),
		Timezone:  "UTC",
		Style:     "friendly",
		Now:       now,
	}
}

func TestGenerate_CalendarRedetect(t *testing.T) {
	in := input("anything on my agenda tomorrow?")
	in.Events = []calendar.EventRef{
		{Summary: "Dentist", Start: calendar.EventTime{Time: now.Add(26 * time.Hour)}},
	}
	got := Generate(in)
	if !strings.Contains(got, "Dentist") {
		t.Errorf("calendar re-detect should defer to the resolver: %q", got)
	}
}

func TestGenerate_Digest(t *testing.T) {
	in := input("give me my day at a glance")
	in.Name = "Casey"
	in.Events = []calendar.EventRef{
		{Summary: "Standup", Start: calendar.EventTime{Time: now.Add(30 * time.Minute)}},
		{Summary: "Lunch", Start: calendar.EventTime{Time: now.Add(3 * time.Hour)}},
		{Summary: "Breakfast tomorrow", Start: calendar.EventTime{Time: now.Add(25 * time.Hour)}},
	}
	in.Tasks = []store.Task{
		{Text: "file urgent report", Priority: "normal"},
		{Text: "water plants", Priority: "normal", Due: now.AddDate(0, 0, 9)},
		{Text: "pay rent", Priority: "high"},
	}
	got := Generate(in)

	if !strings.HasPrefix(got, "Good morning, Casey!") {
		t.Errorf("missing greeting: %q", got)
	}
	if !strings.Contains(got, "Standup") || !strings.Contains(got, "Lunch") {
		t.Errorf("missing today's schedule: %q", got)
	}
	if strings.Contains(strings.SplitN(got, "**Tomorrow**", 2)[0], "Breakfast tomorrow") {
		t.Errorf("tomorrow's event leaked into today: %q", got)
	}
	if !strings.Contains(got, "file urgent report") || !strings.Contains(got, "pay rent") {
		t.Errorf("missing priority tasks: %q", got)
	}
	if strings.Contains(got, "water plants") {
		t.Errorf("non-priority task listed: %q", got)
	}
	if !strings.Contains(got, "**Tomorrow**: 1 event") {
		t.Errorf("missing tomorrow preview: %q", got)
	}
}

func TestGenerate_DigestEmptyDay(t *testing.T) {
	got := Generate(input("summary please"))
	if !strings.Contains(got, "Nothing on the calendar.") {
		t.Errorf("empty digest: %q", got)
	}
}

func TestGenerate_Help(t *testing.T) {
	got := Generate(input("what can you do?"))
	if !strings.Contains(got, "Here's what I can do") {
		t.Errorf("expected capability menu, got %q", got)
	}
}

func TestGenerate_PhraseDeterministic(t *testing.T) {
	a := Generate(input("tell me something nice"))
	b := Generate(input("tell me something nice"))
	if a != b {
		t.Errorf("phrase pick must be deterministic: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("empty phrase")
	}
}

func TestGenerate_StyleTables(t *testing.T) {
	for _, style := range []string{"friendly", "concise", "coach", "unknown-style"} {
		in := input("hmm")
		in.Style = style
		if got := Generate(in); got == "" {
			t.Errorf("style %q produced empty reply", style)
		}
	}
}

func TestPriorityTasks(t *testing.T) {
	tasks := []store.Task{
		{Text: "normal far-off", Due: now.AddDate(0, 0, 10)},
		{Text: "due in an hour", Due: now.Add(time.Hour)},
		{Text: "contains asap somewhere"},
		{Text: "high prio", Priority: "high"},
		{Text: "plain"},
	}
	got := priorityTasks(tasks, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 priority tasks, got %d: %v", len(got), got)
	}
	// dated ones come first
	if got[0].Text != "due in an hour" {
		t.Errorf("expected the dated task first, got %q", got[0].Text)
	}
}
