package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/store"
	"github.com/casey/aide/internal/task"
)

var testNow = time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC)

func testScheduler(t *testing.T, sink *[]string) (*Scheduler, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	dm := func(content string) error {
		*sink = append(*sink, content)
		return nil
	}
	s := New(st, dm, Options{
		Timezone: "UTC",
		Style:    "friendly",
		Logger:   zerolog.Nop(),
	})
	s.now = func() time.Time { return testNow }
	return s, st
}

func TestRunDigestDeliversSummary(t *testing.T) {
	var sent []string
	s, st := testScheduler(t, &sent)
	ctx := context.Background()

	if _, err := st.CreateEvent(ctx, calendar.EventDraft{
		Summary: "Standup",
		Start:   testNow.Add(2 * time.Hour),
	}); err != nil {
		t.Fatalf("creating event: %v", err)
	}

	s.runDigest()

	if len(sent) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(sent))
	}
	if !strings.Contains(sent[0], "**Today**") || !strings.Contains(sent[0], "Standup") {
		t.Errorf("digest = %q, want today's events", sent[0])
	}
}

func TestFireRemindersOnlyOncePerTask(t *testing.T) {
	var sent []string
	s, st := testScheduler(t, &sent)
	ctx := context.Background()

	if _, err := st.CreateTask(ctx, task.Draft{
		Text:        "submit expenses",
		Source:      "work",
		ResolvedDue: testNow.Add(30 * time.Minute),
	}); err != nil {
		t.Fatalf("creating task: %v", err)
	}

	s.fireReminders()
	s.fireReminders()

	if len(sent) != 1 {
		t.Fatalf("delivered %d reminders, want 1", len(sent))
	}
	if !strings.Contains(sent[0], "submit expenses") {
		t.Errorf("reminder = %q, want the task text", sent[0])
	}
}

func TestFireRemindersSkipsDistantTasks(t *testing.T) {
	var sent []string
	s, st := testScheduler(t, &sent)
	ctx := context.Background()

	if _, err := st.CreateTask(ctx, task.Draft{
		Text:        "renew passport",
		Source:      "personal",
		ResolvedDue: testNow.AddDate(0, 0, 14),
	}); err != nil {
		t.Fatalf("creating task: %v", err)
	}

	s.fireReminders()

	if len(sent) != 0 {
		t.Errorf("delivered %d reminders, want 0", len(sent))
	}
}
