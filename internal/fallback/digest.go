package fallback

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/store"
	"github.com/dustin/go-humanize"
)

const (
	maxDigestEvents = 5
	maxDigestTasks  = 3
)

// digest renders the multi-section "at a glance" reply: greeting, today's
// schedule, priority tasks, tomorrow preview. Everything in the user's
// zone.
func digest(in Input) string {
	loc, err := time.LoadLocation(in.Timezone)
	if err != nil {
		loc = time.UTC
	}
	localNow := in.Now.In(loc)

	var b strings.Builder
	b.WriteString(greeting(localNow, in.Name))
	b.WriteString("\n\n")

	b.WriteString("**Today**\n")
	today := eventsOnDay(in.Events, localNow, loc)
	if len(today) == 0 {
		b.WriteString("Nothing on the calendar.\n")
	}
	shown := today
	if len(shown) > maxDigestEvents {
		shown = shown[:maxDigestEvents]
	}
	for _, ev := range shown {
		fmt.Fprintf(&b, "- %s %s\n", ev.Start.Time.In(loc).Format("3:04 PM"), ev.Summary)
	}
	if n := len(today) - len(shown); n > 0 {
		fmt.Fprintf(&b, "+%d more\n", n)
	}

	urgent := priorityTasks(in.Tasks, in.Now)
	if len(urgent) > 0 {
		b.WriteString("\n**Priority tasks**\n")
		shownTasks := urgent
		if len(shownTasks) > maxDigestTasks {
			shownTasks = shownTasks[:maxDigestTasks]
		}
		for _, t := range shownTasks {
			fmt.Fprintf(&b, "- %s", t.Text)
			if !t.Due.IsZero() {
				fmt.Fprintf(&b, " (due %s)", humanize.RelTime(t.Due, in.Now, "ago", "from now"))
			}
			b.WriteByte('\n')
		}
		if n := len(urgent) - len(shownTasks); n > 0 {
			fmt.Fprintf(&b, "+%d more\n", n)
		}
	}

	tomorrow := eventsOnDay(in.Events, localNow.AddDate(0, 0, 1), loc)
	if len(tomorrow) > 0 {
		fmt.Fprintf(&b, "\n**Tomorrow**: %d event", len(tomorrow))
		if len(tomorrow) > 1 {
			b.WriteByte('s')
		}
		fmt.Fprintf(&b, ", starting with %s at %s.",
			tomorrow[0].Summary, tomorrow[0].Start.Time.In(loc).Format("3:04 PM"))
	}

	return strings.TrimRight(b.String(), "\n")
}

func eventsOnDay(events []calendar.EventRef, day time.Time, loc *time.Location) []calendar.EventRef {
	var out []calendar.EventRef
	for _, ev := range events {
		s := ev.Start.Time.In(loc)
		if s.Year() == day.Year() && s.YearDay() == day.YearDay() {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Time.Before(out[j].Start.Time) })
	return out
}

// priorityTasks filters to what deserves attention now: explicit high
// priority, urgency words in the text, or a due date within 24 hours.
func priorityTasks(tasks []store.Task, now time.Time) []store.Task {
	var out []store.Task
	for _, t := range tasks {
		urgentText := containsAny(strings.ToLower(t.Text), "urgent", "asap", "critical")
		dueSoon := !t.Due.IsZero() && t.Due.Before(now.Add(24*time.Hour))
		if t.Priority == "high" || urgentText || dueSoon {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Due.IsZero() != out[j].Due.IsZero() {
			return !out[i].Due.IsZero()
		}
		return out[i].Due.Before(out[j].Due)
	})
	return out
}
