package store

import (
	"fmt"
	"time"

	"github.com/casey/aide/internal/calendar"
)

// maxInstances bounds expansion of a single master so a bad recurrence end
// date can't flood a window.
const maxInstances = 100

// expand turns a master event row into the concrete instances that fall
// inside [timeMin, timeMax]. Non-recurring events pass through when in
// range. Each instance keeps the master's duration and gets a derived ID.
func expand(r eventRow, timeMin, timeMax time.Time) []calendar.EventRef {
	if r.Recurrence == "" || r.Recurrence == "none" {
		if r.Start.Time.Before(timeMin) || r.Start.Time.After(timeMax) {
			return nil
		}
		return []calendar.EventRef{r.EventRef}
	}

	step, ok := steppers[r.Recurrence]
	if !ok {
		return []calendar.EventRef{r.EventRef} // unknown pattern: pass the master through
	}

	until := r.RecurrenceEnd
	if until.IsZero() || until.After(timeMax) {
		until = timeMax
	}

	var duration time.Duration
	if !r.End.IsZero() {
		duration = r.End.Time.Sub(r.Start.Time)
	}

	var out []calendar.EventRef
	cur := r.Start.Time
	for n := 0; !cur.After(until) && n < maxInstances; n++ {
		if !cur.Before(timeMin) {
			inst := r.EventRef
			inst.ID = fmt.Sprintf("%s#%d", r.ID, n)
			inst.Start = calendar.EventTime{Time: cur, AllDay: r.Start.AllDay}
			if duration > 0 {
				inst.End = calendar.EventTime{Time: cur.Add(duration), AllDay: r.End.AllDay}
			}
			out = append(out, inst)
		}
		cur = step(cur)
	}
	return out
}

var steppers = map[string]func(time.Time) time.Time{
	"daily":  func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
	"weekly": func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
	"weekdays": func(t time.Time) time.Time {
		t = t.AddDate(0, 0, 1)
		for t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
			t = t.AddDate(0, 0, 1)
		}
		return t
	},
	"monthly": func(t time.Time) time.Time { return t.AddDate(0, 1, 0) },
}
