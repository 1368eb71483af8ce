// Package dates resolves due-date phrases against an IANA timezone.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var inDaysRe = regexp.MustCompile(`^in (\d+) days?$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Resolve turns a phrase into an absolute instant: the end of the target
// calendar day (23:59:59.999) in the given zone. Supported phrases are
// "today", "tomorrow", "in N days", and "next <weekday>". Anything else
// returns ok=false, which callers must treat as "no due date provided",
// never as an error.
func Resolve(phrase, tz string, now time.Time) (time.Time, bool) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	p := strings.ToLower(strings.TrimSpace(phrase))
	switch {
	case p == "today":
		return endOfDay(local, 0), true
	case p == "tomorrow":
		return endOfDay(local, 1), true
	}

	if m := inDaysRe.FindStringSubmatch(p); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return endOfDay(local, n), true
		}
	}

	if name, ok := strings.CutPrefix(p, "next "); ok {
		if target, ok := weekdays[name]; ok {
			offset := (int(target) - int(local.Weekday()) + 7) % 7
			if offset == 0 {
				offset = 7 // always the next occurrence, never today
			}
			return endOfDay(local, offset), true
		}
	}

	return time.Time{}, false
}

// endOfDay returns 23:59:59.999 local time, days ahead of t's calendar day.
func endOfDay(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 23, 59, 59, 999_000_000, t.Location())
}
