package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/casey/aide/internal/intent"
)

const maxDayListing = 10
const maxDescription = 150

// Answer resolves a calendar-shaped intent against a time-bounded event
// snapshot. Two query shapes, checked in order:
//
//  1. specific day — the utterance names today, tomorrow, or a weekday:
//     list that day's events.
//  2. contextual — the utterance carries a person/location entity or is a
//     question: keyword-match a single event and describe it.
func Answer(it intent.Intent, utterance, tz string, events []EventRef, now time.Time) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	localNow := now.In(loc)

	if target, name, ok := specificDay(it.Entities.TimeRef, localNow); ok {
		return answerDay(events, target, name, loc)
	}
	return answerContextual(it, utterance, events, now, localNow)
}

// specificDay maps an explicit time reference to a local calendar day.
// "next week"/"this week"/"yesterday" are not single days and fall through
// to the contextual shape.
func specificDay(timeRef string, localNow time.Time) (time.Time, string, bool) {
	switch timeRef {
	case "today":
		return localNow, "today", true
	case "tomorrow":
		return localNow.AddDate(0, 0, 1), "tomorrow", true
	}
	if wd, ok := weekdayNames[timeRef]; ok {
		offset := (int(wd) - int(localNow.Weekday()) + 7) % 7
		return localNow.AddDate(0, 0, offset), wd.String(), true
	}
	return time.Time{}, "", false
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func answerDay(events []EventRef, target time.Time, name string, loc *time.Location) string {
	var day []EventRef
	for _, ev := range events {
		s := ev.Start.Time.In(loc)
		if s.Year() == target.Year() && s.YearDay() == target.YearDay() {
			day = append(day, ev)
		}
	}
	if len(day) == 0 {
		return fmt.Sprintf("No events found for %s.", name)
	}
	sort.Slice(day, func(i, j int) bool { return day[i].Start.Time.Before(day[j].Start.Time) })

	var b strings.Builder
	fmt.Fprintf(&b, "Here's what's on %s:\n", name)
	shown := day
	if len(shown) > maxDayListing {
		shown = shown[:maxDayListing]
	}
	for _, ev := range shown {
		when := "All day"
		if !ev.Start.AllDay {
			when = ev.Start.Time.In(loc).Format("3:04 PM")
		}
		fmt.Fprintf(&b, "- %s — %s", when, ev.Summary)
		if ev.Location != "" {
			fmt.Fprintf(&b, " (%s)", ev.Location)
		}
		b.WriteByte('\n')
	}
	if n := len(day) - len(shown); n > 0 {
		fmt.Fprintf(&b, "+%d more\n", n)
	}
	return strings.TrimRight(b.String(), "\n")
}

func answerContextual(it intent.Intent, utterance string, events []EventRef, now, localNow time.Time) string {
	keywords := extractKeywords(it.Entities.Person, it.Entities.Location, utterance)
	if len(keywords) == 0 {
		return "I couldn't find any matching events."
	}

	var future, past []EventRef
	for _, ev := range events {
		if !matches(ev, keywords) {
			continue
		}
		if ev.Start.Time.Before(now) {
			past = append(past, ev)
		} else {
			future = append(future, ev)
		}
	}

	if len(future) > 0 {
		sort.Slice(future, func(i, j int) bool { return future[i].Start.Time.Before(future[j].Start.Time) })
		return renderUpcoming(future[0], it, now, localNow)
	}
	if len(past) > 0 {
		sort.Slice(past, func(i, j int) bool { return past[i].Start.Time.After(past[j].Start.Time) })
		return renderPast(past[0], it, now)
	}
	return fmt.Sprintf("I couldn't find any events matching %s.", strings.Join(keywords, ", "))
}

func renderUpcoming(ev EventRef, it intent.Intent, now, localNow time.Time) string {
	loc := localNow.Location()
	evLocal := ev.Start.Time.In(loc)
	offset := wholeDays(localNow, evLocal)
	phrase := dayPhrase(offset, evLocal, localNow)

	var b strings.Builder
	person, place := it.Entities.Person, it.Entities.Location
	switch {
	case person != "" && place != "":
		fmt.Fprintf(&b, "You're taking %s to the %s %s", person, place, phrase)
	case place != "":
		fmt.Fprintf(&b, "Your %s appointment is %s", place, phrase)
	default:
		fmt.Fprintf(&b, "**%s** is scheduled for %s", ev.Summary, phrase)
	}
	if !ev.Start.AllDay {
		fmt.Fprintf(&b, " at %s", evLocal.Format("3:04 PM"))
	}
	b.WriteByte('.')

	if ev.Location != "" && place == "" {
		fmt.Fprintf(&b, " It's at %s.", ev.Location)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, " %s", truncate(ev.Description, maxDescription))
	}

	switch {
	case offset == 0:
		fmt.Fprintf(&b, " %s", timeRemaining(ev.Start.Time.Sub(now)))
	case offset == 1:
		b.WriteString(" That's tomorrow!")
	case offset <= 7:
		fmt.Fprintf(&b, " That's in %d days.", offset)
	}
	return b.String()
}

func renderPast(ev EventRef, it intent.Intent, now time.Time) string {
	elapsed := elapsedPhrase(now.Sub(ev.Start.Time))
	person, place := it.Entities.Person, it.Entities.Location
	switch {
	case person != "" && place != "":
		return fmt.Sprintf("You took %s to the %s %s.", person, place, elapsed)
	case place != "":
		return fmt.Sprintf("Your %s appointment was %s.", place, elapsed)
	default:
		return fmt.Sprintf("**%s** was %s.", ev.Summary, elapsed)
	}
}

// elapsedPhrase renders how long ago something happened, coarsening with
// distance: days, then weeks, then months.
func elapsedPhrase(d time.Duration) string {
	days := int(d.Hours() / 24)
	switch {
	case days < 1:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week") + " ago"
	default:
		return plural(days/30, "month") + " ago"
	}
}

// dayPhrase maps a whole-day offset to a natural phrase. Within a week the
// weekday alone is unambiguous; beyond that spell out the date, with the
// year only when it differs from the current one.
func dayPhrase(offset int, evLocal, localNow time.Time) string {
	switch {
	case offset == 0:
		return "today"
	case offset == 1:
		return "tomorrow"
	case offset <= 7:
		return "this " + evLocal.Weekday().String()
	}
	phrase := fmt.Sprintf("%s, %s %d", evLocal.Weekday(), evLocal.Month(), evLocal.Day())
	if evLocal.Year() != localNow.Year() {
		phrase += fmt.Sprintf(", %d", evLocal.Year())
	}
	return phrase
}

func timeRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("That's in %s!", plural(m, "minute"))
	}
	return fmt.Sprintf("That's in %s and %s.", plural(h, "hour"), plural(m, "minute"))
}

// wholeDays is the calendar-day distance between two local times.
func wholeDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
