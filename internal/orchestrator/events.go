package orchestrator

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/casey/aide/internal/calendar"
)

var (
	eventCreationRe = regexp.MustCompile(`\b(?:add|new|schedule|create|book)\b.*\b(?:event|meeting)\b`)
	clockRe         = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(am|pm)`)
)

func isEventCreation(norm string) bool {
	return eventCreationRe.MatchString(norm)
}

// createEvent does minimal extraction: a summary and an optional clock
// time. Defaults are start=now and a one-hour duration.
func (o *Orchestrator) createEvent(ctx context.Context, utt string, rc *requestContext) string {
	loc, err := time.LoadLocation(rc.tz)
	if err != nil {
		loc = time.UTC
	}
	start := rc.now

	norm := strings.ToLower(utt)
	if m := clockRe.FindStringSubmatch(norm); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if m[3] == "pm" && hour < 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		local := rc.now.In(loc)
		start = time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	}

	summary := extractSummary(norm)
	if summary == "" {
		summary = "New event"
	}

	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	ev, err := o.cal.CreateEvent(cctx, calendar.EventDraft{
		Summary: summary,
		Start:   start,
		End:     start.Add(time.Hour),
	})
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("event create failed")
		return "Sorry, I couldn't create that event."
	}
	return fmt.Sprintf("Created %q on %s.", ev.Summary, ev.Start.Time.In(loc).Format("Monday at 3:04 PM"))
}

// extractSummary drops the command verb, articles, and the clock time,
// keeping the rest as the event title.
func extractSummary(norm string) string {
	s := clockRe.ReplaceAllString(norm, " ")
	fields := strings.Fields(s)
	var out []string
	skip := map[string]bool{
		"add": true, "new": true, "schedule": true, "create": true, "book": true,
		"a": true, "an": true, "the": true, "at": true, "for": true, "on": true,
		"my": true, "to": true, "please": true, "calendar": true,
	}
	for _, f := range fields {
		if skip[f] {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// listMonth is the bulk "show my events" acknowledgement over the current
// calendar month.
func (o *Orchestrator) listMonth(ctx context.Context, rc *requestContext) string {
	loc, err := time.LoadLocation(rc.tz)
	if err != nil {
		loc = time.UTC
	}
	local := rc.now.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	next := first.AddDate(0, 1, 0)

	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	events, err := o.cal.FetchEvents(cctx, first, next, "")
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("month fetch failed")
		return "Sorry, I couldn't load your events just now."
	}
	if len(events) == 0 {
		return fmt.Sprintf("You have no events in %s.", local.Month())
	}
	return fmt.Sprintf("You have %d event%s in %s. Ask about a specific day for details.",
		len(events), pluralS(len(events)), local.Month())
}

func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
