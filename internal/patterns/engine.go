// Package patterns is the pattern-analysis collaborator: ranked
// suggestions, free-form answers, and context blocks derived from the
// user's own events and tasks. Heuristics over the stores, nothing fancier.
package patterns

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/casey/aide/internal/store"
)

type Suggestion struct {
	Text  string
	Score float64
}

type Engine struct {
	store *store.Store
	now   func() time.Time
}

func New(s *store.Store) *Engine {
	return &Engine{store: s, now: time.Now}
}

// LoadContext assembles the compact context block that prefixes remote
// completions: the next few days of events plus open tasks.
func (e *Engine) LoadContext(ctx context.Context, userID string) (string, error) {
	now := e.now()
	events, err := e.store.FetchEvents(ctx, now, now.AddDate(0, 0, 7), "")
	if err != nil {
		return "", fmt.Errorf("loading event context: %w", err)
	}
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("loading task context: %w", err)
	}

	var b strings.Builder
	if len(events) > 0 {
		b.WriteString("## Upcoming events (7 days)\n")
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s: %s", ev.Start.Time.Format("Mon Jan 2 3:04 PM"), ev.Summary)
			if ev.Location != "" {
				fmt.Fprintf(&b, " @ %s", ev.Location)
			}
			b.WriteByte('\n')
		}
	}
	if len(tasks) > 0 {
		b.WriteString("## Open tasks\n")
		for _, t := range tasks {
			fmt.Fprintf(&b, "- [%s] %s", t.Source, t.Text)
			if !t.Due.IsZero() {
				fmt.Fprintf(&b, " (due %s)", t.Due.Format("Jan 2"))
			}
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}

// Suggestions ranks nudges from the task list: overdue first, then due
// today, then tasks that have sat untouched for two weeks.
func (e *Engine) Suggestions(ctx context.Context) ([]Suggestion, error) {
	now := e.now()
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("ranking suggestions: %w", err)
	}

	var out []Suggestion
	for _, t := range tasks {
		switch {
		case !t.Due.IsZero() && t.Due.Before(now):
			out = append(out, Suggestion{
				Text:  fmt.Sprintf("%q is overdue — want to reschedule or finish it?", t.Text),
				Score: 1.0 + now.Sub(t.Due).Hours()/24,
			})
		case !t.Due.IsZero() && t.Due.Before(now.Add(24*time.Hour)):
			out = append(out, Suggestion{
				Text:  fmt.Sprintf("%q is due within a day.", t.Text),
				Score: 0.8,
			})
		case t.Due.IsZero() && !t.CreatedAt.IsZero() && now.Sub(t.CreatedAt) > 14*24*time.Hour:
			out = append(out, Suggestion{
				Text:  fmt.Sprintf("%q has been open for a while with no due date.", t.Text),
				Score: 0.4,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

// AnswerQuery does a keyword lookup across events and tasks. An empty
// string means no answer; the caller falls through to its next branch.
func (e *Engine) AnswerQuery(ctx context.Context, text string) (string, error) {
	terms := queryTerms(text)
	if len(terms) == 0 {
		return "", nil
	}
	now := e.now()

	events, err := e.store.FetchEvents(ctx, now.AddDate(0, 0, -30), now.AddDate(0, 0, 30), "")
	if err != nil {
		return "", fmt.Errorf("searching events: %w", err)
	}
	for _, ev := range events {
		if matchesTerms(ev.Summary+" "+ev.Description+" "+ev.Location, terms) {
			return fmt.Sprintf("%s is on %s.", ev.Summary, ev.Start.Time.Format("Monday, January 2 at 3:04 PM")), nil
		}
	}

	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("searching tasks: %w", err)
	}
	for _, t := range tasks {
		if matchesTerms(t.Text, terms) {
			if t.Due.IsZero() {
				return fmt.Sprintf("You have an open task: %s.", t.Text), nil
			}
			return fmt.Sprintf("You have an open task: %s, due %s.", t.Text, t.Due.Format("Monday, January 2")), nil
		}
	}
	return "", nil
}

var queryStopWords = map[string]bool{
	"the": true, "and": true, "for": true, "what": true, "whats": true,
	"when": true, "where": true, "who": true, "how": true, "why": true,
	"have": true, "has": true, "are": true, "was": true, "does": true,
	"did": true, "can": true, "you": true, "your": true, "about": true,
	"tell": true, "know": true, "anything": true, "there": true,
}

func queryTerms(text string) []string {
	var out []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,!?:;'\"")
		if len(f) > 2 && !queryStopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

func matchesTerms(haystack string, terms []string) bool {
	haystack = strings.ToLower(haystack)
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}
