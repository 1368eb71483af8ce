// Package orchestrator evaluates the per-request decision chain: an
// ordered list of response strategies where the first applicable branch
// wins and every external collaborator failure routes to the next branch
// instead of failing the request.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/intent"
	"github.com/casey/aide/internal/llm"
	"github.com/casey/aide/internal/patterns"
	"github.com/casey/aide/internal/store"
	"github.com/casey/aide/internal/task"
	"github.com/rs/zerolog"
)

// ErrEmptyUtterance is the only fatal validation error: a missing or blank
// utterance is rejected before any pipeline stage runs.
var ErrEmptyUtterance = errors.New("utterance must be a non-empty string")

// Collaborator contracts. The orchestrator owns none of these; each call
// is individually fault-isolated behind a bounded timeout.

type CalendarStore interface {
	FetchEvents(ctx context.Context, timeMin, timeMax time.Time, source string) ([]calendar.EventRef, error)
	CreateEvent(ctx context.Context, d calendar.EventDraft) (calendar.EventRef, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, d task.Draft) (store.Task, error)
	ListTasks(ctx context.Context) ([]store.Task, error)
}

type PatternEngine interface {
	LoadContext(ctx context.Context, userID string) (string, error)
	Suggestions(ctx context.Context) ([]patterns.Suggestion, error)
	AnswerQuery(ctx context.Context, text string) (string, error)
}

// Capability is one entry of the ordered capability table: an exact
// matcher over the raw text and a handler receiving the command word and
// its arguments.
type Capability struct {
	Name   string
	Match  func(text string) bool
	Handle func(ctx context.Context, command string, args []string) (string, error)
}

const defaultTimeout = 5 * time.Second

type Options struct {
	Timeout          time.Duration
	Style            string
	PreferredName    string
	Timezone         string
	MaxContextTokens int
	Logger           zerolog.Logger
}

type Orchestrator struct {
	cal       CalendarStore
	tasks     TaskStore
	patterns  PatternEngine
	completer llm.Client // nil when no remote capability is configured
	caps      []Capability
	opts      Options
	now       func() time.Time
}

func New(cal CalendarStore, tasks TaskStore, pe PatternEngine, completer llm.Client, caps []Capability, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Timezone == "" {
		opts.Timezone = "UTC"
	}
	if opts.MaxContextTokens <= 0 {
		opts.MaxContextTokens = 16000
	}
	return &Orchestrator{
		cal:       cal,
		tasks:     tasks,
		patterns:  pe,
		completer: completer,
		caps:      caps,
		opts:      opts,
		now:       time.Now,
	}
}

// Respond runs the decision chain for one request. The returned error is
// validation-only; every downstream degradation still yields a reply.
func (o *Orchestrator) Respond(ctx context.Context, req Request) (string, error) {
	utt := strings.TrimSpace(req.Utterance)
	if utt == "" {
		return "", ErrEmptyUtterance
	}

	rc := o.buildContext(ctx, req, utt)
	norm := rc.norm
	draft, templateMatched := task.Parse(utt)
	// A due phrase makes the classifier read task commands as calendar
	// (any time reference is a calendar signal), so task-shaped text is
	// recognized here and diverted past the calendar branch.
	taskish := templateMatched || containsAny(norm, "task", "todo", "to do")

	// 1. Advice/suggestion keywords.
	if containsAny(norm, "suggest", "suggestion", "suggestions", "advice", "recommend", "what should i") {
		if reply, ok := o.adviceReply(ctx); ok {
			return reply, nil
		}
	}

	// 2. Calendar-shaped utterance. Creation, bulk-listing, and task
	// phrasings are diverted so they reach their own branches below
	// instead of being answered as a day query.
	if (rc.intent.Category == intent.CategoryCalendar || calendarNet(norm)) &&
		!isEventCreation(norm) && !isBulkList(norm) && !taskish {
		return calendar.Answer(rc.intent, utt, rc.tz, rc.events, rc.now), nil
	}

	// 3. High-confidence question.
	if rc.intent.Type == intent.TypeQuestion && rc.intent.Confidence > 0.7 {
		if ans, ok := o.freeformAnswer(ctx, utt); ok {
			return ans, nil
		}
	}

	// 4. Capability table.
	for _, c := range o.caps {
		if c.Match(utt) {
			return o.invokeCapability(ctx, c, utt), nil
		}
	}

	// 5. Task creation, template or entity-driven.
	if (rc.intent.Category == intent.CategoryTasks || taskish) && rc.intent.Action == intent.ActionCreate {
		if !templateMatched {
			draft = draftFromIntent(utt, rc.intent)
		}
		return o.finishTask(ctx, draft, rc), nil
	}

	// 6. Task template match outside the create intent.
	if templateMatched {
		return o.finishTask(ctx, draft, rc), nil
	}

	// 7. Event creation phrasing.
	if isEventCreation(norm) {
		return o.createEvent(ctx, utt, rc), nil
	}

	// 8. Bulk event listing.
	if isBulkList(norm) {
		return o.listMonth(ctx, rc), nil
	}

	// 9. General path: remote completion, then the local generator.
	return o.generalReply(ctx, utt, rc), nil
}

// calendarNet is the broad keyword net for branch 2 — deliberately wider
// than the classifier's calendar category so phrasings like "when do I..."
// reach the resolver.
func calendarNet(norm string) bool {
	return containsAny(norm,
		"schedule", "meeting", "agenda", "appointment", "calendar",
		"when do i", "when am i", "when is my", "what time is")
}

func isBulkList(norm string) bool {
	return containsAny(norm, "list my events", "show my events", "all my events")
}

// collabCtx bounds one external collaborator call.
func (o *Orchestrator) collabCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.opts.Timeout)
}

func containsAny(norm string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(norm, s) {
			return true
		}
	}
	return false
}
