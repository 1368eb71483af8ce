package orchestrator

import (
	"context"
	"strings"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/fallback"
	"github.com/casey/aide/internal/intent"
	"github.com/casey/aide/internal/llm"
	"golang.org/x/sync/errgroup"
)

// Request is the inbound boundary payload.
type Request struct {
	Utterance     string        `json:"utterance"`
	History       []llm.Message `json:"history,omitempty"`
	Style         string        `json:"style,omitempty"`
	PreferredName string        `json:"preferred_name,omitempty"`
	Timezone      string        `json:"timezone,omitempty"`
	UserID        string        `json:"user_id,omitempty"`
}

// requestContext is the per-request scope: intent, fetched data, and
// resolved preferences. Constructed fresh per call, passed explicitly,
// never shared across requests.
type requestContext struct {
	intent     intent.Intent
	events     []calendar.EventRef
	patternCtx string
	norm       string
	now        time.Time
	tz         string
	style      string
	name       string
	history    []llm.Message
}

// buildContext classifies the utterance and fans out the two independent
// loads — the event window and the pattern-analysis context block — then
// joins before the chain runs. Either load failing just leaves its slot
// empty; the chain degrades rather than aborts.
func (o *Orchestrator) buildContext(ctx context.Context, req Request, utt string) *requestContext {
	rc := &requestContext{
		intent:  intent.Classify(utt),
		norm:    strings.ToLower(utt),
		now:     o.now(),
		tz:      req.Timezone,
		style:   req.Style,
		name:    req.PreferredName,
		history: req.History,
	}
	if rc.tz == "" {
		rc.tz = o.opts.Timezone
	}
	if rc.style == "" {
		rc.style = o.opts.Style
	}
	if rc.name == "" {
		rc.name = o.opts.PreferredName
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cctx, cancel := o.collabCtx(gctx)
		defer cancel()
		events, err := o.cal.FetchEvents(cctx, rc.now, rc.now.AddDate(0, 0, 7), "")
		if err != nil {
			o.opts.Logger.Warn().Err(err).Msg("event window fetch failed")
			return nil
		}
		rc.events = events
		return nil
	})
	g.Go(func() error {
		cctx, cancel := o.collabCtx(gctx)
		defer cancel()
		block, err := o.patterns.LoadContext(cctx, req.UserID)
		if err != nil {
			o.opts.Logger.Warn().Err(err).Msg("pattern context load failed")
			return nil
		}
		rc.patternCtx = block
		return nil
	})
	_ = g.Wait() // goroutines swallow their own errors

	return rc
}

// localReply hands the request to the deterministic generator, feeding it
// whatever data this request already fetched.
func (o *Orchestrator) localReply(ctx context.Context, utt string, rc *requestContext) string {
	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	tasks, err := o.tasks.ListTasks(cctx)
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("task list for local reply failed")
	}
	return fallback.Generate(fallback.Input{
		Utterance: utt,
		Intent:    rc.intent,
		Events:    rc.events,
		Tasks:     tasks,
		Timezone:  rc.tz,
		Style:     rc.style,
		Name:      rc.name,
		Now:       rc.now,
	})
}
