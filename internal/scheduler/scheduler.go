// Package scheduler runs the assistant's unattended jobs: the daily
// digest on a cron expression, and a reminder poll for tasks coming due.
package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/casey/aide/internal/fallback"
	"github.com/casey/aide/internal/store"
)

const reminderPoll = 60 * time.Second

type Options struct {
	DigestCron string // standard 5-field cron expression
	WebhookURL string
	Timezone   string
	Style      string
	Name       string
	Logger     zerolog.Logger
}

type Scheduler struct {
	cron   *cron.Cron
	store  *store.Store
	dmSend func(content string) error // nil when no chat surface is connected
	opts   Options
	now    func() time.Time
	done   chan struct{}
}

func New(st *store.Store, dmSend func(content string) error, opts Options) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		store:  st,
		dmSend: dmSend,
		opts:   opts,
		now:    time.Now,
		done:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() error {
	if s.opts.DigestCron != "" {
		if _, err := s.cron.AddFunc(s.opts.DigestCron, s.runDigest); err != nil {
			return fmt.Errorf("registering digest cron %q: %w", s.opts.DigestCron, err)
		}
	}
	s.cron.Start()

	go func() {
		t := time.NewTicker(reminderPoll)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				s.fireReminders()
			case <-s.done:
				return
			}
		}
	}()

	s.opts.Logger.Info().Str("digest_cron", s.opts.DigestCron).Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	close(s.done)
	s.cron.Stop()
}

// runDigest assembles today's summary from the stores and delivers it.
// The generator's digest path is deterministic, so the morning message
// never depends on a remote model being up.
func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	now := s.now()

	events, err := s.store.FetchEvents(ctx, now.AddDate(0, 0, -1), now.AddDate(0, 0, 2), "")
	if err != nil {
		s.opts.Logger.Warn().Err(err).Msg("digest event fetch failed")
	}
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		s.opts.Logger.Warn().Err(err).Msg("digest task list failed")
	}

	digest := fallback.Generate(fallback.Input{
		Utterance: "my day at a glance",
		Events:    events,
		Tasks:     tasks,
		Timezone:  s.opts.Timezone,
		Style:     s.opts.Style,
		Name:      s.opts.Name,
		Now:       now,
	})
	s.deliver("digest", digest)
}

// fireReminders nudges once per task: anything due within the next hour
// that hasn't been reminded about yet.
func (s *Scheduler) fireReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	now := s.now()

	due, err := s.store.DueSoon(ctx, now, time.Hour)
	if err != nil {
		s.opts.Logger.Warn().Err(err).Msg("listing due tasks failed")
		return
	}
	for _, t := range due {
		msg := fmt.Sprintf("Reminder: %q is due %s.", t.Text, humanize.RelTime(t.Due, now, "ago", "from now"))
		if err := s.store.MarkReminded(ctx, t.ID); err != nil {
			s.opts.Logger.Warn().Err(err).Str("task", t.ID).Msg("marking task reminded failed")
			continue
		}
		s.deliver("reminder", msg)
	}
}

// deliver tries the chat surface first, then the webhook.
func (s *Scheduler) deliver(label, content string) {
	if s.dmSend != nil {
		err := s.dmSend(content)
		if err == nil {
			return
		}
		s.opts.Logger.Warn().Err(err).Str("job", label).Msg("dm delivery failed")
	}
	if s.opts.WebhookURL != "" {
		if err := postWebhook(s.opts.WebhookURL, content); err != nil {
			s.opts.Logger.Warn().Err(err).Str("job", label).Msg("webhook delivery failed")
		}
		return
	}
	s.opts.Logger.Info().Str("job", label).Msg("no delivery method configured, dropping message")
}

func postWebhook(url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
