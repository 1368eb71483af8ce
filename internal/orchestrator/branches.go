package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/casey/aide/internal/dates"
	"github.com/casey/aide/internal/intent"
	"github.com/casey/aide/internal/task"
)

const maxSuggestions = 3

// adviceReply formats the top ranked suggestions. ok is false when the
// engine failed — the chain then moves on rather than answering badly.
func (o *Orchestrator) adviceReply(ctx context.Context) (string, bool) {
	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	sugs, err := o.patterns.Suggestions(cctx)
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("suggestions failed")
		return "", false
	}
	if len(sugs) == 0 {
		return "No suggestions right now — you're on top of things.", true
	}
	if len(sugs) > maxSuggestions {
		sugs = sugs[:maxSuggestions]
	}
	var b strings.Builder
	b.WriteString("A few things worth a look:\n")
	for _, s := range sugs {
		fmt.Fprintf(&b, "- %s\n", s.Text)
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// freeformAnswer asks the pattern engine's query responder. An empty
// answer is "no-answer" and falls through.
func (o *Orchestrator) freeformAnswer(ctx context.Context, utt string) (string, bool) {
	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	ans, err := o.patterns.AnswerQuery(cctx, utt)
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("freeform query failed")
		return "", false
	}
	if strings.TrimSpace(ans) == "" {
		return "", false
	}
	return ans, true
}

func (o *Orchestrator) invokeCapability(ctx context.Context, c Capability, utt string) string {
	fields := strings.Fields(utt)
	command := fields[0]
	args := fields[1:]

	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	out, err := c.Handle(cctx, command, args)
	if err != nil {
		o.opts.Logger.Warn().Err(err).Str("capability", c.Name).Msg("capability handler failed")
		return "Sorry, I couldn't complete that."
	}
	return out
}

// draftFromIntent builds a task draft straight from the classified
// entities when no template matched: the utterance minus command filler
// becomes the text, the time reference the due phrase.
func draftFromIntent(utt string, it intent.Intent) task.Draft {
	text := strings.ToLower(utt)
	for _, filler := range []string{"add", "create", "make", "new", "a task", "task", "called", "please"} {
		text = strings.ReplaceAll(text, filler, " ")
	}
	if it.Entities.TimeRef != "" {
		text = strings.ReplaceAll(text, it.Entities.TimeRef, " ")
	}

	fields := strings.Fields(text)
	drop := map[string]bool{
		"work": true, "business": true, "personal": true, "home": true,
		"for": true, "due": true, "to": true, "my": true, "list": true,
		"a": true, "an": true, "the": true,
	}
	var kept []string
	for _, f := range fields {
		if drop[strings.Trim(f, ".,!?:;")] {
			continue
		}
		kept = append(kept, f)
	}

	return task.Draft{
		Text:      strings.Join(kept, " "),
		DuePhrase: it.Entities.TimeRef,
		Source:    task.ExtractSource(utt),
	}
}

// finishTask applies the clarification gate and, when it passes, creates
// the task. The gate names exactly what's missing; the draft itself is
// discarded with the reply — the next message starts from scratch.
func (o *Orchestrator) finishTask(ctx context.Context, d task.Draft, rc *requestContext) string {
	var missing []string
	if d.Source == "" {
		missing = append(missing, "Source: work or personal?")
	}
	due, resolved := dates.Resolve(d.DuePhrase, rc.tz, rc.now)
	if !resolved {
		missing = append(missing, "Due date: when?")
	}
	if len(missing) > 0 {
		return "Before I create that task, I need a bit more. " + strings.Join(missing, " ")
	}

	d.ResolvedDue = due
	if rc.intent.Entities.Urgency == intent.UrgencyHigh {
		d.Urgency = "high"
	}

	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	if _, err := o.tasks.CreateTask(cctx, d); err != nil {
		o.opts.Logger.Warn().Err(err).Msg("task create failed")
		return "Sorry, I couldn't create that task."
	}
	return fmt.Sprintf("Created task %q on your %s list, due %s.", d.Text, d.Source, d.DuePhrase)
}
