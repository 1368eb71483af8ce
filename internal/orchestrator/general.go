package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/casey/aide/internal/llm"
)

// generalReply is the last branch: one remote completion attempt, and the
// local generator whenever that is unconfigured, empty, or failing.
func (o *Orchestrator) generalReply(ctx context.Context, utt string, rc *requestContext) string {
	if o.completer == nil {
		return o.localReply(ctx, utt, rc)
	}

	system := systemPreamble(rc.style, rc.name, rc.tz, rc.patternCtx)
	budget := o.opts.MaxContextTokens - llm.EstimateTokens(system)
	if budget < 1000 {
		budget = 1000 // floor so we always have room for the current turn
	}
	messages := append(llm.TrimMessages(rc.history, budget), llm.Message{Role: "user", Content: utt})

	cctx, cancel := o.collabCtx(ctx)
	defer cancel()
	reply, err := o.completer.Complete(cctx, system, messages)
	if err != nil {
		o.opts.Logger.Warn().Err(err).Msg("remote completion failed, using local generator")
		return o.localReply(ctx, utt, rc)
	}
	if strings.TrimSpace(reply) == "" {
		o.opts.Logger.Warn().Msg("remote completion returned empty, using local generator")
		return o.localReply(ctx, utt, rc)
	}
	return reply
}

var personalities = map[string]string{
	"friendly": "Warm and encouraging, but never gushing.",
	"concise":  "Short, direct sentences. No filler.",
	"coach":    "Action-oriented. Nudge toward the next concrete step.",
}

// systemPreamble assembles the completion system prompt from the style
// personality, preferred name, timezone, and the pattern-analysis context
// block.
func systemPreamble(style, name, tz, contextBlock string) string {
	personality, ok := personalities[style]
	if !ok {
		personality = personalities["friendly"]
	}

	var b strings.Builder
	b.WriteString("You are a personal productivity assistant for calendars, tasks, and daily planning.\n")
	fmt.Fprintf(&b, "Tone: %s\n", personality)
	if name != "" {
		fmt.Fprintf(&b, "Address the user as %s.\n", name)
	}
	fmt.Fprintf(&b, "The user's timezone is %s; render all dates and times in it.\n", tz)
	b.WriteString("Be helpful but concise. Admit when you don't know something rather than making things up.\n")
	if contextBlock != "" {
		b.WriteString("\nWhat you know about the user's current commitments:\n")
		b.WriteString(contextBlock)
	}
	return b.String()
}
