// Package fallback is the deterministic response generator used when no
// remote completion capability is configured or it fails. Templates and
// phrase tables only; same input, same output.
package fallback

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/casey/aide/internal/calendar"
	"github.com/casey/aide/internal/intent"
	"github.com/casey/aide/internal/store"
)

// Input is everything the generator may draw on, passed explicitly — the
// generator holds no state of its own.
type Input struct {
	Utterance string
	Intent    intent.Intent
	Events    []calendar.EventRef
	Tasks     []store.Task
	Timezone  string
	Style     string
	Name      string
	Now       time.Time
}

// Generate produces a reply without any remote call. A lightweight
// calendar re-detect runs first: the orchestrator's keyword net is broad
// but not exhaustive, and anything it missed still deserves a calendar
// answer when event data is at hand.
func Generate(in Input) string {
	if looksLikeCalendar(in) {
		return calendar.Answer(in.Intent, in.Utterance, in.Timezone, in.Events, in.Now)
	}

	norm := strings.ToLower(in.Utterance)
	switch {
	case containsAny(norm, "summary", "at a glance", "overview", "my day"):
		return digest(in)
	case containsAny(norm, "help", "what can you do", "what do you do"):
		return helpText
	}
	return pickPhrase(in.Style, in.Utterance)
}

func looksLikeCalendar(in Input) bool {
	norm := strings.ToLower(in.Utterance)
	return in.Intent.Category == intent.CategoryCalendar ||
		in.Intent.Entities.TimeRef != "" ||
		containsAny(norm, "calendar", "schedule", "meeting", "event", "appointment", "agenda")
}

const helpText = `Here's what I can do:
- Answer questions about your calendar ("when do I take mum to the airport?")
- List a day's events ("what's on tomorrow?")
- Create tasks ("add a task called buy milk for tomorrow work")
- Create events ("schedule a meeting with Sam at 2:00 pm")
- Give you a daily summary ("my day at a glance")
- Suggest what to tackle next ("any suggestions?")`

// phrases by style; picked deterministically from the utterance so the
// same question gets the same answer.
var phrases = map[string][]string{
	"friendly": {
		"I'm here when you need me. Want a summary of your day?",
		"Not sure I caught that — try asking about your calendar or tasks, or say \"help\".",
		"Happy to help with your schedule, tasks, or a daily summary.",
	},
	"concise": {
		"Try \"help\" for what I can do.",
		"Ask about your calendar, tasks, or say \"summary\".",
		"Didn't catch that. \"help\" lists commands.",
	},
	"coach": {
		"Let's keep moving — want to review today's priorities?",
		"One thing at a time. Ask for a summary and pick your next move.",
		"Small steps count. Shall we look at what's due soon?",
	},
}

func pickPhrase(style, utterance string) string {
	table, ok := phrases[style]
	if !ok {
		table = phrases["friendly"]
	}
	h := fnv.New32a()
	h.Write([]byte(utterance))
	return table[int(h.Sum32())%len(table)]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func greeting(localNow time.Time, name string) string {
	var g string
	switch h := localNow.Hour(); {
	case h < 12:
		g = "Good morning"
	case h < 17:
		g = "Good afternoon"
	default:
		g = "Good evening"
	}
	if name != "" {
		return fmt.Sprintf("%s, %s!", g, name)
	}
	return g + "!"
}
