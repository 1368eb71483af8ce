// Package task extracts task drafts from templated phrasings. Parsing is a
// prioritized template table: the first pattern whose structure matches is
// used exclusively, so templates can be tested and reordered in isolation.
package task

import (
	"regexp"
	"strings"
	"time"
)

// Draft is the transient result of parsing a task command. It lives for a
// single request: either it passes the clarification gate and is handed to
// the task store, or it is discarded with the clarification reply.
type Draft struct {
	Text        string
	DuePhrase   string
	ResolvedDue time.Time
	Source      string // personal, work, or "" when unspecified
	Urgency     string
}

// A template pairs a phrasing pattern with an extractor for its captures.
// Most-specific first; the generic forms sit at the bottom.
type template struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(m []string) (text, duePhrase string)
}

var verb = `(?:add|create|make|new)`

var templates = []template{
	{
		Name:    "task-for-called",
		Pattern: regexp.MustCompile(`(?i)^` + verb + `\s+a\s+task\s+for\s+(.+?)\s+called\s+(.+)$`),
		Extract: func(m []string) (string, string) { return m[2], m[1] },
	},
	{
		Name:    "task-due-called",
		Pattern: regexp.MustCompile(`(?i)^` + verb + `\s+a\s+task\s+due\s+(.+?)\s+called\s+(.+)$`),
		Extract: func(m []string) (string, string) { return m[2], m[1] },
	},
	{
		Name:    "task-called-for",
		Pattern: regexp.MustCompile(`(?i)^` + verb + `\s+a\s+task\s+called\s+(.+?)\s+(?:for|due)\s+(.+)$`),
		Extract: func(m []string) (string, string) { return m[1], m[2] },
	},
	{
		Name:    "task-called",
		Pattern: regexp.MustCompile(`(?i)^` + verb + `\s+a\s+task\s+called\s+(.+)$`),
		Extract: func(m []string) (string, string) { return m[1], "" },
	},
	{
		Name:    "task-generic",
		Pattern: regexp.MustCompile(`(?i)^` + verb + `\s+(?:a\s+)?task:?\s+(.+)$`),
		Extract: func(m []string) (string, string) { return splitDueSuffix(m[1]) },
	},
	{
		Name:    "to-my-task-list",
		Pattern: regexp.MustCompile(`(?i)^(?:add|put)\s+(.+?)\s+to\s+my\s+task\s+list$`),
		Extract: func(m []string) (string, string) { return splitDueSuffix(m[1]) },
	},
	{
		Name:    "task-colon",
		Pattern: regexp.MustCompile(`(?i)^task:\s*(.+)$`),
		Extract: func(m []string) (string, string) { return splitDueSuffix(m[1]) },
	},
}

var dueSuffixRe = regexp.MustCompile(`(?i)^(.+?)\s+(?:for|due)\s+(.+)$`)

// splitDueSuffix re-splits a generic capture on an embedded "for <phrase>"
// or "due <phrase>" suffix.
func splitDueSuffix(text string) (string, string) {
	if m := dueSuffixRe.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	return text, ""
}

// Parse runs the template table over an utterance. ok is false when no
// template matches; the utterance then belongs to a different branch of
// the pipeline, not to an error path.
func Parse(utterance string) (Draft, bool) {
	text := strings.TrimSpace(utterance)
	for _, t := range templates {
		m := t.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		taskText, duePhrase := t.Extract(m)
		d := Draft{
			Text:      strings.TrimSpace(stripSourceWords(taskText)),
			DuePhrase: strings.TrimSpace(stripSourceWords(duePhrase)),
		}
		d.Source = ExtractSource(utterance)
		return d, true
	}
	return Draft{}, false
}

var sourceWords = map[string]string{
	"work":     "work",
	"business": "work",
	"personal": "personal",
	"home":     "personal",
}

// ExtractSource finds an explicit source keyword anywhere in the utterance.
// Absence of both keyword groups is "unspecified" — the clarification gate
// owns the decision, not a silent default.
func ExtractSource(utterance string) string {
	for _, tok := range strings.Fields(strings.ToLower(utterance)) {
		tok = strings.Trim(tok, ".,!?:;")
		if src, ok := sourceWords[tok]; ok {
			return src
		}
	}
	return ""
}

// stripSourceWords removes source keywords from a capture so "tomorrow
// work" still resolves as a due phrase and "buy milk" stays clean.
func stripSourceWords(s string) string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if _, ok := sourceWords[strings.ToLower(strings.Trim(f, ".,!?:;"))]; ok {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
