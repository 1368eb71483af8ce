package calendar

import "strings"

// stopWords are dropped during free-text keyword extraction. Mostly
// function words plus the carrier verbs of calendar questions themselves.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "about": true,
	"what": true, "whats": true, "when": true, "whens": true, "where": true,
	"who": true, "why": true, "how": true, "which": true,
	"you": true, "your": true, "yours": true, "our": true, "his": true, "her": true,
	"have": true, "has": true, "had": true, "was": true, "were": true,
	"are": true, "will": true, "would": true, "could": true, "should": true,
	"can": true, "does": true, "did": true, "this": true, "that": true,
	"there": true, "here": true, "from": true, "into": true, "onto": true,
	"take": true, "taking": true, "going": true, "need": true, "want": true,
	"get": true, "got": true, "next": true, "any": true, "anything": true,
	"today": true, "tomorrow": true, "yesterday": true, "week": true,
	"event": true, "events": true, "calendar": true, "schedule": true,
	"scheduled": true, "happening": true,
}

// synonyms expands a keyword into related terms so "mum" can find an event
// described as "family", and "airport" one titled "BA flight". Matching is
// substring-based, so singulars cover plurals.
var synonyms = map[string][]string{
	"mum":     {"family"},
	"mom":     {"family"},
	"mother":  {"family"},
	"dad":     {"family"},
	"father":  {"family"},
	"airport": {"flight", "plane", "travel", "departure", "terminal"},
	"doctor":  {"appointment", "medical", "clinic", "physician", "health"},
	"dentist": {"appointment", "dental", "teeth"},
	"meeting": {"call", "conference", "discussion", "sync"},
	"gym":     {"workout", "fitness", "class"},
}

// extractKeywords builds the match set for a contextual query: recognized
// person/location entities plus free-text tokens (lowercased, punctuation
// stripped, stop-words dropped, length > 2), each expanded through the
// synonym table. Order is stable: entities first, then text order.
func extractKeywords(person, location, utterance string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(kw string) {
		if kw == "" || seen[kw] {
			return
		}
		seen[kw] = true
		out = append(out, kw)
		for _, syn := range synonyms[kw] {
			if !seen[syn] {
				seen[syn] = true
				out = append(out, syn)
			}
		}
	}

	add(person)
	add(location)
	for _, tok := range tokenize(utterance) {
		if len(tok) > 2 && !stopWords[tok] {
			add(tok)
		}
	}
	return out
}

func tokenize(s string) []string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'':
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// matches reports whether any keyword is a case-insensitive substring of
// the event's concatenated summary, description, and location.
func matches(ev EventRef, keywords []string) bool {
	haystack := strings.ToLower(ev.Summary + " " + ev.Description + " " + ev.Location)
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
