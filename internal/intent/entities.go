package intent

import "strings"

// Fixed vocabularies for entity extraction. First hit in declaration order
// wins, so multi-word phrases come before single words they contain.

var timeRefs = []string{
	"next week", "this week",
	"today", "tomorrow", "yesterday",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

var personRefs = []string{
	"mum", "mom", "mother", "dad", "father",
	"brother", "sister", "wife", "husband", "partner",
	"son", "daughter", "grandma", "grandpa",
	"boss", "manager", "colleague", "client",
	"doctor", "dentist", "friend",
}

var locationRefs = []string{
	"airport", "office", "school", "gym", "hospital",
	"clinic", "dentist", "bank", "station", "church",
	"restaurant", "park", "shop", "supermarket",
}

// ExtractEntities pulls the typed fragments out of an utterance. Urgency is
// always set: urgent/asap/critical outrank important/priority, and anything
// else is low.
func ExtractEntities(utterance string) Entities {
	norm := normalize(utterance)

	ents := Entities{Urgency: UrgencyLow}
	if containsAny(norm, "urgent", "asap", "critical") {
		ents.Urgency = UrgencyHigh
	} else if containsAny(norm, "important", "priority") {
		ents.Urgency = UrgencyMedium
	}

	for _, ref := range timeRefs {
		if containsPhrase(norm, ref) {
			ents.TimeRef = ref
			break
		}
	}
	for _, ref := range personRefs {
		if containsPhrase(norm, ref) {
			ents.Person = ref
			break
		}
	}
	for _, ref := range locationRefs {
		if containsPhrase(norm, ref) {
			ents.Location = ref
			break
		}
	}
	return ents
}

// normalize lowercases, strips punctuation, and collapses whitespace so
// vocabulary matching works on word boundaries.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '\'':
			// keep contractions together: "what's" -> "whats"
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// containsPhrase reports whether phrase appears on word boundaries in the
// normalized text.
func containsPhrase(norm, phrase string) bool {
	return strings.Contains(" "+norm+" ", " "+phrase+" ")
}

func containsAny(norm string, phrases ...string) bool {
	for _, p := range phrases {
		if containsPhrase(norm, p) {
			return true
		}
	}
	return false
}

func firstToken(norm string) string {
	if i := strings.IndexByte(norm, ' '); i >= 0 {
		return norm[:i]
	}
	return norm
}

func inSet(tok string, s map[string]bool) bool { return s[tok] }

func set(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
