// Package intent classifies a raw utterance into a structured intent using
// ordered keyword rule tables. First match wins within each facet; there is
// no statistical model anywhere in here.
package intent

// Type is the grammatical shape of an utterance.
type Type string

const (
	TypeQuestion Type = "question"
	TypeCommand  Type = "command"
	TypeRequest  Type = "request"
	TypeSearch   Type = "search"
	TypeGeneral  Type = "general"
)

// Category is the subject area an utterance is about.
type Category string

const (
	CategoryCalendar Category = "calendar"
	CategoryTasks    Category = "tasks"
	CategoryHabits   Category = "habits"
	CategoryNotes    Category = "notes"
	CategoryGeneral  Category = "general"
)

// Action is the operation the utterance asks for. Empty means none detected.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
	ActionNone   Action = ""
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Entities are the typed fragments extracted from the utterance. TimeRef,
// Person, and Location are present only when recognized; Urgency is always
// assigned (defaults low).
type Entities struct {
	TimeRef  string  `json:"time_ref,omitempty"`
	Person   string  `json:"person,omitempty"`
	Location string  `json:"location,omitempty"`
	Urgency  Urgency `json:"urgency"`
}

type Intent struct {
	Type       Type     `json:"type"`
	Category   Category `json:"category"`
	Action     Action   `json:"action,omitempty"`
	Entities   Entities `json:"entities"`
	Confidence float64  `json:"confidence"`
}

// Classify runs every facet's rule table over the utterance and assembles
// the intent. Confidence is additive: 0.5 base, +0.2 for a non-general
// type, +0.2 for a non-general category, +0.1 for an action, +0.1 if any
// entity besides urgency was extracted, clamped to 1.0 (the raw sum can
// reach 1.1).
func Classify(utterance string) Intent {
	text := normalize(utterance)

	it := Intent{
		Type:     classifyType(utterance, text),
		Entities: ExtractEntities(utterance),
	}
	it.Category = classifyCategory(text, it.Entities)
	it.Action = classifyAction(text)

	conf := 0.5
	if it.Type != TypeGeneral {
		conf += 0.2
	}
	if it.Category != CategoryGeneral {
		conf += 0.2
	}
	if it.Action != ActionNone {
		conf += 0.1
	}
	if it.Entities.TimeRef != "" || it.Entities.Person != "" || it.Entities.Location != "" {
		conf += 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	it.Confidence = conf

	return it
}
