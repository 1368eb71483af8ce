package intent

import "strings"

// The long if/else chains this replaces were a maintenance hazard: each
// facet is now an ordered table evaluated top to bottom, so the priority
// order is data, not control flow.

type typeRule struct {
	Name  string
	Match func(raw, norm string) bool
	Type  Type
}

var typeRules = []typeRule{
	{
		Name: "question",
		Match: func(raw, norm string) bool {
			if strings.HasSuffix(strings.TrimSpace(raw), "?") {
				return true
			}
			first := firstToken(norm)
			return inSet(first, whWords) || inSet(first, auxVerbs)
		},
		Type: TypeQuestion,
	},
	{
		Name: "command",
		Match: func(raw, norm string) bool {
			return inSet(firstToken(norm), imperativeVerbs)
		},
		Type: TypeCommand,
	},
	{
		Name: "request",
		Match: func(raw, norm string) bool {
			return containsAny(norm, "please", "could you", "can you")
		},
		Type: TypeRequest,
	},
	{
		Name: "search",
		Match: func(raw, norm string) bool {
			return containsAny(norm, "find", "search", "show me")
		},
		Type: TypeSearch,
	},
}

var (
	// contractions lose the apostrophe during normalization
	whWords         = set("what", "when", "where", "who", "why", "how", "which", "whose", "whats", "whens", "wheres", "whos", "hows")
	auxVerbs        = set("is", "are", "am", "was", "were", "do", "does", "did", "can", "could", "will", "would", "should", "shall", "have", "has")
	imperativeVerbs = set("add", "create", "schedule", "delete", "remove", "make", "set", "book", "cancel", "complete", "start", "stop", "list")
)

func classifyType(raw, norm string) Type {
	for _, r := range typeRules {
		if r.Match(raw, norm) {
			return r.Type
		}
	}
	return TypeGeneral
}

type categoryRule struct {
	Keywords []string
	Category Category
}

var categoryRules = []categoryRule{
	{[]string{"schedule", "meeting", "event", "calendar", "appointment"}, CategoryCalendar},
	{[]string{"task", "todo", "to do", "complete", "done"}, CategoryTasks},
	{[]string{"habit", "routine", "streak"}, CategoryHabits},
	{[]string{"note", "remember", "write down"}, CategoryNotes},
}

// classifyCategory also treats any recognized time reference as a calendar
// signal, so "what's on tomorrow" lands in calendar without a keyword.
func classifyCategory(norm string, ents Entities) Category {
	if containsAny(norm, categoryRules[0].Keywords...) || ents.TimeRef != "" {
		return CategoryCalendar
	}
	for _, r := range categoryRules[1:] {
		if containsAny(norm, r.Keywords...) {
			return r.Category
		}
	}
	return CategoryGeneral
}

type actionRule struct {
	Keywords []string
	Action   Action
}

var actionRules = []actionRule{
	{[]string{"add", "create", "make", "new"}, ActionCreate},
	{[]string{"show", "list", "view", "get"}, ActionRead},
	{[]string{"update", "edit", "change", "modify"}, ActionUpdate},
	{[]string{"delete", "remove", "cancel"}, ActionDelete},
	{[]string{"find", "search"}, ActionSearch},
}

func classifyAction(norm string) Action {
	for _, r := range actionRules {
		if containsAny(norm, r.Keywords...) {
			return r.Action
		}
	}
	return ActionNone
}
