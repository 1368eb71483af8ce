package intent

import "testing"

func TestClassify_Greeting(t *testing.T) {
	it := Classify("hello")
	if it.Type != TypeGeneral {
		t.Errorf("type = %q, want general", it.Type)
	}
	if it.Category != CategoryGeneral {
		t.Errorf("category = %q, want general", it.Category)
	}
	if it.Action != ActionNone {
		t.Errorf("action = %q, want none", it.Action)
	}
	if it.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", it.Confidence)
	}
	if it.Entities.Urgency != UrgencyLow {
		t.Errorf("urgency = %q, want low", it.Entities.Urgency)
	}
}

func TestClassify_Type(t *testing.T) {
	cases := []struct {
		in   string
		want Type
	}{
		{"when do I take mum to the airport", TypeQuestion},
		{"what's on my calendar", TypeQuestion},
		{"is there anything tomorrow?", TypeQuestion},
		{"do I have meetings today", TypeQuestion},
		{"add a task called buy milk", TypeCommand},
		{"schedule a meeting with the team", TypeCommand},
		{"delete my dentist appointment", TypeCommand},
		{"please remind me about the gym", TypeRequest},
		{"that would be great, please sort it", TypeRequest},
		{"I want to find my notes", TypeSearch},
		{"hello there", TypeGeneral},
	}
	for _, c := range cases {
		if got := Classify(c.in).Type; got != c.want {
			t.Errorf("Classify(%q).Type = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassify_QuestionBeatsCommandKeywords(t *testing.T) {
	// Trailing "?" wins over an embedded imperative verb.
	it := Classify("can I add a meeting for friday?")
	if it.Type != TypeQuestion {
		t.Errorf("type = %q, want question", it.Type)
	}
}

func TestClassify_Category(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"schedule a meeting", CategoryCalendar},
		{"anything happening tomorrow", CategoryCalendar}, // timeRef implies calendar
		{"mark the task done", CategoryTasks},
		{"my morning routine", CategoryHabits},
		{"write down the wifi password", CategoryNotes},
		{"how are you", CategoryGeneral},
	}
	for _, c := range cases {
		if got := Classify(c.in).Category; got != c.want {
			t.Errorf("Classify(%q).Category = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClassify_ActionOrder(t *testing.T) {
	// create outranks read outranks delete in the rule table
	if got := Classify("add and show everything").Action; got != ActionCreate {
		t.Errorf("action = %q, want create", got)
	}
	if got := Classify("show my tasks").Action; got != ActionRead {
		t.Errorf("action = %q, want read", got)
	}
	if got := Classify("cancel the meeting").Action; got != ActionDelete {
		t.Errorf("action = %q, want delete", got)
	}
	if got := Classify("nothing to see").Action; got != ActionNone {
		t.Errorf("action = %q, want none", got)
	}
}

func TestExtractEntities_UrgencyAlwaysSet(t *testing.T) {
	cases := []struct {
		in   string
		want Urgency
	}{
		{"this is urgent, call the doctor", UrgencyHigh},
		{"asap please", UrgencyHigh},
		{"critical issue with the boiler", UrgencyHigh},
		{"important: renew passport", UrgencyMedium},
		{"high priority item", UrgencyMedium},
		{"buy milk", UrgencyLow},
		{"", UrgencyLow},
	}
	for _, c := range cases {
		if got := ExtractEntities(c.in).Urgency; got != c.want {
			t.Errorf("ExtractEntities(%q).Urgency = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExtractEntities_UrgentBeatsImportant(t *testing.T) {
	got := ExtractEntities("important but also urgent")
	if got.Urgency != UrgencyHigh {
		t.Errorf("urgency = %q, want high", got.Urgency)
	}
}

func TestExtractEntities_TimePersonLocation(t *testing.T) {
	ents := ExtractEntities("when do I take Mum to the airport tomorrow?")
	if ents.TimeRef != "tomorrow" {
		t.Errorf("timeRef = %q, want tomorrow", ents.TimeRef)
	}
	if ents.Person != "mum" {
		t.Errorf("person = %q, want mum", ents.Person)
	}
	if ents.Location != "airport" {
		t.Errorf("location = %q, want airport", ents.Location)
	}
}

func TestExtractEntities_PhraseBeforeWord(t *testing.T) {
	// "next week" must win over the bare weekday inside it being absent;
	// declaration order puts multi-word refs first.
	ents := ExtractEntities("let's plan next week on monday")
	if ents.TimeRef != "next week" {
		t.Errorf("timeRef = %q, want \"next week\"", ents.TimeRef)
	}
}

func TestExtractEntities_WordBoundaries(t *testing.T) {
	// "madrid" must not trigger the "add" verb or any vocabulary word.
	ents := ExtractEntities("flights to madrid")
	if ents.TimeRef != "" || ents.Person != "" || ents.Location != "" {
		t.Errorf("unexpected entities from %v", ents)
	}
}

func TestClassify_ConfidenceClamp(t *testing.T) {
	// question + calendar + action + entity sums to 1.1 raw; must clamp.
	it := Classify("when should I add the meeting with my boss tomorrow?")
	if it.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", it.Confidence)
	}
}

func TestClassify_ConfidenceAdditive(t *testing.T) {
	// command + tasks category + create action, no extra entity: 0.5+0.2+0.2+0.1
	it := Classify("add a task")
	if it.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", it.Confidence)
	}
	// question only: 0.5+0.2
	it = Classify("why?")
	if it.Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", it.Confidence)
	}
}
