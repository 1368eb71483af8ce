package llm

// TrimMessages trims a message history to fit within a token budget.
//
// The budget should already account for the system preamble and a reserve
// for the model's output. This function only manages the message list.
//
// Strategy:
//  1. Group messages into logical units: a user message plus the assistant
//     reply that follows it.
//  2. Always keep the most recent group (the active turn).
//  3. Drop the oldest groups first until the total fits within budget.
//
// Pairs are never split — either the whole exchange stays or goes.
func TrimMessages(messages []Message, maxTokens int) []Message {
	if len(messages) == 0 {
		return messages
	}

	groups := groupMessages(messages)

	total := 0
	for _, g := range groups {
		total += g.tokens
	}

	if total <= maxTokens {
		return messages
	}

	// Always keep the last group (active turn). Trim from the front.
	kept := total
	dropUntil := 0
	for dropUntil < len(groups)-1 && kept > maxTokens {
		kept -= groups[dropUntil].tokens
		dropUntil++
	}

	// Rebuild the message slice from the surviving groups.
	var trimmed []Message
	for _, g := range groups[dropUntil:] {
		trimmed = append(trimmed, g.messages...)
	}
	return trimmed
}

// messageGroup is a logical unit of conversation that must be kept or
// dropped as a whole.
type messageGroup struct {
	messages []Message
	tokens   int
}

// groupMessages splits a message slice into user+assistant exchanges. A
// user message absorbs the assistant replies that follow it; a leading
// assistant message is its own group.
func groupMessages(messages []Message) []messageGroup {
	var groups []messageGroup
	i := 0
	for i < len(messages) {
		group := messageGroup{}
		group.messages = append(group.messages, messages[i])
		group.tokens += EstimateMessageTokens(messages[i])
		isUser := messages[i].Role == "user"
		i++
		for isUser && i < len(messages) && messages[i].Role == "assistant" {
			group.messages = append(group.messages, messages[i])
			group.tokens += EstimateMessageTokens(messages[i])
			i++
		}
		groups = append(groups, group)
	}
	return groups
}
