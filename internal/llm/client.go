// Package llm is the remote completion capability: a thin client over
// Anthropic, OpenAI, or Ollama that turns a system preamble plus a message
// history into one text completion. The pipeline treats it as optional —
// any failure here routes to the local generator.
package llm

import "context"

type Message struct {
	Role    string `json:"role"` // user, assistant
	Content string `json:"content"`
}

type Client interface {
	Complete(ctx context.Context, systemPrompt string, messages []Message) (string, error)
}
