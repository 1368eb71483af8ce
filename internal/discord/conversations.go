package discord

import (
	"strings"
	"sync"

	"github.com/casey/aide/internal/llm"
)

// conversations holds per-channel history. In-memory only: a restart
// starts conversations fresh, which is fine for a chat surface.
type conversations struct {
	mu        sync.Mutex
	histories map[string][]llm.Message
}

func newConversations() *conversations {
	return &conversations{histories: make(map[string][]llm.Message)}
}

func (c *conversations) get(channelID string) []llm.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.histories[channelID]
}

func (c *conversations) set(channelID string, history []llm.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.histories[channelID] = history
}

func stripMention(s, userID string) string {
	s = strings.ReplaceAll(s, "<@"+userID+">", "")
	s = strings.ReplaceAll(s, "<@!"+userID+">", "")
	return strings.TrimSpace(s)
}

func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := maxLen
		if end > len(s) {
			end = len(s)
		}
		// Prefer a newline boundary.
		if end < len(s) {
			if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
				end = idx + 1
			}
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}
