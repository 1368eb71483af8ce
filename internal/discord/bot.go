// Package discord is the chat surface: DMs and mentions are routed to the
// assistant, with per-channel conversation history kept in memory.
package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/casey/aide/internal/llm"
	"github.com/casey/aide/internal/orchestrator"
)

// Responder is the assistant surface the bot needs.
type Responder interface {
	Respond(ctx context.Context, req orchestrator.Request) (string, error)
}

type Bot struct {
	session *discordgo.Session
	conv    *conversations
	orch    Responder
	log     zerolog.Logger

	maxContextTokens int

	mu       sync.Mutex
	dmUserID string // last user who DMed the bot; scheduled messages go here
}

func NewBot(token string, orch Responder, maxContextTokens int, log zerolog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	bot := &Bot{
		session:          s,
		conv:             newConversations(),
		orch:             orch,
		log:              log,
		maxContextTokens: maxContextTokens,
	}
	s.AddHandler(bot.onMessage)
	s.Identify.Intents = discordgo.IntentsDirectMessages | discordgo.IntentsGuildMessages

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("opening Discord connection: %w", err)
	}

	log.Info().Str("username", s.State.User.Username).Msg("discord bot connected")
	return bot, nil
}

func (b *Bot) Close() {
	_ = b.session.Close()
}

// SendDM delivers an unprompted message to whoever has DMed the bot.
func (b *Bot) SendDM(content string) error {
	b.mu.Lock()
	userID := b.dmUserID
	b.mu.Unlock()
	if userID == "" {
		return errors.New("no DM user known yet")
	}

	ch, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("opening DM channel: %w", err)
	}
	for _, chunk := range splitMessage(content, 2000) {
		if _, err := b.session.ChannelMessageSend(ch.ID, chunk); err != nil {
			return fmt.Errorf("sending DM: %w", err)
		}
	}
	return nil
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	// Only respond to DMs or when mentioned.
	isDM := m.GuildID == ""
	isMentioned := false
	for _, u := range m.Mentions {
		if u.ID == s.State.User.ID {
			isMentioned = true
			break
		}
	}
	if !isDM && !isMentioned {
		return
	}

	if isDM {
		b.mu.Lock()
		b.dmUserID = m.Author.ID
		b.mu.Unlock()
	}

	content := stripMention(m.Content, s.State.User.ID)
	if content == "" {
		return
	}

	_ = s.ChannelTyping(m.ChannelID)

	reply := b.reply(context.Background(), m.ChannelID, m.Author.ID, content)

	// Discord has a 2000 char limit; split if needed.
	for _, chunk := range splitMessage(reply, 2000) {
		if _, err := s.ChannelMessageSend(m.ChannelID, chunk); err != nil {
			b.log.Warn().Err(err).Msg("sending discord message")
		}
	}
}

// reply runs one turn against the assistant and records it in the
// channel's history.
func (b *Bot) reply(ctx context.Context, channelID, userID, content string) string {
	history := b.conv.get(channelID)

	out, err := b.orch.Respond(ctx, orchestrator.Request{
		Utterance: content,
		History:   history,
		UserID:    userID,
	})
	if err != nil {
		b.log.Warn().Err(err).Msg("respond failed")
		return "Something went wrong. Try again?"
	}

	history = append(history,
		llm.Message{Role: "user", Content: content},
		llm.Message{Role: "assistant", Content: out},
	)
	// Same budget as the completion context window, so stored history never
	// outgrows what a remote call could actually use.
	b.conv.set(channelID, llm.TrimMessages(history, b.maxContextTokens))

	return out
}
