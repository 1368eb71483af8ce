package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/casey/aide/config"
	"github.com/casey/aide/internal/discord"
	"github.com/casey/aide/internal/llm"
	"github.com/casey/aide/internal/orchestrator"
	"github.com/casey/aide/internal/patterns"
	"github.com/casey/aide/internal/scheduler"
	"github.com/casey/aide/internal/server"
	"github.com/casey/aide/internal/store"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening database")
	}
	defer st.Close()

	engine := patterns.New(st)

	orch := orchestrator.New(st, st, engine, newCompleter(cfg, log), nil, orchestrator.Options{
		Timeout:          cfg.CollabTimeout,
		Style:            cfg.Style,
		PreferredName:    cfg.PreferredName,
		Timezone:         cfg.Timezone,
		MaxContextTokens: cfg.MaxContextTokens,
		Logger:           log,
	})

	// `aide ask` is the terminal surface; the default is the service.
	if len(os.Args) > 1 && os.Args[1] == "ask" {
		runCLI(orch)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var dmSend func(content string) error
	if cfg.DiscordToken != "" {
		bot, err := discord.NewBot(cfg.DiscordToken, orch, cfg.MaxContextTokens, log)
		if err != nil {
			log.Fatal().Err(err).Msg("starting Discord bot")
		}
		defer bot.Close()
		dmSend = bot.SendDM
	}

	sched := scheduler.New(st, dmSend, scheduler.Options{
		DigestCron: cfg.DigestCron,
		WebhookURL: cfg.WebhookURL,
		Timezone:   cfg.Timezone,
		Style:      cfg.Style,
		Name:       cfg.PreferredName,
		Logger:     log,
	})
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("starting scheduler")
	}
	defer sched.Stop()

	srv := server.New(orch, cfg.HTTPAddr, cfg.AuthToken, log)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server")
	}
}

// newCompleter builds the remote completion client when credentials are
// present. Returning nil is fine: the orchestrator falls back to the
// local generator.
func newCompleter(cfg *config.Config, log zerolog.Logger) llm.Client {
	apiKey := cfg.AnthropicKey
	if cfg.LLMProvider == "openai" {
		apiKey = cfg.OpenAIKey
	}
	if cfg.LLMProvider != "ollama" && apiKey == "" && cfg.AnthropicToken == "" {
		log.Info().Str("provider", cfg.LLMProvider).Msg("no LLM credentials, running fully local")
		return nil
	}

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider:  cfg.LLMProvider,
		APIKey:    apiKey,
		AuthToken: cfg.AnthropicToken,
		Model:     cfg.LLMModel,
		BaseURL:   cfg.OllamaBaseURL,
	})
	if err != nil {
		log.Warn().Err(err).Msg("LLM client unavailable, running fully local")
		return nil
	}
	return client
}

func runCLI(orch *orchestrator.Orchestrator) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	// Pipe mode does a single exchange.
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if !isPipe {
		fmt.Print("aide> ")
	}

	var history []llm.Message
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			if !isPipe {
				fmt.Print("aide> ")
			}
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply, err := orch.Respond(ctx, orchestrator.Request{Utterance: input, History: history})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Println(reply)
			history = append(history,
				llm.Message{Role: "user", Content: input},
				llm.Message{Role: "assistant", Content: reply},
			)
		}

		if isPipe {
			break
		}
		fmt.Print("aide> ")
	}
}
