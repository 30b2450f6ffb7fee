package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senseihq/sensei/pkg/agent"
	"github.com/senseihq/sensei/pkg/config"
	"github.com/senseihq/sensei/pkg/llms"
	"github.com/senseihq/sensei/pkg/mcp"
	"github.com/senseihq/sensei/pkg/notes"
	"github.com/senseihq/sensei/pkg/quiz"
	"github.com/senseihq/sensei/pkg/review"
	"github.com/senseihq/sensei/pkg/server"
	"github.com/senseihq/sensei/pkg/teacher"
)

// ServeCmd starts the agent server.
type ServeCmd struct {
	Host     string `help:"Host to bind (overrides config)."`
	Port     int    `help:"Port to listen on (overrides config)."`
	Provider string `help:"LLM provider: openai, ollama, mock (overrides config)."`
	Model    string `help:"Model name (overrides config)."`
}

func (c *ServeCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
	}()

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	tools, cleanup, err := buildTools(cfg, store)
	if err != nil {
		return err
	}
	defer cleanup()

	provider, err := llms.New(&cfg.LLM)
	if err != nil {
		return err
	}
	slog.Info("LLM provider ready", "provider", cfg.LLM.Provider, "model", provider.ModelName())

	registry := agent.NewRegistry()
	dispatcher := agent.NewDispatcher(registry)

	quizAgent := quiz.NewAgent(quiz.NewLLMGenerator(provider), cfg.Quiz)
	reviewAgent := review.NewAgent(tools)
	teacherAgent := teacher.NewAgent(provider, dispatcher)

	for _, a := range []agent.Agent{quizAgent, reviewAgent, teacherAgent} {
		if err := registry.Register(a); err != nil {
			return err
		}
	}
	slog.Info("Agents registered", "agents", registry.Names())

	srv := server.New(cfg.Server, registry, dispatcher, teacherAgent, quizAgent)
	return srv.Start(ctx)
}

func (c *ServeCmd) applyOverrides(cfg *config.Config) {
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.Provider != "" {
		cfg.LLM.Provider = c.Provider
	}
	if c.Model != "" {
		cfg.LLM.Model = c.Model
	}
}

func buildStore(cfg *config.Config) (notes.Store, error) {
	switch cfg.Notes.Backend {
	case "sqlite":
		slog.Info("Using sqlite learning log", "path", cfg.Notes.Path)
		return notes.NewSQLStore(cfg.Notes.Path)
	default:
		slog.Info("Using in-memory learning log")
		return notes.NewMemoryStore(), nil
	}
}

func buildTools(cfg *config.Config, store notes.Store) (mcp.Client, func(), error) {
	timeout := time.Duration(cfg.MCP.Timeout) * time.Second

	if cfg.MCP.Mode == "remote" {
		client, err := mcp.NewRemoteClient(cfg.MCP.ServerURL, mcp.WithRemoteTimeout(timeout))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set up MCP client: %w", err)
		}
		return client, func() { client.Close() }, nil
	}

	return mcp.NewLocalClient(store, mcp.WithCallTimeout(timeout)), func() {}, nil
}
