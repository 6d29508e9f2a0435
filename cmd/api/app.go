package main

import (
	"context"
	"fmt"
	"log"

	"ai-task-manager/internal/ai"
	"ai-task-manager/internal/analytics"
	"ai-task-manager/internal/assistant"
	"ai-task-manager/internal/config"
	"ai-task-manager/internal/db"
	"ai-task-manager/internal/tasks"
)

// app holds everything a command needs, built once from config.
type app struct {
	cfg     *config.Config
	db      *db.DB
	store   *tasks.SQLStore
	events  *analytics.Logger
	service *assistant.Service
	posthog *analytics.PostHogSink
}

func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	database, err := db.Connect(cfg.DBDriver, cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	switch database.Dialect {
	case db.SQLite:
		log.Printf("✅ Opened SQLite at %s", cfg.DBPath)
	default:
		log.Println("✅ Connected to PostgreSQL!")
	}
	return database, nil
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if err := cfg.ValidateLLM(); err != nil {
		return nil, err
	}

	database, err := openDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, db: database, store: tasks.NewSQLStore(database)}

	var sink analytics.Sink
	if cfg.PostHogKey != "" {
		ph, err := analytics.NewPostHogSink(cfg.PostHogKey, cfg.PostHogEndpoint, "owner")
		if err != nil {
			log.Printf("[WARN] posthog disabled: %v", err)
		} else {
			a.posthog = ph
			sink = ph
		}
	}
	a.events = analytics.New(database, sink)

	aiCfg := ai.Config{
		Provider:    ai.Provider(cfg.LLMProvider),
		Model:       cfg.LLMModel,
		APIKey:      cfg.LLMAPIKey,
		BaseURL:     cfg.LLMBaseURL,
		MaxTokens:   cfg.LLMMaxTokens,
		Temperature: cfg.LLMTemperature,
	}
	chat, err := ai.NewChatModel(ctx, aiCfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("chat model: %w", err)
	}
	classifier := ai.NewClassifier(chat, ai.SQLRecorder{DB: database}, aiCfg)
	a.service = assistant.New(classifier, a.store, a.events)

	log.Printf("🤖 Using %s model %s", aiCfg.Provider, aiCfg.Model)
	return a, nil
}

func (a *app) Close() {
	if a.posthog != nil {
		if err := a.posthog.Close(); err != nil {
			log.Printf("[WARN] posthog close: %v", err)
		}
	}
	_ = a.db.Close()
}
