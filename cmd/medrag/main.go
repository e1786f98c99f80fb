package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"medrag/internal/config"
	"medrag/internal/domain"
	"medrag/internal/embedding"
	"medrag/internal/embedding/openai"
	"medrag/internal/embedding/tfidf"
	"medrag/internal/generation"
	genopenai "medrag/internal/generation/openai"
	"medrag/internal/kb"
	"medrag/internal/prompts"
	"medrag/internal/service"
	"medrag/internal/source"
	"medrag/internal/symptoms"
	"medrag/internal/tui"
	"medrag/internal/vectorstore/memory"
)

func main() {
	_ = godotenv.Load()

	cfg, cfgPath, err := config.LoadDefault()
	if err != nil {
		fatal("failed to load config", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config", err)
	}
	level, _ := config.ParseLevel(cfg.Log.Level)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	logger := slog.Default().With("component", "main")
	if cfgPath != "" {
		logger.Info("config loaded", "path", cfgPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Assemble components
	emb, err := newEmbedder(cfg)
	if err != nil {
		fatal("embedder init failed", err)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		fatal("generator init failed", err)
	}

	logger.Info("reading knowledge base", "path", cfg.Source.Path)
	tables, err := source.Open(cfg.Source.Path)
	if err != nil {
		fatal("failed to read source", err)
	}
	base, err := kb.Build(tables)
	if err != nil {
		fatal("failed to build knowledge base", err)
	}

	store := memory.NewStorage()
	if err := service.BuildIndex(ctx, emb, store, base.Documents()); err != nil {
		fatal("index build failed", err)
	}

	// The UI owns the terminal from here on.
	closeLog, err := redirectLogs(cfg.Log, level)
	if err != nil {
		fatal("failed to open log file", err)
	}
	defer closeLog()

	svc := service.NewRAGService(base, emb, store, gen, service.Options{
		TopK:     cfg.Retrieval.TopK,
		Symptoms: symptoms.Options{MinScore: cfg.Symptoms.MinScore, MaxResults: cfg.Symptoms.MaxResults},
	})

	m := tui.New(ctx, svc, summary(cfg, base.Stats(), emb, gen), prompts.ExampleQuestions)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		fatal("ui failed", err)
	}
}

func newEmbedder(cfg *config.AppConfig) (embedding.Embedder, error) {
	switch cfg.Embedder.Type {
	case "tfidf":
		return tfidf.NewEmbedder(cfg.Embedder.Stopwords...), nil
	case "openai":
		return openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}
}

func newGenerator(cfg *config.AppConfig) (generation.Generator, error) {
	switch cfg.Generator.Type {
	case "openai":
		return genopenai.NewClient(genopenai.Config{
			BaseURL:     cfg.Generator.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Generator.OpenAI.APIKeyEnv,
			Model:       cfg.Generator.OpenAI.Model,
			Temperature: cfg.Generator.OpenAI.Temperature,
		})
	default:
		return nil, fmt.Errorf("unknown generator: %s", cfg.Generator.Type)
	}
}

// redirectLogs moves logging off the terminal: to the configured file, or
// to stderr for warnings and errors only.
func redirectLogs(lc config.LogConfig, level slog.Level) (func(), error) {
	if lc.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: max(level, slog.LevelWarn)})))
		return func() {}, nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() { _ = f.Close() }, nil
}

func summary(cfg *config.AppConfig, stats kb.Stats, emb embedding.Embedder, gen generation.Generator) string {
	return fmt.Sprintf("%s: %d documents (%d diseases, %d drugs, %d herbs, %d references) | embedder %s | model %s",
		cfg.Source.Path, stats.Total,
		stats.ByType[domain.DocDisease], stats.ByType[domain.DocDrug], stats.ByType[domain.DocHerb],
		stats.ByType[domain.DocLiterature], emb.Name(), gen.Name())
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
