package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"medrag/internal/domain"
	"medrag/internal/embedding"
	"medrag/internal/generation"
	"medrag/internal/prompts"
	"medrag/internal/symptoms"
	"medrag/internal/vectorstore"
)

// DefaultTopK is the number of documents retrieved per question.
const DefaultTopK = 4

// Options tunes retrieval and symptom matching.
type Options struct {
	TopK     int
	Symptoms symptoms.Options
}

// DefaultOptions returns the retrieval settings the assistant ships with.
func DefaultOptions() Options {
	return Options{TopK: DefaultTopK, Symptoms: symptoms.DefaultOptions()}
}

type RAGServiceImpl struct {
	catalog   symptoms.Catalog
	embedder  embedding.Embedder
	store     vectorstore.Storage
	generator generation.Generator
	opts      Options
}

var _ domain.RAGService = (*RAGServiceImpl)(nil)

// NewRAGService wires a built index and its knowledge base to a generator.
// The store must already hold the documents embedded by embedder.
func NewRAGService(catalog symptoms.Catalog, embedder embedding.Embedder, store vectorstore.Storage, generator generation.Generator, opts Options) *RAGServiceImpl {
	return &RAGServiceImpl{
		catalog:   catalog,
		embedder:  embedder,
		store:     store,
		generator: generator,
		opts:      opts,
	}
}

// logger resolves the default logger on each call so a handler installed
// after construction is honored.
func (s *RAGServiceImpl) logger() *slog.Logger {
	return slog.Default().With("component", "service")
}

// BuildIndex embeds every document once and loads the vectors into store.
// On any embedding failure nothing is written to store.
func BuildIndex(ctx context.Context, embedder embedding.Embedder, store vectorstore.Storage, docs []domain.Document) error {
	if len(docs) == 0 {
		return errors.New("no documents to index")
	}
	logger := slog.Default().With("component", "index")
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	logger.Info("embedding documents", "count", len(docs), "embedder", embedder.Name())
	vectors, err := embedding.EmbedAll(ctx, embedder, texts)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}
	dim := embedder.Dimension()
	if dim <= 0 {
		dim = len(vectors[0])
	}
	if err := store.Init(dim); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	if err := store.Upsert(docs, vectors); err != nil {
		return fmt.Errorf("upsert documents: %w", err)
	}
	logger.Info("index ready", "documents", store.Len(), "dimension", dim)
	return nil
}

// Retrieve embeds query once and returns its k nearest documents.
func (s *RAGServiceImpl) Retrieve(ctx context.Context, query string, k int) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	res, err := s.store.Search(vec, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return res, nil
}

// ComposeContext puts the symptom block ahead of the retrieved documents,
// each rendered as its bracketed title followed by its text.
func ComposeContext(symptomBlock string, results []domain.SearchResult) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[%s]\n%s\n", r.Document.Title, r.Document.Text)
	}
	return symptomBlock + strings.Join(parts, "\n")
}

// Ask answers one question: symptom matching and retrieval on the raw
// query, then one generation call over the composed context.
func (s *RAGServiceImpl) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	matches := symptoms.Match(query, s.catalog, s.opts.Symptoms)
	retrieved, err := s.Retrieve(ctx, query, s.opts.TopK)
	if err != nil {
		return nil, err
	}
	composed := ComposeContext(symptoms.RenderBlock(matches, s.opts.Symptoms.MinScore), retrieved)
	s.logger().Debug("context composed", "matches", len(matches), "retrieved", len(retrieved), "bytes", len(composed))

	text, err := generation.Answer(ctx, s.generator, prompts.SystemPrompt, prompts.UserPrompt(query, composed))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	return &domain.Answer{
		Query:     query,
		Text:      text,
		Matches:   matches,
		Retrieved: retrieved,
		Context:   composed,
	}, nil
}
