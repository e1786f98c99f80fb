package domain

import "context"

// DocType tags what a knowledge-base document describes.
type DocType string

const (
	DocDisease     DocType = "disease"
	DocDiseaseDrug DocType = "disease_drug"
	DocDiseaseHerb DocType = "disease_herb"
	DocDrug        DocType = "drug"
	DocHerb        DocType = "herb"
	DocLiterature  DocType = "literature"
	DocDisclaimer  DocType = "disclaimer"
)

// DocTypes lists every document type in a fixed order.
var DocTypes = []DocType{
	DocDisease, DocDiseaseDrug, DocDiseaseHerb, DocDrug, DocHerb, DocLiterature, DocDisclaimer,
}

// Document is a self-contained text unit, the unit of indexing and retrieval.
// Documents are values; nothing mutates them after the knowledge base is built.
type Document struct {
	ID    int
	Title string
	Type  DocType
	Text  string
}

// SearchResult represents a matching document with its cosine similarity.
type SearchResult struct {
	Document Document
	Score    float64
}

// SymptomMatch is a disease whose recorded symptoms overlap the query text.
type SymptomMatch struct {
	DiseaseID   int
	DiseaseName string
	Score       float64
	Symptoms    string
	Link        string
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces answer text from a system prompt and a user prompt.
// The result is a sequence of text fragments in the order the model returned them.
type Generator interface {
	Name() string
	Generate(ctx context.Context, systemPrompt, userPrompt string) ([]string, error)
}

// VectorStore holds document vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(documents []Document, vectors [][]float32) error
	Search(vector []float32, topK int) ([]SearchResult, error)
	Len() int
}

// Answer is the outcome of one question.
type Answer struct {
	Query     string
	Text      string
	Matches   []SymptomMatch
	Retrieved []SearchResult
	Context   string
}

// RAGService defines the operations exposed by the application core.
type RAGService interface {
	Ask(ctx context.Context, query string) (*Answer, error)
}
