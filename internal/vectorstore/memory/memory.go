package memory

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"medrag/internal/domain"
	"medrag/internal/vectorstore"
)

var (
	// ErrIndexSealed is returned by a second Upsert after Init.
	ErrIndexSealed = errors.New("index already populated")
	// ErrDimension is returned when a vector does not match the index dimension.
	ErrDimension = errors.New("vector dimension mismatch")
)

// Storage is a flat in-memory index scanned with cosine similarity.
// It is filled by one Upsert and read-only afterwards.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	sealed    bool
	vectors   [][]float32
	documents []domain.Document
}

var _ vectorstore.Storage = (*Storage)(nil)

func NewStorage() *Storage { return &Storage{} }

// Init sets the dimension and drops any previous content.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid dimension %d", dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.sealed = false
	s.vectors = nil
	s.documents = nil
	return nil
}

// Upsert stores documents with their vectors, aligned by position.
func (s *Storage) Upsert(documents []domain.Document, vectors [][]float32) error {
	if len(documents) != len(vectors) {
		return fmt.Errorf("documents and vectors length mismatch: %d != %d", len(documents), len(vectors))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dimension == 0 {
		return errors.New("index not initialized")
	}
	if s.sealed {
		return ErrIndexSealed
	}
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("%w: vector %d has %d, want %d", ErrDimension, i, len(v), s.dimension)
		}
	}
	s.documents = append([]domain.Document(nil), documents...)
	s.vectors = make([][]float32, len(vectors))
	for i, v := range vectors {
		s.vectors[i] = append([]float32(nil), v...)
	}
	s.sealed = true
	return nil
}

// Search returns the topK documents most similar to vector, best first.
// Equal scores keep index order. topK <= 0 yields no results.
func (s *Storage) Search(vector []float32, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dimension != 0 && len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has %d, want %d", ErrDimension, len(vector), s.dimension)
	}
	if topK <= 0 || len(s.vectors) == 0 {
		return []domain.SearchResult{}, nil
	}

	qnorm := norm(vector)
	scores := make([]float64, len(s.vectors))
	for i, v := range s.vectors {
		scores[i] = dot(v, vector) / (norm(v)*qnorm + 1e-9)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })

	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.SearchResult, 0, topK)
	for _, j := range idxs[:topK] {
		results = append(results, domain.SearchResult{Document: s.documents[j], Score: scores[j]})
	}
	return results, nil
}

// Len returns the number of indexed documents.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

func dot(a, b []float32) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(a []float32) float64 {
	return math.Sqrt(dot(a, a))
}
