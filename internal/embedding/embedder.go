package embedding

import (
	"context"
	"fmt"

	"medrag/internal/domain"
)

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder = domain.Embedder

// EmbedAll prepares e over texts and embeds each text once, in order.
// It returns either a vector for every text or an error; never a partial set.
func EmbedAll(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	if err := e.Prepare(texts); err != nil {
		return nil, fmt.Errorf("prepare %s embedder: %w", e.Name(), err)
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}
