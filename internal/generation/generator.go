// Package generation defines the text generation boundary used to turn the
// composed context into an answer.
package generation

import (
	"context"
	"strings"

	"medrag/internal/domain"
)

// Generator produces answer text from a system prompt and a user prompt.
type Generator = domain.Generator

// Answer calls g and joins the returned fragments with newlines, trimmed.
func Answer(ctx context.Context, g Generator, systemPrompt, userPrompt string) (string, error) {
	parts, err := g.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}
