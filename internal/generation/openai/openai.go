// Package openai provides a chat-completion Generator for OpenAI-compatible APIs.
package openai

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"medrag/internal/domain"
)

// Ensure Client implements the interface.
var _ domain.Generator = (*Client)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4oMini

// Config holds configuration for the chat generator.
type Config struct {
	// BaseURL is the API base URL. Empty means the public OpenAI endpoint.
	BaseURL string

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string

	// Model is the chat model to use (default: gpt-4o-mini).
	Model string

	// Temperature controls randomness; zero leaves the server default.
	Temperature float32
}

// Client generates answers with the chat completions endpoint.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient creates a chat generator. The API key must be present in the environment.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	oc := openai.DefaultConfig(key)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &Client{
		client:      openai.NewClientWithConfig(oc),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Name returns the model used for generation.
func (c *Client) Name() string { return c.model }

// Generate sends the system and user prompts as one conversation and returns
// the content of every returned choice, skipping empty ones.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) ([]string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	parts := make([]string, 0, len(resp.Choices))
	for _, choice := range resp.Choices {
		if choice.Message.Content == "" {
			continue
		}
		parts = append(parts, choice.Message.Content)
	}
	return parts, nil
}
