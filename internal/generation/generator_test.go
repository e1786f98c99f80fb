package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	parts []string
	err   error
}

func (s stubGenerator) Name() string { return "stub" }

func (s stubGenerator) Generate(context.Context, string, string) ([]string, error) {
	return s.parts, s.err
}

func TestAnswer_JoinsAndTrims(t *testing.T) {
	got, err := Answer(context.Background(), stubGenerator{parts: []string{"  first", "second  \n"}}, "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", got)
}

func TestAnswer_NoParts(t *testing.T) {
	got, err := Answer(context.Background(), stubGenerator{}, "s", "u")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAnswer_Error(t *testing.T) {
	_, err := Answer(context.Background(), stubGenerator{err: errors.New("offline")}, "s", "u")
	require.Error(t, err)
}
