package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPrompt(t *testing.T) {
	p := UserPrompt("tôi bị sốt", "[Thuốc tây: Paracetamol]\nbody\n")

	assert.True(t, strings.HasPrefix(p, "USER QUESTION:\ntôi bị sốt\n"))
	assert.Contains(t, p, "[Thuốc tây: Paracetamol]\nbody\n")
	assert.Contains(t, p, InsufficientData)
	assert.Contains(t, p, ClosingDisclaimer)
	assert.Contains(t, p, "do not give dosages")
	assert.Contains(t, p, "emergency")
	assert.Less(t, strings.Index(p, "tôi bị sốt"), strings.Index(p, "[Thuốc tây: Paracetamol]"))
}

func TestSystemPrompt(t *testing.T) {
	assert.Contains(t, SystemPrompt, "[Symptom-similarity suggestions]")
	// the threshold is configurable and cited by the block, never fixed here
	assert.NotRegexp(t, `threshold of \d`, SystemPrompt)
	assert.NotContains(t, SystemPrompt, "0.9")
	assert.Contains(t, SystemPrompt, InsufficientData)
	assert.Contains(t, SystemPrompt, ClosingDisclaimer)
	for _, typ := range []string{"disease:", "disease_drug:", "disease_herb:", "drug:", "herb:", "literature:", "disclaimer:"} {
		assert.Contains(t, SystemPrompt, "- "+typ)
	}
}

func TestExampleQuestions(t *testing.T) {
	assert.Len(t, ExampleQuestions, 5)
	for _, q := range ExampleQuestions {
		assert.NotEmpty(t, strings.TrimSpace(q))
	}
}
