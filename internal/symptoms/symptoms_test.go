package symptoms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrag/internal/domain"
	"medrag/internal/kb"
	"medrag/internal/normalize"
	"medrag/internal/source"
)

type catalog struct {
	names   map[int]string
	entries []kb.SymptomInfo
}

func (c catalog) DiseaseName(id int) (string, bool) {
	n, ok := c.names[id]
	return n, ok
}

func (c catalog) SymptomEntries() []kb.SymptomInfo { return c.entries }

func TestMatch_BelowThreshold(t *testing.T) {
	c := catalog{
		names:   map[int]string{1: "Cảm cúm"},
		entries: []kb.SymptomInfo{{DiseaseID: 1, Symptoms: "sốt đau họng ho"}},
	}

	// 3 of 4 reference tokens
	assert.Empty(t, Match("tôi bị sốt và đau họng", c, DefaultOptions()))

	got := Match("tôi bị sốt và đau họng", c, Options{MinScore: 0.75, MaxResults: 5})
	require.Len(t, got, 1)
	assert.InDelta(t, 0.75, got[0].Score, 1e-9)
}

func TestMatch_FullCoverage(t *testing.T) {
	c := catalog{
		names: map[int]string{1: "Cảm cúm", 2: "Viêm họng"},
		entries: []kb.SymptomInfo{
			{DiseaseID: 1, Symptoms: "sốt, đau họng.", Link: "https://example.org/flu"},
			{DiseaseID: 2, Symptoms: "Đau họng sốt"},
		},
	}

	got := Match("tôi bị sốt và đau họng", c, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].DiseaseID)
	assert.Equal(t, "Cảm cúm", got[0].DiseaseName)
	assert.Equal(t, 1.0, got[0].Score)
	assert.Equal(t, "https://example.org/flu", got[0].Link)
	assert.Equal(t, 2, got[1].DiseaseID)
}

func TestMatch_OrderingAndTruncation(t *testing.T) {
	c := catalog{
		names: map[int]string{},
		entries: []kb.SymptomInfo{
			{DiseaseID: 1, Symptoms: "a b c d e f g h i j"},
			{DiseaseID: 2, Symptoms: "a b"},
			{DiseaseID: 3, Symptoms: "a b c"},
			{DiseaseID: 4, Symptoms: ""},
			{DiseaseID: 5, Symptoms: "!!!"},
		},
	}

	got := Match("a b c d e f g h i", c, Options{MinScore: 0, MaxResults: 2})
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].DiseaseID)
	assert.Equal(t, 3, got[1].DiseaseID)
	assert.Equal(t, "Bệnh ID 2", got[0].DiseaseName)

	got = Match("a b c d e f g h i", c, Options{MinScore: 0, MaxResults: 10})
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[2].DiseaseID)
	assert.InDelta(t, 0.9, got[2].Score, 1e-9)
	for _, m := range got {
		assert.GreaterOrEqual(t, m.Score, 0.0)
		assert.LessOrEqual(t, m.Score, 1.0)
	}
}

func TestMatch_TiesKeepSheetOrder(t *testing.T) {
	base, err := kb.Build(source.NewSet(map[string][]normalize.Row{
		kb.SheetDiseases: {{2.0, "Viêm họng"}, {5.0, "Cảm cúm"}},
		kb.SheetSymptoms: {{5.0, "sốt ho"}, {2.0, "sốt ho"}},
	}))
	require.NoError(t, err)

	got := Match("tôi bị sốt ho", base, DefaultOptions())
	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].DiseaseID)
	assert.Equal(t, 2, got[1].DiseaseID)

	got = Match("tôi bị sốt ho", base, Options{MinScore: DefaultMinScore, MaxResults: 1})
	require.Len(t, got, 1)
	assert.Equal(t, "Cảm cúm", got[0].DiseaseName)
}

func TestMatch_EmptyQuery(t *testing.T) {
	c := catalog{entries: []kb.SymptomInfo{{DiseaseID: 1, Symptoms: "sốt"}}}

	assert.Empty(t, Match("", c, DefaultOptions()))
	assert.Empty(t, Match(" ?! ", c, Options{MinScore: 0, MaxResults: 5}))
}

func TestMatch_NormalizesUnicode(t *testing.T) {
	c := catalog{
		names:   map[int]string{1: "Viêm họng"},
		entries: []kb.SymptomInfo{{DiseaseID: 1, Symptoms: "họng"}},
	}

	got := Match("đau HỌNG", c, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DiseaseID)
}

func TestMatch_KnowledgeBase(t *testing.T) {
	base, err := kb.Build(source.NewSet(map[string][]normalize.Row{
		kb.SheetDiseases: {{1.0, "Cảm cúm"}, {2.0, "Đau dạ dày"}},
		kb.SheetSymptoms: {{2.0, "đau bụng"}, {1.0, "sốt đau họng"}},
	}))
	require.NoError(t, err)

	got := Match("tôi bị sốt và đau họng", base, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "Cảm cúm", got[0].DiseaseName)
}

func TestRenderBlock(t *testing.T) {
	assert.Empty(t, RenderBlock(nil, DefaultMinScore))

	block := RenderBlock([]domain.SymptomMatch{
		{DiseaseID: 1, DiseaseName: "Cảm cúm", Score: 0.9333, Symptoms: "sốt đau họng"},
	}, DefaultMinScore)

	lines := strings.Split(block, "\n")
	assert.Equal(t, "[Symptom-similarity suggestions]", lines[0])
	assert.Contains(t, lines[1], "≥ 0.9")
	assert.Equal(t, "- Disease: Cảm cúm (similarity ~ 0.93). Recorded symptoms: sốt đau họng", lines[2])
	assert.Contains(t, lines[3], "not a diagnosis")
	assert.True(t, strings.HasSuffix(block, "\n\n"))
}

func TestRenderBlock_CitesConfiguredThreshold(t *testing.T) {
	block := RenderBlock([]domain.SymptomMatch{{DiseaseID: 1, DiseaseName: "Cảm cúm", Score: 0.8}}, 0.75)
	assert.Contains(t, block, "≥ 0.75:")
}
