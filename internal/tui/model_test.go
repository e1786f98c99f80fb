package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medrag/internal/domain"
)

type fakeService struct {
	queries []string
	answer  *domain.Answer
	err     error
}

func (f *fakeService) Ask(_ context.Context, q string) (*domain.Answer, error) {
	f.queries = append(f.queries, q)
	return f.answer, f.err
}

func newModel(svc RAGPort) Model {
	m := New(context.Background(), svc, "11 documents", []string{"Cảm cúm có triệu chứng gì?"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// answerFrom runs the batched command returned by Enter and returns the answer message.
func answerFrom(t *testing.T, cmd tea.Cmd) answerMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(answerMsg); ok {
			return msg
		}
	}
	t.Fatal("no answer message in batch")
	return answerMsg{}
}

func TestModel_IntroShowsExamples(t *testing.T) {
	m := newModel(&fakeService{})
	view := m.View()
	assert.Contains(t, view, "Cảm cúm có triệu chứng gì?")
	assert.Contains(t, view, "11 documents")
}

func TestModel_AskFlow(t *testing.T) {
	svc := &fakeService{answer: &domain.Answer{
		Query: "sốt",
		Text:  "Thông tin chỉ mang tính tham khảo.",
		Retrieved: []domain.SearchResult{
			{Document: domain.Document{Title: "Tổng quan bệnh: Cảm cúm", Type: domain.DocDisease, Text: "Bệnh: Cảm cúm\nsốt đau họng"}, Score: 0.8},
			{Document: domain.Document{Title: "Thuốc tây: Paracetamol", Type: domain.DocDrug, Text: "Paracetamol"}, Score: 0.4},
		},
	}}
	m := newModel(svc)

	m = typeText(t, m, "  sốt  ")
	m, cmd := press(m, tea.KeyEnter)
	assert.True(t, m.busy)
	assert.Empty(t, m.input.Value())
	assert.Contains(t, m.renderTranscript(), "You: sốt")

	// Enter is ignored while a question is in flight.
	m = typeText(t, m, "again")
	m, second := press(m, tea.KeyEnter)
	assert.Nil(t, second)

	msg := answerFrom(t, cmd)
	assert.Equal(t, []string{"sốt"}, svc.queries)

	next, _ := m.Update(msg)
	m = next.(Model)
	assert.False(t, m.busy)
	assert.Contains(t, m.renderTranscript(), "Thông tin chỉ mang tính tham khảo.")
	assert.Contains(t, m.status, "2 documents retrieved")

	m, _ = press(m, tea.KeyTab)
	require.True(t, m.showSources)
	assert.Contains(t, m.renderCurrentSource(), "Source 1/2")
	m, _ = press(m, tea.KeyDown)
	assert.Contains(t, m.renderCurrentSource(), "Thuốc tây: Paracetamol")
	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, 0, m.cursor)
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, 1, m.cursor)
	m, _ = press(m, tea.KeyTab)
	assert.False(t, m.showSources)
}

func TestModel_ErrorIsReported(t *testing.T) {
	svc := &fakeService{err: errors.New("embed query: connection refused")}
	m := newModel(svc)

	m = typeText(t, m, "sốt")
	m, cmd := press(m, tea.KeyEnter)
	next, _ := m.Update(answerFrom(t, cmd))
	m = next.(Model)

	assert.False(t, m.busy)
	assert.Contains(t, m.renderTranscript(), "Error: embed query: connection refused")
	assert.Nil(t, m.last)

	m, _ = press(m, tea.KeyTab)
	assert.False(t, m.showSources)
}

func TestModel_BlankInputIgnored(t *testing.T) {
	svc := &fakeService{}
	m := newModel(svc)

	m = typeText(t, m, "   ")
	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.False(t, m.busy)
	assert.Empty(t, svc.queries)
}

func TestModel_QuitWords(t *testing.T) {
	for _, word := range []string{"exit", "QUIT", " q "} {
		t.Run(strings.TrimSpace(word), func(t *testing.T) {
			m := typeText(t, newModel(&fakeService{}), word)
			_, cmd := press(m, tea.KeyEnter)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestModel_CtrlKeysQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		_, cmd := press(newModel(&fakeService{}), k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_SpinnerOnlyWhileBusy(t *testing.T) {
	m := newModel(&fakeService{})
	_, cmd := m.Update(spinner.TickMsg{})
	assert.Nil(t, cmd)
}

func TestHighlightBestLine(t *testing.T) {
	text := "Disease: Cảm cúm\nSymptoms: sốt đau họng\nLink: none"

	assert.Equal(t, text, highlightBestLine(text, ""))
	assert.Equal(t, text, highlightBestLine(text, "unrelated"))
	out := highlightBestLine(text, "đau họng")
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "sốt đau họng")
}
