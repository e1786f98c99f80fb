package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medrag/internal/domain"
	"medrag/internal/textutil"
)

// RAGPort is the TUI-facing subset of the RAG service.
type RAGPort interface {
	Ask(ctx context.Context, query string) (*domain.Answer, error)
}

// answerMsg carries the outcome of one Ask call back into Update.
type answerMsg struct {
	answer *domain.Answer
	err    error
}

// Model is the Bubble Tea model for the chat UI.
type Model struct {
	ctx      context.Context
	service  RAGPort
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	summary  string
	status   string
	ready    bool

	transcript []string
	// busy is set while a question is in flight; Enter is ignored until it clears.
	busy bool

	last        *domain.Answer
	showSources bool
	cursor      int
}

// New creates a new TUI model instance. summary is the line below the title;
// examples open the transcript.
func New(ctx context.Context, service RAGPort, summary string, examples []string) Model {
	ti := textinput.New()
	ti.Prompt = "You: "
	ti.Placeholder = "Ask about a disease, drug or herb and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(statusStyle))
	return Model{
		ctx:        ctx,
		service:    service,
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		summary:    summary,
		status:     "Ready. Type 'exit' to quit.",
		transcript: []string{intro(examples)},
	}
}

func intro(examples []string) string {
	var sb strings.Builder
	sb.WriteString("Some example questions you can try:\n")
	for _, q := range examples {
		sb.WriteString("  - " + q + "\n")
	}
	sb.WriteString("\nType your question. Type 'exit' to quit.")
	return sb.String()
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // title + summary
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.refresh()
		return m, nil
	case answerMsg:
		m.busy = false
		if msg.err != nil {
			m.transcript = append(m.transcript, errorStyle.Render("Error: "+msg.err.Error()))
			m.status = "The request failed. You can ask again."
		} else {
			m.last = msg.answer
			m.cursor = 0
			m.transcript = append(m.transcript, answerLabelStyle.Render("AI:")+" "+msg.answer.Text)
			m.status = fmt.Sprintf("%d documents retrieved, %d symptom suggestions. Tab shows sources.",
				len(msg.answer.Retrieved), len(msg.answer.Matches))
		}
		m.showSources = false
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if q == "" {
				return m, nil
			}
			if isQuit(q) {
				return m, tea.Quit
			}
			m.busy = true
			m.showSources = false
			m.transcript = append(m.transcript, questionStyle.Render("You: "+q))
			m.status = "Thinking..."
			m.refresh()
			return m, tea.Batch(m.spinner.Tick, m.ask(q))
		case "tab":
			if m.last != nil && len(m.last.Retrieved) > 0 {
				m.showSources = !m.showSources
				m.refresh()
			}
			return m, nil
		case "down":
			if m.showSources {
				m.cursor = (m.cursor + 1) % len(m.last.Retrieved)
				m.refresh()
				return m, nil
			}
		case "up":
			if m.showSources {
				m.cursor = (m.cursor - 1 + len(m.last.Retrieved)) % len(m.last.Retrieved)
				m.refresh()
				return m, nil
			}
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(q string) tea.Cmd {
	ctx, service := m.ctx, m.service
	return func() tea.Msg {
		ans, err := service.Ask(ctx, q)
		return answerMsg{answer: ans, err: err}
	}
}

func isQuit(q string) bool {
	switch strings.ToLower(q) {
	case "exit", "quit", "q":
		return true
	}
	return false
}

func (m *Model) refresh() {
	if m.showSources {
		m.viewport.SetContent(m.renderCurrentSource())
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := titleStyle.Render("Medical RAG assistant")
	summary := summaryStyle.Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	body := transcriptBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + body + "\n" + input + "\n" + statusStyle.Render(status)
}

func (m Model) renderTranscript() string {
	return strings.Join(m.transcript, "\n\n")
}

func (m Model) renderCurrentSource() string {
	r := m.last.Retrieved[m.cursor]
	title := fmt.Sprintf("Source %d/%d  score=%.3f  [%s] %s",
		m.cursor+1, len(m.last.Retrieved), r.Score, r.Document.Type, r.Document.Title)
	return title + "\n\n" + highlightBestLine(r.Document.Text, m.last.Query)
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle         = lipgloss.NewStyle().Bold(true)
	summaryStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	answerLabelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	highlightStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// highlightBestLine emphasizes the line of text sharing the most words with query.
func highlightBestLine(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	qTokens := textutil.WordSet(query)
	if len(qTokens) == 0 {
		return text
	}
	bestIdx := -1
	bestScore := 0
	for i, l := range lines {
		if score := tokenOverlapScore(qTokens, l); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return text
	}
	lines[bestIdx] = highlightStyle.Render(lines[bestIdx])
	return strings.Join(lines, "\n")
}

func tokenOverlapScore(queryTokens map[string]struct{}, line string) int {
	score := 0
	for t := range textutil.WordSet(line) {
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
