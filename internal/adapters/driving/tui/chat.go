// Package tui implements the interactive advising chat.
//
// The chat is a Bubble Tea model: a scrollable conversation viewport above a
// single-line question input. Questions run asynchronously so the UI stays
// responsive while the LLM generates.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
	"github.com/campuslabs/advisor-cli/internal/core/ports/driving"
)

var (
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	youStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	advisorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// exchange is one rendered turn of the conversation.
type exchange struct {
	question string
	answer   string
	failed   bool
}

// answerMsg carries the result of an asynchronous Ask call.
type answerMsg struct {
	question string
	advice   *domain.Advice
	err      error
}

// Chat is the Bubble Tea model for the advising session.
type Chat struct {
	ctx      context.Context
	advisor  driving.AdvisorService
	history  *domain.History
	input    textinput.Model
	viewport viewport.Model

	exchanges []exchange
	waiting   bool
	ready     bool
}

// NewChat creates a chat model bound to an advisor service.
func NewChat(ctx context.Context, advisor driving.AdvisorService) Chat {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about courses and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	return Chat{
		ctx:      ctx,
		advisor:  advisor,
		history:  domain.NewHistory(),
		input:    ti,
		viewport: viewport.New(0, 0),
	}
}

// Init starts the text input cursor blink.
func (m Chat) Init() tea.Cmd { return textinput.Blink }

// ask runs the question through the advisor off the UI goroutine.
func (m Chat) ask(question string) tea.Cmd {
	ctx, advisor, history := m.ctx, m.advisor, m.history
	return func() tea.Msg {
		opts := driving.NewAskOptions()
		opts.History = history
		opts.IncludeSources = true
		advice, err := advisor.Ask(ctx, question, opts)
		return answerMsg{question: question, advice: advice, err: err}
	}
}

// Update handles key, window, and answer events.
func (m Chat) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, chatFrame := chatBoxStyle.GetFrameSize()
		_, inputFrame := inputBoxStyle.GetFrameSize()
		reserved := chatFrame + inputFrame + 3 // title, input line, status
		height := msg.Height - reserved
		if height < 3 {
			height = 3
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = height
		m.viewport.SetContent(m.renderConversation())
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyEnter:
			question := strings.TrimSpace(m.input.Value())
			if question == "" || m.waiting {
				return m, nil
			}
			m.waiting = true
			m.input.Reset()
			m.exchanges = append(m.exchanges, exchange{question: question})
			m.viewport.SetContent(m.renderConversation())
			m.viewport.GotoBottom()
			return m, m.ask(question)
		case tea.KeyUp:
			m.viewport.ScrollUp(1)
			return m, nil
		case tea.KeyDown:
			m.viewport.ScrollDown(1)
			return m, nil
		}

	case answerMsg:
		m.waiting = false
		last := len(m.exchanges) - 1
		if msg.err != nil {
			m.exchanges[last].answer = msg.err.Error()
			m.exchanges[last].failed = true
		} else {
			m.exchanges[last].answer = msg.advice.Answer
			m.history.Append(msg.question, msg.advice.Answer)
		}
		m.viewport.SetContent(m.renderConversation())
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the conversation layout.
func (m Chat) View() string {
	if !m.ready {
		return "Loading..."
	}

	title := lipgloss.NewStyle().Bold(true).Render("Course Advisor")
	conversation := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())

	status := "Enter to send, Ctrl+C to quit."
	if m.waiting {
		status = "Thinking..."
	}

	return title + "\n" + conversation + "\n" + input + "\n" + statusStyle.Render(status)
}

// renderConversation formats all exchanges for the viewport.
func (m Chat) renderConversation() string {
	if len(m.exchanges) == 0 {
		return "Ask a question about the course catalog to get started."
	}

	var b strings.Builder
	for i, ex := range m.exchanges {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s %s\n\n", youStyle.Render("You:"), ex.question)
		switch {
		case ex.answer == "":
			fmt.Fprintf(&b, "%s ...", advisorStyle.Render("Advisor:"))
		case ex.failed:
			fmt.Fprintf(&b, "%s %s", advisorStyle.Render("Advisor:"), errorStyle.Render(ex.answer))
		default:
			fmt.Fprintf(&b, "%s %s", advisorStyle.Render("Advisor:"), ex.answer)
		}
	}
	return b.String()
}
