// Package tui is the terminal front end. It keeps a session.State, turns key presses
// into session events and runs the reducer's effects as bubbletea commands.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ponder/internal/models"
	"ponder/internal/session"
)

const (
	sidebarWidth = 28
	appTitle     = "Ponder with Claude"
)

// Model is the Bubble Tea model for the chat client.
type Model struct {
	ctx     context.Context
	store   *session.Store
	state   session.State
	startup []session.Effect

	code     textinput.Model
	input    textarea.Model
	timeline viewport.Model
	spinner  spinner.Model
	theme    theme

	width  int
	height int
}

// New creates the model around store. startup holds the effects returned by
// session.New; they run on Init.
func New(ctx context.Context, store *session.Store, startup []session.Effect) Model {
	state := store.State()

	code := textinput.New()
	code.Placeholder = "Access Code"
	code.EchoMode = textinput.EchoPassword
	code.EchoCharacter = '•'
	code.Prompt = "🔑 "
	code.Focus()

	input := textarea.New()
	input.Placeholder = "Message Claude..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.Prompt = ""
	input.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	input.SetHeight(state.InputLines)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(accent)

	return Model{
		ctx:      ctx,
		store:    store,
		state:    state,
		startup:  startup,
		code:     code,
		input:    input,
		timeline: viewport.New(0, 0),
		spinner:  sp,
		theme:    newTheme(),
	}
}

// State returns the session state the model is showing.
func (m Model) State() session.State { return m.state }

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick}
	for _, eff := range m.startup {
		cmds = append(cmds, m.effectCmd(eff))
	}
	return tea.Batch(cmds...)
}

func (m Model) effectCmd(eff session.Effect) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		return store.Perform(ctx, eff)
	}
}

// dispatch applies ev to the store and brings the widgets in line with the result.
// Outcomes of the effects come back through Update as session events.
func (m Model) dispatch(ev session.Event) (Model, tea.Cmd) {
	next, effects := m.store.Apply(ev)
	m.state = next

	if m.input.Value() != m.state.Input {
		m.input.SetValue(m.state.Input)
	}
	if m.code.Value() != m.state.AccessCode {
		m.code.SetValue(m.state.AccessCode)
	}
	m.input.SetHeight(m.state.InputLines)
	m = m.layout()

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.effectCmd(eff))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.layout()
		return m.dispatch(session.InputResized{Width: m.input.Width()})

	case session.Event:
		return m.dispatch(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state.Sending {
			m = m.layout()
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// A notice behaves like an alert: the next key only dismisses it.
		if m.state.Notice != "" {
			return m.dispatch(session.NoticeDismissed{})
		}
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		if !m.state.Authenticated {
			return m.updateAccess(msg)
		}
		return m.updateChat(msg)
	}

	var cmd tea.Cmd
	m.timeline, cmd = m.timeline.Update(msg)
	return m, cmd
}

func (m Model) updateAccess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m.dispatch(session.AccessCodeSubmitted{})
	}

	var cmd tea.Cmd
	m.code, cmd = m.code.Update(msg)
	m, evCmd := m.dispatch(session.AccessCodeChanged{Code: m.code.Value()})
	return m, tea.Batch(cmd, evCmd)
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.dispatch(session.SendRequested{})
	case "ctrl+n":
		return m.dispatch(session.NewChat{})
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m, evCmd := m.dispatch(session.InputChanged{Text: m.input.Value()})
	return m, tea.Batch(cmd, evCmd)
}

// layout sizes the widgets for the current window and refreshes the timeline.
func (m Model) layout() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	mainWidth := m.width - sidebarWidth - 1
	if mainWidth < 20 {
		mainWidth = 20
	}

	m.input.SetWidth(mainWidth - 2)

	// input box borders + help line
	inputRows := m.state.InputLines + 3
	m.timeline.Width = mainWidth
	m.timeline.Height = m.height - inputRows
	if m.timeline.Height < 3 {
		m.timeline.Height = 3
	}

	m.timeline.SetContent(m.renderConversation(mainWidth))
	m.timeline.GotoBottom()
	return m
}

func (m Model) renderConversation(width int) string {
	if len(m.state.Conversation) == 0 {
		return m.renderWelcome(width)
	}

	body := lipgloss.NewStyle().Width(width - 2)
	var b strings.Builder
	for _, msg := range m.state.Conversation {
		b.WriteString(m.roleLabel(msg.Role))
		b.WriteString("\n")
		b.WriteString(m.theme.messageBox.Render(body.Render(msg.Content)))
		b.WriteString("\n\n")
	}
	if m.state.Sending {
		b.WriteString(m.theme.assistant.Render("Claude"))
		b.WriteString("\n  ")
		b.WriteString(m.spinner.View())
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) roleLabel(role models.Role) string {
	if role == models.RoleUser {
		return m.theme.user.Render("You")
	}
	return m.theme.assistant.Render("Claude")
}

func (m Model) renderWelcome(width int) string {
	lines := []string{
		"",
		m.theme.title.Render("✦ " + appTitle),
		m.theme.subtitle.Render("How can I help you today?"),
	}
	if m.state.Status == session.StatusError {
		lines = append(lines, "", m.theme.banner.Render("⚠ Backend server is not connected.\nPlease start your backend server."))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) View() string {
	var screen string
	if !m.state.Authenticated {
		screen = m.viewAccess()
	} else {
		screen = m.viewChat()
	}

	if m.state.Notice != "" {
		box := m.theme.notice.Render(m.state.Notice + "\n\n" + m.theme.help.Render("press any key"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return screen + "\n" + box
	}
	return screen
}

func (m Model) viewAccess() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.theme.title.Render("✦ "+appTitle),
		m.theme.subtitle.Render("Please enter access code to continue."),
		"",
		m.code.View(),
		"",
		m.theme.help.Render("enter submit • esc quit"),
	)
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewChat() string {
	status := m.state.Status.String()
	sidebar := m.theme.sidebar.
		Width(sidebarWidth).
		Height(max(m.height, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			m.theme.newChat.Render("+ New chat"),
			m.theme.help.Render("ctrl+n"),
			"",
			m.theme.statusDot[status].Render("●")+" "+m.state.Status.Label(),
		))

	placeholder := "Message Claude..."
	if m.state.Status != session.StatusConnected {
		placeholder = "Backend server not connected..."
	}
	m.input.Placeholder = placeholder

	help := "enter send • alt+enter newline • ctrl+n new chat • esc quit"
	if m.state.Sending {
		help = m.spinner.View() + " waiting for Claude..."
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.timeline.View(),
		m.theme.inputBox.Render(m.input.View()),
		m.theme.help.Render(help),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}
