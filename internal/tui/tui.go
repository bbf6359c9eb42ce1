package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/text-game/internal/engine"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateWaiting
	stateOver
	stateError
)

type model struct {
	ctx       context.Context
	state     sessionState
	session   *engine.Session
	view      engine.View
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AF5F5F"))
)

// NewModel wraps a session that has not been started yet.
func NewModel(ctx context.Context, s *engine.Session) model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		ctx:       ctx,
		state:     statePlaying,
		session:   s,
		view:      s.View(),
		textInput: ti,
		gameLog:   s.Start() + "\n\n",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type turnProcessedMsg struct {
	text   string
	active bool
	view   engine.View
}

type restartedMsg struct {
	view engine.View
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateWaiting || m.state == stateError {
				return m, nil
			}
			action := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()

			switch action {
			case "/quit":
				return m, tea.Quit
			case "/restart":
				m.state = stateWaiting
				return m, m.restart()
			}
			if m.state == stateOver {
				return m, nil
			}

			styledAction := userStyle.Width(m.logWidth()).Render("> " + action)
			m.gameLog += styledAction + "\n\n"
			m.refreshLog()
			m.state = stateWaiting
			return m, m.processTurn(action)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.refreshLog()

	case turnProcessedMsg:
		m.view = msg.view
		m.gameLog += gameStyle.Width(m.logWidth()).Render(msg.text) + "\n\n"
		m.refreshLog()
		if !msg.active {
			m.state = stateOver
			m.textInput.Placeholder = "Type /restart to play again or /quit to leave."
			return m, nil
		}
		m.state = statePlaying
		return m, nil

	case restartedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.view = msg.view
		m.gameLog = gameStyle.Width(m.logWidth()).Render(m.session.Start()) + "\n\n"
		m.refreshLog()
		m.textInput.Placeholder = "What do you do?"
		m.state = statePlaying
		return m, nil
	}

	if m.state != stateError {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)

	default:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)

		help := "Commands: look, inspect, take, go, talk, inventory, help, quit. /restart and /quit work any time."
		if m.state == stateWaiting {
			help = "The world considers your words..."
		}

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+helpStyle.Render(help),
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	v := m.view

	var b strings.Builder
	b.WriteString(titleStyle.Render("LOCATION") + "\n" + v.Location.Name + "\n\n")

	b.WriteString(titleStyle.Render("EXITS") + "\n")
	if len(v.Location.Exits) == 0 {
		b.WriteString("(none)\n")
	}
	for _, e := range v.Location.Exits {
		if e.Locked {
			b.WriteString("- " + lockedStyle.Render(e.Label+" (locked)") + "\n")
			continue
		}
		b.WriteString("- " + e.Label + "\n")
	}
	b.WriteString("\n")

	if len(v.Location.Actors) > 0 {
		b.WriteString(titleStyle.Render("PRESENT") + "\n")
		for _, a := range v.Location.Actors {
			b.WriteString("- " + a.Name + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(v.Inventory) == 0 {
		b.WriteString("(empty)")
	}
	for _, item := range v.Inventory {
		b.WriteString("- " + item.Name + "\n")
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.75)
}

func (m *model) refreshLog() {
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

// processTurn and restart touch the session off the update loop. The
// waiting state keeps a second turn from starting before the first returns.
func (m model) processTurn(action string) tea.Cmd {
	s := m.session
	ctx := m.ctx
	return func() tea.Msg {
		text, active := s.Submit(ctx, action)
		return turnProcessedMsg{text: text, active: active, view: s.View()}
	}
}

func (m model) restart() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		if err := s.Reset(); err != nil {
			return restartedMsg{err: err}
		}
		return restartedMsg{view: s.View()}
	}
}

// Run plays the session in the terminal until the player leaves.
func Run(ctx context.Context, s *engine.Session) error {
	p := tea.NewProgram(NewModel(ctx, s), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
