package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

// Switcher accepts switch requests from the menu. Submit returns
// validation rejections immediately; outcomes arrive through the
// presenter.
type Switcher interface {
	Submit(id domain.GovernorID) error
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	toggleOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("black")).Background(lipgloss.Color("green")).Padding(0, 1)
	toggleOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("238")).Padding(0, 1)
)

const detectingStatus = "Detecting current governor..."

type governorChangedMsg struct {
	id          domain.GovernorID
	displayName string
	iconID      string
}

type switchResultMsg struct {
	ok          bool
	displayName string
	diagnostic  string
}

type submitResultMsg struct {
	target domain.GovernorID
	err    error
}

// MenuModel is the interactive indicator: one row per governor, a check
// mark on the active one and a toggle that shows whether an override is
// engaged.
type MenuModel struct {
	governors []domain.GovernorDescriptor
	switcher  Switcher
	cursor    int

	active      domain.GovernorID
	activeName  string
	activeIcon  string
	pending     domain.GovernorID
	status      string
	statusIsErr bool

	spinner  spinner.Model
	quitting bool
}

// NewMenuModel creates the menu for governors in display order.
func NewMenuModel(governors []domain.GovernorDescriptor, switcher Switcher) *MenuModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &MenuModel{
		governors: governors,
		switcher:  switcher,
		spinner:   s,
		status:    detectingStatus,
	}
}

// Checked reports the toggle state: engaged whenever an override is active.
func (m *MenuModel) Checked() bool {
	return m.active != "" && m.active != domain.GovernorBalanced
}

// Active returns the governor the menu currently shows as active.
func (m *MenuModel) Active() domain.GovernorID {
	return m.active
}

func (m *MenuModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case governorChangedMsg:
		m.active = msg.id
		m.activeName = msg.displayName
		m.activeIcon = msg.iconID
		if m.status == detectingStatus {
			m.status = ""
		}
		return m, nil

	case switchResultMsg:
		m.pending = ""
		if msg.ok {
			m.setStatus(SuccessMessage(msg.displayName), false)
		} else {
			m.setStatus(FailureMessage(msg.displayName, msg.diagnostic), true)
		}
		return m, nil

	case submitResultMsg:
		switch {
		case msg.err == nil:
			m.pending = msg.target
			m.status = ""
			m.statusIsErr = false
			return m, m.spinner.Tick
		case errors.Is(msg.err, domain.ErrAlreadyActive):
			m.setStatus(fmt.Sprintf("%s is already active.", m.nameOf(msg.target)), false)
		default:
			m.setStatus(msg.err.Error(), true)
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending == "" && m.active != "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.governors)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.governors) == 0 {
			return m, nil
		}
		return m, m.submit(m.governors[m.cursor].ID)
	}
	return m, nil
}

func (m *MenuModel) submit(id domain.GovernorID) tea.Cmd {
	switcher := m.switcher
	return func() tea.Msg {
		return submitResultMsg{target: id, err: switcher.Submit(id)}
	}
}

func (m *MenuModel) setStatus(s string, isErr bool) {
	m.status = s
	m.statusIsErr = isErr
}

func (m *MenuModel) nameOf(id domain.GovernorID) string {
	for _, g := range m.governors {
		if g.ID == id {
			return g.DisplayName
		}
	}
	return id.String()
}

func (m *MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	toggle := toggleOffStyle.Render("OFF")
	if m.Checked() {
		toggle = toggleOnStyle.Render("ON")
	}
	b.WriteString(titleStyle.Render(NotificationTitle) + "  " + toggle + "\n")

	switch {
	case m.active == "":
		b.WriteString(m.spinner.View() + " detecting...\n")
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("Active: %s (%s)", m.activeName, m.activeIcon)) + "\n")
	}
	b.WriteString("\n")

	for i, g := range m.governors {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		check := "  "
		name := g.DisplayName
		if g.ID == m.active {
			check = activeStyle.Render("✓ ")
			name = activeStyle.Render(name)
		}
		line := cursor + check + name
		if g.ID == m.pending {
			line += " " + m.spinner.View()
		}
		b.WriteString(line + "\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusIsErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ select • enter switch • q quit") + "\n")
	return b.String()
}

// ProgramPresenter forwards presenter events into a running bubbletea
// program as messages.
type ProgramPresenter struct {
	send func(tea.Msg)
}

// NewProgramPresenter creates a presenter that feeds p.
func NewProgramPresenter(p *tea.Program) *ProgramPresenter {
	return &ProgramPresenter{send: p.Send}
}

func (p *ProgramPresenter) OnGovernorChanged(id domain.GovernorID, displayName, iconID string) {
	p.send(governorChangedMsg{id: id, displayName: displayName, iconID: iconID})
}

func (p *ProgramPresenter) OnSwitchSucceeded(displayName string) {
	p.send(switchResultMsg{ok: true, displayName: displayName})
}

func (p *ProgramPresenter) OnSwitchFailed(displayName, diagnostic string) {
	p.send(switchResultMsg{displayName: displayName, diagnostic: diagnostic})
}

// Ensure ProgramPresenter implements domain.Presenter.
var _ domain.Presenter = (*ProgramPresenter)(nil)
