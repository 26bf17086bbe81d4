package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// ConsolePresenter prints state changes and acknowledgments to a writer.
type ConsolePresenter struct {
	mu          sync.Mutex
	out         io.Writer
	showChanges bool
}

// NewConsolePresenter creates a console presenter. With showChanges unset
// only switch acknowledgments are printed.
func NewConsolePresenter(out io.Writer, showChanges bool) *ConsolePresenter {
	return &ConsolePresenter{out: out, showChanges: showChanges}
}

func (p *ConsolePresenter) OnGovernorChanged(id domain.GovernorID, displayName, iconID string) {
	if !p.showChanges {
		return
	}
	p.println(infoStyle.Render("● Active governor: "+displayName) + " " + dimStyle.Render("("+iconID+")"))
}

func (p *ConsolePresenter) OnSwitchSucceeded(displayName string) {
	p.println(successStyle.Render("✔ " + SuccessMessage(displayName)))
}

func (p *ConsolePresenter) OnSwitchFailed(displayName, diagnostic string) {
	p.println(errorStyle.Render("✘ " + FailureMessage(displayName, diagnostic)))
}

func (p *ConsolePresenter) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

// Ensure ConsolePresenter implements domain.Presenter.
var _ domain.Presenter = (*ConsolePresenter)(nil)
