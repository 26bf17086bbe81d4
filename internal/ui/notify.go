package ui

import (
	"go.uber.org/zap"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

const (
	notifySendBinary = "notify-send"
	errorIconID      = "dialog-error"
)

// Notifier raises desktop notifications for switch acknowledgments through
// notify-send. It must be called on the loop that drives runner.
type Notifier struct {
	runner domain.CommandRunner
	logger *zap.Logger
	iconID string // Icon of the active governor, for success notifications
}

// NewNotifier creates a desktop notifier.
func NewNotifier(runner domain.CommandRunner, logger *zap.Logger) *Notifier {
	return &Notifier{
		runner: runner,
		logger: logger,
		iconID: domain.FallbackIconID,
	}
}

// OnGovernorChanged only tracks the icon; state changes are not announced.
func (n *Notifier) OnGovernorChanged(id domain.GovernorID, displayName, iconID string) {
	n.iconID = iconID
}

func (n *Notifier) OnSwitchSucceeded(displayName string) {
	n.send(n.iconID, SuccessMessage(displayName))
}

func (n *Notifier) OnSwitchFailed(displayName, diagnostic string) {
	n.send(errorIconID, FailureMessage(displayName, diagnostic))
}

func (n *Notifier) send(icon, body string) {
	argv := []string{notifySendBinary, "--app-name=govswitch", "--icon=" + icon, NotificationTitle, body}
	n.runner.Run(argv, func(res domain.CommandResult) {
		if !res.OK() {
			n.logger.Warn("desktop notification failed",
				zap.Int("exit_code", res.ExitCode),
				zap.String("diagnostic", res.Diagnostic()))
		}
	})
}

// Ensure Notifier implements domain.Presenter.
var _ domain.Presenter = (*Notifier)(nil)
