// Package governor implements the compiled-in table of auto-cpufreq modes.
// Each mode has its own profile defining its label, icon and switch command.
package governor

import (
	"github.com/eliteGoblin/govswitch/internal/domain"
)

// Profile defines one selectable governor mode.
type Profile interface {
	// ID returns the stable identifier (e.g., "balanced").
	ID() domain.GovernorID

	// Name returns the human-readable label.
	Name() string

	// IconName returns the symbolic icon identifier.
	IconName() string

	// Command returns the privileged shell expression that activates the mode.
	Command() string
}

// ToDescriptor converts a Profile to a domain.GovernorDescriptor.
func ToDescriptor(p Profile) domain.GovernorDescriptor {
	return domain.GovernorDescriptor{
		ID:                p.ID(),
		DisplayName:       p.Name(),
		IconID:            p.IconName(),
		ActivationCommand: p.Command(),
	}
}
