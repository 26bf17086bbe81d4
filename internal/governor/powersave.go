package governor

import "github.com/eliteGoblin/govswitch/internal/domain"

// PowersaveProfile forces the powersave governor.
type PowersaveProfile struct{}

// NewPowersaveProfile creates the powersave profile.
func NewPowersaveProfile() *PowersaveProfile {
	return &PowersaveProfile{}
}

func (p *PowersaveProfile) ID() domain.GovernorID {
	return domain.GovernorPowersave
}

func (p *PowersaveProfile) Name() string {
	return "Powersave"
}

func (p *PowersaveProfile) IconName() string {
	return "power-profile-power-saver-symbolic"
}

func (p *PowersaveProfile) Command() string {
	return "pkexec auto-cpufreq --force=powersave"
}

var _ Profile = (*PowersaveProfile)(nil)
