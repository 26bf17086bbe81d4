package governor

import "github.com/eliteGoblin/govswitch/internal/domain"

// BalancedProfile is auto-cpufreq's default automatic mode.
// Selecting it clears any forced override.
type BalancedProfile struct{}

// NewBalancedProfile creates the balanced profile.
func NewBalancedProfile() *BalancedProfile {
	return &BalancedProfile{}
}

func (p *BalancedProfile) ID() domain.GovernorID {
	return domain.GovernorBalanced
}

func (p *BalancedProfile) Name() string {
	return "Balanced"
}

func (p *BalancedProfile) IconName() string {
	return "power-profile-balanced-symbolic"
}

func (p *BalancedProfile) Command() string {
	return "pkexec auto-cpufreq --force=reset"
}

// Ensure BalancedProfile implements Profile.
var _ Profile = (*BalancedProfile)(nil)
