package governor

import "github.com/eliteGoblin/govswitch/internal/domain"

// PerformanceProfile forces the performance governor.
type PerformanceProfile struct{}

// NewPerformanceProfile creates the performance profile.
func NewPerformanceProfile() *PerformanceProfile {
	return &PerformanceProfile{}
}

func (p *PerformanceProfile) ID() domain.GovernorID {
	return domain.GovernorPerformance
}

func (p *PerformanceProfile) Name() string {
	return "Performance"
}

func (p *PerformanceProfile) IconName() string {
	return "power-profile-performance-symbolic"
}

func (p *PerformanceProfile) Command() string {
	return "pkexec auto-cpufreq --force=performance"
}

var _ Profile = (*PerformanceProfile)(nil)
