package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

var (
	// overrideMarker matches the warning auto-cpufreq prints while a
	// --force override is in effect.
	overrideMarker = regexp.MustCompile(`(?i)warning:[^\n]*governor`)

	// overrideSetting captures the forced mode name.
	overrideSetting = regexp.MustCompile(`Setting to use:\s*"([^"]*)"`)
)

// ParseStats derives the active governor from `auto-cpufreq --stats` output.
// Without the override marker the tool is in its automatic mode, which is
// balanced. With the marker but no readable mode name it returns
// ErrParseAmbiguity instead of guessing.
func ParseStats(stdout string) (domain.GovernorID, error) {
	if !overrideMarker.MatchString(stdout) {
		return domain.GovernorBalanced, nil
	}

	m := overrideSetting.FindStringSubmatch(stdout)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return "", fmt.Errorf("%w: override marker present without a configured mode", domain.ErrParseAmbiguity)
	}
	return domain.NormalizeGovernorID(m[1]), nil
}
