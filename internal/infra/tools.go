package infra

import (
	"os/exec"
)

// RequiredTools are the executables the probe and switch commands rely on.
var RequiredTools = []string{"auto-cpufreq", "pkexec", "timeout"}

// ToolCheck reports whether an external tool can be found on PATH.
type ToolCheck struct {
	Name      string
	Path      string
	Available bool
}

// LookupTools resolves each tool on PATH.
func LookupTools(names ...string) []ToolCheck {
	checks := make([]ToolCheck, 0, len(names))
	for _, name := range names {
		check := ToolCheck{Name: name}
		if path, err := exec.LookPath(name); err == nil {
			check.Path = path
			check.Available = true
		}
		checks = append(checks, check)
	}
	return checks
}

// MissingTools returns the names of unavailable tools.
func MissingTools(checks []ToolCheck) []string {
	var missing []string
	for _, c := range checks {
		if !c.Available {
			missing = append(missing, c.Name)
		}
	}
	return missing
}
