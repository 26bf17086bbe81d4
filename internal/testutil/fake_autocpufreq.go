// Package testutil provides fixtures for end-to-end tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const autoCpufreqScript = `#!/bin/sh
dir=$(dirname "$0")
state="$dir/state"
case "$1" in
--stats)
	if [ -f "$dir/stats_failures" ]; then
		left=$(cat "$dir/stats_failures")
		if [ "$left" -gt 0 ]; then
			echo $((left - 1)) > "$dir/stats_failures"
			echo "auto-cpufreq: daemon not responding" >&2
			exit 1
		fi
	fi
	echo "Linux distro: Test 1.0"
	echo "Currently using: intel_pstate"
	mode=reset
	[ -f "$state" ] && mode=$(cat "$state")
	if [ "$mode" != "reset" ]; then
		echo "Warning: governor overwritten using --force flag."
		echo "Setting to use: \"$mode\""
	fi
	exit 0
	;;
--force=*)
	if [ -f "$dir/deny" ]; then
		cat "$dir/deny" >&2
		exit 0
	fi
	echo "${1#--force=}" > "$state"
	echo "$1" >> "$dir/switches"
	exit 0
	;;
esac
echo "unknown option $1" >&2
exit 2
`

const pkexecScript = `#!/bin/sh
exec "$@"
`

// FakeAutoCpufreq installs shell stand-ins for auto-cpufreq and pkexec in a
// directory meant to be prepended to PATH.
type FakeAutoCpufreq struct {
	BinDir string
}

// NewFakeAutoCpufreq creates a fake under dir.
func NewFakeAutoCpufreq(dir string) *FakeAutoCpufreq {
	return &FakeAutoCpufreq{BinDir: filepath.Join(dir, "bin")}
}

// Create writes the executables.
func (f *FakeAutoCpufreq) Create() error {
	if err := os.MkdirAll(f.BinDir, 0755); err != nil {
		return err
	}
	scripts := map[string]string{
		"auto-cpufreq": autoCpufreqScript,
		"pkexec":       pkexecScript,
	}
	for name, body := range scripts {
		if err := os.WriteFile(filepath.Join(f.BinDir, name), []byte(body), 0755); err != nil {
			return err
		}
	}
	return nil
}

// PathEnv returns a PATH value with the fake first.
func (f *FakeAutoCpufreq) PathEnv() string {
	return f.BinDir + string(os.PathListSeparator) + os.Getenv("PATH")
}

// SetMode sets the forced mode reported by --stats; "reset" clears it.
func (f *FakeAutoCpufreq) SetMode(mode string) error {
	return os.WriteFile(filepath.Join(f.BinDir, "state"), []byte(mode+"\n"), 0644)
}

// Mode returns the mode last written by --force, or "reset".
func (f *FakeAutoCpufreq) Mode() string {
	data, err := os.ReadFile(filepath.Join(f.BinDir, "state"))
	if err != nil {
		return "reset"
	}
	return strings.TrimSpace(string(data))
}

// FailStats makes the next n --stats calls fail.
func (f *FakeAutoCpufreq) FailStats(n int) error {
	return os.WriteFile(filepath.Join(f.BinDir, "stats_failures"), []byte(strconv.Itoa(n)+"\n"), 0644)
}

// DenySwitches makes --force print msg to stderr and exit 0 without
// changing mode, like a dismissed authorization prompt.
func (f *FakeAutoCpufreq) DenySwitches(msg string) error {
	return os.WriteFile(filepath.Join(f.BinDir, "deny"), []byte(msg+"\n"), 0644)
}

// Switches returns every --force argument received, in order.
func (f *FakeAutoCpufreq) Switches() ([]string, error) {
	data, err := os.ReadFile(filepath.Join(f.BinDir, "switches"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read switches: %w", err)
	}
	return strings.Fields(string(data)), nil
}
