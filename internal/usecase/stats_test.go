package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

func TestParseStats(t *testing.T) {
	tests := []struct {
		name   string
		stdout string
		want   domain.GovernorID
	}{
		{
			name:   "override to performance",
			stdout: "...Warning: governor Setting to use: \"performance\"...",
			want:   domain.GovernorPerformance,
		},
		{
			name: "override across lines",
			stdout: "Currently using: intel_pstate\n" +
				"Warning: governor overwritten using `--force` flag.\n" +
				"Setting to use: \"powersave\"\n",
			want: domain.GovernorPowersave,
		},
		{
			name:   "no warning means automatic mode",
			stdout: "...no warning text...",
			want:   domain.GovernorBalanced,
		},
		{
			name:   "warning about something else",
			stdout: "Warning: battery threshold not supported\n",
			want:   domain.GovernorBalanced,
		},
		{
			name:   "capitalized mode name",
			stdout: "WARNING: governor override\nSetting to use: \"Performance\"",
			want:   domain.GovernorPerformance,
		},
		{
			name:   "unregistered mode is provisional",
			stdout: "Warning: governor override\nSetting to use: \"conservative\"",
			want:   domain.GovernorID("conservative"),
		},
		{
			name:   "empty output",
			stdout: "",
			want:   domain.GovernorBalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStats(tt.stdout)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStats_MarkerWithoutSetting(t *testing.T) {
	for _, stdout := range []string{
		"Warning: governor overwritten using `--force` flag.\n",
		"Warning: governor Setting to use: \"\"",
		"Warning: governor Setting to use: performance",
	} {
		_, err := ParseStats(stdout)
		assert.ErrorIs(t, err, domain.ErrParseAmbiguity, stdout)
	}
}
