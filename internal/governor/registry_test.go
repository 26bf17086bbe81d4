package governor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eliteGoblin/govswitch/internal/domain"
)

func TestNewRegistry_DisplayOrder(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []domain.GovernorID{
		domain.GovernorBalanced,
		domain.GovernorPowersave,
		domain.GovernorPerformance,
	}, r.List())
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	r := NewRegistry()
	ids := r.List()
	ids[0] = "mutated"

	assert.Equal(t, domain.GovernorBalanced, r.List()[0])
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistryWithProfiles(NewPowersaveProfile(), NewPowersaveProfile())
	})
}

func TestRegistry_ParseGovernorID(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		input   string
		want    domain.GovernorID
		wantErr bool
	}{
		{"balanced", domain.GovernorBalanced, false},
		{"Balanced", domain.GovernorBalanced, false},
		{"reset", domain.GovernorBalanced, false},
		{"POWERSAVE", domain.GovernorPowersave, false},
		{"performance", domain.GovernorPerformance, false},
		{"turbo", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := r.ParseGovernorID(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnknownGovernor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGovernorStore_GetByID(t *testing.T) {
	store := NewGovernorStore()

	d, err := store.GetByID(domain.GovernorPerformance)
	require.NoError(t, err)
	assert.Equal(t, "Performance", d.DisplayName)
	assert.Equal(t, "power-profile-performance-symbolic", d.IconID)
	assert.Equal(t, "pkexec auto-cpufreq --force=performance", d.ActivationCommand)

	_, err = store.GetByID("conservative")
	assert.ErrorIs(t, err, domain.ErrUnknownGovernor)
}

func TestGovernorStore_GetAll(t *testing.T) {
	store := NewGovernorStore()
	all := store.GetAll()

	require.Len(t, all, 3)
	seen := make(map[domain.GovernorID]bool)
	for _, d := range all {
		assert.False(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
		assert.NotEmpty(t, d.DisplayName)
		assert.NotEmpty(t, d.IconID)
		assert.Contains(t, d.ActivationCommand, "auto-cpufreq --force=")
	}
}
