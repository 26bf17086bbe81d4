package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTools(t *testing.T) {
	checks := LookupTools("sh", "govswitch-definitely-missing-binary")

	require.Len(t, checks, 2)
	assert.True(t, checks[0].Available)
	assert.NotEmpty(t, checks[0].Path)
	assert.False(t, checks[1].Available)
	assert.Empty(t, checks[1].Path)

	assert.Equal(t, []string{"govswitch-definitely-missing-binary"}, MissingTools(checks))
}
