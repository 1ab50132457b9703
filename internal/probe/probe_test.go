package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srediag/commitprobe/internal/region"
)

func TestParseMode(t *testing.T) {
	mode, err := ParseMode([]string{"shared"})
	require.NoError(t, err)
	assert.Equal(t, region.Shared, mode)

	mode, err = ParseMode([]string{"private"})
	require.NoError(t, err)
	assert.Equal(t, region.Private, mode)
}

func TestParseModeUsageErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{},
		{"shared", "private"},
		{"--shared"},
		{"Shared"},
		{"bogus"},
	}
	for _, args := range cases {
		_, err := ParseMode(args)
		assert.ErrorIs(t, err, ErrUsage, "args %q", args)
	}
}

func TestDefaultConfigIsTheReproductionScenario(t *testing.T) {
	cfg := DefaultConfig(region.Private)
	assert.Equal(t, region.Private, cfg.Mode)
	assert.Equal(t, 64<<20, cfg.AllocBytes)
	assert.Equal(t, 16, cfg.Children)
	assert.Equal(t, DefaultChildSleep, cfg.ChildSleep)
}
