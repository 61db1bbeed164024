package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codebling/git-fatfiles/internal/history"
)

func TestAddFlags(t *testing.T) {
	var (
		options history.Options
		extra   flags
	)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(fs, &options, &extra)

	require.NoError(t, fs.Parse([]string{"-d", "-t", "3", "--min-size", "1MB", "-w", "--debug"}))

	assert.True(t, options.DirsMode)
	assert.Equal(t, 3, options.Top)
	assert.True(t, options.Worktree)
	assert.True(t, options.Debug)
	assert.Equal(t, "1MB", extra.minSize)
}

func TestAddFlagsDefaults(t *testing.T) {
	var (
		options history.Options
		extra   flags
	)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addFlags(fs, &options, &extra)

	require.NoError(t, fs.Parse(nil))

	assert.False(t, options.DirsMode)
	assert.Zero(t, options.Top)
	assert.Empty(t, extra.minSize)
	assert.False(t, extra.integration)
}

func TestNewRejectsBadMinSize(t *testing.T) {
	cmd := New("test")
	cmd.SetArgs([]string{"--min-size", "a-cow"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid min-size")
}

func TestNewRejectsNegativeTop(t *testing.T) {
	cmd := New("test")
	cmd.SetArgs([]string{"--top=-3"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top cannot be negative")
}

func TestNewVersion(t *testing.T) {
	assert.Equal(t, "1.2.3", New("1.2.3").Version)
}
