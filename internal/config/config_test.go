package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingwhale/blockpy/internal/config"
)

func TestLoadEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxCallDepth)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.DisabledIssues)
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockpy.yaml")
	content := "disabledIssues:\n  - UnreadVariables\nstrict: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"UnreadVariables"}, cfg.DisabledIssues)
	assert.True(t, cfg.Strict)
	assert.Equal(t, 64, cfg.MaxCallDepth, "unspecified field keeps its default")
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blockpy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maxCallDepth: [1, 2\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}
