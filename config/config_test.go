package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Log.Verbosity)
	assert.True(t, cfg.Diagnostics.ReportUnrecognized)
	assert.False(t, cfg.Diagnostics.ReportSkipped)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proin.toml")
	content := `
[log]
verbosity = 2

[diagnostics]
report-skipped = true
report-unrecognized = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.True(t, cfg.Diagnostics.ReportSkipped)
	assert.False(t, cfg.Diagnostics.ReportUnrecognized)
	assert.True(t, cfg.Diagnostics.ReportUnusedStreams, "untouched keys keep defaults")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("log = [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
