package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, uint32(1<<16), cfg.Execution.DefaultPageSize)
	require.False(t, cfg.Trace.Enabled)
	require.Empty(t, cfg.Trace.OutputFile)
	require.False(t, cfg.Debugger.BreakpointsEnabled)
}

func TestPathEndsInConfigToml(t *testing.T) {
	require.Equal(t, "config.toml", filepath.Base(Path()))
}

func TestSaveAndLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "test_config.toml")

	cfg := Default()
	cfg.Execution.DefaultPageSize = 4096
	cfg.Trace.Enabled = true
	cfg.Trace.OutputFile = "trace.log"
	cfg.Debugger.BreakpointsEnabled = true

	require.NoError(t, cfg.Save(configPath))
	require.FileExists(t, configPath)

	loaded, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, uint32(4096), loaded.Execution.DefaultPageSize)
	require.True(t, loaded.Trace.Enabled)
	require.Equal(t, "trace.log", loaded.Trace.OutputFile)
	require.True(t, loaded.Debugger.BreakpointsEnabled)
}

func TestLoadNonExistentReturnsDefault(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nonexistent.toml")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.toml")

	invalidTOML := `
[execution]
default_page_size = "not a number"
`
	require.NoError(t, os.WriteFile(configPath, []byte(invalidTOML), 0644))

	_, err := Load(configPath)
	require.Error(t, err)
}

func TestSaveCreatesDirectory(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir1", "subdir2", "config.toml")

	cfg := Default()
	require.NoError(t, cfg.Save(configPath))
	require.FileExists(t, configPath)
}
