package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesOriginalConstants(t *testing.T) {
	cfg := Default()
	require.Equal(t, DefaultFragmentSize, cfg.FragmentSize)
	require.Equal(t, DefaultPageSize, cfg.PageSize)
	require.Equal(t, "system", cfg.SystemDB)
}

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heavyql.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
fragment_size = 64000
storage_option = "CPU"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64000, cfg.FragmentSize)
	require.Equal(t, "CPU", cfg.StorageOption)
	// Fields the file didn't mention keep their hard-coded default.
	require.Equal(t, DefaultPageSize, cfg.PageSize)
	require.Equal(t, DefaultSystemDB, cfg.SystemDB)
}

func TestLoadUnknownPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
