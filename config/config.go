// Package config loads the ambient defaults the original hard-codes as
// preprocessor constants (DEFAULT_FRAGMENT_SIZE, DEFAULT_PAGE_SIZE,
// MAPD_SYSTEM_DB, and the default table/view storage and refresh options)
// from an optional TOML file, falling back to those same hard-coded values
// when no file is given. Grounded on dolthub/matrixorigin/cockroachdb's use
// of github.com/BurntSushi/toml for runtime configuration.
package config

import (
	"github.com/BurntSushi/toml"
)

// These mirror original_source/DataMgr/Encoder.h and Parser/ParserNode.cpp's
// DEFAULT_FRAGMENT_SIZE/DEFAULT_PAGE_SIZE/MAPD_SYSTEM_DB constants.
const (
	DefaultFragmentSize  = 32000000
	DefaultPageSize      = 1048576
	DefaultSystemDB      = "system"
	DefaultStorageOption = "DISK"
	DefaultRefreshOption = "MANUAL"
)

// Config is the set of defaults that Default and Load produce. The ddl
// package does not read a Config value: CREATE TABLE falls back to the
// DefaultFragmentSize and DefaultPageSize constants directly.
type Config struct {
	FragmentSize  int    `toml:"fragment_size"`
	PageSize      int    `toml:"page_size"`
	SystemDB      string `toml:"system_db"`
	StorageOption string `toml:"storage_option"`
	RefreshOption string `toml:"refresh_option"`
}

// Default returns the hard-coded defaults, matching the original's
// compiled-in constants.
func Default() Config {
	return Config{
		FragmentSize:  DefaultFragmentSize,
		PageSize:      DefaultPageSize,
		SystemDB:      DefaultSystemDB,
		StorageOption: DefaultStorageOption,
		RefreshOption: DefaultRefreshOption,
	}
}

// Load reads a TOML file at path and overlays it onto Default(); any field
// the file omits keeps its hard-coded default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
