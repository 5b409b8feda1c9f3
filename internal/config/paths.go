package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const appDirName = "tokengen"

// Paths holds the resolved on-disk locations for configuration and cached
// tokens. It is constructed once at startup and passed explicitly, so tests
// can point every component at a temporary directory.
type Paths struct {
	ConfigDir string `env:"TOKENGEN_CONFIG_DIR"`
	CacheDir  string `env:"TOKENGEN_CACHE_DIR"`
}

// DefaultPaths resolves the per-user directories, honoring the
// TOKENGEN_CONFIG_DIR and TOKENGEN_CACHE_DIR environment overrides. The
// user directories are only consulted for locations the environment did
// not supply, so the overrides work even when $HOME is unset.
func DefaultPaths() (Paths, error) {
	var paths Paths
	if err := env.Parse(&paths); err != nil {
		return Paths{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	if paths.ConfigDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		paths.ConfigDir = filepath.Join(dir, appDirName)
	}
	if paths.CacheDir == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		paths.CacheDir = filepath.Join(dir, appDirName)
	}
	return paths, nil
}
