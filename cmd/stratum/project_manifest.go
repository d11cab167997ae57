package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"stratum/internal/driver"
	"stratum/internal/dump"
)

const noStratumTomlMessage = "no stratum.toml found\nplease pass fixture files or directories explicitly, e.g.:\n  stratum check fixtures/"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Dump     dumpConfig     `toml:"dump"`
	Analysis analysisConfig `toml:"analysis"`
}

type dumpConfig struct {
	Format        string `toml:"format"`
	TrailingComma bool   `toml:"trailing_comma"`
}

type analysisConfig struct {
	Fixtures       string `toml:"fixtures"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Jobs           int    `toml:"jobs"`
}

func findStratumToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, driver.ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findStratumToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return projectConfig{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("dump", "format") {
		if _, err := dump.ParseFormat(cfg.Dump.Format); err != nil {
			return projectConfig{}, fmt.Errorf("%s: [dump].format: %w", path, err)
		}
	}
	if cfg.Analysis.MaxDiagnostics < 0 {
		return projectConfig{}, fmt.Errorf("%s: [analysis].max_diagnostics must not be negative", path)
	}
	if cfg.Analysis.Jobs < 0 {
		return projectConfig{}, fmt.Errorf("%s: [analysis].jobs must not be negative", path)
	}
	return cfg, nil
}

// fixtureDir is where fixtures are looked up when no paths are given.
func (m *projectManifest) fixtureDir() string {
	if m.Config.Analysis.Fixtures == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Analysis.Fixtures))
}
