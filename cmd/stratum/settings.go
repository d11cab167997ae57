package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stratum/internal/driver"
	"stratum/internal/dump"
)

// runSettings merges stratum.toml with command-line flags. Flags that were
// set explicitly win over the manifest.
type runSettings struct {
	paths   []string
	baseDir string
	opts    driver.Options
	format  dump.Format
	color   bool
}

func resolveSettings(cmd *cobra.Command, args []string) (*runSettings, error) {
	manifest, found, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	s := &runSettings{
		format: dump.FormatText,
		opts:   driver.Options{MaxDiagnostics: 100},
	}
	if found {
		cfg := manifest.Config
		if cfg.Dump.Format != "" {
			s.format = dump.Format(cfg.Dump.Format)
		}
		s.opts.Dump.TrailingComma = cfg.Dump.TrailingComma
		if cfg.Analysis.MaxDiagnostics > 0 {
			s.opts.MaxDiagnostics = cfg.Analysis.MaxDiagnostics
		}
		s.opts.Jobs = cfg.Analysis.Jobs
		s.baseDir = manifest.Root
	} else if s.baseDir, err = os.Getwd(); err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("max-diagnostics") {
		if s.opts.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Changed("jobs") {
		if s.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	diskCache, err := flags.GetBool("disk-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	if diskCache {
		if s.opts.Cache, err = driver.OpenSnapshotCache("stratum"); err != nil {
			return nil, fmt.Errorf("failed to open disk cache: %w", err)
		}
	}
	if s.color, err = useColor(cmd, os.Stdout); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		if !found {
			return nil, fmt.Errorf("%s", noStratumTomlMessage)
		}
		args = []string{manifest.fixtureDir()}
	}
	if s.paths, err = expandInputs(args); err != nil {
		return nil, err
	}
	return s, nil
}

// expandInputs replaces directories with the fixtures they contain.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, filepath.Clean(arg))
			continue
		}
		files, err := driver.ListFixtures(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to list fixtures in %q: %w", arg, err)
		}
		paths = append(paths, files...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fixtures found in %v", args)
	}
	return paths, nil
}
