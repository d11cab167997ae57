package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stratum/internal/driver"
	"stratum/internal/observ"
	"stratum/internal/prof"
)

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. It returns a cleanup function that is safe to call
// multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	var cfg prof.Config
	var err error
	if cfg.CPUProfile, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemProfile, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.RuntimeTrace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profiling: %v\n", err)
		}
	}, nil
}

// printTimings writes the per-pass durations summed over every file when
// --timings is set.
func printTimings(cmd *cobra.Command, out io.Writer, results []*driver.FileResult) error {
	enabled, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	if !enabled {
		return nil
	}
	timers := make([]*observ.Timer, 0, len(results))
	for _, res := range results {
		timers = append(timers, res.Timing)
	}
	_, err = io.WriteString(out, observ.Merge(timers...).Summary())
	return err
}
