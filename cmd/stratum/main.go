package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"stratum/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "stratum",
	Short: "Scope layer and type system workbench",
	Long:  `Stratum builds scope trees from TOML fixtures, checks expressions against them and dumps the result`,
	// tracing and profiling are configured once for every subcommand
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			cleanup()
			return err
		}
		traceCleanup = func() {
			stopProfiling()
			cleanup()
		}
		return nil
	},
	SilenceUsage: true,
}

// exitCodeError ends the process with code without printing anything more.
type exitCodeError struct{ code int }

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers subcommands and persistent flags and executes the root
// command. Tracing is flushed before the process exits.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(scopesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers (0=auto)")
	rootCmd.PersistentFlags().Bool("disk-cache", false, "reuse analysis results stored under the user cache directory")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept by the ring buffer")
	rootCmd.PersistentFlags().Bool("timings", false, "print per-pass timings to stderr")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	err := executeWithCrashTrace()
	traceCleanup()
	if err != nil {
		var exit exitCodeError
		if !errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, "error:", err)
			exit.code = 1
		}
		os.Exit(exit.code)
	}
}

func executeWithCrashTrace() error {
	defer dumpTraceOnPanic()
	return rootCmd.Execute()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (want auto, on or off)", colorFlag)
}
