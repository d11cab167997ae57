package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stratum/internal/diag"
	"stratum/internal/driver"
	"stratum/internal/dump"
	"stratum/internal/source"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [flags] [fixture.toml|directory]...",
	Short: "Build scope trees from fixtures and dump them",
	Long: `Build the scope tree of every fixture and print it as an indented tree,
JSON or msgpack. Without arguments the fixtures named by stratum.toml are used.`,
	RunE: runScopes,
}

func init() {
	scopesCmd.Flags().String("format", "text", "output format (text|json|msgpack)")
	scopesCmd.Flags().Bool("trailing-comma", false, "keep the separator after the last method argument")
}

func runScopes(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		value, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		if s.format, err = dump.ParseFormat(value); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("trailing-comma") {
		if s.opts.Dump.TrailingComma, err = cmd.Flags().GetBool("trailing-comma"); err != nil {
			return fmt.Errorf("failed to get trailing-comma flag: %w", err)
		}
	}

	fs, results, err := driver.AnalyzeFiles(cmd.Context(), s.paths, s.baseDir, s.opts)
	if err != nil {
		return err
	}
	if err := printTimings(cmd, cmd.ErrOrStderr(), results); err != nil {
		return err
	}
	return writeScopes(cmd.OutOrStdout(), cmd.ErrOrStderr(), fs, results, s)
}

// writeScopes prints every snapshot to out and diagnostics to errOut. Text
// dumps of several files are separated by "# path" headers.
func writeScopes(out, errOut io.Writer, fs *source.FileSet, results []*driver.FileResult, s *runSettings) error {
	style := dump.NewTextStyle(s.color)
	hasErrors := false
	printed := 0
	for _, res := range results {
		if res.Bag.Len() > 0 {
			fmt.Fprintln(errOut, diag.FormatShort(res.Bag.Items(), fs, false))
		}
		hasErrors = hasErrors || res.Bag.HasErrors()
		if res.Snapshot == nil {
			continue
		}
		if s.format == dump.FormatText && len(results) > 1 {
			if printed > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", res.Snapshot.Path)
		}
		if err := dump.Write(out, res.Snapshot, s.format, style); err != nil {
			return err
		}
		printed++
	}
	if hasErrors {
		return exitCodeError{code: 1}
	}
	return nil
}
