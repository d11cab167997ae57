package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stratum/internal/diag"
	"stratum/internal/driver"
	"stratum/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [fixture.toml|directory]...",
	Short: "Check fixture expressions and calls against their scopes",
	Long: `Resolve and type every [[check]] expression and [[call]] of the fixtures,
print the result of each expression and the diagnostics in short form.
The command exits with status 1 when any error was reported.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("quiet", false, "print diagnostics only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings(cmd, args)
	if err != nil {
		return err
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	fs, results, err := driver.AnalyzeFiles(cmd.Context(), s.paths, s.baseDir, s.opts)
	if err != nil {
		return err
	}
	if err := printTimings(cmd, cmd.ErrOrStderr(), results); err != nil {
		return err
	}
	if writeCheck(cmd.OutOrStdout(), fs, results, withNotes, quiet) {
		return exitCodeError{code: 1}
	}
	return nil
}

// writeCheck prints one line per checked expression, then the diagnostics
// and a summary. It reports whether any file has errors.
func writeCheck(out io.Writer, fs *source.FileSet, results []*driver.FileResult, withNotes, quiet bool) bool {
	var all []diag.Diagnostic
	checks := 0
	for _, res := range results {
		for _, c := range res.Checks {
			checks++
			if quiet {
				continue
			}
			start, _ := fs.Resolve(c.Span)
			fmt.Fprintf(out, "%s:%d:%d %s: %s\n", fs.DisplayPath(c.Span.File), start.Line, start.Col, layerLabel(c.Layer), outcomeLabel(c))
		}
		all = append(all, res.Bag.Items()...)
	}
	if len(all) > 0 {
		fmt.Fprintln(out, diag.FormatShort(all, fs, withNotes))
	}

	errCount := 0
	for _, d := range all {
		if d.Severity == diag.SevError {
			errCount++
		}
	}
	if !quiet {
		fmt.Fprintf(out, "%d files, %d checks, %d errors\n", len(results), checks, errCount)
	}
	return errCount > 0
}

func layerLabel(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}

func outcomeLabel(c driver.CheckOutcome) string {
	switch {
	case c.Type == "":
		return "<error>"
	case c.Value != "":
		return c.Type + " = " + c.Value
	default:
		return c.Type
	}
}
