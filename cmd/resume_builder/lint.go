package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/content"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Report content that parsing drops or reinterprets",
	Long: `Checks every resume document for problems that parsing tolerates silently: unclosed front matter,
unknown metadata keys, malformed tag groups, list markers other than "-" and tags that differ only in spelling.
Exits non-zero when an error is found, or on any finding with --strict.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

var lintStrict bool

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Treat warnings as errors")
	rootCmd.AddCommand(lintCmd)
}

func runLint(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(os.Stderr, cfg.Verbose)

	sources, err := content.ReadSources(context.Background(), cfg.ContentDir)
	if sources == nil {
		return fmt.Errorf("failed to read resume sources: %w", err)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("some documents could not be read")
	}

	report := validation.LintSources(sources)
	observability.NewPrinter(os.Stdout).PrintViolations(&report.Violations)

	if report.HasErrors() {
		return fmt.Errorf("lint found %d errors", report.Count(types.SeverityError))
	}
	if lintStrict && len(report.Violations.Violations) > 0 {
		return fmt.Errorf("lint found %d problems", len(report.Violations.Violations))
	}
	return nil
}
