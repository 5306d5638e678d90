package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resume to PDF",
	Long: `Prints the active points with the current layout to a PDF. The chrome exporter prints the HTML page
through headless Chrome; the fpdf exporter draws the page without a browser.
A warning is logged when the result no longer fits on one page.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportTags     []string
	exportOut      string
	exportExporter string
)

func init() {
	exportCmd.Flags().StringSliceVarP(&exportTags, "tag", "t", nil, "Only export points with one of these tags")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output PDF file (default from config, \"resume.pdf\")")
	exportCmd.Flags().StringVar(&exportExporter, "exporter", "", "Exporter: chrome or fpdf (default from config, \"chrome\")")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	exporter, err := sess.exporter(exportExporter)
	if err != nil {
		return err
	}

	sess.editor.SetTags(exportTags...)
	pdf, err := sess.editor.Export(ctx, exporter)
	if err != nil {
		return err
	}

	pages, err := export.CountPages(pdf)
	if err != nil {
		sess.logger.Warn().Err(err).Msg("failed to count PDF pages")
	} else if pages > 1 {
		sess.logger.Warn().Int("pages", pages).Msg("resume does not fit on one page")
	}

	out := exportOut
	if out == "" {
		out = sess.cfg.Output
	}
	if err := writeOutput(out, pdf); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(pdf))
	return nil
}
