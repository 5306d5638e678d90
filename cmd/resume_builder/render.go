package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume as HTML or LaTeX",
	Long: `Renders the active points with the current layout. HTML output is the page the PDF exporter prints;
LaTeX output uses the embedded template unless --template is given.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderFormat   string
	renderTags     []string
	renderOut      string
	renderTemplate string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html or latex")
	renderCmd.Flags().StringSliceVarP(&renderTags, "tag", "t", nil, "Only render points with one of these tags")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().StringVar(&renderTemplate, "template", "", "LaTeX template file (default embedded template)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderFormat != "html" && renderFormat != "latex" {
		return fmt.Errorf("invalid format %q (expected html or latex)", renderFormat)
	}
	if renderTemplate != "" && renderFormat != "latex" {
		return fmt.Errorf("--template only applies to latex output")
	}

	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.editor.SetTags(renderTags...)
	doc := sess.editor.Document()

	var output string
	if renderFormat == "latex" {
		output, err = rendering.RenderLaTeX(doc, renderTemplate)
	} else {
		output, err = rendering.RenderHTML(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", renderFormat, err)
	}

	if renderOut == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), output)
		return err
	}
	return writeOutput(renderOut, []byte(output))
}

// writeOutput writes data to path, creating parent directories as needed
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
