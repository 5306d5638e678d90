package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/observability"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show or change the page layout",
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current layout settings",
	Args:  cobra.NoArgs,
	RunE:  runLayoutShow,
}

var layoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change layout settings",
	Long: `Changes only the settings given as flags. Paddings are millimeters (0-30), the gap between
points is pixels (0-20) and the section gaps are pixels (0-40). Values outside the range are clamped.`,
	Args: cobra.NoArgs,
	RunE: runLayoutSet,
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default layout",
	Args:  cobra.NoArgs,
	RunE:  runLayoutReset,
}

var layoutPageSize string

// layoutFlags maps a flag name to the layout field it sets
var layoutFlags = map[string]string{
	"padding-top-bottom": layout.FieldPaddingTopBottom,
	"padding-left-right": layout.FieldPaddingLeftRight,
	"gap-points":         layout.FieldGapPoints,
	"gap-section-to-sub": layout.FieldGapSectionToSub,
	"gap-subsections":    layout.FieldGapSubsections,
}

var layoutValues = map[string]*float64{}

func init() {
	layoutSetCmd.Flags().StringVar(&layoutPageSize, "page-size", "", "Page size: A4 or LETTER")
	usage := map[string]string{
		"padding-top-bottom": "Top and bottom page padding in mm",
		"padding-left-right": "Left and right page padding in mm",
		"gap-points":         "Gap between points in px",
		"gap-section-to-sub": "Gap between a section title and its entries in px",
		"gap-subsections":    "Gap between entries in px",
	}
	for name := range layoutFlags {
		layoutValues[name] = layoutSetCmd.Flags().Float64(name, 0, usage[name])
	}

	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutSetCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	rootCmd.AddCommand(layoutCmd)
}

func runLayoutShow(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	observability.NewPrinter(os.Stdout).PrintLayout(sess.editor.Layout())
	return nil
}

func runLayoutSet(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	settings := sess.editor.Layout()
	changed := false
	if cmd.Flags().Changed("page-size") {
		size, ok := layout.ParsePageSize(layoutPageSize)
		if !ok {
			return fmt.Errorf("invalid page size %q (expected A4 or LETTER)", layoutPageSize)
		}
		settings = settings.WithPageSize(size)
		changed = true
	}
	for name, field := range layoutFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		settings, err = settings.With(field, *layoutValues[name])
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
		changed = true
	}
	if !changed {
		return fmt.Errorf("no layout flag given")
	}

	settings = sess.editor.SetLayout(ctx, settings)
	observability.NewPrinter(os.Stdout).PrintLayout(settings)
	return nil
}

func runLayoutReset(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	settings := sess.editor.SetLayout(ctx, layout.Default())
	observability.NewPrinter(os.Stdout).PrintLayout(settings)
	return nil
}
