package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the sections and points of the resume",
	Long: `Prints every section with its points and their inclusion flags.
Use --tag to show only points carrying one of the given tags; sections left without points are still listed.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

var viewTags []string

func init() {
	viewCmd.Flags().StringSliceVarP(&viewTags, "tag", "t", nil, "Only show points with one of these tags (repeatable or comma separated)")
	rootCmd.AddCommand(viewCmd)
}

func runView(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.editor.SetTags(viewTags...)
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintView(sess.editor.ViewState())
	return nil
}
