package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/observability"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag used by the resume points",
	Args:  cobra.NoArgs,
	RunE:  runTags,
}

var tagsActive []string

func init() {
	tagsCmd.Flags().StringSliceVarP(&tagsActive, "tag", "t", nil, "Mark these tags as active")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	active := sess.editor.SetTags(tagsActive...)
	observability.NewPrinter(os.Stdout).PrintTags(sess.editor.Tags(), active)
	return nil
}
