package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <section-id>",
	Short: "Add a point to a section",
	Long: `Appends a user-written point to the section. The point is included immediately and persisted
with the rest of the editor state. Tags are comma separated.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	addText string
	addTags string
)

func init() {
	addCmd.Flags().StringVar(&addText, "text", "", "Text of the point (required)")
	addCmd.Flags().StringVar(&addTags, "tags", "", "Comma-separated tags, e.g. \"Go, SQL\"")

	_ = addCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	if strings.TrimSpace(addText) == "" {
		return fmt.Errorf("point text is empty")
	}

	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	point, added, err := sess.editor.AddPoint(ctx, args[0], addText, addTags)
	if err != nil {
		return fmt.Errorf("failed to add point: %w", err)
	}
	if !added {
		return fmt.Errorf("point text is empty")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", point.ID, args[0])
	return nil
}
