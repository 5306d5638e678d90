package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/filter"
	"github.com/jonathan/resume-builder/internal/types"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <point-id>...",
	Short: "Include or exclude points and skill tokens",
	Long: `Flips the inclusion flag of each given point id or skill token id and persists the selection.
Ids are shown by the view command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	known := knownIDs(sess.editor.Catalog())
	for _, id := range args {
		if !known[id] {
			return fmt.Errorf("unknown point id: %s", id)
		}
	}

	out := cmd.OutOrStdout()
	for _, id := range args {
		state := "excluded"
		if sess.editor.TogglePoint(ctx, id) {
			state = "included"
		}
		_, _ = fmt.Fprintf(out, "%s: %s\n", id, state)
	}
	return nil
}

// knownIDs returns every point id of the catalog plus the token ids of skills points
func knownIDs(catalog types.Catalog) map[string]bool {
	ids := make(map[string]bool, catalog.PointCount())
	for _, section := range catalog.Sections {
		for _, point := range section.Points {
			ids[point.ID] = true
			if section.Category != types.CategorySkills {
				continue
			}
			for _, token := range filter.SkillTokens(point) {
				ids[token.ID] = true
			}
		}
	}
	return ids
}
