package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard every edit and start over",
	Long: `Clears the persisted selection, layout and added points, then reloads the resume sources.
Asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	confirmed := resetYes || confirmReset(cmd.InOrStdin(), cmd.OutOrStdout())
	if !confirmed {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
		return nil
	}

	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.editor.Reset(ctx, true); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Resume state reset")
	return nil
}

// confirmReset asks on out and reads a yes or no answer from in; anything but yes declines
func confirmReset(in io.Reader, out io.Writer) bool {
	_, _ = fmt.Fprint(out, "Discard all selections, layout changes and added points? [y/N] ")
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
