// Package main implements the resume_builder CLI for assembling a one-page resume from markdown points.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Assemble a one-page resume from markdown resume points",
	Long: `resume_builder reads resume points from markdown files grouped by category,
lets you pick the points and tags to show, tunes the page layout and exports the result to PDF.

Configuration can be loaded from a JSON or YAML file using --config. Command-line flags override config file values.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
