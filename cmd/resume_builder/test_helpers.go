package main

import (
	"os"
	"path/filepath"
	"testing"
)

// fixtureContent is the sample content directory shared by the CLI tests
var fixtureContent = filepath.Join("..", "..", "testdata", "resume-points")

// getBinaryPath returns the path to the resume_builder binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_builder"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}

	return binaryPath
}
