// Package export turns a render projection into PDF bytes.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/types"
)

// Exporter names accepted by New
const (
	BackendChrome = "chrome"
	BackendFPDF   = "fpdf"
)

// Backends lists every exporter name
var Backends = []string{BackendChrome, BackendFPDF}

// Exporter converts a document into a PDF
type Exporter interface {
	Export(ctx context.Context, doc types.Document) ([]byte, error)
}

// Options configures an exporter
type Options struct {
	// ChromePath overrides the Chrome binary found on PATH
	ChromePath string
	// Timeout bounds a single export; zero means no limit beyond ctx
	Timeout time.Duration
}

// Error represents a failed export
type Error struct {
	Backend string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s export failed: %s: %v", e.Backend, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s export failed: %s", e.Backend, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns the exporter registered under name
func New(name string, opts Options) (Exporter, error) {
	switch name {
	case BackendChrome, "":
		return &Chrome{ExecPath: opts.ChromePath, Timeout: opts.Timeout}, nil
	case BackendFPDF:
		return &FPDF{Timeout: opts.Timeout}, nil
	default:
		return nil, fmt.Errorf("unknown exporter %q (expected one of %v)", name, Backends)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
