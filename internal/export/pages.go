package export

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from creating a config directory under the user's home
	api.DisableConfigDir()
}

// CountPages returns the number of pages in a PDF
func CountPages(pdf []byte) (int, error) {
	if len(pdf) == 0 {
		return 0, fmt.Errorf("failed to count pages: empty PDF")
	}
	n, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("failed to count pages: %w", err)
	}
	return n, nil
}
