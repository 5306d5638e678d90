package export

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/types"
)

// Chrome prints the HTML rendering through headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type Chrome struct {
	ExecPath string
	Timeout  time.Duration
}

// Export renders the document to HTML, loads it into a blank tab and prints it.
// The paper is the physical page size with zero margins; the page padding acts as the margin.
func (c *Chrome) Export(ctx context.Context, doc types.Document) ([]byte, error) {
	html, err := rendering.RenderHTML(doc)
	if err != nil {
		return nil, &Error{Backend: BackendChrome, Message: "failed to render HTML", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = withTimeout(browserCtx, c.Timeout)
	defer cancel()

	width, height := layout.Dimensions{Width: doc.Page.Width, Height: doc.Page.Height, Unit: doc.Page.Unit}.Inches()

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#resume-preview-container", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{Backend: BackendChrome, Message: "browser printing failed", Cause: err}
	}
	return pdf, nil
}
