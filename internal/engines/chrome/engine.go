package chrome

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-builder/internal/rendering"
)

const defaultTimeout = 30 * time.Second

// browserNames are the executables looked up on PATH
var browserNames = []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "chrome"}

// Engine is a rendering.PageEngine that prints through headless Chrome
type Engine struct {
	// ExecPath overrides browser discovery
	ExecPath string
	Timeout  time.Duration
	Verbose  bool
}

// New returns an engine with the default timeout
func New(execPath string) *Engine {
	return &Engine{ExecPath: execPath, Timeout: defaultTimeout}
}

// Available reports whether a browser can be found
func Available() (string, bool) {
	for _, name := range browserNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// RenderPage implements rendering.PageEngine
func (e *Engine) RenderPage(ctx context.Context, doc *rendering.PageDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("chrome: nil document")
	}
	html, err := HTML(doc)
	if err != nil {
		return nil, err
	}
	if err := checkOutline(doc, html); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if e.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(e.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	if e.Verbose {
		log.Printf("[chrome] printing %d bytes of html", len(html))
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(doc.Size.Width / 72).
				WithPaperHeight(doc.Size.Height / 72).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chrome: print to pdf failed: %w", err)
	}

	if e.Verbose {
		log.Printf("[chrome] printed %d bytes of pdf", len(pdf))
	}
	return pdf, nil
}
