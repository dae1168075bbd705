// Package browser renders pages in headless Chrome via the DevTools
// protocol. It is the I/O half of the browser-rendering strategy; DOM
// scraping lives in the extractor package.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"
)

// InstallHint tells the user how to provide a browser.
const InstallHint = "install Google Chrome or Chromium (e.g. `apt install chromium` or `brew install --cask google-chrome`) or set browser.path / PALETTES_BROWSER_PATH to its executable"

const scrollScript = `window.scrollTo(0, document.body.scrollHeight); document.body.scrollHeight`

// ErrLaunch is returned when the browser process could not be started.
var ErrLaunch = errors.New("failed to start browser")

// ErrNotFound is returned by FindExecutable when no browser is available.
var ErrNotFound = errors.New("browser executable not found")

// executableNames are looked up on PATH when no explicit path is configured.
var executableNames = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// Options configures a Chrome renderer.
type Options struct {
	ExecPath     string        // empty = let chromedp locate Chrome
	UserAgent    string        // sent with every page request
	Settle       time.Duration // unconditional wait after navigation
	ScrollWait   time.Duration // unconditional wait after each scroll
	WindowWidth  int
	WindowHeight int
}

// Chrome renders pages with a fresh headless Chrome process per call.
type Chrome struct {
	opts Options
}

// New returns a Chrome renderer, filling zero options with defaults.
func New(opts Options) *Chrome {
	if opts.Settle <= 0 {
		opts.Settle = 3 * time.Second
	}
	if opts.ScrollWait <= 0 {
		opts.ScrollWait = time.Second
	}
	if opts.WindowWidth <= 0 || opts.WindowHeight <= 0 {
		opts.WindowWidth, opts.WindowHeight = 1920, 1080
	}
	return &Chrome{opts: opts}
}

// allocatorOptions returns the Chrome flags for a headless scrape.
func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(c.opts.WindowWidth, c.opts.WindowHeight),
	)
	if c.opts.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(c.opts.UserAgent))
	}
	if c.opts.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.opts.ExecPath))
	}
	return opts
}

// Render implements extractor.Renderer. It loads pageURL, waits for the page
// to settle, scrolls to the bottom the given number of times and returns the
// rendered document. The browser process is always shut down before Render
// returns.
func (c *Chrome) Render(ctx context.Context, pageURL string, scrolls int) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// An empty Run starts the browser, separating launch failures from
	// page failures.
	if err := chromedp.Run(tabCtx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	var (
		height float64
		html   string
	)

	actions := []chromedp.Action{
		chromedp.Navigate(pageURL),
		chromedp.Sleep(c.opts.Settle),
	}
	for i := 0; i < scrolls; i++ {
		actions = append(actions,
			chromedp.Evaluate(scrollScript, &height),
			chromedp.Sleep(c.opts.ScrollWait),
		)
	}
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(tabCtx, actions...); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", pageURL, err)
	}

	return html, nil
}

// FindExecutable resolves the browser to launch. A configured path must
// exist; otherwise the usual Chrome/Chromium names are looked up on PATH.
func FindExecutable(configured string) (string, error) {
	if configured != "" {
		if path, err := exec.LookPath(configured); err == nil {
			return path, nil
		}
		if info, err := os.Stat(configured); err == nil && !info.IsDir() {
			return configured, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, configured)
	}

	for _, name := range executableNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}
