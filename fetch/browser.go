package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"sailboat-scraper/utils"
)

// BrowserFetcher renders pages in a headless Chrome, for sites that only
// serve their listings to a real browser.
type BrowserFetcher struct {
	logger      *utils.Logger
	browserCtx  context.Context
	cancelAlloc context.CancelFunc
	cancelTab   context.CancelFunc
	throttle    *utils.Throttle
	timeout     time.Duration
}

// NewBrowserFetcher starts a headless browser allocator. Call Close when done.
func NewBrowserFetcher(chromeBin, userAgent string, rateLimitMs int, logger *utils.Logger) *BrowserFetcher {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserFetcher{
		logger:      logger,
		browserCtx:  browserCtx,
		cancelAlloc: cancelAlloc,
		cancelTab:   cancelTab,
		throttle:    utils.NewThrottle(rateLimitMs),
		timeout:     60 * time.Second,
	}
}

// Get navigates to url and returns the rendered document HTML.
func (b *BrowserFetcher) Get(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.throttle.Wait()

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	defer cancel()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, b.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	res, err := chromedp.RunResponse(tabCtx, chromedp.Navigate(url))
	if err != nil {
		return "", fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	if res != nil && (res.Status < 200 || res.Status > 299) {
		header := http.Header{}
		for k, v := range res.Headers {
			header.Set(k, fmt.Sprint(v))
		}
		return "", &StatusError{URL: url, StatusCode: int(res.Status), Header: header}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("browser: read %s: %w", url, err)
	}
	return html, nil
}

// Post is not available in a browser session.
func (b *BrowserFetcher) Post(context.Context, string, string, string) (string, error) {
	return "", errors.New("browser: POST is not supported")
}

// Close shuts the browser down.
func (b *BrowserFetcher) Close() {
	b.cancelTab()
	b.cancelAlloc()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
