package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"

	"github.com/sciAnima/boxing-calendar/internal/logger"
)

const (
	// ScheduleURL is the single page this tool targets.
	ScheduleURL = "https://www.boxing247.com/fight-schedule"

	// DefaultTimeout bounds the whole fetch, browser launch included.
	DefaultTimeout = 45 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"
)

// Fetcher retrieves rendered page text for a single schedule URL.
type Fetcher struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// New creates a Fetcher. An empty url selects ScheduleURL; a zero timeout
// selects DefaultTimeout.
func New(url string, timeout time.Duration) *Fetcher {
	if url == "" {
		url = ScheduleURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// PageText fetches the schedule page and returns its visible text. The
// headless browser is tried first; on failure the plain HTTP path is used.
func (f *Fetcher) PageText(ctx context.Context) (string, error) {
	text, err := f.pageTextBrowser(ctx)
	if err == nil {
		return text, nil
	}
	logger.Warn("browser fetch failed, falling back to plain HTTP", logger.Fields{
		"url": f.url,
	})

	text, herr := f.pageTextHTTP(ctx)
	if herr != nil {
		return "", fmt.Errorf("fetching page (browser: %v): %w", err, herr)
	}
	return text, nil
}

// pageTextBrowser drives headless Chromium and extracts the rendered body text.
func (f *Fetcher) pageTextBrowser(ctx context.Context) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.timeout)
	defer cancel()

	var text string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(f.url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Give late scripts a moment to fill in the schedule.
		chromedp.Sleep(500*time.Millisecond),
		chromedp.Text("body", &text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp run: %w", err)
	}
	return text, nil
}

// pageTextHTTP fetches the page over plain HTTP and strips the markup.
func (f *Fetcher) pageTextHTTP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return visibleText(resp.Body)
}

// visibleText reduces HTML to the text a browser would render, with a
// single space between adjacent text nodes so inline markup does not glue
// words together.
func visibleText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return "", fmt.Errorf("document has no body")
	}

	var sb strings.Builder
	for _, node := range body.Nodes {
		collectText(node, &sb)
	}
	return strings.TrimSpace(sb.String()), nil
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		}
	}
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	// Block-level elements end a visual line.
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4", "h5", "h6":
			sb.WriteByte('\n')
		}
	}
}
