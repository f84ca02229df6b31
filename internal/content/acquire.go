// Package content acquires page text for an entry and applies the
// worker's truncation policy. Acquisition prefers content a previous
// crawl stored on the entry, then falls back to a live fetch with a
// headless-browser retry for JavaScript-rendered sites.
package content

import (
	"context"
	"strings"

	"github.com/bedwinning/enrichment-engine/internal/fetch"
	"github.com/bedwinning/enrichment-engine/internal/types"
)

// Defaults for the acquisition thresholds.
const (
	// DefaultMinChars is the minimum acquired text length worth
	// enriching from; anything shorter is an acquisition failure.
	DefaultMinChars = 200
	// DefaultMaxChars is the truncation threshold. Overlong text keeps
	// a head window (hero/features) and a tail window (pricing/footer)
	// with the middle marked as elided.
	DefaultMaxChars = 40000
)

// ElisionMarker separates the head and tail windows of truncated text.
const ElisionMarker = "\n\n[... content trimmed ...]\n\n"

// Acquirer turns an entry into enrichable text.
type Acquirer struct {
	// UseBrowser enables the chromedp fallback when plain HTTP yields
	// too little text.
	UseBrowser bool
	// Verbose enables fetch diagnostics.
	Verbose bool
	// MinChars / MaxChars override the default thresholds when > 0.
	MinChars int
	MaxChars int
}

func (a *Acquirer) minChars() int {
	if a.MinChars > 0 {
		return a.MinChars
	}
	return DefaultMinChars
}

func (a *Acquirer) maxChars() int {
	if a.MaxChars > 0 {
		return a.MaxChars
	}
	return DefaultMaxChars
}

// Acquire returns truncated page text for the entry. Stored content
// from a previous crawl is used when long enough; otherwise the
// entry's canonical URL is fetched live.
func (a *Acquirer) Acquire(ctx context.Context, entry *types.Entry) (string, error) {
	if entry.StoredContent != nil {
		stored := strings.TrimSpace(entry.StoredContent.CleanText)
		if len(stored) >= a.minChars() {
			return Truncate(stored, a.maxChars()), nil
		}
	}

	text, err := a.fetchLive(ctx, entry.WebsiteURL)
	if err != nil {
		return "", err
	}

	if len(text) < a.minChars() {
		return "", &AcquisitionError{
			URL:     entry.WebsiteURL,
			Message: "insufficient content",
		}
	}

	return Truncate(text, a.maxChars()), nil
}

func (a *Acquirer) fetchLive(ctx context.Context, url string) (string, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", &AcquisitionError{URL: url, Message: "fetch failed", Cause: err}
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.ToolSiteSelectors())
	if err != nil {
		return "", &AcquisitionError{URL: url, Message: "failed to extract text", Cause: err}
	}

	if a.UseBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.BrowserSimple(ctx, url, a.Verbose)
		if err != nil {
			// Keep whatever the plain fetch produced; the minimum
			// length check decides whether it is enough.
			return text, nil
		}
		rendered, err := fetch.ExtractMainText(html, fetch.ToolSiteSelectors())
		if err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}

	return text, nil
}

// Truncate bounds text at max characters by keeping the first and last
// half-window and marking the middle as elided. This preserves both
// hero/feature content at the top and footer/pricing content at the
// bottom of marketing pages. Text at or under the limit is returned
// unchanged.
func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	window := max / 2
	return text[:window] + ElisionMarker + text[len(text)-window:]
}
