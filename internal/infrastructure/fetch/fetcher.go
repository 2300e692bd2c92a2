package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dupefinder/backend/internal/domain"
)

// Fetcher retrieves candidate pages and parses them into goquery
// documents. Every fetch is bounded by the client timeout; callers
// layer their own context deadlines on top. No retries: a failed fetch
// is a permanent "no image" for the current request.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewFetcher creates a new page fetcher
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 6 * time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		// A browser-like UA; plenty of shops serve bots an empty shell
		userAgent: "Mozilla/5.0 (compatible; DupeFinder/1.0)",
	}
}

// Fetch downloads a page and returns its parsed document tree.
// Non-200 responses are errors so the resolver treats them as a miss.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPageFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrPageFetchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPageFetchFailed, err)
	}
	return doc, nil
}
