package domain

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// SearchProvider defines the interface for the upstream web-search API
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// PageFetcher defines the interface for retrieving a candidate page as a
// parsed document tree. Implementations must bound every fetch with a timeout.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// ImageResolver finds the best representative product image on a page.
// An empty string means no usable image was found; resolution never
// returns an error to the caller.
type ImageResolver interface {
	ResolveProductImage(ctx context.Context, pageURL string) string
}
