package domain

// SearchResult represents a raw hit from the upstream web-search provider.
// Immutable once received; the pipeline never writes back into it.
type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Snippet     string `json:"snippet"`
	Source      string `json:"source,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Candidate is a search hit that survived shopping/clothing filtering.
// Site is the lower-cased host from URL, empty if the URL is malformed.
// Price, when set, is a positive dollar amount with at most 2 decimals.
type Candidate struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Snippet string   `json:"snippet"`
	Site    string   `json:"site,omitempty"`
	Image   string   `json:"image,omitempty"`
	Price   *float64 `json:"price,omitempty"`
}

// ScoredItem is the terminal entity returned to the caller.
// DupeScore is always within [0,100].
type ScoredItem struct {
	Candidate
	DupeScore int    `json:"dupeScore"`
	Reason    string `json:"reason"`
}

// ImageCandidate is a scored same-page image considered during
// resolution. Discarded once the best one is picked.
type ImageCandidate struct {
	URL   string
	Score int
}
