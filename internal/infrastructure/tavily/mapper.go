package tavily

import "github.com/dupefinder/backend/internal/domain"

// searchResponse is the Tavily search API response envelope
type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results"`
}

// searchResult is one raw hit as Tavily returns it
type searchResult struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Content   string `json:"content"`
	Snippet   string `json:"snippet"`
	Source    string `json:"source"`
	Published string `json:"published"`
	Image     string `json:"image"`
}

// MapToSearchResults converts a Tavily response into domain SearchResults,
// capped at maxResults. Titles fall back to "Untitled"; the snippet
// comes from content, falling back to the legacy snippet field.
func MapToSearchResults(resp *searchResponse, maxResults int) []domain.SearchResult {
	if resp == nil {
		return nil
	}

	out := make([]domain.SearchResult, 0, len(resp.Results))
	for _, item := range resp.Results {
		if len(out) >= maxResults {
			break
		}

		title := item.Title
		if title == "" {
			title = "Untitled"
		}
		snippet := item.Content
		if snippet == "" {
			snippet = item.Snippet
		}

		out = append(out, domain.SearchResult{
			Title:       title,
			URL:         item.URL,
			Snippet:     snippet,
			Source:      item.Source,
			PublishedAt: item.Published,
			Image:       item.Image,
		})
	}
	return out
}
