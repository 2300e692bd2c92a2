package usecase

import (
	"log"

	"github.com/dupefinder/backend/internal/domain"
)

// Normalizer turns raw provider hits into filtered Candidates.
// Order-preserving: earlier hits win over later ones at the same
// quality, and scanning stops once the limit is reached.
type Normalizer struct {
	classifier *Classifier
	debug      bool
}

// NewNormalizer creates a new result normalizer
func NewNormalizer(classifier *Classifier, enableDebugLogging bool) *Normalizer {
	return &Normalizer{
		classifier: classifier,
		debug:      enableDebugLogging,
	}
}

// Normalize filters raw hits down to at most limit Candidates under the
// given policy. Duplicated URLs keep only their first occurrence. The
// provider-supplied image, if any, is kept as a placeholder pending
// enrichment.
func (n *Normalizer) Normalize(hits []domain.SearchResult, limit int, mode FilterMode) []domain.Candidate {
	if limit <= 0 {
		return nil
	}

	candidates := make([]domain.Candidate, 0, limit)
	seen := make(map[string]bool, len(hits))

	for _, hit := range hits {
		if len(candidates) >= limit {
			break
		}
		if hit.URL == "" || seen[hit.URL] {
			continue
		}
		seen[hit.URL] = true

		site := ExtractSite(hit.URL)

		if n.classifier.IsExcludedSite(site) {
			n.logReject(hit.URL, "excluded site")
			continue
		}
		if n.classifier.IsExcludedContent(hit.Title, hit.Snippet) {
			n.logReject(hit.URL, "excluded content")
			continue
		}

		switch mode {
		case ModeShopping:
			if !n.classifier.IsShoppingContent(hit.Title, hit.Snippet, site) {
				n.logReject(hit.URL, "no shopping signals")
				continue
			}
		case ModeClothing:
			if !n.classifier.IsClothingRelevant(hit.Title, hit.Snippet) {
				n.logReject(hit.URL, "no clothing keywords")
				continue
			}
			if n.classifier.IsExcludedPath(hit.URL) {
				n.logReject(hit.URL, "editorial path")
				continue
			}
		}

		candidates = append(candidates, domain.Candidate{
			Title:   hit.Title,
			URL:     hit.URL,
			Snippet: hit.Snippet,
			Site:    site,
			Image:   hit.Image,
			Price:   ExtractPrice(hit.Title + " " + hit.Snippet),
		})
	}

	return candidates
}

func (n *Normalizer) logReject(url, reason string) {
	if n.debug {
		log.Printf("[NORMALIZE] rejected %s: %s", url, reason)
	}
}
