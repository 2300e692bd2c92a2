package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/dupefinder/backend/internal/domain"
)

// Provider fetch sizing: strict filtering discards most hits, so the
// service over-fetches from the provider to still fill a page.
const (
	defaultMaxResults         = 8
	defaultProviderMultiplier = 3
	providerResultCap         = 20 // Tavily's per-request maximum
)

// DupeServiceConfig holds configuration for the dupe service
type DupeServiceConfig struct {
	MaxResults         int
	ProviderMultiplier int
	EnableDebugLogging bool
}

// DupeService orchestrates the full pipeline: provider search ->
// normalization -> image enrichment -> scoring -> ranking. One request
// runs end-to-end with no shared state across requests.
type DupeService struct {
	provider   domain.SearchProvider
	normalizer *Normalizer
	enricher   *Enricher
	scorer     *DupeScorer
	maxResults int
	multiplier int
	debug      bool
}

// NewDupeService creates a new dupe service with dependencies
func NewDupeService(
	provider domain.SearchProvider,
	normalizer *Normalizer,
	enricher *Enricher,
	scorer *DupeScorer,
	config DupeServiceConfig,
) *DupeService {
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	multiplier := config.ProviderMultiplier
	if multiplier <= 0 {
		multiplier = defaultProviderMultiplier
	}

	return &DupeService{
		provider:   provider,
		normalizer: normalizer,
		enricher:   enricher,
		scorer:     scorer,
		maxResults: maxResults,
		multiplier: multiplier,
		debug:      config.EnableDebugLogging,
	}
}

// FindDupes returns ranked dupe candidates for a shopping query.
// Flow: search provider -> clothing-strict normalize -> enrich images ->
// score against the set maximum price -> rank priced-first.
func (s *DupeService) FindDupes(ctx context.Context, query string, maxResults int) ([]domain.ScoredItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	hits, err := s.provider.Search(ctx, query, s.providerFetchSize(maxResults))
	if err != nil {
		// Terminal: the client already tagged the error with its sentinel
		return nil, fmt.Errorf("dupe search: %w", err)
	}

	candidates := s.normalizer.Normalize(hits, maxResults, ModeClothing)
	if s.debug {
		log.Printf("[DUPES] query %q: %d hits -> %d candidates", query, len(hits), len(candidates))
	}
	if len(candidates) == 0 {
		return []domain.ScoredItem{}, nil
	}

	s.enricher.EnrichImages(ctx, candidates)

	items := s.scorer.ScoreAll(candidates)
	return Rank(items, maxResults), nil
}

// SearchNormalized returns filtered shopping candidates without the
// enrichment and scoring stages. The looser /search policy applies.
func (s *DupeService) SearchNormalized(ctx context.Context, query string, maxResults int) ([]domain.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	hits, err := s.provider.Search(ctx, query, s.providerFetchSize(maxResults))
	if err != nil {
		return nil, fmt.Errorf("normalized search: %w", err)
	}

	candidates := s.normalizer.Normalize(hits, maxResults, ModeShopping)
	if s.debug {
		log.Printf("[SEARCH] query %q: %d hits -> %d candidates", query, len(hits), len(candidates))
	}
	return candidates, nil
}

// providerFetchSize sizes the upstream request so filtering losses still
// leave enough candidates, capped at the provider's limit.
func (s *DupeService) providerFetchSize(maxResults int) int {
	size := maxResults * s.multiplier
	if size > providerResultCap {
		size = providerResultCap
	}
	return size
}
