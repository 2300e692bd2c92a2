package usecase

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dupefinder/backend/internal/domain"
)

// PlaceholderImageURL substitutes for candidates whose product image
// could not be resolved.
const PlaceholderImageURL = "https://placehold.co/400x400?text=No+Image"

// EnrichmentConfig holds configuration for the image enrichment stage
type EnrichmentConfig struct {
	Concurrency        int
	TaskTimeout        time.Duration
	EnableDebugLogging bool
}

// Enricher fills in product images for candidates that lack a usable
// one. The only concurrent stage of the pipeline: one resolution task
// per candidate, bounded fan-out, each task individually time-boxed.
// Enrichment never fails the request; it fills in what it can.
type Enricher struct {
	resolver    domain.ImageResolver
	concurrency int
	taskTimeout time.Duration
	debug       bool
}

// NewEnricher creates a new image enrichment stage
func NewEnricher(resolver domain.ImageResolver, config EnrichmentConfig) *Enricher {
	concurrency := config.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	taskTimeout := config.TaskTimeout
	if taskTimeout <= 0 {
		// Outer cap on top of the resolver's own timeout; the tighter
		// bound wins if the inner one is slow to fire.
		taskTimeout = 5 * time.Second
	}

	return &Enricher{
		resolver:    resolver,
		concurrency: concurrency,
		taskTimeout: taskTimeout,
		debug:       config.EnableDebugLogging,
	}
}

// EnrichImages resolves images in place for every candidate whose image
// is empty or not an absolute URL. Waits for all tasks to finish;
// siblings are independent and are not cancelled when one completes or
// fails. A task that finds nothing leaves the provider placeholder in
// place, or the fixed placeholder if there was none.
func (e *Enricher) EnrichImages(ctx context.Context, candidates []domain.Candidate) {
	g := new(errgroup.Group)
	g.SetLimit(e.concurrency)

	for i := range candidates {
		if IsAbsoluteImageURL(candidates[i].Image) {
			continue
		}

		idx := i
		g.Go(func() error {
			taskCtx, cancel := context.WithTimeout(ctx, e.taskTimeout)
			defer cancel()

			resolved := e.resolveOne(taskCtx, candidates[idx].URL)
			if resolved != "" {
				candidates[idx].Image = resolved
			} else if candidates[idx].Image == "" {
				candidates[idx].Image = PlaceholderImageURL
			}
			return nil
		})
	}

	// Tasks always return nil; the group is just a join barrier here
	_ = g.Wait()
}

// resolveOne runs a single resolution under the outer deadline, racing
// the resolver against the task timeout so a stuck fetch cannot hold
// the stage past its deadline.
func (e *Enricher) resolveOne(ctx context.Context, pageURL string) string {
	done := make(chan string, 1)
	go func() {
		done <- e.resolver.ResolveProductImage(ctx, pageURL)
	}()

	select {
	case img := <-done:
		return img
	case <-ctx.Done():
		if e.debug {
			log.Printf("[ENRICH] image resolution timed out for %s", pageURL)
		}
		return ""
	}
}
