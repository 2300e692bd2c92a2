package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dupefinder/backend/internal/domain"
)

// fakeResolver returns canned images per URL and records call counts
type fakeResolver struct {
	mu     sync.Mutex
	images map[string]string
	delay  time.Duration
	calls  int
}

func (f *fakeResolver) ResolveProductImage(ctx context.Context, pageURL string) string {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ""
		}
	}
	return f.images[pageURL]
}

func (f *fakeResolver) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestEnrichImages(t *testing.T) {
	ctx := context.Background()

	t.Run("fills in resolved images", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{
			"https://a.example/p": "https://cdn.example.com/a.jpg",
		}}
		e := NewEnricher(resolver, EnrichmentConfig{})

		candidates := []domain.Candidate{{URL: "https://a.example/p"}}
		e.EnrichImages(ctx, candidates)

		if candidates[0].Image != "https://cdn.example.com/a.jpg" {
			t.Errorf("Image = %q, want resolved image", candidates[0].Image)
		}
	})

	t.Run("skips candidates that already have an absolute image", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{}}
		e := NewEnricher(resolver, EnrichmentConfig{})

		candidates := []domain.Candidate{
			{URL: "https://a.example/p", Image: "https://cdn.example.com/have.jpg"},
		}
		e.EnrichImages(ctx, candidates)

		if resolver.callCount() != 0 {
			t.Errorf("resolver called %d times, want 0", resolver.callCount())
		}
		if candidates[0].Image != "https://cdn.example.com/have.jpg" {
			t.Errorf("Image = %q, want untouched", candidates[0].Image)
		}
	})

	t.Run("re-resolves relative provider images", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{
			"https://a.example/p": "https://cdn.example.com/a.jpg",
		}}
		e := NewEnricher(resolver, EnrichmentConfig{})

		candidates := []domain.Candidate{
			{URL: "https://a.example/p", Image: "/thumb.jpg"},
		}
		e.EnrichImages(ctx, candidates)

		if candidates[0].Image != "https://cdn.example.com/a.jpg" {
			t.Errorf("Image = %q, want resolved replacement for relative image", candidates[0].Image)
		}
	})

	t.Run("placeholder when nothing resolves and no prior image", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{}}
		e := NewEnricher(resolver, EnrichmentConfig{})

		candidates := []domain.Candidate{{URL: "https://a.example/p"}}
		e.EnrichImages(ctx, candidates)

		if candidates[0].Image != PlaceholderImageURL {
			t.Errorf("Image = %q, want placeholder", candidates[0].Image)
		}
	})

	t.Run("keeps prior placeholder value when resolution fails", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{}}
		e := NewEnricher(resolver, EnrichmentConfig{})

		candidates := []domain.Candidate{
			{URL: "https://a.example/p", Image: "thumb.jpg"},
		}
		e.EnrichImages(ctx, candidates)

		if candidates[0].Image != "thumb.jpg" {
			t.Errorf("Image = %q, want prior value kept", candidates[0].Image)
		}
	})

	t.Run("slow resolution hits the task deadline and falls back", func(t *testing.T) {
		resolver := &fakeResolver{delay: 500 * time.Millisecond, images: map[string]string{
			"https://a.example/p": "https://cdn.example.com/a.jpg",
		}}
		e := NewEnricher(resolver, EnrichmentConfig{TaskTimeout: 20 * time.Millisecond})

		candidates := []domain.Candidate{{URL: "https://a.example/p"}}

		start := time.Now()
		e.EnrichImages(ctx, candidates)
		elapsed := time.Since(start)

		if candidates[0].Image != PlaceholderImageURL {
			t.Errorf("Image = %q, want placeholder after timeout", candidates[0].Image)
		}
		if elapsed > 300*time.Millisecond {
			t.Errorf("enrichment took %v, want the outer deadline to cut it short", elapsed)
		}
	})

	t.Run("waits for every candidate", func(t *testing.T) {
		resolver := &fakeResolver{images: map[string]string{
			"https://a.example/p": "https://cdn.example.com/a.jpg",
			"https://b.example/p": "https://cdn.example.com/b.jpg",
			"https://c.example/p": "https://cdn.example.com/c.jpg",
		}}
		e := NewEnricher(resolver, EnrichmentConfig{Concurrency: 2})

		candidates := []domain.Candidate{
			{URL: "https://a.example/p"},
			{URL: "https://b.example/p"},
			{URL: "https://c.example/p"},
		}
		e.EnrichImages(ctx, candidates)

		for i, c := range candidates {
			if c.Image == "" || c.Image == PlaceholderImageURL {
				t.Errorf("candidates[%d].Image = %q, want a resolved image", i, c.Image)
			}
		}
		if resolver.callCount() != 3 {
			t.Errorf("resolver called %d times, want 3", resolver.callCount())
		}
	})
}
