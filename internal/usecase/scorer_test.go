package usecase

import (
	"strings"
	"testing"

	"github.com/dupefinder/backend/internal/domain"
)

func TestScore(t *testing.T) {
	scorer := NewDupeScorer(false)

	t.Run("score is always within bounds", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "https://www.amazon.com/x", Site: "www.amazon.com", Price: floatPtr(1)},
			{URL: "https://unknown.example/x"},
			{URL: "https://www.nordstrom.com/x", Site: "www.nordstrom.com", Price: floatPtr(5)},
		}
		for _, c := range candidates {
			item := scorer.Score(c, 100)
			if item.DupeScore < 0 || item.DupeScore > 100 {
				t.Errorf("DupeScore = %d, want within [0,100]", item.DupeScore)
			}
		}
	})

	t.Run("recognized retailer scores higher than unknown", func(t *testing.T) {
		amazon := scorer.Score(domain.Candidate{URL: "https://www.amazon.com/p", Site: "www.amazon.com"}, 0)
		unknown := scorer.Score(domain.Candidate{URL: "https://nobody.example/p", Site: "nobody.example"}, 0)
		if amazon.DupeScore <= unknown.DupeScore {
			t.Errorf("amazon score %d <= unknown score %d, want strictly higher", amazon.DupeScore, unknown.DupeScore)
		}
	})

	t.Run("savings tiers against the set maximum", func(t *testing.T) {
		cheap := scorer.Score(domain.Candidate{URL: "https://a.example/p", Price: floatPtr(10)}, 50)
		pricey := scorer.Score(domain.Candidate{URL: "https://b.example/p", Price: floatPtr(50)}, 50)

		// 80% savings: base 50 + tier 30 + price 5
		if cheap.DupeScore != 85 {
			t.Errorf("cheap DupeScore = %d, want 85", cheap.DupeScore)
		}
		// 0% savings: base 50 + price 5
		if pricey.DupeScore != 55 {
			t.Errorf("pricey DupeScore = %d, want 55", pricey.DupeScore)
		}
	})

	t.Run("price bonus applies without a set maximum", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://a.example/p", Price: floatPtr(20)}, 0)
		if item.DupeScore != 55 {
			t.Errorf("DupeScore = %d, want 55 (base + price bonus)", item.DupeScore)
		}
	})

	t.Run("reason names top-rated retailer", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://www.amazon.com/p", Site: "www.amazon.com"}, 0)
		if !strings.Contains(item.Reason, "Top-rated retailer") {
			t.Errorf("Reason = %q, want to contain 'Top-rated retailer'", item.Reason)
		}
	})

	t.Run("reason names trusted retailer for mid-tier weight", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://www.ebay.com/p", Site: "www.ebay.com"}, 0)
		if !strings.Contains(item.Reason, "Trusted retailer") {
			t.Errorf("Reason = %q, want to contain 'Trusted retailer'", item.Reason)
		}
	})

	t.Run("reason includes formatted price", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://a.example/p", Price: floatPtr(39.99)}, 100)
		if !strings.Contains(item.Reason, "$39.99") {
			t.Errorf("Reason = %q, want to contain '$39.99'", item.Reason)
		}
	})

	t.Run("generic reason when nothing applies", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://nobody.example/p", Site: "nobody.example"}, 0)
		if item.Reason != genericReason {
			t.Errorf("Reason = %q, want %q", item.Reason, genericReason)
		}
	})

	t.Run("missing image replaced with placeholder", func(t *testing.T) {
		item := scorer.Score(domain.Candidate{URL: "https://a.example/p"}, 0)
		if item.Image != PlaceholderImageURL {
			t.Errorf("Image = %q, want placeholder", item.Image)
		}

		withImage := scorer.Score(domain.Candidate{URL: "https://a.example/p", Image: "https://cdn.example.com/p.jpg"}, 0)
		if withImage.Image != "https://cdn.example.com/p.jpg" {
			t.Errorf("Image = %q, want original image kept", withImage.Image)
		}
	})
}

func TestScoreAll(t *testing.T) {
	scorer := NewDupeScorer(false)

	t.Run("uses the set maximum as the savings reference", func(t *testing.T) {
		candidates := []domain.Candidate{
			{URL: "https://a.example/p", Price: floatPtr(30)},
			{URL: "https://b.example/p", Price: floatPtr(100)},
			{URL: "https://c.example/p"},
		}

		items := scorer.ScoreAll(candidates)
		if len(items) != 3 {
			t.Fatalf("len(items) = %d, want 3", len(items))
		}

		// 70% off max -> tier 30
		if items[0].DupeScore != 85 {
			t.Errorf("items[0].DupeScore = %d, want 85", items[0].DupeScore)
		}
		// the most expensive item never earns a savings bonus
		if items[1].DupeScore != 55 {
			t.Errorf("items[1].DupeScore = %d, want 55", items[1].DupeScore)
		}
		// no price, no bonuses
		if items[2].DupeScore != 50 {
			t.Errorf("items[2].DupeScore = %d, want 50", items[2].DupeScore)
		}
	})
}

func TestSavingsBonus(t *testing.T) {
	tests := []struct {
		percent float64
		want    int
	}{
		{80, 30}, {70, 30}, {60, 25}, {50, 25}, {40, 20},
		{30, 20}, {25, 15}, {20, 15}, {15, 10}, {10, 10},
		{5, 0}, {0, 0}, {-10, 0},
	}

	for _, tt := range tests {
		if got := savingsBonus(tt.percent); got != tt.want {
			t.Errorf("savingsBonus(%v) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestRetailerWeight(t *testing.T) {
	t.Run("substring match against host", func(t *testing.T) {
		if w := retailerWeight("www.amazon.com"); w != 10 {
			t.Errorf("retailerWeight(www.amazon.com) = %d, want 10", w)
		}
		if w := retailerWeight("smile.amazon.co.uk"); w != 10 {
			t.Errorf("retailerWeight(smile.amazon.co.uk) = %d, want 10", w)
		}
	})

	t.Run("unknown retailer has zero weight", func(t *testing.T) {
		if w := retailerWeight("tinyboutique.example"); w != 0 {
			t.Errorf("retailerWeight = %d, want 0", w)
		}
	})
}
