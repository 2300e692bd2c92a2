package usecase

import (
	"fmt"
	"log"
	"strings"

	"github.com/dupefinder/backend/internal/domain"
)

// Scoring constants
const (
	baseDupeScore  = 50 // every candidate starts here
	hasPriceBonus  = 5  // flat bonus for any extractable price
	topRetailerMin = 8  // reputation weight at or above this is "top-rated"
)

// Savings bonus tiers: percent-off threshold to bonus points
var savingsTiers = []struct {
	minPercent float64
	bonus      int
}{
	{70, 30},
	{50, 25},
	{30, 20},
	{20, 15},
	{10, 10},
}

// retailerReputation maps host substrings to reputation weights (5-10).
// Substring match against the candidate's site; highest matching weight
// wins.
var retailerReputation = map[string]int{
	"amazon.":          10,
	"nordstrom.":       10,
	"zappos.":          9,
	"target.":          9,
	"uniqlo.":          9,
	"asos.":            8,
	"zara.":            8,
	"hm.com":           8,
	"revolve.":         8,
	"everlane.":        8,
	"walmart.":         7,
	"macys.":           7,
	"mango.com":        7,
	"lulus.":           7,
	"urbanoutfitters.": 7,
	"ebay.":            6,
	"etsy.":            6,
	"boohoo.":          6,
	"forever21.":       6,
	"shein.":           5,
	"aliexpress.":      5,
	"fashionnova.":     5,
}

// genericReason is used when no scoring component produced a phrase
const genericReason = "Potential dupe alternative"

// reasonSeparator joins the reason components
const reasonSeparator = " · "

// DupeScorer computes the 0-100 desirability score for a candidate.
// Retailer reputation and relative savings against the most expensive
// item in the current result set drive the score; the set maximum is a
// reference point, so the priciest item always shows zero savings.
type DupeScorer struct {
	debug bool
}

// NewDupeScorer creates a new dupe scorer
func NewDupeScorer(enableDebugLogging bool) *DupeScorer {
	return &DupeScorer{debug: enableDebugLogging}
}

// ScoreAll scores every candidate against the set's maximum known price
func (s *DupeScorer) ScoreAll(candidates []domain.Candidate) []domain.ScoredItem {
	maxPrice := maxKnownPrice(candidates)

	items := make([]domain.ScoredItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, s.Score(c, maxPrice))
	}
	return items
}

// Score computes a ScoredItem for one candidate. maxPriceInSet is the
// highest extracted price across the filtered set, or 0 when no
// candidate has one.
func (s *DupeScorer) Score(candidate domain.Candidate, maxPriceInSet float64) domain.ScoredItem {
	score := baseDupeScore
	var reasons []string

	weight := retailerWeight(candidate.Site)
	if weight > 0 {
		score += weight
		if weight >= topRetailerMin {
			reasons = append(reasons, "Top-rated retailer")
		} else {
			reasons = append(reasons, "Trusted retailer")
		}
	}

	if candidate.Price != nil {
		score += hasPriceBonus

		savings := 0.0
		if maxPriceInSet > 0 {
			savings = (maxPriceInSet - *candidate.Price) / maxPriceInSet * 100
		}
		score += savingsBonus(savings)
		reasons = append(reasons, savingsPhrase(savings, *candidate.Price))
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	reason := genericReason
	if len(reasons) > 0 {
		reason = strings.Join(reasons, reasonSeparator)
	}

	image := candidate.Image
	if !IsAbsoluteImageURL(image) {
		image = PlaceholderImageURL
	}

	if s.debug {
		log.Printf("[SCORE] %s (site=%s) -> %d: %s", candidate.URL, candidate.Site, score, reason)
	}

	scored := domain.ScoredItem{Candidate: candidate, DupeScore: score, Reason: reason}
	scored.Image = image
	return scored
}

// retailerWeight returns the highest matching reputation weight for a
// site, or 0 if the retailer is unrecognized.
func retailerWeight(site string) int {
	host := strings.ToLower(site)
	best := 0
	for substr, weight := range retailerReputation {
		if strings.Contains(host, substr) && weight > best {
			best = weight
		}
	}
	return best
}

// savingsBonus maps a savings percentage onto its tiered bonus
func savingsBonus(percent float64) int {
	for _, tier := range savingsTiers {
		if percent >= tier.minPercent {
			return tier.bonus
		}
	}
	return 0
}

// savingsPhrase describes the price advantage for the reason string
func savingsPhrase(percent, price float64) string {
	formatted := fmt.Sprintf("$%.2f", price)
	switch {
	case percent > 50:
		return fmt.Sprintf("Huge %.0f%% saving at %s", percent, formatted)
	case percent >= 20:
		return fmt.Sprintf("%.0f%% cheaper at %s", percent, formatted)
	case percent > 0:
		return fmt.Sprintf("Lower price at %s", formatted)
	default:
		return fmt.Sprintf("Priced at %s", formatted)
	}
}

// maxKnownPrice returns the highest extracted price in the set, 0 if none
func maxKnownPrice(candidates []domain.Candidate) float64 {
	max := 0.0
	for _, c := range candidates {
		if c.Price != nil && *c.Price > max {
			max = *c.Price
		}
	}
	return max
}
