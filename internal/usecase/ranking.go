package usecase

import (
	"sort"

	"github.com/dupefinder/backend/internal/domain"
)

// Rank orders scored items for presentation and truncates to maxItems.
// Items sort by descending score first. If at least one item carries a
// known price, priced items move ahead of unpriced ones and re-sort by
// ascending price, with the score order kept as a stable tiebreak. With
// no prices anywhere, the score order stands as-is.
func Rank(items []domain.ScoredItem, maxItems int) []domain.ScoredItem {
	ranked := make([]domain.ScoredItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DupeScore > ranked[j].DupeScore
	})

	if hasAnyPrice(ranked) {
		var priced, unpriced []domain.ScoredItem
		for _, item := range ranked {
			if item.Price != nil {
				priced = append(priced, item)
			} else {
				unpriced = append(unpriced, item)
			}
		}
		sort.SliceStable(priced, func(i, j int) bool {
			return *priced[i].Price < *priced[j].Price
		})
		ranked = append(priced, unpriced...)
	}

	if maxItems > 0 && len(ranked) > maxItems {
		ranked = ranked[:maxItems]
	}
	return ranked
}

func hasAnyPrice(items []domain.ScoredItem) bool {
	for _, item := range items {
		if item.Price != nil {
			return true
		}
	}
	return false
}
