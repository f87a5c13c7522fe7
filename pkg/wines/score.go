package wines

import (
	"math"
	"sort"

	"github.com/cellarlens/cellarlens/pkg/errors"
)

// Default ranking weights: ratings matter more than price.
const (
	DefaultRatingWeight = 0.6
	DefaultPriceWeight  = 0.4
)

// RankedWine is a resolved wine with its computed ranking score.
type RankedWine struct {
	ResolvedWine
	Score float64 `json:"score"`
}

// Rank scores wines by a weighted combination of normalized rating (0-5
// scaled to 0-10) and normalized price (cheaper scores higher), then sorts
// descending by score. The two weights must sum to 1. Wines without a price
// are scored on rating alone.
func Rank(list []ResolvedWine, ratingWeight, priceWeight float64) ([]RankedWine, error) {
	if math.Abs(ratingWeight+priceWeight-1) > 1e-9 {
		return nil, &errors.ValidationError{
			Field:   "weights",
			Message: "the sum of ratingWeight and priceWeight must be 1",
		}
	}

	minPrice, maxPrice := priceBounds(list)

	ranked := make([]RankedWine, 0, len(list))
	for _, w := range list {
		normalizedRating := (w.Rating / 5) * 10

		score := ratingWeight * normalizedRating
		if w.Price != nil && maxPrice > minPrice {
			normalizedPrice := 10 * (maxPrice - *w.Price) / (maxPrice - minPrice)
			score += priceWeight * normalizedPrice
		} else if w.Price != nil {
			// All priced wines cost the same, price carries no signal.
			score += priceWeight * 10
		}

		ranked = append(ranked, RankedWine{
			ResolvedWine: w,
			Score:        math.Round(score*100) / 100,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

func priceBounds(list []ResolvedWine) (minPrice, maxPrice float64) {
	minPrice = math.Inf(1)
	maxPrice = math.Inf(-1)
	for _, w := range list {
		if w.Price == nil {
			continue
		}
		minPrice = math.Min(minPrice, *w.Price)
		maxPrice = math.Max(maxPrice, *w.Price)
	}
	return minPrice, maxPrice
}
