package matcher

import (
	"strconv"

	"github.com/cellarlens/cellarlens/pkg/wines"
)

// MatchHits filters catalog hits down to the most plausible vintages for a
// guessed wine. For each hit:
//
//  1. Vintages are filtered by year. A nil guessed year matches non-numeric
//     catalog years (both represent "unknown").
//  2. Zero year matches: the hit survives narrowed to its first (most recent)
//     vintage as a weak match, so year noise alone never loses a candidate.
//  3. One year match: the hit is narrowed to it.
//  4. Multiple year matches: vintages are further filtered by type using the
//     slug equivalence table. Zero type matches drop the hit (type mismatch
//     is a strong negative signal); one narrows to it; several keep all
//     type-matching vintages for visual arbitration.
//
// The function is pure: it reads its inputs, returns narrowed copies, and
// holds no state.
func MatchHits(guess wines.ParsedGuessedWine, hits []wines.CatalogHit) []wines.CatalogHit {
	matched := make([]wines.CatalogHit, 0, len(hits))

	for _, hit := range hits {
		byYear := vintagesMatchingYear(hit.Vintages, guess.Year)

		if len(byYear) == 0 {
			if len(hit.Vintages) == 0 {
				continue
			}
			matched = append(matched, hit.WithVintages(hit.Vintages[:1]))
			continue
		}

		if len(byYear) == 1 {
			matched = append(matched, hit.WithVintages(byYear))
			continue
		}

		byType := make([]wines.CatalogVintage, 0, len(byYear))
		for _, vintage := range byYear {
			if slugMatchesType(vintage.SEOName, guess.Type) {
				byType = append(byType, vintage)
			}
		}

		if len(byType) == 0 {
			continue
		}
		matched = append(matched, hit.WithVintages(byType))
	}

	return matched
}

// vintagesMatchingYear selects vintages whose catalog year equals the guessed
// year. When the guessed year is nil, a non-numeric catalog year counts as a
// match.
func vintagesMatchingYear(vintages []wines.CatalogVintage, year *int) []wines.CatalogVintage {
	matched := make([]wines.CatalogVintage, 0, len(vintages))
	for _, vintage := range vintages {
		catalogYear, err := strconv.Atoi(vintage.Year)
		numeric := err == nil

		if year != nil && numeric && catalogYear == *year {
			matched = append(matched, vintage)
			continue
		}
		if year == nil && !numeric {
			matched = append(matched, vintage)
		}
	}
	return matched
}
