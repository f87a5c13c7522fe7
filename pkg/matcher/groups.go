package matcher

import "github.com/cellarlens/cellarlens/pkg/wines"

// SearchResult pairs a guessed wine with the raw catalog hits its search
// returned.
type SearchResult struct {
	Guess wines.ParsedGuessedWine
	Hits  []wines.CatalogHit
}

// Groups is the per-guess match grouping produced by a single pass over the
// search results. Every guessed wine name appears exactly once; insertion
// order is preserved. Once built, a Groups value is read-only.
type Groups struct {
	order  []string
	byName map[string][]wines.CatalogHit
}

// BuildGroups folds search results into match groups. For each guess the
// matcher narrows its raw hits; when matching eliminates every hit, the first
// raw hit is kept as a last-resort default so a guess with any search results
// is never silently dropped. Guesses whose search returned nothing at all get
// an empty group.
//
// Duplicate guess names collapse into one group, accumulating hits in order.
func BuildGroups(results []SearchResult) Groups {
	g := Groups{byName: make(map[string][]wines.CatalogHit, len(results))}

	for _, result := range results {
		matched := MatchHits(result.Guess, result.Hits)
		if len(matched) == 0 && len(result.Hits) > 0 {
			matched = []wines.CatalogHit{result.Hits[0]}
		}

		if _, seen := g.byName[result.Guess.Name]; !seen {
			g.order = append(g.order, result.Guess.Name)
		}
		g.byName[result.Guess.Name] = append(g.byName[result.Guess.Name], matched...)
	}

	return g
}

// Names returns the guessed wine names in insertion order.
func (g Groups) Names() []string {
	return g.order
}

// Hits returns the matched hits for a guessed wine name.
func (g Groups) Hits(name string) []wines.CatalogHit {
	return g.byName[name]
}

// Len returns the number of groups.
func (g Groups) Len() int {
	return len(g.order)
}
