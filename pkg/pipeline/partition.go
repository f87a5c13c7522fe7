package pipeline

import (
	"github.com/cellarlens/cellarlens/pkg/matcher"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// resolvedCandidate is a guess narrowed to a single catalog hit with a
// single vintage. No visual arbitration is needed for it.
type resolvedCandidate struct {
	Name string
	Hit  wines.CatalogHit
}

// ambiguousGroup is a guess still carrying several plausible catalog hits,
// or one hit with several plausible vintages.
type ambiguousGroup struct {
	Name string
	Hits []wines.CatalogHit
}

// partition splits match groups into directly-resolved candidates and groups
// that still need visual arbitration. A group resolves directly only when it
// narrowed to exactly one hit with exactly one vintage; empty groups are
// dropped.
func partition(groups matcher.Groups) (resolved []resolvedCandidate, ambiguous []ambiguousGroup) {
	for _, name := range groups.Names() {
		hits := groups.Hits(name)
		if len(hits) == 0 {
			continue
		}
		if len(hits) == 1 && len(hits[0].Vintages) == 1 {
			resolved = append(resolved, resolvedCandidate{Name: name, Hit: hits[0]})
			continue
		}
		ambiguous = append(ambiguous, ambiguousGroup{Name: name, Hits: hits})
	}
	return resolved, ambiguous
}
