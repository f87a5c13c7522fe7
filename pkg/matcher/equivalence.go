// Package matcher implements the candidate matching heuristics: narrowing
// catalog search hits down to the most plausible vintages for a guessed wine,
// by year first and varietal type second. All matching is pure; hits are
// narrowed through copies and never mutated.
package matcher

import (
	_ "embed"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cellarlens/cellarlens/pkg/wines"
)

//go:embed types.yaml
var typeEquivalenceYAML []byte

// typeEquivalents maps a wine type to the tokens that mark it in a catalog
// vintage URL-slug. The catalog mixes Portuguese and English slugs, so "red"
// must also match "tinto" and "white" must also match "branco".
var typeEquivalents map[wines.Type][]string

func init() {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(typeEquivalenceYAML, &raw); err != nil {
		panic("matcher: invalid embedded type equivalence table: " + err.Error())
	}
	typeEquivalents = make(map[wines.Type][]string, len(raw))
	for k, v := range raw {
		typeEquivalents[wines.Type(k)] = v
	}
}

// slugMatchesType reports whether a vintage URL-slug carries a token of the
// given wine type. Unknown types match nothing: an ambiguous guess stays
// ambiguous instead of being narrowed by a coin flip.
func slugMatchesType(slug string, t wines.Type) bool {
	tokens, ok := typeEquivalents[t]
	if !ok {
		return false
	}
	for _, token := range tokens {
		if strings.Contains(slug, token) {
			return true
		}
	}
	return false
}
