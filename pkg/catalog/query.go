package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks: decompose, drop the marks,
// recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeQuery prepares a guessed wine name for the search index: trims
// whitespace and folds accents. Portuguese labels carry diacritics ("Esporão",
// "Dão") that the index's own normalization does not always forgive in
// free-text queries.
func NormalizeQuery(query string) string {
	folded, _, err := transform.String(foldTransformer, strings.TrimSpace(query))
	if err != nil {
		return strings.TrimSpace(query)
	}
	return folded
}
