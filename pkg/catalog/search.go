package catalog

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"

	"github.com/cellarlens/cellarlens/internal/transport"
	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// maxVintages caps each hit's vintage list to the most recent years, to
// bound the arbitration image fan-out downstream.
const maxVintages = 5

// searchRequest is the search index query payload.
type searchRequest struct {
	Query       string `json:"query"`
	HitsPerPage int    `json:"hitsPerPage"`
	Filters     string `json:"filters,omitempty"`
}

// searchResponse is the expected response envelope.
type searchResponse struct {
	Hits []wines.CatalogHit `json:"hits"`
}

// Search queries the wine index with a guessed wine name and returns
// validated hits, each with vintages sorted by year descending and capped at
// the five most recent. A response that fails validation is a fatal error for
// the guess: a malformed catalog response is an upstream contract break the
// rest of the pipeline cannot safely reason about.
func (c *Client) Search(ctx context.Context, query string) ([]wines.CatalogHit, error) {
	body, err := json.Marshal(searchRequest{
		Query:       NormalizeQuery(query),
		HitsPerPage: c.config.HitsPerPage,
		Filters:     c.config.CountryFilter,
	})
	if err != nil {
		return nil, errors.WrapParse("json", "search request", err)
	}

	resp, err := c.transport.Post(ctx, c.config.SearchURL, body)
	if err != nil {
		return nil, errors.WrapAPI("catalog", 0, err)
	}

	var result searchResponse
	if err := transport.DecodeResponse("catalog", resp, &result); err != nil {
		return nil, err
	}

	if err := validateHits(result.Hits); err != nil {
		return nil, err
	}

	hits := make([]wines.CatalogHit, len(result.Hits))
	for i, hit := range result.Hits {
		hits[i] = hit.WithVintages(truncateVintages(hit.Vintages))
	}

	logging.Ctx(ctx).Debug().
		Str("query", query).
		Int("hit_count", len(hits)).
		Msg("Catalog search completed")

	return hits, nil
}

// validateHits enforces the expected response schema. Decoding with
// encoding/json is lenient, so the structural requirements are checked
// explicitly.
func validateHits(hits []wines.CatalogHit) error {
	for i, hit := range hits {
		if hit.ID == 0 {
			return errors.NewParseError("json", "catalog response", "hit "+strconv.Itoa(i)+" is missing id", nil)
		}
		if hit.Name == "" || hit.SEOName == "" {
			return errors.NewParseError("json", "catalog response", "hit "+strconv.Itoa(i)+" is missing name", nil)
		}
		for j, vintage := range hit.Vintages {
			if vintage.Year == "" || vintage.SEOName == "" {
				return errors.NewParseError("json", "catalog response",
					"hit "+strconv.Itoa(i)+" vintage "+strconv.Itoa(j)+" is missing year or seo_name", nil)
			}
		}
	}
	return nil
}

// truncateVintages sorts vintages by year descending (non-numeric years
// last) and keeps the most recent maxVintages.
func truncateVintages(vintages []wines.CatalogVintage) []wines.CatalogVintage {
	sorted := make([]wines.CatalogVintage, len(vintages))
	copy(sorted, vintages)

	sort.SliceStable(sorted, func(i, j int) bool {
		return vintageYear(sorted[i]) > vintageYear(sorted[j])
	})

	if len(sorted) > maxVintages {
		sorted = sorted[:maxVintages]
	}
	return sorted
}

func vintageYear(v wines.CatalogVintage) int {
	year, err := strconv.Atoi(v.Year)
	if err != nil {
		return -1
	}
	return year
}
