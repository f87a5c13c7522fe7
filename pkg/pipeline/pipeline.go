// Package pipeline orchestrates one wine-photo reconciliation run: vision
// extraction, concurrent catalog search, heuristic matching, partitioning,
// visual arbitration, price enrichment, and final aggregation. A pipeline
// holds no per-request state; every upload is a self-contained run.
package pipeline

import (
	"context"

	"github.com/cellarlens/cellarlens/pkg/catalog"
	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/matcher"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Vision is the vision-model surface the pipeline depends on. It is an
// injected handle, never a package-level singleton, so tests can substitute
// a fake.
type Vision interface {
	ExtractWines(ctx context.Context, img wines.Image) ([]wines.GuessedWine, error)
	CompareBottles(ctx context.Context, original wines.Image, candidates []wines.LabeledImage) ([]wines.ArbitrationVerdict, error)
}

// Config wires the pipeline's external collaborators.
type Config struct {
	Vision Vision
	Search catalog.Searcher
	Pricer catalog.Pricer
	Images catalog.ImageFetcher

	// WebBaseURL is the public catalog site used for result links.
	WebBaseURL string

	// Ranking weights for the final list. Zero values select the defaults.
	RatingWeight float64
	PriceWeight  float64
}

// Pipeline reconciles a photo of wine bottles against the catalog.
type Pipeline struct {
	vision       Vision
	search       catalog.Searcher
	pricer       catalog.Pricer
	images       catalog.ImageFetcher
	webBaseURL   string
	ratingWeight float64
	priceWeight  float64
}

// New creates a pipeline, validating that every collaborator is wired.
func New(cfg Config) (*Pipeline, error) {
	switch {
	case cfg.Vision == nil:
		return nil, errors.NewValidationError("vision", nil, "cannot be nil")
	case cfg.Search == nil:
		return nil, errors.NewValidationError("search", nil, "cannot be nil")
	case cfg.Pricer == nil:
		return nil, errors.NewValidationError("pricer", nil, "cannot be nil")
	case cfg.Images == nil:
		return nil, errors.NewValidationError("images", nil, "cannot be nil")
	}

	if cfg.WebBaseURL == "" {
		cfg.WebBaseURL = catalog.DefaultWebBaseURL
	}
	if cfg.RatingWeight == 0 && cfg.PriceWeight == 0 {
		cfg.RatingWeight = wines.DefaultRatingWeight
		cfg.PriceWeight = wines.DefaultPriceWeight
	}

	return &Pipeline{
		vision:       cfg.Vision,
		search:       cfg.Search,
		pricer:       cfg.Pricer,
		images:       cfg.Images,
		webBaseURL:   cfg.WebBaseURL,
		ratingWeight: cfg.RatingWeight,
		priceWeight:  cfg.PriceWeight,
	}, nil
}

// Run processes one uploaded photo end to end.
//
// Vision extraction and catalog search are mandatory: a structural failure in
// either aborts the run. Arbitration and enrichment degrade gracefully per
// guess instead.
func (p *Pipeline) Run(ctx context.Context, img wines.Image) (*Result, error) {
	result := NewResult()
	logger := logging.Ctx(ctx)

	if !wines.ValidExt(img.Ext) {
		return nil, errors.NewFormatError(img.Ext, wines.AllowedImageExts)
	}

	guesses, err := p.vision.ExtractWines(ctx, img)
	if err != nil {
		return nil, err
	}
	result.Stats.Guesses = len(guesses)
	logger.Info().Int("guess_count", len(guesses)).Msg("Extracted wine guesses")

	if len(guesses) == 0 {
		result.Finalize()
		return result, nil
	}

	parsed := make([]wines.ParsedGuessedWine, len(guesses))
	for i, guess := range guesses {
		parsed[i] = guess.Parse()
	}

	searchResults, err := p.searchAll(ctx, parsed)
	if err != nil {
		return nil, err
	}

	// The match groups are built in a single sequential pass and are
	// read-only once the concurrent fan-out below begins.
	groups := matcher.BuildGroups(searchResults)

	resolved, ambiguous := partition(groups)
	result.Stats.Resolved = len(resolved)
	result.Stats.Ambiguous = len(ambiguous)
	logger.Info().
		Int("resolved", len(resolved)).
		Int("ambiguous", len(ambiguous)).
		Msg("Partitioned match groups")

	final := make([]wines.ResolvedWine, 0, len(resolved)+len(ambiguous))
	for _, candidate := range resolved {
		final = append(final, p.resolve(ctx, candidate.Hit))
	}

	arbitrated := p.arbitrateAll(ctx, img, ambiguous, result)
	final = append(final, arbitrated...)

	deduped := wines.DedupeByName(final)
	ranked, err := wines.Rank(deduped, p.ratingWeight, p.priceWeight)
	if err != nil {
		return nil, err
	}

	result.Wines = ranked
	result.Finalize()
	return result, nil
}

// resolve turns a narrowed catalog hit into a final output entry, enriching
// it with the live median price. Price failures degrade to a nil price.
func (p *Pipeline) resolve(ctx context.Context, hit wines.CatalogHit) wines.ResolvedWine {
	var vintage wines.CatalogVintage
	if len(hit.Vintages) > 0 {
		vintage = hit.Vintages[0]
	}

	name := vintage.Name
	if name == "" {
		name = hit.Name
	}

	price, err := p.pricer.MedianPrice(ctx, hit.ID)
	if err != nil {
		logging.Ctx(ctx).Warn().
			Err(err).
			Int64("catalog_id", hit.ID).
			Msg("Price enrichment failed, emitting wine without price")
		price = nil
	}

	return wines.ResolvedWine{
		CatalogID:   hit.ID,
		Name:        name,
		Year:        vintage.Year,
		Price:       price,
		ImageURL:    hit.ImageURL(),
		Rating:      vintage.Statistics.RatingsAverage,
		Description: hit.Description,
		CatalogURL:  wines.CatalogURL(p.webBaseURL, hit.SEOName, hit.ID, vintage.Year),
	}
}
