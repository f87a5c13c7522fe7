package cellarlens

import (
	"github.com/cellarlens/cellarlens/pkg/catalog"
	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/pipeline"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Option is a function that configures a CellarLens instance.
type Option func(*config) error

// config collects everything New needs to assemble a pipeline.
type config struct {
	visionAPIKey string
	visionModel  string

	catalog catalog.Config

	ratingWeight float64
	priceWeight  float64

	// Optional overrides, mainly for tests and custom backends.
	vision   pipeline.Vision
	searcher catalog.Searcher
	pricer   catalog.Pricer
	images   catalog.ImageFetcher
}

func defaultConfig() *config {
	return &config{
		catalog: catalog.Config{
			HitsPerPage: catalog.DefaultHitsPerPage,
			WebBaseURL:  catalog.DefaultWebBaseURL,
		},
		ratingWeight: wines.DefaultRatingWeight,
		priceWeight:  wines.DefaultPriceWeight,
	}
}

// WithVisionAPIKey configures the vision model API key.
func WithVisionAPIKey(key string) Option {
	return func(c *config) error {
		c.visionAPIKey = key
		return nil
	}
}

// WithVisionModel configures which vision-capable model to use.
func WithVisionModel(model string) Option {
	return func(c *config) error {
		c.visionModel = model
		return nil
	}
}

// WithCatalog configures the catalog endpoints and credentials.
func WithCatalog(cfg catalog.Config) Option {
	return func(c *config) error {
		if cfg.HitsPerPage <= 0 {
			cfg.HitsPerPage = catalog.DefaultHitsPerPage
		}
		if cfg.WebBaseURL == "" {
			cfg.WebBaseURL = catalog.DefaultWebBaseURL
		}
		c.catalog = cfg
		return nil
	}
}

// WithRankingWeights configures how the final list is ordered. The two
// weights must sum to 1.
func WithRankingWeights(ratingWeight, priceWeight float64) Option {
	return func(c *config) error {
		if ratingWeight < 0 || priceWeight < 0 {
			return errors.NewValidationError("weights", nil, "weights cannot be negative")
		}
		c.ratingWeight = ratingWeight
		c.priceWeight = priceWeight
		return nil
	}
}

// WithVision overrides the vision client, bypassing the Gemini backend.
func WithVision(v pipeline.Vision) Option {
	return func(c *config) error {
		c.vision = v
		return nil
	}
}

// WithSearcher overrides the catalog search client.
func WithSearcher(s catalog.Searcher) Option {
	return func(c *config) error {
		c.searcher = s
		return nil
	}
}

// WithPricer overrides the catalog price client.
func WithPricer(p catalog.Pricer) Option {
	return func(c *config) error {
		c.pricer = p
		return nil
	}
}

// WithImageFetcher overrides the catalog label image client.
func WithImageFetcher(f catalog.ImageFetcher) Option {
	return func(c *config) error {
		c.images = f
		return nil
	}
}
