// Package cellarlens identifies the wines in a photo of bottles and
// reconciles them against a public wine catalog, returning a ranked,
// deduplicated list with prices and ratings.
package cellarlens

import (
	"context"
	"fmt"

	"github.com/cellarlens/cellarlens/pkg/catalog"
	"github.com/cellarlens/cellarlens/pkg/pipeline"
	"github.com/cellarlens/cellarlens/pkg/vision"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// CellarLens runs photo-to-wine-list reconciliations.
type CellarLens interface {
	// UploadUserImage reconciles one photo of wine bottles end to end.
	UploadUserImage(ctx context.Context, img wines.Image) (*pipeline.Result, error)
}

// cellarlens is the internal implementation of the CellarLens interface.
type cellarlens struct {
	config   *config
	pipeline *pipeline.Pipeline
}

// New creates a CellarLens instance with the given options.
func New(ctx context.Context, opts ...Option) (CellarLens, error) {
	cl := &cellarlens{config: defaultConfig()}

	if err := cl.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	if err := cl.wire(ctx); err != nil {
		return nil, err
	}
	return cl, nil
}

// options applies the given options to the config.
func (cl *cellarlens) options(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cl.config); err != nil {
			return err
		}
	}
	return nil
}

// wire builds the concrete collaborators not supplied via options and
// assembles the pipeline.
func (cl *cellarlens) wire(ctx context.Context) error {
	cfg := cl.config

	visionClient := cfg.vision
	if visionClient == nil {
		gemini, err := vision.NewGemini(ctx, cfg.visionAPIKey, cfg.visionModel)
		if err != nil {
			return err
		}
		visionClient = vision.NewClient(gemini)
	}

	searcher, pricer, images := cfg.searcher, cfg.pricer, cfg.images
	if searcher == nil || pricer == nil || images == nil {
		client := catalog.NewClient(cfg.catalog)
		if searcher == nil {
			searcher = client
		}
		if pricer == nil {
			pricer = client
		}
		if images == nil {
			images = client
		}
	}

	p, err := pipeline.New(pipeline.Config{
		Vision:       visionClient,
		Search:       searcher,
		Pricer:       pricer,
		Images:       images,
		WebBaseURL:   cfg.catalog.WebBaseURL,
		RatingWeight: cfg.ratingWeight,
		PriceWeight:  cfg.priceWeight,
	})
	if err != nil {
		return err
	}

	cl.pipeline = p
	return nil
}

// UploadUserImage reconciles one photo of wine bottles end to end.
func (cl *cellarlens) UploadUserImage(ctx context.Context, img wines.Image) (*pipeline.Result, error) {
	return cl.pipeline.Run(ctx, img)
}
