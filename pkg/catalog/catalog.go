// Package catalog provides clients for the external wine catalog: the search
// index, the live checkout-price endpoint, and label thumbnail downloads.
package catalog

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cellarlens/cellarlens/internal/transport"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Searcher queries the wine search index.
type Searcher interface {
	Search(ctx context.Context, query string) ([]wines.CatalogHit, error)
}

// Pricer fetches live price data for a catalog wine id.
type Pricer interface {
	MedianPrice(ctx context.Context, id int64) (*float64, error)
}

// ImageFetcher downloads a hit's label thumbnail for visual arbitration.
type ImageFetcher interface {
	FetchImage(ctx context.Context, hit wines.CatalogHit) (wines.LabeledImage, error)
}

// Config holds the catalog endpoints and search defaults.
type Config struct {
	// SearchURL is the full search index query endpoint.
	SearchURL string
	// PriceURL is a printf template with one %d verb for the wine id.
	PriceURL string
	// WebBaseURL is the public catalog site, used to build result links.
	WebBaseURL string
	// AppID and APIKey authenticate against the search index.
	AppID  string
	APIKey string
	// HitsPerPage caps search results per guess.
	HitsPerPage int
	// CountryFilter optionally restricts search results, e.g.
	// "region.country:pt". Empty means no filter.
	CountryFilter string
}

// Search defaults matching the public catalog endpoint.
const (
	DefaultHitsPerPage = 3
	DefaultWebBaseURL  = "https://www.vivino.com"

	priceCacheTTL     = 5 * time.Minute
	priceCacheCleanup = 10 * time.Minute
)

// Client implements Searcher, Pricer, and ImageFetcher against the catalog's
// HTTP endpoints. Prices are cached briefly: the same wines tend to show up
// across consecutive uploads of the same shelf.
type Client struct {
	config     Config
	transport  *transport.Client
	images     *transport.Client
	priceCache *gocache.Cache
}

// NewClient creates a catalog client.
func NewClient(config Config) *Client {
	if config.HitsPerPage <= 0 {
		config.HitsPerPage = DefaultHitsPerPage
	}
	if config.WebBaseURL == "" {
		config.WebBaseURL = DefaultWebBaseURL
	}
	return &Client{
		config:     config,
		transport:  transport.New(&transport.AlgoliaAuth{AppID: config.AppID, APIKey: config.APIKey}),
		images:     transport.New(&transport.NoAuth{}),
		priceCache: gocache.New(priceCacheTTL, priceCacheCleanup),
	}
}

// WebBaseURL exposes the configured public catalog site.
func (c *Client) WebBaseURL() string {
	return c.config.WebBaseURL
}
