// Package config loads cellarlens runtime settings from environment
// variables and an optional config file via viper.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Default endpoints of the public catalog provider.
const (
	DefaultSearchURL = "https://9takgwjuxl-dsn.algolia.net/1/indexes/WINES_prod/query"
	DefaultPriceURL  = "https://www.vivino.com/api/vintages/%d/checkout_prices"
	DefaultWebURL    = "https://www.vivino.com"

	DefaultServerAddress = ":8080"
	DefaultReadTimeout   = 30 * time.Second
	DefaultWriteTimeout  = 120 * time.Second
)

// Settings is the full runtime configuration.
type Settings struct {
	Server  ServerSettings  `mapstructure:"server"`
	Vision  VisionSettings  `mapstructure:"vision"`
	Catalog CatalogSettings `mapstructure:"catalog"`
	Ranking RankingSettings `mapstructure:"ranking"`
}

// ServerSettings configures the HTTP server.
type ServerSettings struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// VisionSettings configures the vision model client.
type VisionSettings struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// CatalogSettings configures the wine catalog clients.
type CatalogSettings struct {
	SearchURL     string `mapstructure:"search_url"`
	PriceURL      string `mapstructure:"price_url"`
	WebBaseURL    string `mapstructure:"web_base_url"`
	AppID         string `mapstructure:"app_id"`
	APIKey        string `mapstructure:"api_key"`
	HitsPerPage   int    `mapstructure:"hits_per_page"`
	CountryFilter string `mapstructure:"country_filter"`
}

// RankingSettings configures the final result ordering.
type RankingSettings struct {
	RatingWeight float64 `mapstructure:"rating_weight"`
	PriceWeight  float64 `mapstructure:"price_weight"`
}

// Load reads settings from the environment (CELLARLENS_* variables) and an
// optional cellarlens.yaml in the working directory. The vision API key also
// falls back to GEMINI_API_KEY, matching the SDK convention.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("server.address", DefaultServerAddress)
	v.SetDefault("server.read_timeout", DefaultReadTimeout)
	v.SetDefault("server.write_timeout", DefaultWriteTimeout)
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.model", "")
	v.SetDefault("catalog.search_url", DefaultSearchURL)
	v.SetDefault("catalog.app_id", "")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.price_url", DefaultPriceURL)
	v.SetDefault("catalog.web_base_url", DefaultWebURL)
	v.SetDefault("catalog.hits_per_page", 3)
	v.SetDefault("catalog.country_filter", "")
	v.SetDefault("ranking.rating_weight", wines.DefaultRatingWeight)
	v.SetDefault("ranking.price_weight", wines.DefaultPriceWeight)

	v.SetEnvPrefix("CELLARLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("cellarlens")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, errors.NewConfigError("config", "unmarshaling settings", err)
	}

	if settings.Vision.APIKey == "" {
		settings.Vision.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return &settings, nil
}

// Validate checks the settings a running pipeline cannot do without.
func (s *Settings) Validate() error {
	if s.Vision.APIKey == "" {
		return errors.ErrAPIKeyRequired
	}
	if s.Catalog.AppID == "" || s.Catalog.APIKey == "" {
		return errors.NewConfigError("catalog", "app id and api key are required", nil)
	}
	return nil
}
