package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultServerAddress, settings.Server.Address)
	assert.Equal(t, DefaultSearchURL, settings.Catalog.SearchURL)
	assert.Equal(t, DefaultPriceURL, settings.Catalog.PriceURL)
	assert.Equal(t, DefaultWebURL, settings.Catalog.WebBaseURL)
	assert.Equal(t, 3, settings.Catalog.HitsPerPage)
	assert.InDelta(t, 0.6, settings.Ranking.RatingWeight, 0.001)
	assert.InDelta(t, 0.4, settings.Ranking.PriceWeight, 0.001)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CELLARLENS_SERVER_ADDRESS", ":9999")
	t.Setenv("CELLARLENS_CATALOG_HITS_PER_PAGE", "6")
	t.Setenv("CELLARLENS_VISION_API_KEY", "from-env")

	settings, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", settings.Server.Address)
	assert.Equal(t, 6, settings.Catalog.HitsPerPage)
	assert.Equal(t, "from-env", settings.Vision.APIKey)
}

func TestVisionKeyFallsBackToGeminiEnv(t *testing.T) {
	t.Setenv("CELLARLENS_VISION_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	settings, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-key", settings.Vision.APIKey)
}

func TestValidate(t *testing.T) {
	settings := &Settings{}
	require.Error(t, settings.Validate(), "missing vision key")

	settings.Vision.APIKey = "key"
	require.Error(t, settings.Validate(), "missing catalog credentials")

	settings.Catalog.AppID = "app"
	settings.Catalog.APIKey = "secret"
	require.NoError(t, settings.Validate())
}
