package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/cellarlens/cellarlens"
	"github.com/cellarlens/cellarlens/internal/config"
	"github.com/cellarlens/cellarlens/internal/server"
	"github.com/cellarlens/cellarlens/pkg/catalog"
	"github.com/cellarlens/cellarlens/pkg/logging"
)

var serveAddress string

// serveCmd runs the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the cellarlens HTTP API server",
	Long: `Serve exposes the reconciliation pipeline over HTTP.

POST /api/v1/wines/capture accepts {"img": {"base64": "...", "ext": "jpeg"}}
and responds with the ranked wine list.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cobraCmd *cobra.Command, _ []string) error {
	logger := logging.Default()

	settings, err := config.Load()
	if err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if serveAddress != "" {
		settings.Server.Address = serveAddress
	}

	lens, err := newLens(cobraCmd.Context(), settings)
	if err != nil {
		return err
	}

	cfg := server.DefaultConfig()
	cfg.Address = settings.Server.Address
	cfg.ReadTimeout = settings.Server.ReadTimeout
	cfg.WriteTimeout = settings.Server.WriteTimeout

	srv := server.New(lens, logger, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-cobraCmd.Context().Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newLens assembles a CellarLens instance from loaded settings.
func newLens(ctx context.Context, settings *config.Settings) (cellarlens.CellarLens, error) {
	return cellarlens.New(ctx,
		cellarlens.WithVisionAPIKey(settings.Vision.APIKey),
		cellarlens.WithVisionModel(settings.Vision.Model),
		cellarlens.WithCatalog(catalog.Config{
			SearchURL:     settings.Catalog.SearchURL,
			PriceURL:      settings.Catalog.PriceURL,
			WebBaseURL:    settings.Catalog.WebBaseURL,
			AppID:         settings.Catalog.AppID,
			APIKey:        settings.Catalog.APIKey,
			HitsPerPage:   settings.Catalog.HitsPerPage,
			CountryFilter: settings.Catalog.CountryFilter,
		}),
		cellarlens.WithRankingWeights(settings.Ranking.RatingWeight, settings.Ranking.PriceWeight),
	)
}
