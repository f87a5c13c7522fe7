// Package handlers provides HTTP request handlers for the cellarlens API.
package handlers

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cellarlens/cellarlens/pkg/pipeline"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Uploader runs one photo reconciliation. The root cellarlens instance
// satisfies it.
type Uploader interface {
	UploadUserImage(ctx context.Context, img wines.Image) (*pipeline.Result, error)
}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	uploader  Uploader
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(uploader Uploader, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		uploader:  uploader,
		logger:    logger,
		startTime: time.Now(),
	}
}
