package catalog

import (
	"context"
	"encoding/base64"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// FetchImage downloads a hit's label thumbnail and base64-encodes it for the
// vision model. Hits whose thumbnail has no recognizable file extension are
// rejected; the arbitrator skips those candidates.
func (c *Client) FetchImage(ctx context.Context, hit wines.CatalogHit) (wines.LabeledImage, error) {
	ext := hit.ImageExt()
	if !wines.ValidExt(ext) {
		return wines.LabeledImage{}, errors.NewFormatError(ext, wines.AllowedImageExts)
	}

	data, err := c.images.FetchBytes(ctx, hit.ImageURL())
	if err != nil {
		return wines.LabeledImage{}, err
	}

	return wines.LabeledImage{
		Name:   hit.Name,
		Base64: base64.StdEncoding.EncodeToString(data),
		Ext:    ext,
	}, nil
}
