// Package vision talks to a vision-capable language model to extract wine
// guesses from a cellar photo and to arbitrate between visually similar
// catalog candidates. The model is reached through the Generator interface
// so tests can substitute a scripted fake for the GenAI SDK.
package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Part is one element of a multimodal model request: either text or an image.
type Part struct {
	Text  string
	Image *wines.Image
}

// Generator performs a single multimodal model call and returns the raw text
// of the response.
type Generator interface {
	Generate(ctx context.Context, parts []Part) (string, error)
}

// Client extracts wine guesses from photos and arbitrates candidate labels.
type Client struct {
	generator Generator
}

// NewClient creates a vision client on top of a Generator.
func NewClient(generator Generator) *Client {
	return &Client{generator: generator}
}

// ExtractWines sends the user's photo to the model and parses the guessed
// wine list from its JSON response. Malformed JSON from generative output is
// a known failure mode, so one bounded retry is attempted before the parse
// error is propagated.
func (c *Client) ExtractWines(ctx context.Context, img wines.Image) ([]wines.GuessedWine, error) {
	if !wines.ValidExt(img.Ext) {
		return nil, errors.NewFormatError(img.Ext, wines.AllowedImageExts)
	}

	logger := logging.Ctx(ctx)

	var lastErr error
	for attempt := 0; attempt <= extractionRetries; attempt++ {
		raw, err := c.generator.Generate(ctx, []Part{
			{Image: &img},
			{Text: extractionPrompt},
		})
		if err != nil {
			return nil, errors.WrapAPI("vision", 0, err)
		}

		guesses, err := decodeGuesses(raw)
		if err == nil {
			logger.Debug().
				Int("guess_count", len(guesses)).
				Msg("Extracted wine guesses from photo")
			return guesses, nil
		}

		lastErr = err
		logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("Vision response was not valid JSON")
	}

	return nil, lastErr
}

// CompareBottles asks the model, in a single joint call, which of the
// candidate catalog images (if any) is visually present in the original
// photo. The prompt asserts that at most one candidate should be present,
// but multiple true verdicts are still returned if the model emits them;
// downstream deduplication handles that case.
func (c *Client) CompareBottles(ctx context.Context, original wines.Image, candidates []wines.LabeledImage) ([]wines.ArbitrationVerdict, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	parts := make([]Part, 0, len(candidates)+2)
	parts = append(parts, Part{Image: &original})
	parts = append(parts, Part{Text: arbitrationPrompt(candidates)})
	for i := range candidates {
		img := wines.Image{Base64: candidates[i].Base64, Ext: candidates[i].Ext}
		parts = append(parts, Part{Image: &img})
	}

	raw, err := c.generator.Generate(ctx, parts)
	if err != nil {
		return nil, errors.WrapAPI("vision", 0, err)
	}

	return decodeVerdicts(raw)
}

// extractionRetries bounds re-asks after a malformed extraction response.
const extractionRetries = 1

// arbitrationPrompt lists the candidate file names and asks for a per-image
// presence verdict in strict JSON.
func arbitrationPrompt(candidates []wines.LabeledImage) string {
	var b strings.Builder
	b.WriteString("Below are potential wine label images to compare against the first image.\n")
	b.WriteString("Only report a match if you are completely sure the bottle is present.\n")
	b.WriteString("Their file names are:\n\n")
	for i, candidate := range candidates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, candidate.Name)
	}
	b.WriteString("\nFor each image, return JSON in the following format:\n")
	b.WriteString(`{
  "name": "name of the wine extracted from the label",
  "fileName": "fileName of the image",
  "isPresent": true/false
}
`)
	b.WriteString("Compare label text, layout, and colors; logos must match exactly.\n")
	b.WriteString("Respond strictly in JSON format without explanations or extra text. ")
	b.WriteString("At most one image can be present; there is never a case where two images are present.")
	return b.String()
}
