package vision

import (
	"context"
	"encoding/base64"

	"google.golang.org/genai"

	"github.com/cellarlens/cellarlens/pkg/errors"
)

// Low temperature keeps the JSON output deterministic-ish.
const (
	defaultTemperature     = 0.3
	defaultMaxOutputTokens = 1024
)

// DefaultModel is the vision-capable model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Gemini is a Generator backed by the Google GenAI SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini generator using API key authentication.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: "gemini",
			Method:   "api_key",
			Message:  "API key required for the vision model",
		}
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.NewConfigError("vision", "failed to create GenAI client", err)
	}

	return &Gemini{client: client, model: model}, nil
}

// Generate performs one multimodal GenerateContent call and returns the
// response text.
func (g *Gemini) Generate(ctx context.Context, parts []Part) (string, error) {
	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if part.Image != nil {
			data, err := base64.StdEncoding.DecodeString(part.Image.Base64)
			if err != nil {
				return "", errors.WrapValidation("image", err)
			}
			genaiParts = append(genaiParts, genai.NewPartFromBytes(data, part.Image.MIMEType()))
			continue
		}
		genaiParts = append(genaiParts, genai.NewPartFromText(part.Text))
	}

	contents := []*genai.Content{genai.NewContentFromParts(genaiParts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](defaultTemperature),
		MaxOutputTokens: defaultMaxOutputTokens,
	})
	if err != nil {
		return "", errors.WrapAPI("gemini", 0, err)
	}

	return resp.Text(), nil
}
