package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
)

// DecodeResponse decodes a JSON response into the target structure.
func DecodeResponse(provider string, resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", provider+" response", err)
	}

	return nil
}
