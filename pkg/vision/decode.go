package vision

import (
	"encoding/json"
	"strings"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// decodeGuesses parses the extraction response. The model sometimes wraps
// the array in a {"wines": [...]} object; decoding attempts the direct array
// first, then the wrapped form, and fails closed when neither matches.
func decodeGuesses(raw string) ([]wines.GuessedWine, error) {
	text := stripFences(raw)

	var direct []wines.GuessedWine
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct, nil
	}

	var wrapped struct {
		Wines []wines.GuessedWine `json:"wines"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Wines != nil {
		return wrapped.Wines, nil
	}

	return nil, errors.NewParseError("json", "vision response", "response matches neither a wine array nor a {wines} object", nil)
}

// decodeVerdicts parses the arbitration response: an array of verdicts, a
// single verdict object (normalized to a one-element slice), or the same
// wrapped in {"wines": [...]}.
func decodeVerdicts(raw string) ([]wines.ArbitrationVerdict, error) {
	text := stripFences(raw)

	var direct []wines.ArbitrationVerdict
	if err := json.Unmarshal([]byte(text), &direct); err == nil {
		return direct, nil
	}

	var single wines.ArbitrationVerdict
	if err := json.Unmarshal([]byte(text), &single); err == nil && single.FileName != "" {
		return []wines.ArbitrationVerdict{single}, nil
	}

	var wrapped struct {
		Wines []wines.ArbitrationVerdict `json:"wines"`
	}
	if err := json.Unmarshal([]byte(text), &wrapped); err == nil && wrapped.Wines != nil {
		return wrapped.Wines, nil
	}

	return nil, errors.NewParseError("json", "arbitration response", "response matches no known verdict shape", nil)
}

// stripFences removes a surrounding markdown code fence, another shape
// generative output is known to take.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
