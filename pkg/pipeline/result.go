package pipeline

import (
	"github.com/agentstation/utc"

	"github.com/cellarlens/cellarlens/pkg/wines"
)

// Stats counts what happened to each guess during a run.
type Stats struct {
	// Guesses is how many wines the vision model saw in the photo.
	Guesses int `json:"guesses"`
	// Resolved is how many guesses narrowed to a single vintage without
	// arbitration.
	Resolved int `json:"resolved"`
	// Ambiguous is how many guesses went through visual arbitration.
	Ambiguous int `json:"ambiguous"`
	// Unconfirmed is how many arbitrated guesses produced no confirmed
	// candidate, whether by verdict or by failure.
	Unconfirmed int `json:"unconfirmed"`
}

// Result is the outcome of one reconciliation run.
type Result struct {
	// Wines is the final deduplicated list, best match first.
	Wines []wines.RankedWine `json:"winesArray"`

	Stats Stats `json:"stats"`

	StartedAt   utc.Time `json:"startedAt"`
	CompletedAt utc.Time `json:"completedAt"`
	// DurationMS is the wall-clock run time in milliseconds.
	DurationMS int64 `json:"durationMs"`
}

// NewResult starts a result clock.
func NewResult() *Result {
	return &Result{
		Wines:     []wines.RankedWine{},
		StartedAt: utc.Now(),
	}
}

// Finalize stamps the completion time and duration.
func (r *Result) Finalize() {
	r.CompletedAt = utc.Now()
	r.DurationMS = r.CompletedAt.Sub(r.StartedAt).Milliseconds()
}
