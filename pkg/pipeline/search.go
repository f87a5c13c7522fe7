package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/matcher"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

type searchOutcome struct {
	index  int
	result matcher.SearchResult
	err    error
}

// searchAll fans the catalog search out across every guess concurrently and
// joins all results before returning. Any single search failure fails the
// batch; partial results are never surfaced.
func (p *Pipeline) searchAll(ctx context.Context, guesses []wines.ParsedGuessedWine) ([]matcher.SearchResult, error) {
	ctx = logging.WithStage(ctx, "search")
	outcomes := make(chan searchOutcome, len(guesses))
	var wg sync.WaitGroup

	for i, guess := range guesses {
		wg.Add(1)
		go func(index int, guess wines.ParsedGuessedWine) {
			defer wg.Done()

			hits, err := p.search.Search(ctx, guess.Name)
			if err != nil {
				outcomes <- searchOutcome{index: index, err: fmt.Errorf("searching %q: %w", guess.Name, err)}
				return
			}

			outcomes <- searchOutcome{
				index: index,
				result: matcher.SearchResult{
					Guess: guess,
					Hits:  hits,
				},
			}
		}(i, guess)
	}

	wg.Wait()
	close(outcomes)

	results := make([]matcher.SearchResult, len(guesses))
	var firstErr error
	for outcome := range outcomes {
		if outcome.err != nil {
			logging.Ctx(ctx).Error().Err(outcome.err).Msg("Catalog search failed")
			if firstErr == nil {
				firstErr = outcome.err
			}
			continue
		}
		results[outcome.index] = outcome.result
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return results, nil
}
