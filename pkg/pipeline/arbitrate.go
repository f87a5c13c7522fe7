package pipeline

import (
	"context"
	"sync"

	"github.com/cellarlens/cellarlens/pkg/errors"
	"github.com/cellarlens/cellarlens/pkg/logging"
	"github.com/cellarlens/cellarlens/pkg/wines"
)

// arbitrateAll runs visual arbitration for every ambiguous group
// concurrently. Each group is fully isolated: a failed arbitration logs a
// warning, counts as skipped, and never affects its siblings.
func (p *Pipeline) arbitrateAll(ctx context.Context, original wines.Image, groups []ambiguousGroup, result *Result) []wines.ResolvedWine {
	if len(groups) == 0 {
		return nil
	}
	ctx = logging.WithStage(ctx, "arbitration")

	type arbitrationOutcome struct {
		index int
		wines []wines.ResolvedWine
	}

	outcomes := make(chan arbitrationOutcome, len(groups))
	var wg sync.WaitGroup

	for i, group := range groups {
		wg.Add(1)
		go func(index int, group ambiguousGroup) {
			defer wg.Done()

			groupCtx := logging.WithWine(ctx, group.Name)
			confirmed, err := p.arbitrate(groupCtx, original, group)
			if err != nil {
				logging.Ctx(groupCtx).Warn().
					Err(err).
					Msg("Arbitration failed, skipping guess")
				outcomes <- arbitrationOutcome{index: index}
				return
			}
			outcomes <- arbitrationOutcome{index: index, wines: confirmed}
		}(i, group)
	}

	wg.Wait()
	close(outcomes)

	// Re-assemble in group order so output does not depend on goroutine
	// scheduling.
	ordered := make([][]wines.ResolvedWine, len(groups))
	for outcome := range outcomes {
		ordered[outcome.index] = outcome.wines
	}

	var all []wines.ResolvedWine
	for i, confirmed := range ordered {
		if len(confirmed) == 0 {
			result.Stats.Unconfirmed++
			logging.Ctx(ctx).Info().
				Str("wine", groups[i].Name).
				Msg("No candidate confirmed by arbitration")
			continue
		}
		all = append(all, confirmed...)
	}
	return all
}

// arbitrate settles one ambiguous group: fetch each candidate's label image,
// ask the vision model which candidates appear in the original photo, and
// resolve every confirmed candidate. Sub-steps run sequentially within the
// group.
func (p *Pipeline) arbitrate(ctx context.Context, original wines.Image, group ambiguousGroup) ([]wines.ResolvedWine, error) {
	hitsByName := make(map[string]wines.CatalogHit, len(group.Hits))
	candidates := make([]wines.LabeledImage, 0, len(group.Hits))
	for _, hit := range group.Hits {
		img, err := p.images.FetchImage(ctx, hit)
		if err != nil {
			if errors.IsInvalidFormat(err) {
				// Candidate has no usable label image; the rest of the
				// group can still be compared.
				logging.Ctx(ctx).Debug().
					Str("candidate", hit.Name).
					Msg("Skipping candidate with unsupported label image format")
				continue
			}
			return nil, err
		}
		candidates = append(candidates, img)
		hitsByName[hit.Name] = hit
	}

	verdicts, err := p.vision.CompareBottles(ctx, original, candidates)
	if err != nil {
		return nil, err
	}

	var confirmed []wines.ResolvedWine
	for _, verdict := range verdicts {
		if !verdict.IsPresent {
			continue
		}
		hit, ok := hitsByName[verdict.FileName]
		if !ok {
			logging.Ctx(ctx).Warn().
				Str("verdict_file", verdict.FileName).
				Msg("Verdict names no known candidate, ignoring")
			continue
		}
		confirmed = append(confirmed, p.resolve(ctx, hit))
	}
	return confirmed, nil
}
