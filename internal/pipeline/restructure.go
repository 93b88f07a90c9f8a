package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerdoc/internal/types"
)

// structureConcurrency bounds parallel structuring calls so a bulk pass over
// a large experience library does not flood the generation backend.
const structureConcurrency = 4

// StructureAll recomputes the derived fields of every experience, in input
// order. Individual structuring never fails, so the only error source is
// context cancellation.
func StructureAll(ctx context.Context, svc Service, experiences []types.Experience) ([]types.StructuredExperience, error) {
	results := make([]types.StructuredExperience, len(experiences))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(structureConcurrency)

	for i, exp := range experiences {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meta := types.ExperienceMeta{
				StartMonth:  exp.StartMonth,
				EndMonth:    exp.EndMonth,
				Ongoing:     exp.Ongoing,
				Company:     exp.Company,
				ProjectName: exp.ProjectName,
			}
			results[i] = *svc.StructureExperience(ctx, meta, exp.RawNotes)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
