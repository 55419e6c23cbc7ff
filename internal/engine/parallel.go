package engine

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/roomfit/internal/model"
)

// FitParallel fits a rectangle with the cross-casts computed concurrently.
// It returns the same rectangle as the sequential search for the same edges,
// seed and settings.
func FitParallel(ctx context.Context, edges []model.Edge, seed int64, settings model.FitSettings) (*InscribedRectangle, error) {
	settings.Parallel = true
	return New(settings).FitContext(ctx, edges, seed)
}

// searchParallel plans every (angle, seed point) step concurrently, one
// goroutine per angle, then applies the steps in sequential order. Planning
// does not read the running best, so the result matches searchChain.
func (f *Fitter) searchParallel(ctx context.Context, edges []model.Edge, points []model.Point2D) (candidate, error) {
	angles := f.Settings.Angles
	steps := make([]seedStep, len(angles)*len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, angle := range angles {
		g.Go(func() error {
			for j, point := range points {
				if err := gctx.Err(); err != nil {
					return err
				}
				steps[i*len(points)+j] = planStep(edges, point, angle)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return candidate{}, err
	}

	var best candidate
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		best = f.applyStep(edges, step, best)
	}
	return best, nil
}
