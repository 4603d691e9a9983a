package experiment

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Ensemble solves independent requests in parallel on at most workers
// goroutines (GOMAXPROCS when workers <= 0). Runs come back in request
// order. Cancelling ctx stops new solves from starting; solves already
// running finish normally.
func (r *Registry) Ensemble(ctx context.Context, reqs []Request, workers int) ([]*Run, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runs := make([]*Run, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runs[i] = r.Solve(req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return runs, err
	}
	return runs, nil
}
