package checker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CheckAll runs Check for every domain with at most workers concurrent
// checks. Results are written into a slice indexed by input position, so the
// output order always matches the input order no matter which check finishes
// first, and a slow domain never delays another beyond pool capacity.
func CheckAll(ctx context.Context, c *Checker, domains []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(domains))
	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, domain := range domains {
		g.Go(func() error {
			results[i] = c.Check(ctx, domain)
			return nil
		})
	}

	// Check never returns an error; Wait is only the join point.
	g.Wait()
	return results
}
