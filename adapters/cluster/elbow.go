package cluster

import (
	"fmt"

	"gosegment/domain/segment"

	"golang.org/x/sync/errgroup"
)

// Sweep computes the elbow curve: total within-cluster sum of squares for
// every candidate k in 1..maxK, each fit with the full restart count. The
// curve is diagnostic only; choosing k from it stays a human decision.
//
// Fits for different k are independent, so the sweep fans out with an
// errgroup. Each k derives its own seed from the base seed, which keeps the
// whole sweep deterministic regardless of scheduling.
func Sweep(points [][]float64, maxK, restarts int, seed int64) ([]segment.ElbowPoint, error) {
	if maxK < 1 {
		return nil, fmt.Errorf("elbow sweep needs at least one candidate k")
	}

	results := make([]segment.ElbowPoint, maxK)
	g := new(errgroup.Group)

	for k := 1; k <= maxK; k++ {
		g.Go(func() error {
			km := NewKMeans(k, restarts, seed+int64(k))
			res, err := km.Fit(points)
			if err != nil {
				return fmt.Errorf("elbow fit for k=%d: %w", k, err)
			}
			results[k-1] = segment.ElbowPoint{K: k, WSS: res.WSS}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
