package cluster

import (
	"fmt"

	"gosegment/domain/segment"

	mfstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Silhouette computes per-respondent silhouette coefficients from the cluster
// assignment and a full pairwise Euclidean distance matrix over standardized
// space. Scores lie in [-1, 1]; a singleton cluster member scores 0 by
// convention. Reporting only, never fed back into clustering.
func Silhouette(points [][]float64, a segment.Assignment) (*segment.SilhouetteReport, error) {
	n := len(points)
	if n != len(a.Labels) {
		return nil, fmt.Errorf("have %d points but %d labels", n, len(a.Labels))
	}
	present := a.DistinctLabels()
	if len(present) < 2 {
		return nil, fmt.Errorf("silhouette requires at least 2 clusters, found %d", len(present))
	}

	dist := pairwiseDistances(points)

	// Cluster sizes keyed by label
	sizes := make(map[int]int, a.K)
	for _, l := range a.Labels {
		sizes[l]++
	}

	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		own := a.Labels[i]
		if sizes[own] == 1 {
			scores[i] = 0
			continue
		}

		// Mean distance to every cluster, own and others
		sums := make(map[int]float64, len(present))
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			sums[a.Labels[j]] += dist.At(i, j)
		}

		cohesion := sums[own] / float64(sizes[own]-1)
		separation := 0.0
		first := true
		for _, l := range present {
			if l == own {
				continue
			}
			mean := sums[l] / float64(sizes[l])
			if first || mean < separation {
				separation = mean
				first = false
			}
		}

		denom := cohesion
		if separation > denom {
			denom = separation
		}
		if denom == 0 {
			scores[i] = 0
			continue
		}
		scores[i] = (separation - cohesion) / denom
	}

	mean, err := mfstats.Mean(scores)
	if err != nil {
		return nil, fmt.Errorf("mean silhouette: %w", err)
	}

	return &segment.SilhouetteReport{Scores: scores, Mean: mean}, nil
}

// pairwiseDistances builds the symmetric Euclidean distance matrix
func pairwiseDistances(points [][]float64) *mat.SymDense {
	n := len(points)
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.SetSym(i, j, floats.Distance(points[i], points[j], 2))
		}
	}
	return d
}
