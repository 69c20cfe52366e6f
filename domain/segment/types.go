package segment

// Assignment holds the cluster label for each respondent, in input order.
// Labels are 1-based: a label is always in {1..K}.
type Assignment struct {
	Labels []int
	K      int
}

// DistinctLabels returns the sorted set of labels actually present
func (a Assignment) DistinctLabels() []int {
	seen := make(map[int]bool, a.K)
	for _, l := range a.Labels {
		seen[l] = true
	}
	out := make([]int, 0, len(seen))
	for l := 1; l <= a.K; l++ {
		if seen[l] {
			out = append(out, l)
		}
	}
	return out
}

// ClusterSummary is one profile row: the mean of each standardized attribute
// over a cluster's members plus the member count. Derived, rebuilt whenever
// assignments change.
type ClusterSummary struct {
	Label int
	Means map[string]float64
	Count int
}

// ElbowPoint records total within-cluster sum of squares for one candidate k
type ElbowPoint struct {
	K   int
	WSS float64
}

// SilhouetteReport carries per-respondent silhouette coefficients and their mean.
// Scores lie in [-1, 1]; reporting only, never fed back into clustering.
type SilhouetteReport struct {
	Scores []float64
	Mean   float64
}
