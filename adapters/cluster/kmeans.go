package cluster

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"gosegment/domain/segment"

	"gonum.org/v1/gonum/floats"
)

// defaultMaxIter bounds Lloyd iterations per restart; convergence is
// typically reached in far fewer.
const defaultMaxIter = 100

// KMeans fits Lloyd's algorithm with k-means++ seeding and multiple random
// restarts, keeping the restart with the lowest total within-cluster sum of
// squares. All randomness flows through one seeded source, so identical
// seed, restart count and input order reproduce identical assignments.
type KMeans struct {
	K        int
	Restarts int
	MaxIter  int
	rng      *rand.Rand
}

// NewKMeans creates a k-means fitter with a fixed seed
func NewKMeans(k, restarts int, seed int64) *KMeans {
	return &KMeans{
		K:        k,
		Restarts: restarts,
		MaxIter:  defaultMaxIter,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Result is a completed fit. Labels are 1-based.
type Result struct {
	Assignment segment.Assignment
	Centroids  [][]float64
	WSS        float64
}

// Fit partitions the points into K clusters. It errors on degenerate input:
// no points, inconsistent dimensions, or fewer distinct points than K.
func (km *KMeans) Fit(points [][]float64) (*Result, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to cluster")
	}
	if km.K < 1 {
		return nil, fmt.Errorf("cluster count must be at least 1, got %d", km.K)
	}
	dim := len(points[0])
	for i, p := range points {
		if len(p) != dim {
			return nil, fmt.Errorf("point %d has dimension %d, expected %d", i, len(p), dim)
		}
	}
	if distinct := distinctPoints(points); distinct < km.K {
		return nil, fmt.Errorf("cannot fit %d clusters: only %d distinct points", km.K, distinct)
	}

	var bestLabels []int
	var bestCentroids [][]float64
	bestWSS := math.Inf(1)

	for r := 0; r < km.Restarts; r++ {
		labels, centroids, wss := km.fitOnce(points)
		if wss < bestWSS {
			bestWSS = wss
			bestLabels = labels
			bestCentroids = centroids
		}
	}

	// Shift to 1-based labels
	oneBased := make([]int, len(bestLabels))
	for i, l := range bestLabels {
		oneBased[i] = l + 1
	}

	return &Result{
		Assignment: segment.Assignment{Labels: oneBased, K: km.K},
		Centroids:  bestCentroids,
		WSS:        bestWSS,
	}, nil
}

// fitOnce runs a single seeded Lloyd pass and returns 0-based labels
func (km *KMeans) fitOnce(points [][]float64) ([]int, [][]float64, float64) {
	centroids := km.seedCentroids(points)
	labels := make([]int, len(points))

	for iter := 0; iter < km.MaxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCentroid(p, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}
		km.updateCentroids(points, labels, centroids)
	}

	wss := 0.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		wss += d * d
	}
	return labels, centroids, wss
}

// seedCentroids picks initial centroids with k-means++ weighting
func (km *KMeans) seedCentroids(points [][]float64) [][]float64 {
	centroids := make([][]float64, 0, km.K)
	first := points[km.rng.Intn(len(points))]
	centroids = append(centroids, append([]float64(nil), first...))

	dists := make([]float64, len(points))
	for len(centroids) < km.K {
		total := 0.0
		for i, p := range points {
			d := math.Inf(1)
			for _, c := range centroids {
				if dc := floats.Distance(p, c, 2); dc < d {
					d = dc
				}
			}
			dists[i] = d * d
			total += dists[i]
		}

		var next []float64
		if total == 0 {
			next = points[km.rng.Intn(len(points))]
		} else {
			target := km.rng.Float64() * total
			cum := 0.0
			next = points[len(points)-1]
			for i, d := range dists {
				cum += d
				if cum >= target {
					next = points[i]
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), next...))
	}
	return centroids
}

// updateCentroids recomputes each centroid as the mean of its members.
// An emptied cluster is re-seeded with the point farthest from its current
// centroid, which keeps every run at exactly K clusters.
func (km *KMeans) updateCentroids(points [][]float64, labels []int, centroids [][]float64) {
	dim := len(points[0])
	counts := make([]int, km.K)
	sums := make([][]float64, km.K)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, p := range points {
		counts[labels[i]]++
		floats.Add(sums[labels[i]], p)
	}

	for c := 0; c < km.K; c++ {
		if counts[c] == 0 {
			copy(centroids[c], farthestPoint(points, labels, centroids))
			continue
		}
		for j := 0; j < dim; j++ {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

// farthestPoint finds the point with the largest distance to its own centroid
func farthestPoint(points [][]float64, labels []int, centroids [][]float64) []float64 {
	worst := points[0]
	worstDist := -1.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		if d > worstDist {
			worstDist = d
			worst = p
		}
	}
	return worst
}

// nearestCentroid returns the index of the closest centroid to p
func nearestCentroid(p []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := floats.Distance(p, centroid, 2); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// distinctPoints counts unique rows by exact float equality
func distinctPoints(points [][]float64) int {
	seen := make(map[string]struct{}, len(points))
	for _, p := range points {
		key := make([]byte, 0, len(p)*17)
		for _, v := range p {
			key = strconv.AppendUint(key, math.Float64bits(v), 16)
			key = append(key, ':')
		}
		seen[string(key)] = struct{}{}
	}
	return len(seen)
}
