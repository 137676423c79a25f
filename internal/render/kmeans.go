package render

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"sfgen/internal/core"
)

// kmeans1D partitions values into k clusters by Lloyd iteration and
// returns the cluster index per value. Centroids start evenly spaced
// across the value range; emptied clusters are reseeded from the RNG, so
// the partition is deterministic for a given seed.
func kmeans1D(values []float64, k int, rng *core.RNG, maxIter int) ([]int, error) {
	if k <= 0 {
		return nil, errors.New("render: cluster count must be positive")
	}
	if len(values) == 0 {
		return nil, errors.New("render: no values to cluster")
	}
	if k > len(values) {
		k = len(values)
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	centroids := make([]float64, k)
	if k == 1 {
		centroids[0] = (lo + hi) / 2
	} else {
		for i := range centroids {
			centroids[i] = lo + (hi-lo)*float64(i)/float64(k-1)
		}
	}

	assign := make([]int, len(values))
	sums := make([]float64, k)
	counts := make([]int, k)
	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, v := range values {
			best := 0
			bestDist := math.Abs(v - centroids[0])
			for j := 1; j < k; j++ {
				if d := math.Abs(v - centroids[j]); d < bestDist {
					best, bestDist = j, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		for j := range centroids {
			sums[j] = 0
			counts[j] = 0
		}
		for i, v := range values {
			sums[assign[i]] += v
			counts[assign[i]]++
		}
		for j := range centroids {
			if counts[j] == 0 {
				centroids[j] = rng.UniformRange(lo, hi)
				continue
			}
			centroids[j] = sums[j] / float64(counts[j])
		}
	}
	return assign, nil
}
