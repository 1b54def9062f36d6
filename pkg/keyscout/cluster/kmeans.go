package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// lloyd partitions the rows of data into k groups by iterative
// relocation, minimizing within-group squared distance to centroids.
// The seed fixes centroid initialization, so identical input always
// produces identical assignments.
func lloyd(data *mat.Dense, k int, seed int64, maxIter int) (assignments []int, centroids *mat.Dense) {
	n, d := data.Dims()
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	rng := rand.New(rand.NewSource(seed))
	centroids = mat.NewDense(k, d, nil)
	for i, rowIdx := range rng.Perm(n)[:k] {
		centroids.SetRow(i, mat.Row(nil, rowIdx, data))
	}

	assignments = make([]int, n)
	row := make([]float64, d)
	centroid := make([]float64, d)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			mat.Row(row, i, data)
			best := 0
			bestDist := math.Inf(1)
			for c := 0; c < k; c++ {
				mat.Row(centroid, c, centroids)
				dist := floats.Distance(row, centroid, 2)
				if dist < bestDist {
					bestDist = dist
					best = c
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// Relocate centroids to the mean of their members. A centroid
		// that lost all members keeps its previous position.
		sums := mat.NewDense(k, d, nil)
		counts := make([]int, k)
		for i := 0; i < n; i++ {
			c := assignments[i]
			counts[c]++
			mat.Row(row, i, data)
			for j := 0; j < d; j++ {
				sums.Set(c, j, sums.At(c, j)+row[j])
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := 0; j < d; j++ {
				centroids.Set(c, j, sums.At(c, j)/float64(counts[c]))
			}
		}
	}

	return assignments, centroids
}
