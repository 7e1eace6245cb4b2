package textcluster

import (
	"errors"
	"math"
	"math/rand"
)

var errTooFewSamples = errors.New("textcluster: fewer samples than clusters")

// kmeans is a plain Lloyd's clustering with k-means++ seeding. All randomness
// flows from the given source, so the same corpus always yields the same
// centroids.
type kmeans struct {
	k       int
	inits   int
	maxIter int
	rng     *rand.Rand

	centroids [][]float64
}

func newKMeans(k, inits, maxIter int, seed int64) *kmeans {
	return &kmeans{
		k:       k,
		inits:   inits,
		maxIter: maxIter,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

func (m *kmeans) fit(samples [][]float64) error {
	if len(samples) < m.k {
		return errTooFewSamples
	}

	bestInertia := math.Inf(1)
	var best [][]float64
	for run := 0; run < m.inits; run++ {
		centroids := m.seedCentroids(samples)
		inertia := m.lloyd(samples, centroids)
		if inertia < bestInertia {
			bestInertia = inertia
			best = centroids
		}
	}
	m.centroids = best
	return nil
}

func (m *kmeans) predict(samples [][]float64) []int {
	out := make([]int, len(samples))
	for i, sample := range samples {
		out[i], _ = nearestCentroid(sample, m.centroids)
	}
	return out
}

// seedCentroids implements k-means++: the first centroid is a uniform draw,
// each further one is drawn proportionally to squared distance from the
// nearest already-chosen centroid.
func (m *kmeans) seedCentroids(samples [][]float64) [][]float64 {
	centroids := make([][]float64, 0, m.k)
	centroids = append(centroids, cloneVec(samples[m.rng.Intn(len(samples))]))

	dists := make([]float64, len(samples))
	for len(centroids) < m.k {
		var total float64
		for i, sample := range samples {
			_, d := nearestCentroid(sample, centroids)
			dists[i] = d
			total += d
		}
		if total == 0 {
			// All remaining points coincide with centroids; fall back to
			// uniform draws.
			centroids = append(centroids, cloneVec(samples[m.rng.Intn(len(samples))]))
			continue
		}
		target := m.rng.Float64() * total
		var acc float64
		chosen := len(samples) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, cloneVec(samples[chosen]))
	}
	return centroids
}

func (m *kmeans) lloyd(samples [][]float64, centroids [][]float64) float64 {
	dim := len(samples[0])
	assignments := make([]int, len(samples))

	for iter := 0; iter < m.maxIter; iter++ {
		changed := false
		for i, sample := range samples {
			cluster, _ := nearestCentroid(sample, centroids)
			if assignments[i] != cluster || iter == 0 {
				assignments[i] = cluster
				changed = true
			}
		}
		if !changed {
			break
		}

		sums := make([][]float64, len(centroids))
		counts := make([]int, len(centroids))
		for c := range sums {
			sums[c] = make([]float64, dim)
		}
		for i, sample := range samples {
			c := assignments[i]
			counts[c]++
			for d, v := range sample {
				sums[c][d] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				// Re-seat an empty cluster on the sample farthest from its
				// centroid to keep all k clusters populated.
				centroids[c] = cloneVec(samples[farthestSample(samples, centroids, assignments)])
				continue
			}
			for d := range sums[c] {
				sums[c][d] /= float64(counts[c])
			}
			centroids[c] = sums[c]
		}
	}

	var inertia float64
	for _, sample := range samples {
		_, d := nearestCentroid(sample, centroids)
		inertia += d
	}
	return inertia
}

func nearestCentroid(sample []float64, centroids [][]float64) (int, float64) {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		d := squaredDistance(sample, centroid)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist
}

func farthestSample(samples [][]float64, centroids [][]float64, assignments []int) int {
	worst := 0
	worstDist := -1.0
	for i, sample := range samples {
		d := squaredDistance(sample, centroids[assignments[i]])
		if d > worstDist {
			worstDist = d
			worst = i
		}
	}
	return worst
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
