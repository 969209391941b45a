package colour

import (
	"math"
	"math/rand"
)

// Cluster is a quantized colour: an HSV centroid plus the number of samples
// assigned to it. The count is informational and not used by the assembly
// strategies.
type Cluster struct {
	HSV   HSV
	Count int
}

// Quantizer reduces a filtered sample cloud to at most k representative
// colours via k-means clustering in the HSV unit cube.
type Quantizer struct {
	maxIterations int
	rng           *rand.Rand
}

// NewQuantizer creates a Quantizer drawing randomness from rng.
// Iterations are capped at 30; an unconverged result is accepted, consistent
// with the heuristic nature of the rest of the pipeline.
func NewQuantizer(rng *rand.Rand) *Quantizer {
	return &Quantizer{
		maxIterations: 30,
		rng:           rng,
	}
}

// Quantize clusters the samples into min(k, distinct HSV tuples) clusters.
func (q *Quantizer) Quantize(samples []Sample, k int) []Cluster {
	// Deduplicate in first-occurrence order so the distinct-colour fast path
	// is deterministic.
	distinct := make([]HSV, 0, len(samples))
	counts := make(map[HSV]int, len(samples))
	for _, s := range samples {
		if _, ok := counts[s.HSV]; !ok {
			distinct = append(distinct, s.HSV)
		}
		counts[s.HSV]++
	}

	// Never request more clusters than distinct colours exist.
	if k >= len(distinct) {
		clusters := make([]Cluster, len(distinct))
		for i, h := range distinct {
			clusters[i] = Cluster{HSV: h, Count: counts[h]}
		}
		return clusters
	}

	points := make([]HSV, len(samples))
	for i, s := range samples {
		points[i] = s.HSV
	}

	centroids := q.initCentroids(points, k)
	assignments := make([]int, len(points))

	for iter := 0; iter < q.maxIterations; iter++ {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if iter > 0 && changed == 0 {
			break
		}
		centroids = q.recalculateCentroids(points, assignments, k)
	}

	clusters := make([]Cluster, k)
	for i, c := range centroids {
		clusters[i] = Cluster{HSV: c}
	}
	for _, a := range assignments {
		clusters[a].Count++
	}
	return clusters
}

// initCentroids seeds the centroids using the k-means++ strategy: the first
// centroid is drawn uniformly, each subsequent one with probability
// proportional to its squared distance from the nearest existing centroid.
func (q *Quantizer) initCentroids(points []HSV, k int) []HSV {
	centroids := make([]HSV, 0, k)
	centroids = append(centroids, points[q.rng.Intn(len(points))])

	distances := make([]float64, len(points))
	for len(centroids) < k {
		totalDistance := 0.0
		for i, p := range points {
			minDist := math.MaxFloat64
			for _, c := range centroids {
				if d := p.Distance(c); d < minDist {
					minDist = d
				}
			}
			distances[i] = minDist * minDist
			totalDistance += distances[i]
		}

		if totalDistance == 0 {
			// Remaining points coincide with existing centroids; fall back
			// to a uniform draw.
			centroids = append(centroids, points[q.rng.Intn(len(points))])
			continue
		}

		target := q.rng.Float64() * totalDistance
		cumulative := 0.0
		for i, d := range distances {
			cumulative += d
			if cumulative >= target {
				centroids = append(centroids, points[i])
				break
			}
		}
	}

	return centroids
}

// nearestCentroid finds the index of the nearest centroid to a point.
func nearestCentroid(p HSV, centroids []HSV) int {
	minDist := math.MaxFloat64
	nearest := 0
	for i, c := range centroids {
		if d := p.Distance(c); d < minDist {
			minDist = d
			nearest = i
		}
	}
	return nearest
}

// recalculateCentroids moves each centroid to the mean of its assigned
// points. Empty clusters are reseeded from a random point.
func (q *Quantizer) recalculateCentroids(points []HSV, assignments []int, k int) []HSV {
	sums := make([]HSV, k)
	counts := make([]int, k)
	for i, p := range points {
		c := assignments[i]
		sums[c].H += p.H
		sums[c].S += p.S
		sums[c].V += p.V
		counts[c]++
	}

	centroids := make([]HSV, k)
	for i := 0; i < k; i++ {
		if counts[i] > 0 {
			centroids[i] = HSV{
				H: sums[i].H / float64(counts[i]),
				S: sums[i].S / float64(counts[i]),
				V: sums[i].V / float64(counts[i]),
			}
		} else {
			centroids[i] = points[q.rng.Intn(len(points))]
		}
	}
	return centroids
}
