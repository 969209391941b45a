package colour

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"
)

// PaletteType selects the palette assembly strategy.
type PaletteType string

const (
	// PaletteQualitative picks n well-separated colours and orders them for
	// maximum hue contrast between adjacent swatches.
	PaletteQualitative PaletteType = "qual"

	// PaletteSequential builds a monotone ramp through the quantized colours
	// sorted by the configured HSV axis precedence.
	PaletteSequential PaletteType = "seq"

	// PaletteDivergent builds a symmetric ramp from one colour pole through
	// a center colour to the opposite pole.
	PaletteDivergent PaletteType = "div"
)

// ValidPaletteTypes returns the recognised palette types.
func ValidPaletteTypes() []PaletteType {
	return []PaletteType{PaletteQualitative, PaletteSequential, PaletteDivergent}
}

// assemblyTrials is the number of random draws per optimization stage.
// Both qualitative stages are best-of-N searches over this many trials.
const assemblyTrials = 10000

// sequentialGroups caps the number of ramp control colours for sequential
// palettes.
const sequentialGroups = 10

// assembleQualitative selects n well-dispersed clusters and orders them for
// hue contrast. Two sequential randomized stages, each keeping the
// best-scoring of assemblyTrials draws (ties broken by first occurrence):
//
// Stage 1 draws uniform random n-subsets of the clusters and keeps the one
// maximizing the minimum pairwise HSV distance, a sampling approximation to
// max-min dispersion, which is combinatorially hard to solve exactly.
//
// Stage 2 draws uniform random permutations of the winning subset and keeps
// the one maximizing the mean squared consecutive hue difference, so that
// adjacent swatches read as distinct categories rather than a gradient.
//
// If n exceeds the number of clusters it is capped down; the caller gets
// fewer colours rather than an error.
func assembleQualitative(clusters []Cluster, n int, rng *rand.Rand) []RGB {
	if n > len(clusters) {
		n = len(clusters)
	}

	chosen := selectDispersed(clusters, n, rng)
	order := orderByHueContrast(chosen, rng)

	out := make([]RGB, n)
	for i, idx := range order {
		out[i] = chosen[idx].RGB()
	}
	return out
}

// selectDispersed draws random n-subsets of the clusters and returns the one
// with the largest minimum pairwise HSV distance.
func selectDispersed(clusters []Cluster, n int, rng *rand.Rand) []HSV {
	k := len(clusters)
	var best []int
	bestScore := -1.0
	for trial := 0; trial < assemblyTrials; trial++ {
		subset := rng.Perm(k)[:n]
		score := minPairwiseDistance(clusters, subset)
		if score > bestScore {
			bestScore = score
			best = subset
		}
	}

	chosen := make([]HSV, n)
	for i, idx := range best {
		chosen[i] = clusters[idx].HSV
	}
	return chosen
}

// orderByHueContrast draws random permutations of the colours and returns
// the one with the largest mean squared consecutive hue difference.
func orderByHueContrast(colors []HSV, rng *rand.Rand) []int {
	var best []int
	bestScore := -1.0
	for trial := 0; trial < assemblyTrials; trial++ {
		order := rng.Perm(len(colors))
		score := hueContrast(colors, order)
		if score > bestScore {
			bestScore = score
			best = order
		}
	}
	return best
}

// minPairwiseDistance returns the minimum Euclidean HSV distance among the
// indexed clusters. Subsets with fewer than two members score zero.
func minPairwiseDistance(clusters []Cluster, subset []int) float64 {
	if len(subset) < 2 {
		return 0
	}
	minDist := -1.0
	for i := 0; i < len(subset)-1; i++ {
		for j := i + 1; j < len(subset); j++ {
			d := clusters[subset[i]].HSV.Distance(clusters[subset[j]].HSV)
			if minDist < 0 || d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

// hueContrast scores an ordering by the mean of squared consecutive hue
// differences. Orderings of fewer than two colours score zero.
func hueContrast(colors []HSV, order []int) float64 {
	if len(order) < 2 {
		return 0
	}
	diffs := make([]float64, len(order)-1)
	for i := 0; i < len(order)-1; i++ {
		d := colors[order[i+1]].H - colors[order[i]].H
		diffs[i] = d * d
	}
	return stats.Mean(diffs)
}

// assembleSequential sorts the clusters by the seqBy axis precedence,
// reduces them to at most sequentialGroups averaged control colours and
// interpolates a ramp of n colours through them.
func assembleSequential(clusters []Cluster, n int, seqBy string) []RGB {
	sorted := make([]HSV, len(clusters))
	for i, c := range clusters {
		sorted[i] = c.HSV
	}
	sortHSV(sorted, seqBy)

	// Contiguous, approximately equal-sized groups over the sorted run.
	k := len(sorted)
	groups := min(sequentialGroups, k)
	controls := make([]HSV, 0, groups)
	for g := 0; g < groups; g++ {
		start := g * k / groups
		end := (g + 1) * k / groups
		var sum HSV
		for _, h := range sorted[start:end] {
			sum.H += h.H
			sum.S += h.S
			sum.V += h.V
		}
		size := float64(end - start)
		controls = append(controls, HSV{H: sum.H / size, S: sum.S / size, V: sum.V / size})
	}

	// Averaging preserves the sort order of contiguous groups, but re-sort
	// so the ramp is guaranteed monotone in seqBy.
	sortHSV(controls, seqBy)

	rgb := make([]RGB, len(controls))
	for i, h := range controls {
		rgb[i] = h.RGB()
	}
	return Ramp(rgb, n)
}

// sortHSV sorts colours lexicographically by the axes named in seqBy
// (a permutation of "hsv" declaring primary/secondary/tertiary precedence).
func sortHSV(colors []HSV, seqBy string) {
	axis := func(c HSV, name byte) float64 {
		switch name {
		case 'h':
			return c.H
		case 's':
			return c.S
		default:
			return c.V
		}
	}
	sort.SliceStable(colors, func(i, j int) bool {
		for b := 0; b < len(seqBy); b++ {
			ai, aj := axis(colors[i], seqBy[b]), axis(colors[j], seqBy[b])
			if ai != aj {
				return ai < aj
			}
		}
		return false
	})
}

// assembleDivergent splits the filtered samples into two poles with a
// 2-means clustering and ramps from the second pole through the center
// colour to the first. The reversed control order [B, center, A] is
// intentional: it fixes which pole each interpolation direction starts from.
func assembleDivergent(samples []Sample, n int, center RGB, rng *rand.Rand) []RGB {
	clusters := NewQuantizer(rng).Quantize(samples, 2)

	colorA := clusters[0].HSV.RGB()
	colorB := colorA
	if len(clusters) > 1 {
		colorB = clusters[1].HSV.RGB()
	}

	return Ramp([]RGB{colorB, center, colorA}, n)
}

// ParsePaletteType converts a string to a PaletteType.
func ParsePaletteType(s string) (PaletteType, error) {
	t := PaletteType(strings.ToLower(s))
	for _, valid := range ValidPaletteTypes() {
		if t == valid {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown palette type %q (valid: qual, seq, div)", ErrInvalidParameter, s)
}
