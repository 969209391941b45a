package colour

import (
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// Sample is a single pixel observation carried through the pipeline: its RGB
// value plus the derived HSV coordinates used for filtering and clustering.
type Sample struct {
	RGB RGB
	HSV HSV
}

// FilterConfig controls the distribution filter.
// BW trims near-black/near-white pixels in RGB space; Brightness and
// Saturation trim quantile tails of the v and s distributions. Each pair is
// (lo, hi) with lo <= hi and both in [0, 1].
type FilterConfig struct {
	BW         [2]float64
	Brightness [2]float64
	Saturation [2]float64
}

// DefaultFilterConfig returns a no-op filter configuration.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		BW:         [2]float64{0, 1},
		Brightness: [2]float64{0, 1},
		Saturation: [2]float64{0, 1},
	}
}

// FilterDistribution removes near-black/near-white pixels and trims the
// brightness and saturation quantile tails of the remaining distribution.
// Returns ErrEmptyDistribution when no pixel survives.
func FilterDistribution(pixels []RGB, cfg FilterConfig) ([]Sample, error) {
	// Pass 1: black/white trim in RGB space. A pixel is kept when its
	// brightest channel reaches bw[0] and its darkest channel does not
	// exceed bw[1].
	samples := make([]Sample, 0, len(pixels))
	for _, p := range pixels {
		mx := max(p.R, p.G, p.B)
		mn := min(p.R, p.G, p.B)
		if float64(mx)/255.0 < cfg.BW[0] || float64(mn)/255.0 > cfg.BW[1] {
			continue
		}
		samples = append(samples, Sample{RGB: p, HSV: RGBToHSV(p)})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: black/white trim bw=[%g,%g] removed all %d pixels",
			ErrEmptyDistribution, cfg.BW[0], cfg.BW[1], len(pixels))
	}

	// Pass 2: quantile trim in HSV space.
	vs := make([]float64, len(samples))
	ss := make([]float64, len(samples))
	for i, s := range samples {
		vs[i] = s.HSV.V
		ss[i] = s.HSV.S
	}

	// Sort once so the two quantile reads per axis do not each sort a copy.
	vSample := (&stats.Sample{Xs: vs}).Sort()
	sSample := (&stats.Sample{Xs: ss}).Sort()
	vLo := vSample.Quantile(cfg.Brightness[0])
	vHi := vSample.Quantile(cfg.Brightness[1])
	sLo := sSample.Quantile(cfg.Saturation[0])
	sHi := sSample.Quantile(cfg.Saturation[1])

	filtered := samples[:0]
	for _, s := range samples {
		if s.HSV.V < vLo || s.HSV.V > vHi {
			continue
		}
		if s.HSV.S < sLo || s.HSV.S > sHi {
			continue
		}
		filtered = append(filtered, s)
	}
	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: quantile trim brightness=[%g,%g] saturation=[%g,%g] removed all %d pixels",
			ErrEmptyDistribution, cfg.Brightness[0], cfg.Brightness[1],
			cfg.Saturation[0], cfg.Saturation[1], len(samples))
	}

	return filtered, nil
}
