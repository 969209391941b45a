package colour

import (
	"fmt"
	"image"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Options configures palette derivation. The zero value is not usable; start
// from DefaultOptions.
type Options struct {
	// N is the number of colours in the output palette. For qualitative
	// palettes N is capped down to the number of quantized colours available
	// after filtering; this is documented degraded behaviour, not an error.
	N int

	// Type selects the assembly strategy.
	Type PaletteType

	// K is the number of clusters requested from the quantizer. Unused by
	// divergent palettes, which always split the samples into two poles.
	K int

	// BW trims near-black/near-white pixels in RGB space before any HSV
	// analysis. Brightness and Saturation trim quantile tails of the value
	// and saturation distributions of the surviving pixels.
	BW         [2]float64
	Brightness [2]float64
	Saturation [2]float64

	// SeqBy is the HSV axis sort precedence for sequential palettes: a
	// permutation of exactly the characters h, s and v.
	SeqBy string

	// DivCenter is the center colour of divergent palettes.
	DivCenter RGB

	// Seed makes the randomized searches reproducible. The stream is
	// consumed in a fixed order (quantizer, then dispersion selection, then
	// order selection), so a given seed reproduces a given palette. Nil
	// selects a time-based seed.
	Seed *int64

	// MaxSamples caps the number of pixels read from the image via
	// deterministic grid sampling. Zero means every pixel.
	MaxSamples int

	// Logger receives per-stage debug output. Nil discards it.
	Logger hclog.Logger
}

// DefaultOptions returns the baseline derivation options: a qualitative
// palette over up to 100 quantized colours with no-op trims.
func DefaultOptions() Options {
	return Options{
		N:          8,
		Type:       PaletteQualitative,
		K:          100,
		BW:         [2]float64{0, 1},
		Brightness: [2]float64{0, 1},
		Saturation: [2]float64{0, 1},
		SeqBy:      "hsv",
		DivCenter:  White,
	}
}

// Validate checks the option preconditions. All violations wrap
// ErrInvalidParameter and are reported before any computation starts.
func (o Options) Validate() error {
	if o.N < 1 {
		return fmt.Errorf("%w: n must be at least 1, got %d", ErrInvalidParameter, o.N)
	}
	if o.K < 1 {
		return fmt.Errorf("%w: k must be at least 1, got %d", ErrInvalidParameter, o.K)
	}
	if _, err := ParsePaletteType(string(o.Type)); err != nil {
		return err
	}
	ranges := []struct {
		name string
		r    [2]float64
	}{
		{"bw", o.BW},
		{"brightness", o.Brightness},
		{"saturation", o.Saturation},
	}
	for _, pair := range ranges {
		if pair.r[0] < 0 || pair.r[1] > 1 || pair.r[0] > pair.r[1] {
			return fmt.Errorf("%w: %s range [%g,%g] must satisfy 0 <= lo <= hi <= 1",
				ErrInvalidParameter, pair.name, pair.r[0], pair.r[1])
		}
	}
	if !isHSVPermutation(o.SeqBy) {
		return fmt.Errorf("%w: seq-by %q must be a permutation of \"hsv\"", ErrInvalidParameter, o.SeqBy)
	}
	if o.MaxSamples < 0 {
		return fmt.Errorf("%w: max samples must not be negative, got %d", ErrInvalidParameter, o.MaxSamples)
	}
	return nil
}

// isHSVPermutation reports whether s names each of the h, s and v axes
// exactly once.
func isHSVPermutation(s string) bool {
	if len(s) != 3 {
		return false
	}
	sorted := []byte(s)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return string(sorted) == "hsv"
}

// Derive extracts a palette from a decoded image.
func Derive(img image.Image, opts Options) (*Palette, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrInvalidParameter)
	}

	pixels := samplePixels(img, opts.MaxSamples)
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: image has no pixels", ErrInvalidParameter)
	}
	return DerivePixels(pixels, opts)
}

// DerivePixels runs the derivation pipeline on raw pixel data: distribution
// filter, quantization and palette assembly.
func DerivePixels(pixels []RGB, opts Options) (*Palette, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(pixels) == 0 {
		return nil, fmt.Errorf("%w: pixel data is empty", ErrInvalidParameter)
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var seed int64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Debug("starting palette derivation",
		"pixels", len(pixels), "n", opts.N, "type", opts.Type, "seed", seed)

	samples, err := FilterDistribution(pixels, FilterConfig{
		BW:         opts.BW,
		Brightness: opts.Brightness,
		Saturation: opts.Saturation,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("filtered colour distribution",
		"survivors", len(samples), "removed", len(pixels)-len(samples))

	// A distribution with a single distinct colour cannot be clustered or
	// ramped; every strategy degenerates to n copies of that colour.
	if mono, ok := monochrome(samples); ok {
		logger.Debug("distribution is a single colour", "colour", mono.Hex())
		out := make([]RGB, opts.N)
		for i := range out {
			out[i] = mono
		}
		return NewPalette(out), nil
	}

	var colors []RGB
	switch opts.Type {
	case PaletteQualitative:
		clusters := NewQuantizer(rng).Quantize(samples, opts.K)
		logger.Debug("quantized distribution", "clusters", len(clusters))
		if opts.N > len(clusters) {
			logger.Debug("capping palette size to available colours",
				"requested", opts.N, "available", len(clusters))
		}
		colors = assembleQualitative(clusters, opts.N, rng)
	case PaletteSequential:
		clusters := NewQuantizer(rng).Quantize(samples, opts.K)
		logger.Debug("quantized distribution", "clusters", len(clusters))
		colors = assembleSequential(clusters, opts.N, opts.SeqBy)
	case PaletteDivergent:
		colors = assembleDivergent(samples, opts.N, opts.DivCenter, rng)
	}

	logger.Debug("assembled palette", "colours", len(colors))
	return NewPalette(colors), nil
}

// monochrome reports whether every sample has the same HSV coordinates,
// returning that colour when true.
func monochrome(samples []Sample) (RGB, bool) {
	first := samples[0]
	for _, s := range samples[1:] {
		if s.HSV != first.HSV {
			return RGB{}, false
		}
	}
	return first.RGB, true
}

// samplePixels reads pixels from the image. When maxSamples is positive and
// the image is larger, a deterministic grid stride keeps the sample count
// near the cap.
func samplePixels(img image.Image, maxSamples int) []RGB {
	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	step := 1
	if maxSamples > 0 && totalPixels > maxSamples {
		step = max(int(math.Sqrt(float64(totalPixels)/float64(maxSamples))), 1)
	}

	pixels := make([]RGB, 0, totalPixels/(step*step)+1)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			pixels = append(pixels, ToRGB(img.At(x, y)))
			if maxSamples > 0 && len(pixels) >= maxSamples {
				return pixels
			}
		}
	}
	return pixels
}
