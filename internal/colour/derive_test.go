package colour

import (
	"errors"
	"image"
	"image/color"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func seedPtr(v int64) *int64 { return &v }

// testPixels builds a spread of pixel colours large enough to quantize.
func testPixels() []RGB {
	var pixels []RGB
	for i := 0; i < 200; i++ {
		pixels = append(pixels, RGB{
			R: uint8((i * 7) % 256),
			G: uint8((i * 13) % 256),
			B: uint8((i * 31) % 256),
		})
	}
	return pixels
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(o *Options) {}},
		{name: "n zero", mutate: func(o *Options) { o.N = 0 }, wantErr: true},
		{name: "n negative", mutate: func(o *Options) { o.N = -3 }, wantErr: true},
		{name: "k zero", mutate: func(o *Options) { o.K = 0 }, wantErr: true},
		{name: "unknown type", mutate: func(o *Options) { o.Type = "spiral" }, wantErr: true},
		{name: "bw inverted", mutate: func(o *Options) { o.BW = [2]float64{0.9, 0.1} }, wantErr: true},
		{name: "bw out of range", mutate: func(o *Options) { o.BW = [2]float64{-0.1, 1} }, wantErr: true},
		{name: "brightness above one", mutate: func(o *Options) { o.Brightness = [2]float64{0, 1.5} }, wantErr: true},
		{name: "saturation inverted", mutate: func(o *Options) { o.Saturation = [2]float64{0.7, 0.2} }, wantErr: true},
		{name: "seq-by wrong letters", mutate: func(o *Options) { o.SeqBy = "rgb" }, wantErr: true},
		{name: "seq-by repeated axis", mutate: func(o *Options) { o.SeqBy = "hhv" }, wantErr: true},
		{name: "seq-by too long", mutate: func(o *Options) { o.SeqBy = "hsvv" }, wantErr: true},
		{name: "seq-by other permutation", mutate: func(o *Options) { o.SeqBy = "vsh" }},
		{name: "negative max samples", mutate: func(o *Options) { o.MaxSamples = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestDerivePixelsOutputShape(t *testing.T) {
	pixels := testPixels()

	tests := []struct {
		name string
		typ  PaletteType
		n    int
	}{
		{name: "qualitative", typ: PaletteQualitative, n: 5},
		{name: "sequential", typ: PaletteSequential, n: 12},
		{name: "divergent", typ: PaletteDivergent, n: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.N = tt.n
			opts.Type = tt.typ
			opts.K = 20
			opts.Seed = seedPtr(1)

			palette, err := DerivePixels(pixels, opts)
			if err != nil {
				t.Fatalf("DerivePixels() error = %v", err)
			}
			if palette.Len() != tt.n {
				t.Fatalf("palette has %d colours, want %d", palette.Len(), tt.n)
			}
			for _, hex := range palette.ToHex() {
				if !hexPattern.MatchString(hex) {
					t.Errorf("malformed hex colour %q", hex)
				}
			}
		})
	}
}

func TestDerivePixelsDeterministic(t *testing.T) {
	pixels := testPixels()

	for _, typ := range ValidPaletteTypes() {
		t.Run(string(typ), func(t *testing.T) {
			opts := DefaultOptions()
			opts.N = 6
			opts.Type = typ
			opts.K = 16
			opts.Seed = seedPtr(12345)

			a, err := DerivePixels(pixels, opts)
			if err != nil {
				t.Fatalf("first run error = %v", err)
			}
			b, err := DerivePixels(pixels, opts)
			if err != nil {
				t.Fatalf("second run error = %v", err)
			}

			if diff := cmp.Diff(a.ToHex(), b.ToHex()); diff != "" {
				t.Errorf("same seed produced different palettes (-a +b):\n%s", diff)
			}
		})
	}
}

func TestDerivePixelsQualitativeCapped(t *testing.T) {
	// Only three distinct colours survive: a qualitative request for more
	// is capped down rather than failing.
	pixels := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
	}

	opts := DefaultOptions()
	opts.N = 8
	opts.Seed = seedPtr(1)

	palette, err := DerivePixels(pixels, opts)
	if err != nil {
		t.Fatalf("DerivePixels() error = %v", err)
	}
	if palette.Len() != 3 {
		t.Errorf("palette has %d colours, want capped 3", palette.Len())
	}
}

func TestDerivePixelsEmptyDistribution(t *testing.T) {
	pixels := []RGB{
		{R: 50, G: 50, B: 50},
		{R: 40, G: 45, B: 50},
	}

	opts := DefaultOptions()
	opts.N = 3
	opts.BW = [2]float64{0.95, 1} // nothing is bright enough
	opts.Seed = seedPtr(1)

	_, err := DerivePixels(pixels, opts)
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if !errors.Is(err, ErrEmptyDistribution) {
		t.Errorf("error = %v, want ErrEmptyDistribution", err)
	}
}

func TestDerivePixelsSolidColour(t *testing.T) {
	// A uniform input survives the no-op trims trivially and every strategy
	// degenerates to n copies of the colour.
	pixels := make([]RGB, 64)
	for i := range pixels {
		pixels[i] = RGB{R: 90, G: 120, B: 60}
	}

	for _, typ := range ValidPaletteTypes() {
		t.Run(string(typ), func(t *testing.T) {
			opts := DefaultOptions()
			opts.N = 4
			opts.Type = typ
			opts.Seed = seedPtr(1)

			palette, err := DerivePixels(pixels, opts)
			if err != nil {
				t.Fatalf("DerivePixels() error = %v", err)
			}

			want := []string{"#5a783c", "#5a783c", "#5a783c", "#5a783c"}
			if diff := cmp.Diff(want, palette.ToHex()); diff != "" {
				t.Errorf("palette mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDerivePixelsInvalid(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = seedPtr(1)

	if _, err := DerivePixels(nil, opts); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty pixels error = %v, want ErrInvalidParameter", err)
	}

	bad := DefaultOptions()
	bad.N = 0
	if _, err := DerivePixels(testPixels(), bad); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("invalid options error = %v, want ErrInvalidParameter", err)
	}
}

func TestDeriveFromImage(t *testing.T) {
	// 2x2 image with pure red, green, blue and white: a 3-colour
	// qualitative palette keeps the saturated trio pairwise distinct.
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 255, A: 255})
	img.Set(0, 1, color.RGBA{B: 255, A: 255})
	img.Set(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	opts := DefaultOptions()
	opts.N = 3
	opts.K = 4
	opts.Seed = seedPtr(7)

	palette, err := Derive(img, opts)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if palette.Len() != 3 {
		t.Fatalf("palette has %d colours, want 3", palette.Len())
	}

	seen := make(map[string]bool)
	for _, hex := range palette.ToHex() {
		if !hexPattern.MatchString(hex) {
			t.Errorf("malformed hex colour %q", hex)
		}
		if seen[hex] {
			t.Errorf("duplicate colour %s", hex)
		}
		seen[hex] = true
	}
}

func TestDeriveNilImage(t *testing.T) {
	opts := DefaultOptions()
	if _, err := Derive(nil, opts); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
}

func TestSamplePixelsCap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	tests := []struct {
		name       string
		maxSamples int
		wantMax    int
	}{
		{name: "uncapped", maxSamples: 0, wantMax: 10000},
		{name: "capped", maxSamples: 500, wantMax: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels := samplePixels(img, tt.maxSamples)
			if len(pixels) == 0 {
				t.Fatal("no pixels sampled")
			}
			if len(pixels) > tt.wantMax {
				t.Errorf("sampled %d pixels, want at most %d", len(pixels), tt.wantMax)
			}
		})
	}
}
