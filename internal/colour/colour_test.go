package colour

import (
	"image/color"
	"math"
	"testing"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSV
	}{
		{
			name: "black",
			rgb:  RGB{R: 0, G: 0, B: 0},
			want: HSV{H: 0, S: 0, V: 0},
		},
		{
			name: "white",
			rgb:  RGB{R: 255, G: 255, B: 255},
			want: HSV{H: 0, S: 0, V: 1},
		},
		{
			name: "red",
			rgb:  RGB{R: 255, G: 0, B: 0},
			want: HSV{H: 0, S: 1, V: 1},
		},
		{
			name: "green",
			rgb:  RGB{R: 0, G: 255, B: 0},
			want: HSV{H: 1.0 / 3.0, S: 1, V: 1},
		},
		{
			name: "blue",
			rgb:  RGB{R: 0, G: 0, B: 255},
			want: HSV{H: 2.0 / 3.0, S: 1, V: 1},
		},
		{
			name: "grey",
			rgb:  RGB{R: 128, G: 128, B: 128},
			want: HSV{H: 0, S: 0, V: 128.0 / 255.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.rgb)
			if !hsvClose(got, tt.want) {
				t.Errorf("RGBToHSV(%v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestHSVRGBRoundTrip(t *testing.T) {
	colors := []RGB{
		{R: 255, G: 0, B: 0},
		{R: 0, G: 255, B: 0},
		{R: 0, G: 0, B: 255},
		{R: 255, G: 255, B: 0},
		{R: 0, G: 255, B: 255},
		{R: 255, G: 0, B: 255},
		{R: 255, G: 255, B: 255},
		{R: 0, G: 0, B: 0},
		{R: 17, G: 93, B: 201},
		{R: 200, G: 150, B: 40},
	}

	for _, c := range colors {
		t.Run(c.Hex(), func(t *testing.T) {
			got := RGBToHSV(c).RGB()
			if got != c {
				t.Errorf("round trip of %v produced %v", c, got)
			}
		})
	}
}

func TestHSVDistance(t *testing.T) {
	a := HSV{H: 0, S: 0, V: 0}
	b := HSV{H: 1, S: 0, V: 0}

	if got := a.Distance(a); got != 0 {
		t.Errorf("Distance to self = %g, want 0", got)
	}
	if got := a.Distance(b); math.Abs(got-1) > 1e-12 {
		t.Errorf("Distance = %g, want 1", got)
	}
	if a.Distance(b) != b.Distance(a) {
		t.Error("Distance is not symmetric")
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}, want: "#00ff00"},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: "#0000ff"},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: "#ffffff"},
		{name: "black", rgb: RGB{R: 0, G: 0, B: 0}, want: "#000000"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	rgb := RGB{R: 255, G: 128, B: 0}
	if got, want := rgb.String(), "rgb(255, 128, 0)"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, G: 0, B: 0, A: 255},
			want:  RGB{R: 255, G: 0, B: 0},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "grey16",
			color: color.Gray16{Y: 0x8080},
			want:  RGB{R: 128, G: 128, B: 128},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// hsvClose compares HSV values with a small tolerance.
func hsvClose(a, b HSV) bool {
	const eps = 1e-9
	return math.Abs(a.H-b.H) < eps && math.Abs(a.S-b.S) < eps && math.Abs(a.V-b.V) < eps
}
