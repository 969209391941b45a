package colour

import "math"

// Ramp produces n colours by piecewise-linear interpolation through the
// control colours in RGB space, with control points at equal parametric
// intervals. The first and last output colours equal the first and last
// controls bit-exact. Deterministic given its inputs.
//
// A single control colour degenerates to n copies of itself; n=1 returns the
// first control.
func Ramp(controls []RGB, n int) []RGB {
	if len(controls) == 0 || n < 1 {
		return nil
	}

	out := make([]RGB, n)
	if len(controls) == 1 {
		for i := range out {
			out[i] = controls[0]
		}
		return out
	}
	if n == 1 {
		out[0] = controls[0]
		return out
	}

	segments := float64(len(controls) - 1)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1) * segments
		idx := int(t)
		if idx >= len(controls)-1 {
			idx = len(controls) - 2
		}
		frac := t - float64(idx)
		out[i] = lerpRGB(controls[idx], controls[idx+1], frac)
	}
	return out
}

// lerpRGB linearly interpolates between two colours; frac in [0, 1].
func lerpRGB(a, b RGB, frac float64) RGB {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return RGB{
		R: lerp(a.R, b.R),
		G: lerp(a.G, b.G),
		B: lerp(a.B, b.B),
	}
}
