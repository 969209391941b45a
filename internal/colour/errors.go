package colour

import "errors"

// Sentinel errors for the derivation pipeline. Callers match these with
// errors.Is; the wrapped message names the stage and thresholds involved so
// parameters can be adjusted.
var (
	// ErrInvalidParameter indicates a precondition violation in Options.
	// No partial computation is attempted.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyDistribution indicates the distribution filter removed every
	// pixel. The bw, brightness or saturation ranges are too strict for the
	// image.
	ErrEmptyDistribution = errors.New("empty colour distribution")
)
