package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for truecolor terminal output.
const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Preview returns an ANSI-coloured swatch for a colour: a solid block of
// spaces painted with the background colour. Width is the block width in
// characters.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	bg := fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix)
	return bg + strings.Repeat(" ", width) + ansiReset
}

// FormatWithPreview formats a colour as a swatch followed by its hex code.
func FormatWithPreview(c RGB, width int) string {
	return fmt.Sprintf("%s %s", Preview(c, width), c.Hex())
}
