package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/imgpal/internal/colour"
)

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	case "table":
		return formatTable(palette, showPreview), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json, table)", format)
	}
}

// formatHex formats the palette as hex colour codes, one per line.
func formatHex(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, c := range palette.Colors {
		if showPreview {
			sb.WriteString(colour.FormatWithPreview(c, 8))
		} else {
			sb.WriteString(c.Hex())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatRGB formats the palette as RGB values, one per line.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	var sb strings.Builder
	for _, c := range palette.Colors {
		if showPreview {
			sb.WriteString(colour.Preview(c, 8))
			sb.WriteString("  ")
		}
		sb.WriteString(c.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatTable formats the palette as an aligned table of index, hex and RGB
// columns, with an optional swatch column.
func formatTable(palette *colour.Palette, showPreview bool) string {
	headers := []string{"#", "HEX", "RGB"}
	if showPreview {
		headers = append(headers, "PREVIEW")
	}

	table := NewTable(headers)
	for i, c := range palette.Colors {
		row := []string{strconv.Itoa(i + 1), c.Hex(), c.String()}
		if showPreview {
			row = append(row, colour.Preview(c, 8))
		}
		table.AddRow(row)
	}
	return table.Render()
}

// parseRange parses a "lo,hi" pair of floats.
func parseRange(s string) ([2]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return [2]float64{}, fmt.Errorf("expected lo,hi pair, got %q", s)
	}

	var r [2]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return [2]float64{}, fmt.Errorf("invalid number %q: %w", part, err)
		}
		r[i] = v
	}
	return r, nil
}

// parseHexColour parses a hex colour string (#RRGGBB or RRGGBB).
func parseHexColour(hex string) (colour.RGB, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return colour.RGB{}, fmt.Errorf("expected 6 hex digits, got %q", hex)
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return colour.RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}

	return colour.RGB{R: r, G: g, B: b}, nil
}
