package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/imgpal/internal/colour"
	"github.com/jmylchreest/imgpal/internal/image"
	"github.com/jmylchreest/imgpal/internal/seed"
)

var (
	// Palette command flags
	paletteN          int
	paletteType       string
	paletteK          int
	paletteBW         string
	paletteBrightness string
	paletteSaturation string
	paletteSeqBy      string
	paletteDivCenter  string
	paletteSeedMode   string
	paletteSeedValue  int64
	paletteMaxSamples int
	paletteFormat     string
	paletteOutput     string
	palettePreview    bool
)

// paletteCmd represents the palette command.
var paletteCmd = &cobra.Command{
	Use:   "palette <image>",
	Short: "Derive a colour palette from an image",
	Long: `Derive an ordered colour palette from an image.

The palette command filters the image's colour distribution, clusters it in
HSV space and assembles a palette of the requested type. If the image
argument is a directory, a random image inside it is used.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # 8 well-separated qualitative colours
  imgpal palette wallpaper.jpg

  # A 16-step sequential ramp sorted by value, then hue, then saturation
  imgpal palette --type seq --seq-by vhs -n 16 wallpaper.png

  # A divergent ramp around a custom center colour
  imgpal palette --type div --div-center "#f0f0f0" -n 9 wallpaper.jpg

  # Trim near-black/near-white pixels and the brightness tails
  imgpal palette --bw 0.1,0.9 --brightness 0.05,0.95 wallpaper.jpg

  # Reproducible palette from an explicit seed
  imgpal palette --seed-mode manual --seed-value 42 wallpaper.jpg

  # JSON output written to a file
  imgpal palette --format json --output palette.json wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	flags := paletteCmd.Flags()
	flags.IntVarP(&paletteN, "n", "n", 8, "number of colours in the palette")
	flags.StringVarP(&paletteType, "type", "t", "qual", "palette type (qual, seq, div)")
	flags.IntVarP(&paletteK, "k", "k", 100, "number of clusters for colour quantization")
	flags.StringVar(&paletteBW, "bw", "0,1", "near-black/near-white trim range as lo,hi")
	flags.StringVar(&paletteBrightness, "brightness", "0,1", "brightness quantile trim range as lo,hi")
	flags.StringVar(&paletteSaturation, "saturation", "0,1", "saturation quantile trim range as lo,hi")
	flags.StringVar(&paletteSeqBy, "seq-by", "hsv", "HSV sort precedence for sequential palettes (permutation of hsv)")
	flags.StringVar(&paletteDivCenter, "div-center", "#ffffff", "center colour for divergent palettes (hex)")
	flags.StringVar(&paletteSeedMode, "seed-mode", string(seed.ModeContent), "seed mode: content, filepath, manual, random")
	flags.Int64Var(&paletteSeedValue, "seed-value", 0, "seed value (only used with --seed-mode=manual)")
	flags.IntVar(&paletteMaxSamples, "max-samples", 0, "cap on sampled pixels (0 = use every pixel)")
	flags.StringVarP(&paletteFormat, "format", "f", "hex", "output format (hex, rgb, json, table)")
	flags.StringVarP(&paletteOutput, "output", "o", "", "output file (default: stdout)")
	flags.BoolVar(&palettePreview, "preview", false, "show colour previews in terminal")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	imagePath := args[0]

	if err := image.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	// Directories resolve to a random image inside them.
	resolved, err := image.ResolveImagePath(imagePath)
	if err != nil {
		return fmt.Errorf("failed to resolve image path: %w", err)
	}
	if resolved != imagePath {
		logger.Debug("resolved directory to image", "path", resolved)
	}

	loader := image.NewSmartLoader()
	img, err := loader.Load(resolved)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	logger.Debug("image loaded", "path", resolved, "width", bounds.Dx(), "height", bounds.Dy())

	opts, err := buildOptions(logger)
	if err != nil {
		return err
	}

	// Seed the derivation unless running in non-deterministic mode.
	mode, err := seed.ParseMode(paletteSeedMode)
	if err != nil {
		return err
	}
	if mode != seed.ModeRandom {
		seedCfg := seed.Config{Mode: mode}
		if mode == seed.ModeManual {
			seedCfg.Value = &paletteSeedValue
		}
		s, err := seed.Calculate(img, resolved, seedCfg)
		if err != nil {
			return fmt.Errorf("failed to calculate seed: %w", err)
		}
		opts.Seed = &s
		logger.Debug("seeded derivation", "mode", mode, "seed", s)
	}

	palette, err := colour.Derive(img, opts)
	if err != nil {
		return fmt.Errorf("failed to derive palette: %w", err)
	}

	// Previews only make sense on a terminal and never in an output file.
	preview := palettePreview && paletteOutput == "" && term.IsTerminal(int(os.Stdout.Fd()))

	output, err := formatPalette(palette, paletteFormat, preview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if paletteOutput != "" {
		if err := os.WriteFile(paletteOutput, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Debug("wrote palette", "path", paletteOutput)
		return nil
	}

	fmt.Print(output)
	return nil
}

// buildOptions translates the command flags into derivation options.
func buildOptions(logger hclog.Logger) (colour.Options, error) {
	opts := colour.DefaultOptions()
	opts.N = paletteN
	opts.K = paletteK
	opts.SeqBy = paletteSeqBy
	opts.MaxSamples = paletteMaxSamples
	opts.Logger = logger

	paletteTypeParsed, err := colour.ParsePaletteType(paletteType)
	if err != nil {
		return colour.Options{}, err
	}
	opts.Type = paletteTypeParsed

	if opts.BW, err = parseRange(paletteBW); err != nil {
		return colour.Options{}, fmt.Errorf("invalid --bw: %w", err)
	}
	if opts.Brightness, err = parseRange(paletteBrightness); err != nil {
		return colour.Options{}, fmt.Errorf("invalid --brightness: %w", err)
	}
	if opts.Saturation, err = parseRange(paletteSaturation); err != nil {
		return colour.Options{}, fmt.Errorf("invalid --saturation: %w", err)
	}
	if opts.DivCenter, err = parseHexColour(paletteDivCenter); err != nil {
		return colour.Options{}, fmt.Errorf("invalid --div-center: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return colour.Options{}, err
	}
	return opts, nil
}

// newLogger builds the CLI logger: debug output on stderr when verbose,
// discarded otherwise.
func newLogger(verbose bool) hclog.Logger {
	if verbose {
		return hclog.New(&hclog.LoggerOptions{
			Name:   "imgpal",
			Output: os.Stderr,
			Level:  hclog.Debug,
		})
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "imgpal",
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
