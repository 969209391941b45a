// Package cli provides the command-line interface for imgpal.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/imgpal/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "imgpal",
	Short: "Derive colour palettes from images",
	Long: `Imgpal derives small, ordered colour palettes from the pixel content of
arbitrary images.

Three palette types are supported: qualitative (well-separated colours for
categorical data), sequential (a monotone ramp) and divergent (a symmetric
ramp around a center colour). The pipeline filters the colour distribution,
clusters it in HSV space and assembles the palette with randomized
optimization heuristics; a fixed seed reproduces a fixed palette.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(paletteCmd)
}

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
