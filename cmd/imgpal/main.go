// Imgpal derives small, ordered colour palettes from images.
package main

import (
	"github.com/jmylchreest/imgpal/internal/cli"
)

func main() {
	cli.Execute()
}
