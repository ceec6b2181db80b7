// Command vtrace traces a monochrome PPM bitmap into an SVG of cubic
// Bézier curves.
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/vtrace/cmd/vtrace/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}
