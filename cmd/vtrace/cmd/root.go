// Package cmd implements the vtrace command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd is the base command; subcommands register themselves via init().
var RootCmd = &cobra.Command{
	Use:   "vtrace",
	Short: "Trace monochrome raster images into SVG curves",
	Long: `vtrace converts a monochrome PPM bitmap into a vector SVG by
extracting boundary or skeleton polygons, simplifying them, and fitting
each with as few cubic Bézier segments as the configured error budget
allows.`,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
