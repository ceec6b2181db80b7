package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/vtrace"
)

var (
	flagConfig     string
	flagMode       string
	flagTurnPolicy string
	flagError      float64
	flagSimplify   float64
	flagCorner     float64
	flagLength     float64
	flagOptimize   bool
	flagColorMax   int
	flagThreads    int
	flagDebug      []string
)

var traceCmd = &cobra.Command{
	Use:   "trace <input.ppm> <output.svg>",
	Short: "Trace a PPM bitmap into an SVG",
	Args:  cobra.ExactArgs(2),
	RunE:  runTrace,
}

func init() {
	RootCmd.AddCommand(traceCmd)

	traceCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file (flags override)")
	traceCmd.Flags().StringVar(&flagMode, "mode", "", "outline or centerline (default outline)")
	traceCmd.Flags().StringVar(&flagTurnPolicy, "turn-policy", "", "black, white, majority, or minority (default minority)")
	traceCmd.Flags().Float64Var(&flagError, "error-threshold", 0, "max curve-fit distance error")
	traceCmd.Flags().Float64Var(&flagSimplify, "simplify-threshold", 0, "quadric simplify threshold (compared squared)")
	traceCmd.Flags().Float64Var(&flagCorner, "corner-threshold", 0, "corner tangent-divergence angle (radians)")
	traceCmd.Flags().Float64Var(&flagLength, "length-threshold", 0, "max polygon edge length before fitting")
	traceCmd.Flags().BoolVar(&flagOptimize, "optimize", false, "exhaustive split-point search")
	traceCmd.Flags().IntVar(&flagColorMax, "color-max", 0, "PPM foreground threshold channel max")
	traceCmd.Flags().IntVar(&flagThreads, "threads", 0, "worker count, 0 = all CPUs")
	traceCmd.Flags().StringSliceVar(&flagDebug, "debug", nil, "debug passes to emit: pixel, pre-fit, tangent")
}

func runTrace(c *cobra.Command, args []string) error {
	var opts []vtrace.Option
	colorMax := flagColorMax
	if flagConfig != "" {
		cfg, err := LoadConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		opts = append(opts, cfg.Options()...)
		if colorMax <= 0 {
			colorMax = cfg.ColorMax
		}
	}
	opts = append(opts, flagOptions()...)

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	bm, err := vtrace.DecodePPM(in, colorMax)
	if err != nil {
		return err
	}

	mask := debugMaskFromFlags(flagDebug)
	result, err := vtrace.TraceWithDebug(bm, mask, opts...)
	if err != nil {
		return err
	}

	out, err := os.Create(args[1])
	if err != nil {
		return err
	}
	defer out.Close()

	return vtrace.WriteSVG(out, result, bm.Width(), bm.Height())
}

func flagOptions() []vtrace.Option {
	var opts []vtrace.Option
	switch flagMode {
	case "centerline":
		opts = append(opts, vtrace.WithMode(vtrace.ModeCenterline))
	case "outline":
		opts = append(opts, vtrace.WithMode(vtrace.ModeOutline))
	}
	switch flagTurnPolicy {
	case "black":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyBlack))
	case "white":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyWhite))
	case "majority":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyMajority))
	case "minority":
		opts = append(opts, vtrace.WithTurnPolicy(vtrace.TurnPolicyMinority))
	}
	if flagError > 0 {
		opts = append(opts, vtrace.WithErrorThreshold(flagError))
	}
	if flagSimplify > 0 {
		opts = append(opts, vtrace.WithSimplifyThreshold(flagSimplify))
	}
	if flagCorner > 0 {
		opts = append(opts, vtrace.WithCornerThreshold(flagCorner))
	}
	if flagLength > 0 {
		opts = append(opts, vtrace.WithLengthThreshold(flagLength))
	}
	if flagOptimize {
		opts = append(opts, vtrace.WithOptimize(true))
	}
	if flagColorMax > 0 {
		opts = append(opts, vtrace.WithColorMax(flagColorMax))
	}
	if flagThreads > 0 {
		opts = append(opts, vtrace.WithThreads(flagThreads))
	}
	return opts
}

func debugMaskFromFlags(names []string) vtrace.DebugPassKind {
	var mask vtrace.DebugPassKind
	for _, n := range names {
		switch n {
		case "pixel":
			mask |= vtrace.DebugPixel
		case "pre-fit":
			mask |= vtrace.DebugPreFit
		case "tangent":
			mask |= vtrace.DebugTangent
		}
	}
	return mask
}
