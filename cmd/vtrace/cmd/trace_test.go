package cmd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/vtrace"
)

// encodePPM writes a binary P6 PPM of a filled rectangle (fg) on a
// background (bg) over a w×h canvas, for feeding straight into
// vtrace.DecodePPM without touching the filesystem.
func encodePPM(w, h int, fg func(x, y int) bool) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n255\n", w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fg(x, y) {
				buf.Write([]byte{0, 0, 0})
			} else {
				buf.Write([]byte{255, 255, 255})
			}
		}
	}
	return buf.Bytes()
}

// traceSquareToSVG runs the full decode -> trace -> SVG pipeline on a
// filled square and returns the written SVG document, exercising the
// same path runTrace does end to end.
func traceSquareToSVG(t *testing.T, opts ...vtrace.Option) string {
	t.Helper()
	raw := encodePPM(20, 20, func(x, y int) bool {
		return x >= 4 && x < 16 && y >= 4 && y < 16
	})

	bm, err := vtrace.DecodePPM(bytes.NewReader(raw), 128)
	require.NoError(t, err)

	result, err := vtrace.Trace(bm, opts...)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, vtrace.WriteSVG(&out, result, bm.Width(), bm.Height()))
	return out.String()
}

func TestTraceSquareProducesWellFormedSVG(t *testing.T) {
	svg := traceSquareToSVG(t, vtrace.WithMode(vtrace.ModeOutline))

	require.True(t, strings.HasPrefix(svg, "<?xml"), "SVG should start with an XML declaration")
	require.Contains(t, svg, `viewBox="0 0 20 20"`)
	require.Contains(t, svg, "<path")
	require.True(t, strings.HasSuffix(strings.TrimRight(svg, "\n"), "</svg>"))
}

func TestTraceCenterlineModeProducesStrokedPath(t *testing.T) {
	svg := traceSquareToSVG(t, vtrace.WithMode(vtrace.ModeCenterline))

	require.Contains(t, svg, "<path")
	require.Contains(t, svg, "stroke", "centerline shapes should render as stroked, not filled, paths")
}

func TestTraceLooseAndTightErrorThresholdsBothEmitCubics(t *testing.T) {
	loose := traceSquareToSVG(t, vtrace.WithErrorThreshold(5))
	tight := traceSquareToSVG(t, vtrace.WithErrorThreshold(0.01))

	require.Contains(t, loose, "<path")
	require.Contains(t, tight, "<path")
	require.GreaterOrEqual(t, strings.Count(tight, "C"), 1, "a tight error threshold should still emit cubic segments")
}
