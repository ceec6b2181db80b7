// Package vtrace converts monochrome raster images into cubic Bézier
// curves.
//
// # Overview
//
// vtrace traces a bitmap's foreground regions into vector outlines or
// single-pixel centerlines, simplifies the resulting polygons, and fits
// each with as few cubic Bézier segments as the configured error budget
// allows.
//
// # Quick Start
//
//	import "github.com/gogpu/vtrace"
//
//	in, _ := os.Open("in.ppm")
//	bm, err := vtrace.DecodePPM(in, 0) // 0: use the header's maxval
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := vtrace.Trace(bm)
//	if err != nil {
//		log.Fatal(err)
//	}
//	svg, _ := os.Create("out.svg")
//	vtrace.WriteSVG(svg, result, bm.Width(), bm.Height())
//
// # Pipeline
//
// Trace runs, in order: boundary or skeleton extraction, midpoint
// subdivision, quadric-error polygon simplification, a second midpoint
// subdivision, length-limit subdivision, and finally the incremental
// knot-fitting engine that produces the cubic list.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Params, Trace, Result, SVG/PPM codecs
//   - internal/geom: 2-D vector primitives
//   - internal/outline, internal/centerline: raster-to-polygon extraction
//   - internal/polyutil, internal/simplify: polygon preparation
//   - internal/fit, internal/knot: cubic curve fitting
//   - internal/parallel: per-polygon fan-out
package vtrace
