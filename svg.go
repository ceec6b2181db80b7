package vtrace

import (
	"fmt"
	"io"

	"github.com/gogpu/vtrace/internal/polyutil"
)

// WriteSVG renders result as an SVG document sized width×height, writing
// filled paths for Outline-mode shapes and stroked paths for Centerline-
// mode shapes.
func WriteSVG(w io.Writer, result *Result, width, height int) error {
	return WriteSVGScaled(w, result, width, height, 1.0)
}

// WriteSVGScaled is WriteSVG with an explicit output scale factor applied
// to the viewBox, matching the reference writer's scale parameter.
func WriteSVGScaled(w io.Writer, result *Result, width, height int, scale float64) error {
	if err := writeSVGHeader(w, width, height, scale); err != nil {
		return err
	}
	for _, shape := range result.Shapes {
		if err := writeShape(w, shape); err != nil {
			return err
		}
	}
	if len(result.Tangents) > 0 {
		if err := writeTangents(w, result.Tangents); err != nil {
			return err
		}
	}
	for kind, polys := range result.DebugPasses {
		if err := writeDebugOverlay(w, polys, kind); err != nil {
			return err
		}
	}
	return writeSVGFooter(w)
}

func writeSVGHeader(w io.Writer, width, height int, scale float64) error {
	_, err := fmt.Fprintf(w,
		"<?xml version=\"1.0\" standalone=\"no\"?>\n"+
			"<svg xmlns=\"http://www.w3.org/2000/svg\" "+
			"width=\"%d\" height=\"%d\" viewBox=\"0 0 %g %g\">\n",
		width, height, float64(width)*scale, float64(height)*scale)
	return err
}

func writeSVGFooter(w io.Writer) error {
	_, err := fmt.Fprint(w, "</svg>\n")
	return err
}

func writeShape(w io.Writer, shape Shape) error {
	if len(shape.Knots) == 0 {
		return nil
	}
	d := pathData(shape)
	if shape.Closed {
		_, err := fmt.Fprintf(w, "<path d=\"%s Z\" fill=\"black\" fill-rule=\"evenodd\"/>\n", d)
		return err
	}
	_, err := fmt.Fprintf(w, "<path d=\"%s\" fill=\"none\" stroke=\"black\" stroke-width=\"1\"/>\n", d)
	return err
}

func pathData(shape Shape) string {
	knots := shape.Knots
	d := fmt.Sprintf("M %g,%g", knots[0].Pos.X, knots[0].Pos.Y)
	n := len(knots)
	limit := n - 1
	if shape.Closed {
		limit = n
	}
	for i := 0; i < limit; i++ {
		a := knots[i]
		b := knots[(i+1)%n]
		d += fmt.Sprintf(" C %g,%g %g,%g %g,%g",
			a.HandleOut.X, a.HandleOut.Y,
			b.HandleIn.X, b.HandleIn.Y,
			b.Pos.X, b.Pos.Y)
	}
	return d
}

func writeTangents(w io.Writer, rays []TangentRay) error {
	const length = 8.0
	for _, r := range rays {
		end := r.Pos.Add(r.Dir.Mul(length))
		if _, err := fmt.Fprintf(w,
			"<line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"red\" stroke-width=\"0.5\"/>\n",
			r.Pos.X, r.Pos.Y, end.X, end.Y); err != nil {
			return err
		}
	}
	return nil
}

// writeDebugOverlay emits a filled/stroked preview of an intermediate
// polygon list, matching the reference writer's semi-transparent debug
// pass overlays (white stroke, black fill, both at 0.5 opacity).
func writeDebugOverlay(w io.Writer, polys []polyutil.Polygon, kind DebugPassKind) error {
	if _, err := fmt.Fprintf(w, "<g class=\"debug-%d\" fill=\"black\" fill-opacity=\"0.5\" "+
		"stroke=\"white\" stroke-opacity=\"0.5\">\n", kind); err != nil {
		return err
	}
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		d := fmt.Sprintf("M %g,%g", poly[0].X, poly[0].Y)
		for _, pt := range poly[1:] {
			d += fmt.Sprintf(" L %g,%g", pt.X, pt.Y)
		}
		if _, err := fmt.Fprintf(w, "<path d=\"%s Z\"/>\n", d); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "</g>\n")
	return err
}
