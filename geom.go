package vtrace

import (
	"github.com/gogpu/vtrace/internal/geom"
	"github.com/gogpu/vtrace/internal/outline"
)

// Point represents a 2D point or vector, shared by every stage of the
// tracing pipeline.
type Point = geom.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point { return geom.Pt(x, y) }

// TurnPolicy resolves the ambiguous checkerboard case during outline
// extraction. See the internal/outline package for details.
type TurnPolicy = outline.TurnPolicy

const (
	TurnPolicyBlack    = outline.TurnBlack
	TurnPolicyWhite    = outline.TurnWhite
	TurnPolicyMajority = outline.TurnMajority
	TurnPolicyMinority = outline.TurnMinority
)
