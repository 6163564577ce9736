package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// BoundarySample is one point where a triangle edge crosses a scanline.
type BoundarySample struct {
	X      float64 // Rounded pixel column; may lie off screen or be NaN
	Z      float64
	Color  models.Color
	Normal math3d.Vec3
}

// SpanTable collects boundary samples per scanline for the triangle
// currently being drawn. It is scratch state: Reset must run before each
// triangle.
type SpanTable struct {
	rows        [][]BoundarySample
	first, last int // Affected row range; last < first when empty
}

// NewSpanTable creates a table with one row per scanline.
func NewSpanTable(height int) *SpanTable {
	s := &SpanTable{
		rows: make([][]BoundarySample, max(height, 0)),
	}
	s.first, s.last = len(s.rows), -1
	for i := range s.rows {
		s.rows[i] = make([]BoundarySample, 0, 2)
	}
	return s
}

// Height returns the number of scanlines.
func (s *SpanTable) Height() int {
	return len(s.rows)
}

// Reset empties every row touched since the last reset.
func (s *SpanTable) Reset() {
	for y := s.first; y <= s.last; y++ {
		s.rows[y] = s.rows[y][:0]
	}
	s.first, s.last = len(s.rows), -1
}

// Bounds returns the first and last rows holding samples.
// last < first when the table is empty.
func (s *SpanTable) Bounds() (first, last int) {
	return s.first, s.last
}

// Row returns the samples recorded for scanline y.
func (s *SpanTable) Row(y int) []BoundarySample {
	if y < 0 || y >= len(s.rows) {
		return nil
	}
	return s.rows[y]
}

// AddEdge records one boundary sample on every scanline the edge a→b
// crosses.
//
// Scanline r is covered once the edge reaches r - 0.5, so the edge spans
// rows [ceil(top.y-0.5), ceil(bottom.y-0.5)). The end row is excluded,
// which makes a vertex shared by two edges count once. Edges inside a
// single row add nothing. Rows off screen and edges with non-finite y are
// dropped.
func (s *SpanTable) AddEdge(a, b models.Vertex) {
	ay, by := a.Position.Y, b.Position.Y
	if math.IsNaN(ay) || math.IsInf(ay, 0) || math.IsNaN(by) || math.IsInf(by, 0) {
		return
	}

	yStart := math.Ceil(ay - 0.5)
	yEnd := math.Ceil(by - 0.5)
	if yStart == yEnd {
		return
	}
	if yEnd < yStart {
		a, b = b, a
		yStart, yEnd = yEnd, yStart
	}

	rows := yEnd - yStart

	// Only rows inside the table are visited; interpolation still starts
	// from the edge's own first row.
	lo := math.Max(yStart, 0)
	hi := math.Min(yEnd, float64(len(s.rows)))

	for yf := lo; yf < hi; yf++ {
		// Sample at the pixel center of this row.
		t := (yf - yStart + 0.5) / rows
		x := a.Position.X + (b.Position.X-a.Position.X)*t

		y := int(yf)
		s.rows[y] = append(s.rows[y], BoundarySample{
			X:      math.Ceil(x - 0.5),
			Z:      a.Position.Z + (b.Position.Z-a.Position.Z)*t,
			Color:  a.Color.Lerp(b.Color, t),
			Normal: a.Normal.Lerp(b.Normal, t),
		})

		if y < s.first {
			s.first = y
		}
		if y > s.last {
			s.last = y
		}
	}
}
