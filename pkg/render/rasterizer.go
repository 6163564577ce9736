// Package render provides the scanline software rasterizer for scanline.
package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scanline/pkg/models"
)

// Surface receives the rasterizer's pixel writes.
// Implementations must ignore out-of-bounds coordinates.
type Surface interface {
	SetPixel(x, y int, c color.RGBA)
}

// Rasterizer fills screen-space triangles one scanline at a time.
type Rasterizer struct {
	width   int
	height  int
	surface Surface
	depth   *DepthBuffer
	spans   *SpanTable
	Stats   Stats // Counters since the last ResetStats
}

// Stats counts rasterizer work for debugging and tests.
type Stats struct {
	Triangles      int // Triangles submitted
	PixelsWritten  int // Pixels that passed the depth test
	PixelsOccluded int // Pixels rejected by the depth test
	RowsSkipped    int // Rows with samples but not exactly two
}

// NewRasterizer creates a rasterizer drawing into surface, which must be
// width×height pixels.
func NewRasterizer(width, height int, surface Surface) *Rasterizer {
	return &Rasterizer{
		width:   max(width, 0),
		height:  max(height, 0),
		surface: surface,
		depth:   NewDepthBuffer(width, height),
		spans:   NewSpanTable(height),
	}
}

// Width returns the surface width.
func (r *Rasterizer) Width() int {
	return r.width
}

// Height returns the surface height.
func (r *Rasterizer) Height() int {
	return r.height
}

// Depth returns the depth buffer.
func (r *Rasterizer) Depth() *DepthBuffer {
	return r.depth
}

// SetSurface replaces the pixel sink. It must match the rasterizer size.
func (r *Rasterizer) SetSurface(s Surface) {
	r.surface = s
}

// ClearDepth starts a new depth epoch.
func (r *Rasterizer) ClearDepth() {
	r.depth.Clear()
}

// ResetStats zeroes the counters.
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// DrawTriangle fills a screen-space triangle with depth testing and
// diffuse lighting. Edges are walked in vertex order 0-1, 1-2, 2-0.
// light.Direction must be unit length; see Lighting.Normalized.
func (r *Rasterizer) DrawTriangle(tri models.Triangle, light Lighting) {
	r.Stats.Triangles++

	// Collinear vertices enclose no pixels.
	if degenerate(tri) {
		return
	}

	r.spans.Reset()
	r.spans.AddEdge(tri.V[0], tri.V[1])
	r.spans.AddEdge(tri.V[1], tri.V[2])
	r.spans.AddEdge(tri.V[2], tri.V[0])

	r.drawSpans(light)
}

// collinearTolerance bounds |area2| relative to the squared edge lengths
// below which a triangle counts as collinear.
const collinearTolerance = 1e-9

// degenerate reports whether tri's screen-space vertices are collinear to
// within rounding. Non-finite vertices are left to the edge builder.
func degenerate(tri models.Triangle) bool {
	p0, p1, p2 := tri.V[0].Position, tri.V[1].Position, tri.V[2].Position
	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y

	area2 := ax*by - bx*ay
	scale := ax*ax + ay*ay + bx*bx + by*by
	return math.Abs(area2) <= collinearTolerance*scale
}

// drawSpans fills every row of the span table that holds exactly two
// samples, inclusive of both end columns.
func (r *Rasterizer) drawSpans(light Lighting) {
	first, last := r.spans.Bounds()
	maxX := float64(r.width - 1)

	for y := first; y <= last; y++ {
		row := r.spans.rows[y]
		if len(row) != 2 {
			if len(row) > 0 {
				r.Stats.RowsSkipped++
			}
			continue
		}

		left, right := row[0], row[1]
		if right.X < left.X {
			left, right = right, left
		}
		if math.IsNaN(left.X) || math.IsNaN(right.X) || math.IsInf(left.X, 0) || math.IsInf(right.X, 0) {
			r.Stats.RowsSkipped++
			continue
		}

		step := 0.0
		if right.X > left.X {
			step = 1 / (right.X - left.X)
		}

		// Clip the walk to the surface; t still measures from left.X.
		lo := math.Max(left.X, 0)
		hi := math.Min(right.X, maxX)
		offset := y * r.width

		for xf := lo; xf <= hi; xf++ {
			t := (xf - left.X) * step
			z := left.Z + (right.Z-left.Z)*t
			x := int(xf)

			if !r.depth.testAndSet(offset+x, z) {
				r.Stats.PixelsOccluded++
				continue
			}

			c := left.Color.Lerp(right.Color, t)
			n := left.Normal.Lerp(right.Normal, t)
			r.surface.SetPixel(x, y, ToRGBA(light.Shade(c, n)))
			r.Stats.PixelsWritten++
		}
	}
}
