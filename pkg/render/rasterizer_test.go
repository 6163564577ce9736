package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

var (
	red   = models.Color{R: 1, G: 0, B: 0, A: 1}
	green = models.Color{R: 0, G: 1, B: 0, A: 1}
)

// screenTri builds a flat-colored screen-space triangle at constant depth.
func screenTri(x0, y0, x1, y1, x2, y2, z float64, c models.Color, n math3d.Vec3) models.Triangle {
	return models.Triangle{V: [3]models.Vertex{
		{Position: math3d.V3(x0, y0, z), Color: c, Normal: n},
		{Position: math3d.V3(x1, y1, z), Color: c, Normal: n},
		{Position: math3d.V3(x2, y2, z), Color: c, Normal: n},
	}}
}

// createTestRasterizer creates a rasterizer over a black framebuffer.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	fb.Clear(ColorBlack)
	return NewRasterizer(width, height, fb), fb
}

func facingNormal() math3d.Vec3 { return math3d.V3(0, 0, -1) }

func TestDrawTriangle_FullFacingRedSaturates(t *testing.T) {
	r, fb := createTestRasterizer(200, 200)
	light := DefaultLighting()

	tri := screenTri(10, 10, 110, 10, 60, 110, 5, red, facingNormal())
	r.DrawTriangle(tri, light)

	want := RGB(255, 0, 0)
	filled := 0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.GetPixel(x, y)
			if c == ColorBlack {
				continue
			}
			filled++
			if c != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
			if x < 10 || x > 110 || y < 10 || y >= 110 {
				t.Fatalf("pixel (%d,%d) outside triangle bounds", x, y)
			}
		}
	}

	if fb.GetPixel(60, 50) != want {
		t.Error("triangle interior should be filled")
	}
	if filled != r.Stats.PixelsWritten {
		t.Errorf("framebuffer has %d filled pixels, stats report %d", filled, r.Stats.PixelsWritten)
	}
}

func TestDrawTriangle_AreaMatchesAnalytic(t *testing.T) {
	tests := []struct {
		name string
		tri  models.Triangle
	}{
		{"isoceles", screenTri(10, 10, 110, 10, 60, 110, 5, red, facingNormal())},
		{"right angle", screenTri(20.3, 15.7, 140.2, 15.7, 20.3, 95.1, 5, red, facingNormal())},
		{"skewed", screenTri(5.5, 30.25, 150.75, 4.1, 90.4, 170.9, 5, red, facingNormal())},
		{"reverse winding", screenTri(60, 110, 110, 10, 10, 10, 5, red, facingNormal())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(200, 200)
			r.DrawTriangle(tc.tri, DefaultLighting())

			p := tc.tri.V
			area := math.Abs((p[1].Position.X-p[0].Position.X)*(p[2].Position.Y-p[0].Position.Y)-
				(p[2].Position.X-p[0].Position.X)*(p[1].Position.Y-p[0].Position.Y)) / 2

			minY := math.Min(p[0].Position.Y, math.Min(p[1].Position.Y, p[2].Position.Y))
			maxY := math.Max(p[0].Position.Y, math.Max(p[1].Position.Y, p[2].Position.Y))
			minX := math.Min(p[0].Position.X, math.Min(p[1].Position.X, p[2].Position.X))
			maxX := math.Max(p[0].Position.X, math.Max(p[1].Position.X, p[2].Position.X))
			// One pixel row plus one pixel column of slack.
			tolerance := (maxY - minY) + (maxX - minX) + 2

			got := float64(len(fb.Pixels) - fb.Count(ColorBlack))
			if math.Abs(got-area) > tolerance {
				t.Errorf("filled %v pixels, analytic area %v (tolerance %v)", got, area, tolerance)
			}
		})
	}
}

func TestDrawTriangle_NearerWinsInEitherOrder(t *testing.T) {
	near := screenTri(10, 10, 110, 10, 60, 110, 5, red, facingNormal())
	far := screenTri(10, 10, 110, 10, 60, 110, 10, green, facingNormal())

	orders := []struct {
		name  string
		first models.Triangle
		then  models.Triangle
	}{
		{"far then near", far, near},
		{"near then far", near, far},
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(200, 200)
			r.DrawTriangle(tc.first, DefaultLighting())
			r.DrawTriangle(tc.then, DefaultLighting())

			if got := fb.GetPixel(60, 50); got != RGB(255, 0, 0) {
				t.Errorf("overlap pixel = %v, want lit red", got)
			}
			if d := r.Depth().At(60, 50); d != 5 {
				t.Errorf("depth at overlap = %v, want 5", d)
			}
			if fb.Count(RGB(0, 255, 0)) != 0 {
				t.Error("no pixel of the farther triangle should survive")
			}
		})
	}
}

func TestDrawTriangle_IntersectingDepthGradients(t *testing.T) {
	// Two triangles whose depth ramps cross at x = 60: each should win on
	// its nearer side regardless of draw order.
	mk := func(zl, zr float64, c models.Color) models.Triangle {
		tri := screenTri(10, 10, 110, 10, 60, 110, 0, c, facingNormal())
		tri.V[0].Position.Z = zl
		tri.V[1].Position.Z = zr
		tri.V[2].Position.Z = (zl + zr) / 2
		return tri
	}
	a := mk(1, 11, red)
	b := mk(11, 1, green)

	for _, order := range [][2]models.Triangle{{a, b}, {b, a}} {
		r, fb := createTestRasterizer(200, 200)
		r.DrawTriangle(order[0], DefaultLighting())
		r.DrawTriangle(order[1], DefaultLighting())

		if got := fb.GetPixel(20, 12); got != RGB(255, 0, 0) {
			t.Errorf("left side = %v, want red", got)
		}
		if got := fb.GetPixel(100, 12); got != RGB(0, 255, 0) {
			t.Errorf("right side = %v, want green", got)
		}
	}
}

func TestDepthBuffer_MonotonicWithinEpoch(t *testing.T) {
	r, _ := createTestRasterizer(120, 120)
	tris := []models.Triangle{
		screenTri(10, 10, 110, 10, 60, 110, 20, red, facingNormal()),
		screenTri(0, 50, 119, 40, 30, 119, 5, green, facingNormal()),
		screenTri(10, 10, 110, 10, 60, 110, 30, red, facingNormal()),
		screenTri(5, 5, 100, 80, 20, 115, 1, green, facingNormal()),
	}

	prev := make([]float64, 120*120)
	for i := range prev {
		prev[i] = math.Inf(1)
	}

	for i, tri := range tris {
		r.DrawTriangle(tri, DefaultLighting())
		for y := 0; y < 120; y++ {
			for x := 0; x < 120; x++ {
				d := r.Depth().At(x, y)
				if d > prev[y*120+x] {
					t.Fatalf("after triangle %d depth at (%d,%d) rose from %v to %v", i, x, y, prev[y*120+x], d)
				}
				prev[y*120+x] = d
			}
		}
	}
}

func TestDrawTriangle_DegenerateDrawsNothing(t *testing.T) {
	tests := []struct {
		name string
		tri  models.Triangle
	}{
		{"two identical vertices", screenTri(10, 10, 10, 10, 60, 60, 5, red, facingNormal())},
		{"all identical", screenTri(30, 30, 30, 30, 30, 30, 5, red, facingNormal())},
		{"collinear diagonal", screenTri(10, 10, 50, 50, 90, 90, 5, red, facingNormal())},
		{"collinear vertical", screenTri(40, 10, 40, 50, 40, 90, 5, red, facingNormal())},
		{"horizontal sliver", screenTri(10, 20, 50, 20.2, 90, 20.1, 5, red, facingNormal())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, fb := createTestRasterizer(100, 100)
			r.DrawTriangle(tc.tri, DefaultLighting())

			if n := len(fb.Pixels) - fb.Count(ColorBlack); n != 0 {
				t.Errorf("degenerate triangle filled %d pixels", n)
			}
		})
	}
}

func TestDrawTriangle_InexactCollinearDrawsNothing(t *testing.T) {
	// The middle vertex lies on the segment p0-p2 up to rounding, so the
	// signed area is tiny but not zero.
	tests := []struct {
		name   string
		p0, p2 math3d.Vec3
		k      float64
	}{
		{"steep", math3d.V3(10.152, 10.3, 0), math3d.V3(90.7, 81.016, 0), 0.3744},
		{"midpoint", math3d.V3(10.152, 10.3, 0), math3d.V3(90.7, 81.016, 0), 0.5},
		{"shallow", math3d.V3(3.1, 47.77, 0), math3d.V3(96.3, 52.9, 0), 0.713},
		{"vertical-ish", math3d.V3(50.01, 2.2, 0), math3d.V3(50.37, 97.9, 0), 0.271},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p1 := tc.p0.Add(tc.p2.Sub(tc.p0).Scale(tc.k))

			for _, order := range [][3]math3d.Vec3{{tc.p0, p1, tc.p2}, {p1, tc.p2, tc.p0}, {tc.p2, tc.p0, p1}} {
				r, fb := createTestRasterizer(100, 100)
				tri := screenTri(order[0].X, order[0].Y, order[1].X, order[1].Y, order[2].X, order[2].Y, 5, red, facingNormal())
				r.DrawTriangle(tri, DefaultLighting())

				if n := len(fb.Pixels) - fb.Count(ColorBlack); n != 0 {
					t.Errorf("collinear %v filled %d pixels", order, n)
				}
			}
		})
	}
}

func TestDrawTriangle_ThinTriangleStillDraws(t *testing.T) {
	r, fb := createTestRasterizer(100, 100)
	r.DrawTriangle(screenTri(10, 10, 90, 90, 10, 14, 5, red, facingNormal()), DefaultLighting())

	if fb.Count(RGB(255, 0, 0)) == 0 {
		t.Error("thin but non-degenerate triangle drew nothing")
	}
}

func TestDrawTriangle_OutOfRangeIsSafe(t *testing.T) {
	inf := math.Inf(1)
	nan := math.NaN()

	tests := []struct {
		name string
		tri  models.Triangle
	}{
		{"huge coordinates", screenTri(-1e12, -1e12, 1e12, 5, 5, 1e12, 5, red, facingNormal())},
		{"fully off screen", screenTri(-500, -500, -400, -500, -450, -400, 5, red, facingNormal())},
		{"past bottom right", screenTri(90, 90, 500, 95, 95, 500, 5, red, facingNormal())},
		{"infinite x", screenTri(inf, 10, 20, 50, 30, 80, 5, red, facingNormal())},
		{"infinite y", screenTri(10, inf, 20, 50, 30, 80, 5, red, facingNormal())},
		{"nan vertex", screenTri(nan, nan, 20, 50, 30, 80, 5, red, facingNormal())},
		{"nan depth", screenTri(10, 10, 90, 10, 50, 90, nan, red, facingNormal())},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, _ := createTestRasterizer(100, 100)
			r.DrawTriangle(tc.tri, DefaultLighting())

			for y := 0; y < 100; y++ {
				for x := 0; x < 100; x++ {
					if math.IsNaN(r.Depth().At(x, y)) {
						t.Fatalf("NaN written to depth at (%d,%d)", x, y)
					}
				}
			}
		})
	}
}

func TestDrawTriangle_HugeTriangleCoversScreen(t *testing.T) {
	r, fb := createTestRasterizer(64, 48)
	r.DrawTriangle(screenTri(-1e6, -1e6, 1e6, -1e6, 0, 1e6, 5, red, facingNormal()), DefaultLighting())

	if n := fb.Count(RGB(255, 0, 0)); n != 64*48 {
		t.Errorf("covering triangle filled %d pixels, want %d", n, 64*48)
	}
}

func TestDrawTriangle_InterpolatesAcrossSpan(t *testing.T) {
	r, fb := createTestRasterizer(200, 50)
	light := Lighting{
		Ambient:          models.Color{R: 1, G: 1, B: 1, A: 1},
		AmbientIntensity: 1,
		Direction:        math3d.V3(0, 0, 1),
	}

	tri := screenTri(0, 0, 200, 0, 0, 50, 5, red, facingNormal())
	tri.V[1].Color = models.Color{R: 0, G: 0, B: 1, A: 1}
	r.DrawTriangle(tri, light)

	left := fb.GetPixel(1, 1)
	right := fb.GetPixel(190, 1)
	if left.R <= right.R || left.B >= right.B {
		t.Errorf("expected red→blue gradient, got left %v right %v", left, right)
	}
}

func TestSpanRowsHoldTwoSamples(t *testing.T) {
	s := NewSpanTable(200)
	tri := screenTri(10.4, 12.6, 150.2, 40.1, 70.7, 180.3, 5, red, facingNormal())
	s.AddEdge(tri.V[0], tri.V[1])
	s.AddEdge(tri.V[1], tri.V[2])
	s.AddEdge(tri.V[2], tri.V[0])

	first, last := s.Bounds()
	if first != 13 || last != 179 {
		t.Errorf("bounds = [%d, %d], want [13, 179]", first, last)
	}
	for y := first; y <= last; y++ {
		if n := len(s.Row(y)); n != 2 {
			t.Errorf("row %d has %d samples, want 2", y, n)
		}
	}
}

func TestStatsCountOcclusion(t *testing.T) {
	r, _ := createTestRasterizer(200, 200)
	tri := screenTri(10, 10, 110, 10, 60, 110, 5, red, facingNormal())

	r.DrawTriangle(tri, DefaultLighting())
	written := r.Stats.PixelsWritten
	r.DrawTriangle(tri, DefaultLighting())

	if r.Stats.Triangles != 2 {
		t.Errorf("Triangles = %d, want 2", r.Stats.Triangles)
	}
	if r.Stats.PixelsWritten != written {
		t.Errorf("equal depth should not pass again: written %d then %d", written, r.Stats.PixelsWritten)
	}
	if r.Stats.PixelsOccluded != written {
		t.Errorf("PixelsOccluded = %d, want %d", r.Stats.PixelsOccluded, written)
	}

	r.ResetStats()
	if r.Stats != (Stats{}) {
		t.Errorf("ResetStats left %+v", r.Stats)
	}
}

func TestClearDepthStartsNewEpoch(t *testing.T) {
	r, _ := createTestRasterizer(200, 200)
	tri := screenTri(10, 10, 110, 10, 60, 110, 5, red, facingNormal())

	r.DrawTriangle(tri, DefaultLighting())
	first := r.Stats.PixelsWritten
	r.ClearDepth()
	r.ResetStats()
	r.DrawTriangle(tri, DefaultLighting())

	if r.Stats.PixelsWritten != first {
		t.Errorf("after ClearDepth wrote %d pixels, want %d", r.Stats.PixelsWritten, first)
	}
}

type recordingSurface struct {
	writes []struct {
		x, y int
		c    color.RGBA
	}
}

func (s *recordingSurface) SetPixel(x, y int, c color.RGBA) {
	s.writes = append(s.writes, struct {
		x, y int
		c    color.RGBA
	}{x, y, c})
}

func TestSurfaceOnlySeesInBoundsOpaqueWrites(t *testing.T) {
	sink := &recordingSurface{}
	r := NewRasterizer(50, 40, sink)
	tri := screenTri(-30, -20, 90, 10, 20, 70, 5, models.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.3}, facingNormal())
	r.DrawTriangle(tri, DefaultLighting())

	if len(sink.writes) == 0 {
		t.Fatal("expected pixel writes")
	}
	for _, w := range sink.writes {
		if w.x < 0 || w.x >= 50 || w.y < 0 || w.y >= 40 {
			t.Fatalf("out of bounds write at (%d,%d)", w.x, w.y)
		}
		if w.c.A != 255 {
			t.Fatalf("write at (%d,%d) not opaque: %v", w.x, w.y, w.c)
		}
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	r, _ := createTestRasterizer(320, 240)
	tri := screenTri(10, 10, 300, 40, 150, 230, 5, red, facingNormal())
	light := DefaultLighting()

	for b.Loop() {
		r.ClearDepth()
		r.DrawTriangle(tri, light)
	}
}
