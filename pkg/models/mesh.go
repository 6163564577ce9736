// Package models provides the triangle data model and mesh sources for scanline.
package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// Color is a linear RGBA color. Channels are nominally in [0, 1] but are
// not clamped; lighting may push them past 1.
type Color struct {
	R, G, B, A float64
}

// RGBA creates a Color from float channels.
func RGBA(r, g, b, a float64) Color {
	return Color{r, g, b, a}
}

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Lerp returns the linear interpolation between c and d by t.
func (c Color) Lerp(d Color, t float64) Color {
	return Color{
		c.R + (d.R-c.R)*t,
		c.G + (d.G-c.G)*t,
		c.B + (d.B-c.B)*t,
		c.A + (d.A-c.A)*t,
	}
}

// Vertex holds all attributes the pipeline carries per corner.
type Vertex struct {
	Position math3d.Vec3 // Model, world or screen position depending on stage
	Color    Color       // Base color
	Normal   math3d.Vec3 // Expected unit length
}

// V creates a vertex from raw components, in the order position, color, normal.
func V(x, y, z, r, g, b, a, nx, ny, nz float64) Vertex {
	return Vertex{
		Position: math3d.V3(x, y, z),
		Color:    Color{r, g, b, a},
		Normal:   math3d.V3(nx, ny, nz),
	}
}

// Triangle is exactly three vertices.
type Triangle struct {
	V [3]Vertex
}

// Mesh is an ordered, growable list of independent triangles.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on demand)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// Add appends triangles to the mesh.
func (m *Mesh) Add(tris ...Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices (three per triangle).
func (m *Mesh) VertexCount() int {
	return len(m.Triangles) * 3
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].V[0].Position
	m.BoundsMax = m.Triangles[0].V[0].Position

	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			m.BoundsMin = m.BoundsMin.Min(v.Position)
			m.BoundsMax = m.BoundsMax.Max(v.Position)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}

// FaceNormal returns the unit normal of the triangle's plane, or the zero
// vector for a degenerate triangle.
func (t Triangle) FaceNormal() math3d.Vec3 {
	e1 := t.V[1].Position.Sub(t.V[0].Position)
	e2 := t.V[2].Position.Sub(t.V[0].Position)
	return e1.Cross(e2).Normalize()
}
