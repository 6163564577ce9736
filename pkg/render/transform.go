package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// TransformVertex takes a model-space vertex to screen space.
//
// The returned position holds pixel x and y plus the camera-relative z used
// for depth testing. The normal is rotated but not renormalized, and the
// color is unchanged. Nothing is clipped: geometry at or behind the
// projection plane produces infinite or NaN coordinates, which the
// rasterizer discards.
func TransformVertex(v models.Vertex, rot math3d.Euler, p FrameParams, width, height int) models.Vertex {
	m := p.Model

	pos := v.Position.Sub(m.Origin).Mul(m.Scale)
	pos = rot.Apply(pos)
	normal := rot.Apply(v.Normal)

	pos = pos.Add(m.Position).Sub(p.Camera)

	// Perspective divide; z is kept as-is for the depth buffer.
	d := (pos.Z + p.Projection.Constant) * p.Projection.Scale
	x := pos.X / d
	y := pos.Y / d

	view := float64(height) / p.Projection.FieldOfView
	x = x*view + float64(width)/2
	y = y*view + float64(height)/2

	return models.Vertex{
		Position: math3d.V3(x, y, pos.Z),
		Color:    v.Color,
		Normal:   normal,
	}
}

// TransformTriangle transforms all three vertices with the same rotation.
func TransformTriangle(tri models.Triangle, rot math3d.Euler, p FrameParams, width, height int) models.Triangle {
	var out models.Triangle
	for i := range 3 {
		out.V[i] = TransformVertex(tri.V[i], rot, p, width, height)
	}
	return out
}

// TransformMesh transforms every triangle of mesh into dst, reusing its
// storage, and returns the result. The rotation is captured once so every
// vertex sees the same angles.
func TransformMesh(dst []models.Triangle, mesh *models.Mesh, p FrameParams, width, height int) []models.Triangle {
	dst = dst[:0]
	if mesh == nil {
		return dst
	}

	rot := math3d.NewEuler(p.Model.Rotation)
	for _, tri := range mesh.Triangles {
		dst = append(dst, TransformTriangle(tri, rot, p, width, height))
	}
	return dst
}
