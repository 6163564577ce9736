package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// ModelTransform places the mesh in the world.
type ModelTransform struct {
	Origin   math3d.Vec3 // Subtracted before scaling and rotating
	Scale    math3d.Vec3 // Per-axis scale factors
	Rotation math3d.Vec3 // Euler angles in radians, applied X, then Y, then Z
	Position math3d.Vec3 // World offset added after rotating
}

// Projection holds the perspective and viewport constants.
//
// Screen x and y are divided by (z + Constant) * Scale, then multiplied by
// screenHeight / FieldOfView and moved to the screen center.
type Projection struct {
	Constant    float64
	Scale       float64
	FieldOfView float64 // World units spanning the screen height at unit depth
}

// FrameParams is an immutable snapshot of everything the pipeline reads
// during one frame. Pass it by value.
type FrameParams struct {
	Model      ModelTransform
	Camera     math3d.Vec3 // Camera position; the camera never rotates
	Projection Projection
	Lighting   Lighting
}

// DefaultProjection returns the reference projection constants.
func DefaultProjection() Projection {
	return Projection{
		Constant:    100,
		Scale:       0.01,
		FieldOfView: 80,
	}
}

// DefaultLighting returns a white ambient light at 0.2 and a white
// directional light at 0.8 shining along +Z.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:          models.Color{R: 1, G: 1, B: 1, A: 1},
		AmbientIntensity: 0.2,
		Diffuse:          models.Color{R: 1, G: 1, B: 1, A: 1},
		DiffuseIntensity: 0.8,
		Direction:        math3d.V3(0, 0, 1),
	}
}

// DefaultParams returns the demo scene: the cube pivoting about (10, 0, 10)
// seen from a camera at (0, 20, -20).
func DefaultParams() FrameParams {
	return FrameParams{
		Model: ModelTransform{
			Origin: math3d.V3(10, 0, 10),
			Scale:  math3d.One3(),
		},
		Camera:     math3d.V3(0, 20, -20),
		Projection: DefaultProjection(),
		Lighting:   DefaultLighting(),
	}
}

// FitModel returns m adjusted so mesh is centred where the unadjusted
// transform puts the model-space origin, and scaled so its largest extent
// is size. Empty or flat-to-a-point meshes leave m unchanged.
func FitModel(mesh *models.Mesh, m ModelTransform, size float64) ModelTransform {
	mesh.CalculateBounds()
	extent := mesh.Size()
	maxDim := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if !(maxDim > 0) {
		return m
	}

	s := size / maxDim
	m.Position = m.Position.Sub(m.Origin.Mul(m.Scale))
	m.Origin = mesh.Center()
	m.Scale = math3d.V3(s, s, s)
	return m
}
