package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Lighting is one ambient term plus one directional diffuse light.
type Lighting struct {
	Ambient          models.Color
	AmbientIntensity float64
	Diffuse          models.Color
	DiffuseIntensity float64
	Direction        math3d.Vec3 // Direction the light travels; unit length
}

// Normalized returns a copy with a unit-length Direction.
func (l Lighting) Normalized() Lighting {
	l.Direction = l.Direction.Normalize()
	return l
}

// Factor returns the Lambertian term for normal n, clamped to [0, 1].
// A NaN normal yields 0.
func (l Lighting) Factor(n math3d.Vec3) float64 {
	f := n.Dot(l.Direction.Negate())
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Shade applies ambient and diffuse lighting to base color c.
// The result is not clamped; alpha passes through.
func (l Lighting) Shade(c models.Color, n math3d.Vec3) models.Color {
	f := l.Factor(n)
	return models.Color{
		R: c.R * (l.Ambient.R*l.AmbientIntensity + f*l.Diffuse.R*l.DiffuseIntensity),
		G: c.G * (l.Ambient.G*l.AmbientIntensity + f*l.Diffuse.G*l.DiffuseIntensity),
		B: c.B * (l.Ambient.B*l.AmbientIntensity + f*l.Diffuse.B*l.DiffuseIntensity),
		A: c.A,
	}
}
