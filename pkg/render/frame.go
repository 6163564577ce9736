package render

import (
	"fmt"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// DepthPolicy controls when the depth buffer starts a new epoch.
type DepthPolicy int

const (
	DepthPerFrame DepthPolicy = iota // Clear before every frame
	DepthOnce                        // Clear before the first frame only
)

// String returns the policy name used in configuration.
func (p DepthPolicy) String() string {
	switch p {
	case DepthPerFrame:
		return "frame"
	case DepthOnce:
		return "once"
	default:
		return fmt.Sprintf("DepthPolicy(%d)", int(p))
	}
}

// ParseDepthPolicy parses "frame" or "once".
func ParseDepthPolicy(s string) (DepthPolicy, error) {
	switch s {
	case "frame", "":
		return DepthPerFrame, nil
	case "once":
		return DepthOnce, nil
	default:
		return 0, fmt.Errorf("unknown depth policy %q (want frame or once)", s)
	}
}

// Animator advances the model rotation between frames.
type Animator interface {
	Advance(dt float64, rotation *math3d.Vec3)
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame        int  // Zero-based frame number
	DepthCleared bool // Whether this frame started a new depth epoch
	Stats             // Rasterizer counters for this frame
}

// Renderer sequences transform, edge building and span filling once per
// frame over a mesh.
type Renderer struct {
	rast     *Rasterizer
	mesh     *models.Mesh
	params   FrameParams
	animator Animator
	policy   DepthPolicy

	screen     []models.Triangle // Screen-space scratch, reused per frame
	frame      int
	depthReady bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAnimator sets the animator advanced after each frame's transform.
func WithAnimator(a Animator) Option {
	return func(r *Renderer) { r.animator = a }
}

// WithDepthPolicy sets the depth reset cadence.
func WithDepthPolicy(p DepthPolicy) Option {
	return func(r *Renderer) { r.policy = p }
}

// NewRenderer creates a frame orchestrator.
func NewRenderer(rast *Rasterizer, mesh *models.Mesh, params FrameParams, opts ...Option) *Renderer {
	r := &Renderer{
		rast:   rast,
		mesh:   mesh,
		params: params,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rasterizer returns the rasterizer in use.
func (r *Renderer) Rasterizer() *Rasterizer {
	return r.rast
}

// SetRasterizer swaps the rasterizer, e.g. after a resize. The next frame
// clears depth regardless of policy.
func (r *Renderer) SetRasterizer(rast *Rasterizer) {
	r.rast = rast
	r.depthReady = false
}

// Mesh returns the current mesh.
func (r *Renderer) Mesh() *models.Mesh {
	return r.mesh
}

// SetMesh replaces the mesh drawn from the next frame on.
func (r *Renderer) SetMesh(m *models.Mesh) {
	r.mesh = m
}

// Params returns the parameters the next frame will use.
func (r *Renderer) Params() FrameParams {
	return r.params
}

// SetParams replaces the parameters for the next frame.
func (r *Renderer) SetParams(p FrameParams) {
	r.params = p
}

// DepthPolicy returns the depth reset cadence.
func (r *Renderer) DepthPolicy() DepthPolicy {
	return r.policy
}

// SetDepthPolicy changes the depth reset cadence.
func (r *Renderer) SetDepthPolicy(p DepthPolicy) {
	r.policy = p
}

// ResetDepth forces the next frame to start a new depth epoch.
func (r *Renderer) ResetDepth() {
	r.depthReady = false
}

// RenderFrame draws one frame. dt is the elapsed time in seconds and only
// drives the animator.
//
// The parameters are snapshotted before any vertex is transformed, so the
// animator's update is first visible on the following frame.
func (r *Renderer) RenderFrame(dt float64) FrameStats {
	snapshot := r.params
	r.screen = TransformMesh(r.screen, r.mesh, snapshot, r.rast.Width(), r.rast.Height())

	if r.animator != nil {
		r.animator.Advance(dt, &r.params.Model.Rotation)
	}

	stats := FrameStats{Frame: r.frame}
	if r.policy == DepthPerFrame || !r.depthReady {
		r.rast.ClearDepth()
		r.depthReady = true
		stats.DepthCleared = true
	}

	r.rast.ResetStats()
	light := snapshot.Lighting.Normalized()
	for _, tri := range r.screen {
		r.rast.DrawTriangle(tri, light)
	}
	stats.Stats = r.rast.Stats

	r.frame++
	return stats
}
