// Package host presents rendered frames in a terminal or as image files, and
// maps user input to viewer commands.
package host

import (
	"fmt"
	"image/color"
	"math/rand"
	"slices"

	"github.com/taigrr/scanline/pkg/anim"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Command is a user action understood by an App.
type Command int

const (
	CmdNone        Command = iota
	CmdQuit                // Handled by the host
	CmdImpulse             // Random spin impulse
	CmdReset               // Restore the initial rotation and stop impulses
	CmdPause               // Toggle animation
	CmdToggleDepth         // Switch between per-frame and one-time depth clears
	CmdToggleHUD           // Handled by the host
)

// App produces frames for a host.
type App interface {
	// Resize changes the framebuffer size; the next Frame uses it.
	Resize(width, height int)
	// Frame renders and returns the next frame. dt is in seconds. The
	// returned framebuffer is reused by later calls.
	Frame(dt float64) *render.Framebuffer
	// Command applies a user action.
	Command(c Command)
	// Status returns a one-line summary for a HUD.
	Status() string
}

// impulseStrength bounds a random impulse, in radians per frame.
const impulseStrength = 0.5

// Viewer renders one mesh with a spinner and a solid background. It is the
// App used by every host.
type Viewer struct {
	name       string
	fb         *render.Framebuffer
	renderer   *render.Renderer
	spinner    *anim.Spinner
	background color.RGBA
	initial    render.FrameParams
	rng        *rand.Rand

	Last render.FrameStats // Stats of the most recent frame
}

// NewViewer creates a viewer with a width×height framebuffer.
func NewViewer(mesh *models.Mesh, params render.FrameParams, spinner *anim.Spinner, width, height int, opts ...ViewerOption) *Viewer {
	fb := render.NewFramebuffer(width, height)
	v := &Viewer{
		fb:         fb,
		spinner:    spinner,
		background: render.ColorSky,
		initial:    params,
		rng:        rand.New(rand.NewSource(1)),
	}
	if mesh != nil {
		v.name = mesh.Name
	}

	rast := render.NewRasterizer(fb.Width, fb.Height, fb)
	v.renderer = render.NewRenderer(rast, mesh, params, render.WithAnimator(spinner))
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithBackground sets the clear color.
func WithBackground(c color.RGBA) ViewerOption {
	return func(v *Viewer) { v.background = c }
}

// WithDepthPolicy sets the initial depth policy.
func WithDepthPolicy(p render.DepthPolicy) ViewerOption {
	return func(v *Viewer) { v.renderer.SetDepthPolicy(p) }
}

// WithSeed seeds the random impulses.
func WithSeed(seed int64) ViewerOption {
	return func(v *Viewer) { v.rng = rand.New(rand.NewSource(seed)) }
}

// Renderer returns the frame orchestrator.
func (v *Viewer) Renderer() *render.Renderer {
	return v.renderer
}

// Spinner returns the rotation animator.
func (v *Viewer) Spinner() *anim.Spinner {
	return v.spinner
}

// Size returns the framebuffer size.
func (v *Viewer) Size() (width, height int) {
	return v.fb.Width, v.fb.Height
}

// Resize replaces the framebuffer and rasterizer when the size changes.
func (v *Viewer) Resize(width, height int) {
	if width == v.fb.Width && height == v.fb.Height {
		return
	}
	v.fb = render.NewFramebuffer(width, height)
	v.renderer.SetRasterizer(render.NewRasterizer(v.fb.Width, v.fb.Height, v.fb))
}

// Frame clears the background and renders one frame.
func (v *Viewer) Frame(dt float64) *render.Framebuffer {
	v.fb.Clear(v.background)
	v.Last = v.renderer.RenderFrame(dt)
	return v.fb
}

// Command applies a user action. Host-level commands are ignored.
func (v *Viewer) Command(c Command) {
	switch c {
	case CmdImpulse:
		v.spinner.RandomImpulse(v.rng, impulseStrength)
	case CmdReset:
		v.spinner.Reset()
		v.renderer.SetParams(v.initial)
		v.renderer.ResetDepth()
	case CmdPause:
		v.spinner.SetPaused(!v.spinner.Paused())
	case CmdToggleDepth:
		if v.renderer.DepthPolicy() == render.DepthPerFrame {
			v.renderer.SetDepthPolicy(render.DepthOnce)
		} else {
			v.renderer.SetDepthPolicy(render.DepthPerFrame)
		}
		v.renderer.ResetDepth()
	}
}

// Status summarizes the last frame.
func (v *Viewer) Status() string {
	s := v.Last
	paused := ""
	if v.spinner.Paused() {
		paused = " [paused]"
	}
	return fmt.Sprintf("%s  %d tris  %d px  %d occluded  depth:%s%s",
		v.name, s.Triangles, s.PixelsWritten, s.PixelsOccluded, v.renderer.DepthPolicy(), paused)
}

// CommandFor maps a key to a command. match reports whether the key
// matches any of the given names, as uv.KeyPressEvent.MatchString does.
func CommandFor(match func(...string) bool) Command {
	switch {
	case match("escape", "ctrl+c", "q"):
		return CmdQuit
	case match("space"):
		return CmdImpulse
	case match("r"):
		return CmdReset
	case match("p"):
		return CmdPause
	case match("d"):
		return CmdToggleDepth
	case match("?", "shift+/"):
		return CmdToggleHUD
	default:
		return CmdNone
	}
}

// MatchName returns a matcher for CommandFor that accepts a single key name.
func MatchName(name string) func(...string) bool {
	return func(names ...string) bool {
		return slices.Contains(names, name)
	}
}
