// Package config loads viewer settings from a JSON file and CLI flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Vec is a JSON-friendly [x, y, z] triple.
type Vec [3]float64

// Vec3 converts v to a math3d.Vec3.
func (v Vec) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Light describes the ambient and directional light.
type Light struct {
	Ambient          Vec     `json:"ambient"` // RGB in [0, 1]
	AmbientIntensity float64 `json:"ambient_intensity"`
	Diffuse          Vec     `json:"diffuse"` // RGB in [0, 1]
	DiffuseIntensity float64 `json:"diffuse_intensity"`
	Direction        Vec     `json:"direction"` // Normalized on use
}

// Config holds the surface, scene and animation settings.
type Config struct {
	// Surface
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FPS         int    `json:"fps"`
	Background  string `json:"background"`   // "R,G,B"
	DepthPolicy string `json:"depth_policy"` // "frame" or "once"

	// Scene
	Mesh     string `json:"mesh"` // .glb/.gltf path; empty draws the demo cube
	Origin   Vec    `json:"origin"`
	Scale    Vec    `json:"scale"`
	Rotation Vec    `json:"rotation"` // Initial Euler angles in radians
	Position Vec    `json:"position"`
	Camera   Vec    `json:"camera"`
	Light    Light  `json:"light"`

	// Animation
	Spin Vec `json:"spin"` // Radians per second about X, Y and Z
}

// Limits for the surface size and frame rate.
const (
	MaxDimension = 8192
	MaxFPS       = 240
)

// Default returns the reference scene: a 1024×600 sky-blue surface with
// the demo cube turning slowly.
func Default() Config {
	p := render.DefaultParams()
	return Config{
		Width:       1024,
		Height:      600,
		FPS:         60,
		Background:  "0,166,215",
		DepthPolicy: render.DepthPerFrame.String(),
		Origin:      vec(p.Model.Origin),
		Scale:       vec(p.Model.Scale),
		Camera:      vec(p.Camera),
		Light: Light{
			Ambient:          colorVec(p.Lighting.Ambient),
			AmbientIntensity: p.Lighting.AmbientIntensity,
			Diffuse:          colorVec(p.Lighting.Diffuse),
			DiffuseIntensity: p.Lighting.DiffuseIntensity,
			Direction:        vec(p.Lighting.Direction),
		},
		Spin: Vec{0.3, 0.5, 0.1},
	}
}

// Load reads a JSON config file on top of Default.
// Fields not set in the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width       int
	Height      int
	FPS         int
	Background  string
	DepthPolicy string
	Mesh        string
}

// Resolve applies CLI flags, which take priority when non-zero/non-empty,
// and fills a zero size, fps, background or depth policy with defaults.
// Scene vectors are left as given; Validate rejects a zero scale.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.DepthPolicy != "" {
		c.DepthPolicy = flags.DepthPolicy
	}
	if flags.Mesh != "" {
		c.Mesh = flags.Mesh
	}

	def := Default()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.FPS <= 0 {
		c.FPS = def.FPS
	}
	if c.Background == "" {
		c.Background = def.Background
	}
	if c.DepthPolicy == "" {
		c.DepthPolicy = def.DepthPolicy
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Width < 1 || c.Width > MaxDimension {
		errs = append(errs, fmt.Errorf("width %d out of range [1, %d]", c.Width, MaxDimension))
	}
	if c.Height < 1 || c.Height > MaxDimension {
		errs = append(errs, fmt.Errorf("height %d out of range [1, %d]", c.Height, MaxDimension))
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("fps %d out of range [1, %d]", c.FPS, MaxFPS))
	}
	if _, err := ParseRGB(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := render.ParseDepthPolicy(c.DepthPolicy); err != nil {
		errs = append(errs, fmt.Errorf("depth_policy: %w", err))
	}

	for _, f := range []struct {
		name string
		v    Vec
	}{
		{"origin", c.Origin},
		{"scale", c.Scale},
		{"rotation", c.Rotation},
		{"position", c.Position},
		{"camera", c.Camera},
		{"spin", c.Spin},
		{"light.ambient", c.Light.Ambient},
		{"light.diffuse", c.Light.Diffuse},
		{"light.direction", c.Light.Direction},
	} {
		if !f.v.Vec3().IsFinite() {
			errs = append(errs, fmt.Errorf("%s %v is not finite", f.name, f.v))
		}
	}

	if c.Scale[0] == 0 || c.Scale[1] == 0 || c.Scale[2] == 0 {
		errs = append(errs, fmt.Errorf("scale %v has a zero component", c.Scale))
	}
	if c.Light.Direction == (Vec{}) {
		errs = append(errs, errors.New("light.direction must be non-zero"))
	}
	if !(c.Light.AmbientIntensity >= 0) || !(c.Light.DiffuseIntensity >= 0) {
		errs = append(errs, fmt.Errorf("light intensities must be non-negative, got %v and %v",
			c.Light.AmbientIntensity, c.Light.DiffuseIntensity))
	}

	return errors.Join(errs...)
}

// FrameParams builds the pipeline parameters for the configured scene.
func (c Config) FrameParams() render.FrameParams {
	return render.FrameParams{
		Model: render.ModelTransform{
			Origin:   c.Origin.Vec3(),
			Scale:    c.Scale.Vec3(),
			Rotation: c.Rotation.Vec3(),
			Position: c.Position.Vec3(),
		},
		Camera:     c.Camera.Vec3(),
		Projection: render.DefaultProjection(),
		Lighting: render.Lighting{
			Ambient:          rgb(c.Light.Ambient),
			AmbientIntensity: c.Light.AmbientIntensity,
			Diffuse:          rgb(c.Light.Diffuse),
			DiffuseIntensity: c.Light.DiffuseIntensity,
			Direction:        c.Light.Direction.Vec3(),
		},
	}
}

// BackgroundColor returns the parsed background color.
func (c Config) BackgroundColor() (color.RGBA, error) {
	return ParseRGB(c.Background)
}

// Policy returns the parsed depth policy.
func (c Config) Policy() (render.DepthPolicy, error) {
	return render.ParseDepthPolicy(c.DepthPolicy)
}

// ParseRGB parses "R,G,B" with each channel in [0, 255].
func ParseRGB(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q: want R,G,B", s)
	}

	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: channel %d: %w", s, i, err)
		}
		ch[i] = uint8(n)
	}

	return render.RGB(ch[0], ch[1], ch[2]), nil
}

func vec(v math3d.Vec3) Vec {
	return Vec{v.X, v.Y, v.Z}
}

func colorVec(c models.Color) Vec {
	return Vec{c.R, c.G, c.B}
}

func rgb(v Vec) models.Color {
	return models.Color{R: v[0], G: v[1], B: v[2], A: 1}
}
