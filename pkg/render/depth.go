package render

import "math"

// DepthBuffer holds, per pixel, the nearest depth written since the last
// Clear. Values only ever decrease between clears.
type DepthBuffer struct {
	Width  int
	Height int
	values []float64 // Row-major
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	width, height = max(width, 0), max(height, 0)
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		values: make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every pixel to +Inf, starting a new depth epoch.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.values)
	if n == 0 {
		return
	}
	d.values[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(d.values[i:], d.values[:i])
	}
}

// At returns the depth at (x, y), or +Inf out of bounds.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return math.Inf(1)
	}
	return d.values[y*d.Width+x]
}

// testAndSet stores z at offset if it is nearer than the stored value and
// reports whether it did. NaN never passes.
func (d *DepthBuffer) testAndSet(offset int, z float64) bool {
	if d.values[offset] > z {
		d.values[offset] = z
		return true
	}
	return false
}
