package host

import (
	"image"
	"log"
)

// Capture renders frames frames at a fixed step of 1/fps seconds and
// returns a copy of each. If logger is non-nil every frame's status is
// logged.
func Capture(app App, frames, fps int, logger *log.Logger) []image.Image {
	if fps < 1 {
		fps = 60
	}
	dt := 1 / float64(fps)

	out := make([]image.Image, 0, max(frames, 0))
	for i := 0; i < frames; i++ {
		fb := app.Frame(dt)
		out = append(out, fb.ToImage())
		if logger != nil {
			logger.Printf("frame %d: %s", i, app.Status())
		}
	}
	return out
}
