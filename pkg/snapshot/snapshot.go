// Package snapshot writes rendered frames to PNG and WebP files.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnsupportedFormat is returned for file extensions other than .png and
// .webp, and for animations not written as .webp.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	WebP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case WebP:
		return "webp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".webp":
		return WebP, nil
	default:
		return 0, fmt.Errorf("%s: %w (use .png or .webp)", path, ErrUnsupportedFormat)
	}
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling
// so pixel edges stay sharp. Factors below 2 return img unchanged.
func Upscale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in format f.
func Encode(w io.Writer, f Format, img image.Image) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	default:
		return fmt.Errorf("encode %v: %w", f, ErrUnsupportedFormat)
	}
}

// Write saves img to path, scaled by scale, in the format named by the
// extension. Parent directories are created as needed.
func Write(path string, img image.Image, scale int) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}

	return writeFile(path, func(w io.Writer) error {
		if err := Encode(w, f, Upscale(img, scale)); err != nil {
			return fmt.Errorf("%s encode: %w", f, err)
		}
		return nil
	})
}

// WriteAnimation saves frames as a looping animated WebP with delay between
// frames.
func WriteAnimation(path string, frames []image.Image, delay time.Duration, scale int) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	if f != WebP {
		return fmt.Errorf("%s: animation: %w (use .webp)", path, ErrUnsupportedFormat)
	}
	if len(frames) == 0 {
		return errors.New("animation: no frames")
	}

	ms := uint(max(delay.Milliseconds(), 1))
	ani := &nativewebp.Animation{
		Images:    make([]image.Image, len(frames)),
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: 0, // Forever
	}
	for i, frame := range frames {
		ani.Images[i] = Upscale(frame, scale)
		ani.Durations[i] = ms
	}

	return writeFile(path, func(w io.Writer) error {
		if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
			return fmt.Errorf("webp animation encode: %w", err)
		}
		return nil
	})
}

func writeFile(path string, encode func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	return encode(out)
}
