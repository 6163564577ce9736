package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 40), uint8(y * 40), 200, 255})
		}
	}
	return img
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"frame.png", PNG, false},
		{"out/Frame.PNG", PNG, false},
		{"spin.webp", WebP, false},
		{"frame.jpg", 0, true},
		{"frame", 0, true},
	}

	for _, tc := range tests {
		got, err := FormatFor(tc.path)
		if tc.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFor(%q) error = %v, want ErrUnsupportedFormat", tc.path, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("FormatFor(%q) = %v, %v", tc.path, got, err)
		}
	}
}

func TestUpscale(t *testing.T) {
	src := testImage(3, 2)

	if Upscale(src, 1) != image.Image(src) {
		t.Error("scale 1 should return the source")
	}

	dst := Upscale(src, 3)
	if b := dst.Bounds(); b.Dx() != 9 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 9x6", b)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 9; x++ {
			if got, want := dst.At(x, y), src.At(x/3, y/3); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	src := testImage(4, 3)

	if err := Write(path, src, 2); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", b)
	}
	r, g, b, _ := img.At(7, 5).RGBA()
	wr, wg, wb, _ := src.At(3, 2).RGBA()
	if r != wr || g != wg || b != wb {
		t.Error("upscaled corner pixel differs from source")
	}
}

func TestWriteWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.webp")
	src := testImage(5, 4)

	if err := Write(path, src, 1); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := nativewebp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}
	// Lossless: every pixel survives.
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			wr, wg, wb, wa := src.At(x, y).RGBA()
			if r != wr || g != wg || b != wb || a != wa {
				t.Fatalf("pixel (%d,%d) changed", x, y)
			}
		}
	}
}

func TestWriteUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.gif")
	if err := Write(path, testImage(1, 1), 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Write(.gif) error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("unsupported format should not create a file")
	}
}

func TestWriteAnimation(t *testing.T) {
	dir := t.TempDir()
	frames := []image.Image{testImage(4, 4), testImage(4, 4), testImage(4, 4)}

	path := filepath.Join(dir, "spin.webp")
	if err := WriteAnimation(path, frames, 50*time.Millisecond, 2); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data[:32], []byte("WEBP")) {
		t.Error("missing RIFF/WEBP header")
	}
	if n := bytes.Count(data, []byte("ANMF")); n != len(frames) {
		t.Errorf("found %d ANMF chunks, want %d", n, len(frames))
	}

	if err := WriteAnimation(filepath.Join(dir, "spin.png"), frames, time.Second, 1); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("animated PNG error = %v", err)
	}
	if err := WriteAnimation(filepath.Join(dir, "empty.webp"), nil, time.Second, 1); err == nil {
		t.Error("expected error for empty animation")
	}
}
