// Package window presents frames in a desktop window using ebiten.
package window

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/scanline/pkg/host"
	"github.com/taigrr/scanline/pkg/render"
)

// Options configures Run.
type Options struct {
	Title  string
	FPS    int         // Ticks per second; frames advance by 1/FPS
	Scale  int         // Window pixels per framebuffer pixel
	Logger *log.Logger // Optional; receives the HUD line once a second
}

// Run opens a desktop window that displays app frames and forwards
// keyboard input. It blocks until the window closes or the user quits.
func Run(app host.App, opts Options) error {
	if opts.FPS < 1 {
		opts.FPS = 60
	}
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	g := &game{app: app, opts: opts}
	g.fb = app.Frame(0)

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(g.fb.Width*opts.Scale, g.fb.Height*opts.Scale)
	ebiten.SetTPS(opts.FPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	app  host.App
	opts Options

	fb      *render.Framebuffer
	fbImg   *ebiten.Image
	scratch []byte
	ticks   int
}

// keys maps ebiten keys to the names host.CommandFor understands.
var keys = map[ebiten.Key]string{
	ebiten.KeyEscape: "escape",
	ebiten.KeyQ:      "q",
	ebiten.KeySpace:  "space",
	ebiten.KeyR:      "r",
	ebiten.KeyP:      "p",
	ebiten.KeyD:      "d",
}

func (g *game) Update() error {
	for key, name := range keys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch cmd := host.CommandFor(host.MatchName(name)); cmd {
		case host.CmdQuit:
			return ebiten.Termination
		default:
			g.app.Command(cmd)
		}
	}

	g.fb = g.app.Frame(1 / float64(g.opts.FPS))

	g.ticks++
	if g.opts.Logger != nil && g.ticks%g.opts.FPS == 0 {
		g.opts.Logger.Print(g.app.Status())
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.fb
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != fb.Width || g.fbImg.Bounds().Dy() != fb.Height {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.Width, fb.Height)
		g.scratch = make([]byte, len(fb.Pixels)*4)
	}

	dst := g.scratch
	for i, p := range fb.Pixels {
		j := i * 4
		dst[j+0] = p.R
		dst[j+1] = p.G
		dst[j+2] = p.B
		dst[j+3] = 0xFF
	}

	g.fbImg.WritePixels(dst)
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
