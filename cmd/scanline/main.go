// scanline - Software Scanline Renderer
// Spin a lit, depth-tested mesh in your terminal, a window, or an image file.
//
// Controls:
//
//	Space       - Apply random impulse
//	R           - Reset rotation
//	P           - Pause/resume animation
//	D           - Toggle depth clearing (every frame / once)
//	?           - Toggle HUD line (terminal)
//	Esc, Q      - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/taigrr/scanline/pkg/anim"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/host"
	"github.com/taigrr/scanline/pkg/host/window"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"github.com/taigrr/scanline/pkg/snapshot"
)

var (
	configPath  = flag.String("config", "", "Path to JSON config file")
	width       = flag.Int("width", 0, "Surface width (window and -out only)")
	height      = flag.Int("height", 0, "Surface height (window and -out only)")
	targetFPS   = flag.Int("fps", 0, "Target FPS")
	bgColor     = flag.String("bg", "", "Background color (R,G,B)")
	depthPolicy = flag.String("depth", "", "Depth clearing: frame or once")
	useWindow   = flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")
	outPath     = flag.String("out", "", "Render to a .png or .webp file and exit")
	frameCount  = flag.Int("frames", 1, "Frames to render with -out (more than 1 writes an animated .webp)")
	outScale    = flag.Int("scale", 1, "Integer upscale for -out and the window")
	seed        = flag.Int64("seed", 1, "Seed for random spin impulses")
)

// fitSize is the extent a loaded mesh is scaled to, matching the demo cube.
const fitSize = 20.0

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Software Scanline Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.glb|model.gltf]\n\n")
		fmt.Fprintf(os.Stderr, "Without a model the demo cube is drawn.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space       - Random spin\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset rotation\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause/resume\n")
		fmt.Fprintf(os.Stderr, "  D           - Toggle depth clearing\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD (terminal)\n")
		fmt.Fprintf(os.Stderr, "  Esc, Q      - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := log.New(os.Stderr, "scanline: ", 0)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	cfg.Resolve(config.Flags{
		Width:       *width,
		Height:      *height,
		FPS:         *targetFPS,
		Background:  *bgColor,
		DepthPolicy: *depthPolicy,
		Mesh:        flag.Arg(0),
	})
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	bg, _ := cfg.BackgroundColor()
	policy, _ := cfg.Policy()
	params := cfg.FrameParams()

	mesh := models.NewCube()
	if cfg.Mesh != "" {
		var err error
		mesh, err = models.LoadFile(cfg.Mesh)
		if err != nil {
			return fmt.Errorf("load model: %w", err)
		}
		params.Model = render.FitModel(mesh, params.Model, fitSize)
	}

	spinner := anim.NewSpinner(cfg.Spin.Vec3(), cfg.FPS)
	viewer := host.NewViewer(mesh, params, spinner, cfg.Width, cfg.Height,
		host.WithBackground(bg),
		host.WithDepthPolicy(policy),
		host.WithSeed(*seed),
	)

	switch {
	case *outPath != "":
		return writeFrames(viewer, cfg.FPS, logger)
	case *useWindow:
		return window.Run(viewer, window.Options{
			Title:  "scanline - " + mesh.Name,
			FPS:    cfg.FPS,
			Scale:  *outScale,
			Logger: logger,
		})
	default:
		if err := host.RunTerminal(context.Background(), viewer, cfg.FPS); err != nil {
			return err
		}
		logger.Print(viewer.Status())
		return nil
	}
}

func writeFrames(viewer *host.Viewer, fps int, logger *log.Logger) error {
	frames := host.Capture(viewer, max(*frameCount, 1), fps, logger)

	if len(frames) == 1 {
		if err := snapshot.Write(*outPath, frames[0], *outScale); err != nil {
			return fmt.Errorf("write %s: %w", *outPath, err)
		}
	} else {
		delay := time.Second / time.Duration(fps)
		if err := snapshot.WriteAnimation(*outPath, frames, delay, *outScale); err != nil {
			return fmt.Errorf("write %s: %w", *outPath, err)
		}
	}

	logger.Printf("wrote %s (%d frames)", *outPath, len(frames))
	return nil
}
