package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/pkg/render"
)

// maxFrameDelta caps dt after a stall so the animation does not jump.
const maxFrameDelta = 0.1

// RunTerminal draws app frames as half-block cells until ctx is done, the
// user quits, or the terminal fails. The framebuffer follows the terminal
// size.
func RunTerminal(ctx context.Context, app App, fps int) error {
	if fps < 1 {
		fps = 60
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	app.Resize(render.TerminalFramebufferSize(width, height))

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := term.Events()
	lastFrame := time.Now()
	showHUD := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-sigChan:
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				app.Resize(render.TerminalFramebufferSize(width, height))

			case uv.KeyPressEvent:
				switch cmd := CommandFor(ev.MatchString); cmd {
				case CmdQuit:
					return nil
				case CmdToggleHUD:
					showHUD = !showHUD
				default:
					app.Command(cmd)
				}
			}

		case now := <-ticker.C:
			dt := min(now.Sub(lastFrame).Seconds(), maxFrameDelta)
			lastFrame = now

			fb := app.Frame(dt)
			fb.Draw(term, term.Bounds())
			if showHUD {
				drawStatus(term, app.Status())
			}

			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// drawStatus writes text over the top row of scr.
func drawStatus(scr uv.Screen, text string) {
	area := scr.Bounds()
	style := uv.Style{
		Fg: render.ColorWhite,
		Bg: render.ColorBlack,
	}

	col := area.Min.X
	for _, r := range text {
		if col >= area.Max.X {
			break
		}
		scr.SetCell(col, area.Min.Y, &uv.Cell{
			Content: string(r),
			Width:   1,
			Style:   style,
		})
		col++
	}
}
