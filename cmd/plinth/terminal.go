package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/plinth/pkg/render"
	"github.com/taigrr/plinth/pkg/viewer"
)

// keyBindings maps key names to control keys.
var keyBindings = []struct {
	names []string
	key   rune
}{
	{[]string{"q"}, 'q'},
	{[]string{"r"}, 'r'},
	{[]string{"f"}, 'f'},
	{[]string{"l"}, 'l'},
	{[]string{"t"}, 't'},
	{[]string{"o"}, 'o'},
	{[]string{"v"}, 'v'},
	{[]string{"n"}, 'n'},
	{[]string{"i"}, 'i'},
	{[]string{"b"}, 'b'},
	{[]string{"p"}, 'p'},
	{[]string{"u"}, 'u'},
	{[]string{"s"}, 's'},
	{[]string{"+", "="}, '+'},
	{[]string{"-", "_"}, '-'},
}

// hud shows the frame rate, model name and view modes on the first and
// last terminal rows.
type hud struct {
	filename  string
	triangles int
	offscreen bool // mesh culled last frame
	show      bool
	fps       float64
	frames    int
	since     time.Time
}

func newHUD(filename string, triangles int) *hud {
	return &hud{filename: filename, triangles: triangles, since: time.Now()}
}

// frame counts one frame and refreshes the rate once a second.
func (h *hud) frame() {
	h.frames++
	if elapsed := time.Since(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = time.Now()
	}
}

func (h *hud) render(width, height int, core *viewer.Core, d *viewer.Data) {
	const (
		reset     = "\x1b[0m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)
	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)
	if !h.show {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)
	fmt.Print(moveTo(1, max((width-len(h.filename)-2)/2, 1)))
	fmt.Printf("%s%s %s %s", bgBlack, fgWhite, h.filename, reset)
	fmt.Print(moveTo(1, max(width-14, 1)))
	if h.offscreen {
		fmt.Printf("%s%s off-screen %s", bgBlack, fgCyan, reset)
	} else {
		fmt.Printf("%s%s %d tris %s", bgBlack, fgCyan, h.triangles, reset)
	}

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	proj := "persp"
	if core.Orthographic {
		proj = "ortho"
	}
	fmt.Print(moveTo(height, 1))
	fmt.Printf("%s%s %s faces %s lines %s texture %s overlay | %s | %s | zoom %.2f %s",
		bgBlack, fgWhite,
		check(d.ShowFaces), check(d.ShowLines), check(d.ShowTexture), check(d.ShowOverlay),
		core.RotationType(), proj, core.CameraZoom, reset)
}

// runTerminal shows the model on the terminal with the software device,
// two framebuffer rows per cell.
func runTerminal(sc *scene, log *slog.Logger) error {
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

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	dev := render.NewDevice(termRenderer.FramebufferSize())
	text, err := render.NewTextRenderer(dev, 8)
	if err != nil {
		return err
	}
	defer text.Close()

	core := newCore(sc, log, text)
	state := viewer.NewMeshState(dev)
	defer state.Free()

	fps := frameRate(sc.cfg)
	ctl := newControls(core, sc.data, fps)
	h := newHUD(sc.name, sc.data.Mesh.TriangleCount())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	events := term.Events()
	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			dev.Resize(termRenderer.FramebufferSize())

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				ctl.quit = true
			case ev.MatchString("?", "shift+/"):
				h.show = !h.show
			default:
				for _, b := range keyBindings {
					if ev.MatchString(b.names...) {
						ctl.key(b.key)
						break
					}
				}
			}

		case uv.MouseClickEvent:
			ctl.press(float32(ev.X), float32(2*ev.Y))
		case uv.MouseReleaseEvent:
			ctl.release()
		case uv.MouseMotionEvent:
			ctl.move(float32(ev.X), float32(2*ev.Y))

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				ctl.scroll(1)
			case uv.MouseWheelDown:
				ctl.scroll(-1)
			}
		}
	}

	targetDuration := time.Second / time.Duration(fps)
	for {
		now := time.Now()
	drain:
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				handle(ev)
			default:
				break drain
			}
		}
		if ctl.quit {
			return nil
		}
		core.IsAnimating = ctl.tick()

		core.Viewport = dev.Viewport()
		dev.ResetStats()
		core.ClearFramebuffers(dev)
		core.Draw(dev, sc.data, state, true)
		h.offscreen = dev.Stats.Culled > 0

		termRenderer.Render(dev.Framebuffer())
		if err := termRenderer.Flush(); err != nil {
			return fmt.Errorf("flush: %w", err)
		}
		h.frame()
		h.render(width, height, core, sc.data)

		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
