package main

import (
	"log/slog"
	"time"

	"github.com/taigrr/plinth/pkg/gfx"
	"github.com/taigrr/plinth/pkg/gldevice"
	"github.com/taigrr/plinth/pkg/viewer"
)

// runWindow shows the model in an OpenGL window. Labels are not drawn.
func runWindow(sc *scene, log *slog.Logger) error {
	win, err := gldevice.OpenWindow(*width, *height, "plinth - "+sc.name)
	if err != nil {
		return err
	}
	defer win.Close()
	dev := win.Device()

	core := newCore(sc, log, gfx.NopText{})
	state := viewer.NewMeshState(dev)
	defer state.Free()

	fps := frameRate(sc.cfg)
	ctl := newControls(core, sc.data, fps)
	win.SetInput(gldevice.Input{
		MouseButton: func(down bool, x, y float32) {
			if down {
				ctl.press(x, y)
			} else {
				ctl.release()
			}
		},
		MouseMove: ctl.move,
		Scroll:    ctl.scroll,
		Key:       ctl.key,
	})

	frame := time.Second / time.Duration(fps)
	for !win.ShouldClose() && !ctl.quit {
		start := time.Now()
		core.IsAnimating = ctl.tick()

		fw, fh := win.FramebufferSize()
		core.Viewport = gfx.Viewport{Width: float32(fw), Height: float32(fh)}
		core.ClearFramebuffers(dev)
		core.Draw(dev, sc.data, state, true)
		win.SwapBuffers()

		win.PollEvents()
		if elapsed := time.Since(start); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
	return nil
}
