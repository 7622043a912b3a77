//go:build !tinygo && cgo

package gldevice

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is an on-screen GLFW window with its own Device.
type Window struct {
	win *glfw.Window
	dev *Device
}

// OpenWindow creates a window with a current 4.6 core context. The caller
// must have locked the goroutine to its OS thread.
func OpenWindow(width, height int, title string) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 8)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	fw, fh := win.GetFramebufferSize()
	dev, err := New(fw, fh)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	w := &Window{win: win, dev: dev}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		dev.Resize(width, height)
	})
	return w, nil
}

func (w *Window) Device() *Device { return w.dev }

func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }
func (w *Window) SwapBuffers()      { w.win.SwapBuffers() }
func (w *Window) PollEvents()       { glfw.PollEvents() }

// FramebufferSize is the window size in framebuffer pixels, which differs
// from screen coordinates on high density displays.
func (w *Window) FramebufferSize() (width, height int) {
	return w.win.GetFramebufferSize()
}

// SetInput routes window events to in. Cursor positions are scaled to
// framebuffer pixels.
func (w *Window) SetInput(in Input) {
	scale := func(x, y float64) (float32, float32) {
		ww, wh := w.win.GetSize()
		fw, fh := w.win.GetFramebufferSize()
		if ww == 0 || wh == 0 {
			return float32(x), float32(y)
		}
		return float32(x * float64(fw) / float64(ww)), float32(y * float64(fh) / float64(wh))
	}
	w.win.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if in.MouseButton == nil || button != glfw.MouseButtonLeft {
			return
		}
		x, y := scale(win.GetCursorPos())
		in.MouseButton(action == glfw.Press, x, y)
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if in.MouseMove != nil {
			in.MouseMove(scale(xpos, ypos))
		}
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if in.Scroll != nil {
			in.Scroll(float32(yoff))
		}
	})
	w.win.SetCharCallback(func(_ *glfw.Window, char rune) {
		if in.Key != nil {
			in.Key(char)
		}
	})
	w.win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})
}

// Close deletes the device programs and the window, then terminates GLFW.
func (w *Window) Close() {
	w.dev.Close()
	w.win.Destroy()
	glfw.Terminate()
}
