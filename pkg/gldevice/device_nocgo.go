//go:build tinygo || !cgo

package gldevice

import "github.com/taigrr/plinth/pkg/gfx"

// Device is unavailable without cgo.
type Device struct {
	gfx.Device
}

func New(width, height int) (*Device, error) { return nil, ErrNoCGO }

func NewHeadless(width, height int) (*Device, func(), error) { return nil, nil, ErrNoCGO }

func (d *Device) Close()                   {}
func (d *Device) Resize(width, height int) {}

// Window is unavailable without cgo.
type Window struct{}

func OpenWindow(width, height int, title string) (*Window, error) { return nil, ErrNoCGO }

func (w *Window) Device() *Device                      { return nil }
func (w *Window) ShouldClose() bool                    { return true }
func (w *Window) SwapBuffers()                         {}
func (w *Window) PollEvents()                          {}
func (w *Window) FramebufferSize() (width, height int) { return 0, 0 }
func (w *Window) SetInput(in Input)                    {}
func (w *Window) Close()                               {}
