// Package gldevice implements gfx.Device on OpenGL 4.6 core.
//
// The mesh program shades per fragment with the same lighting model as the
// software device; overlay lines and points are flat colored. Labels are
// not rendered on this device.
//
// Every call must come from the goroutine that owns the GL context, locked
// to its OS thread. The package needs cgo; without it the constructors
// return ErrNoCGO.
package gldevice

import "errors"

// ErrNoCGO is returned by the constructors in builds without cgo.
var ErrNoCGO = errors.New("gldevice: OpenGL requires cgo")

// Input receives window events. Nil fields are ignored. Coordinates are
// window pixels with a top-left origin.
type Input struct {
	MouseButton func(down bool, x, y float32)
	MouseMove   func(x, y float32)
	Scroll      func(dy float32)
	Key         func(key rune)
}
