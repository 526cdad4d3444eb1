// SPDX-License-Identifier: GPL-2.0-or-later

// Package window owns the sdl window and its GL context. All functions must
// be called from the main thread.
package window

import (
	"log/slog"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"gofps/cvars"
)

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Size() (int, int) {
	w, h := window.GetSize()
	return int(w), int(h)
}

func Shutdown() {
	if context != nil {
		sdl.GLDeleteContext(context)
		context = nil
	}
	if window != nil {
		window.Destroy()
		window = nil
	}
}

func Fullscreen() bool {
	return window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func SetVSync(on bool) {
	i := 0
	if on {
		i = 1
	}
	if err := sdl.GLSetSwapInterval(i); err != nil {
		slog.Warn("could not set swap interval", slog.Any("err", err))
	}
}

func createWindow(title string, width, height int32, flags uint32) (*sdl.Window, error) {
	w, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 0)
	w, err = sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, flags)
	if err == nil {
		return w, nil
	}
	return nil, errors.Wrap(err, "couldn't create window")
}

// SetMode opens the window, or resizes it if already open, and creates the
// GL context on first use.
func SetMode(title string, width, height int32, fullscreen bool) error {
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	fsaa := int(cvars.VideoFsaa.Value())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, func() int {
		if fsaa > 0 {
			return 1
		}
		return 0
	}())
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, fsaa)

	if window == nil {
		flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN)
		if cvars.VideoBorderLess.Bool() {
			flags |= sdl.WINDOW_BORDERLESS
		}
		w, err := createWindow(title, width, height, flags)
		if err != nil {
			return err
		}
		window = w
	}
	if Fullscreen() {
		if err := window.SetFullscreen(0); err != nil {
			return errors.Wrap(err, "couldn't leave fullscreen")
		}
	}
	window.SetSize(width, height)
	window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
	window.SetBordered(!cvars.VideoBorderLess.Bool())
	if fullscreen {
		if err := window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP); err != nil {
			return errors.Wrap(err, "couldn't set fullscreen")
		}
	}

	window.Show()

	if context == nil {
		var err error
		context, err = window.GLCreateContext()
		if err != nil {
			return errors.Wrap(err, "couldn't create GL context")
		}
		if err := gl.Init(); err != nil {
			return errors.Wrap(err, "couldn't init gl")
		}
		gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
	}
	SetVSync(cvars.VideoVerticalSync.Bool())
	return nil
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	attrs := []any{
		slog.Uint64("source", uint64(source)),
		slog.Uint64("type", uint64(gltype)),
		slog.Uint64("id", uint64(id)),
		slog.String("message", message),
	}
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		slog.Error("gl debug", attrs...)
	case gl.DEBUG_SEVERITY_MEDIUM:
		slog.Warn("gl debug", attrs...)
	default:
		slog.Debug("gl debug", attrs...)
	}
}

func EndRendering() {
	window.GLSwap()
}
