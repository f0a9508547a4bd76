// Package hal brings up the framebuffer console from the information passed
// in by the bootloader.
package hal

import (
	"fbcon/device/video/console"
	"fbcon/device/video/console/font"
	"fbcon/kernel"
	"fbcon/kernel/kfmt"
	"unsafe"
)

// FramebufferInfo describes the linear framebuffer set up by the bootloader.
type FramebufferInfo struct {
	// The framebuffer physical address.
	PhysAddr uint64

	// Row pitch in bytes.
	Pitch uint32

	// Width and height in pixels.
	Width, Height uint32

	// Bits per pixel.
	Bpp uint8
}

var (
	// ErrUnsupportedFramebuffer is returned by InitConsole for framebuffers
	// that are not 32bpp or have padding between rows.
	ErrUnsupportedFramebuffer = &kernel.Error{Module: "hal", Message: "unsupported framebuffer format"}

	// mapSurfaceFn and allocSurfaceFn are mocked by tests.
	mapSurfaceFn   = mapFramebuffer
	allocSurfaceFn = console.NewSurface

	activeConsole *console.Synchronized

	logPrefix = []byte("[hal] ")
)

// ActiveConsole returns the console initialized by InitConsole or nil.
func ActiveConsole() *console.Synchronized {
	return activeConsole
}

// InitConsole sets up a text console on the framebuffer described by info
// according to the options in the boot command line and makes it the kfmt
// output sink.
//
// Unless single buffering is requested via the command line, a back buffer is
// allocated and the caller is responsible for invoking Present (or Run) on the
// returned console. If no suitable font can be found the console is still
// returned but kernel output keeps being buffered by kfmt.
func InitConsole(info *FramebufferInfo, cmdLine string) (*console.Synchronized, error) {
	if info.Bpp != 32 || info.Width == 0 || info.Height == 0 || info.Pitch != info.Width*4 {
		return nil, ErrUnsupportedFramebuffer
	}

	args := ParseCmdLine(cmdLine)

	front, err := mapSurfaceFn(info)
	if err != nil {
		return nil, err
	}

	var back *console.Surface
	if args[CmdLineBuffer] != "single" {
		if back, err = allocSurfaceFn(info.Width, info.Height); err != nil {
			logf("unable to allocate console back buffer: %s; using single buffering\n", err.Error())
			back = nil
		}
	}

	cons, err := console.New(front, back)
	if err != nil {
		return nil, err
	}

	fg, bg := cons.Colors()
	fg = colorArg(args, CmdLineFg, fg)
	bg = colorArg(args, CmdLineBg, bg)
	cons.SetColors(fg, bg)
	cons.Clear(bg)

	selFont := selectFont(args, info.Width, info.Height)

	activeConsole = console.NewSynchronized(cons)
	if selFont == nil {
		logf("no font fits a %dx%d console; console output disabled\n", info.Width, info.Height)
		activeConsole.Present()
		return activeConsole, nil
	}

	activeConsole.SetFont(selFont)
	kfmt.SetOutputSink(activeConsole)
	activeConsole.Present()

	return activeConsole, nil
}

// colorArg returns the color specified by key or def if the key is missing or
// holds an invalid value.
func colorArg(args map[string]string, key string, def console.Color) console.Color {
	v, ok := args[key]
	if !ok {
		return def
	}

	c, ok := console.ParseColor(v)
	if !ok {
		logf("ignoring invalid %s value %q\n", key, v)
		return def
	}

	return c
}

// selectFont returns the font requested via the command line or, if none is
// requested or the requested font is not available, the best fit for the
// console dimensions.
func selectFont(args map[string]string, consW, consH uint32) *font.Font {
	if name, ok := args[CmdLineFont]; ok {
		if f := font.FindByName(name); f != nil {
			return f
		}
		logf("unknown console font %q\n", name)
	}

	return font.BestFit(consW, consH)
}

// mapFramebuffer returns a surface backed by the framebuffer memory. The
// framebuffer is expected to be identity-mapped.
func mapFramebuffer(info *FramebufferInfo) (*console.Surface, error) {
	pix := unsafe.Slice((*uint32)(unsafe.Pointer(uintptr(info.PhysAddr))), int(info.Width)*int(info.Height))
	return console.NewSurfaceFromSlice(pix, info.Width, info.Height)
}

// logf writes a formatted message, prefixed with the package tag, to the kfmt
// output sink.
func logf(format string, args ...interface{}) {
	w := kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: logPrefix}
	kfmt.Fprintf(&w, format, args...)
}
