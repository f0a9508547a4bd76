package console

import (
	"fbcon/device/video/console/font"
	"io"
)

// Dimension defines the types of dimensions that can be queried off a device.
type Dimension uint8

const (
	// Characters describes the number of characters in
	// the console depending on the currently active
	// font.
	Characters Dimension = iota

	// Pixels describes the number of pixels in the console framebuffer.
	Pixels
)

// The Device interface is implemented by objects that can function as a
// system text console.
type Device interface {
	// Write renders UTF-8 encoded text at the cursor position.
	io.Writer

	// Dimensions returns the width and height of the console
	// using a particular dimension.
	Dimensions(Dimension) (uint32, uint32)

	// Colors returns the foreground and background colors used for
	// rendering text.
	Colors() (fg, bg Color)

	// Clear fills the console with the specified color and makes it the
	// new background color.
	Clear(Color)

	// DrawChar renders a single character at the cursor position and
	// advances the cursor, wrapping and scrolling as needed.
	DrawChar(rune)

	// Present copies pending changes to the visible surface. It returns
	// true if a copy took place.
	Present() bool
}

// FontSetter is an interface implemented by console devices that
// support loadable bitmap fonts.
//
// SetFont selects a bitmap font to be used by the console.
type FontSetter interface {
	SetFont(*font.Font)
}
