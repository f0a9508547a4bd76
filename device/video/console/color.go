package console

import (
	"image/color"
	"strconv"
	"strings"
)

// Color is a 32-bit pixel value packed as 0x00RRGGBB. The top byte is unused
// and always zero.
type Color uint32

// Default console colors.
const (
	DefaultBg Color = 0x1a1b26
	DefaultFg Color = 0xc0caf5
)

// RGB packs the supplied components into a Color.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ColorFromRGBA converts an arbitrary color.Color into a Color discarding its
// alpha channel.
func ColorFromRGBA(c color.Color) Color {
	if pc, ok := c.(Color); ok {
		return pc & 0xffffff
	}

	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Components returns the red, green and blue components of c.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.Components()
	r = uint32(cr) * 0x101
	g = uint32(cg) * 0x101
	b = uint32(cb) * 0x101
	return r, g, b, 0xffff
}

// ParseColor parses a hex encoded RRGGBB triplet with an optional "#" or "0x"
// prefix.
func ParseColor(value string) (Color, bool) {
	switch {
	case strings.HasPrefix(value, "#"):
		value = value[1:]
	case strings.HasPrefix(value, "0x"), strings.HasPrefix(value, "0X"):
		value = value[2:]
	}

	if len(value) != 6 {
		return 0, false
	}

	c, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, false
	}

	return Color(c), true
}
