package console

import (
	"fbcon/kernel"
	"image"
	"image/color"
	"unsafe"
)

var (
	errSurfaceTooSmall = &kernel.Error{Module: "console", Message: "pixel slice is smaller than the surface dimensions"}
	errEmptySurface    = &kernel.Error{Module: "console", Message: "surface dimensions must be non-zero"}
)

// Surface is a fixed-size, row-major block of 32-bit pixels with no padding
// between rows. All accessors are bounds-checked; out of range coordinates
// are silently ignored.
type Surface struct {
	width  uint32
	height uint32
	pix    []uint32
}

// NewSurface allocates a new surface with the specified dimensions.
func NewSurface(width, height uint32) (*Surface, error) {
	if width == 0 || height == 0 {
		return nil, errEmptySurface
	}

	return &Surface{
		width:  width,
		height: height,
		pix:    make([]uint32, int(width)*int(height)),
	}, nil
}

// NewSurfaceFromSlice wraps caller-owned pixel memory (e.g. a mapped
// framebuffer) into a surface. Only the first width*height entries of pix are
// used.
func NewSurfaceFromSlice(pix []uint32, width, height uint32) (*Surface, error) {
	if width == 0 || height == 0 {
		return nil, errEmptySurface
	}

	size := uint64(width) * uint64(height)
	if uint64(len(pix)) < size {
		return nil, errSurfaceTooSmall
	}

	return &Surface{
		width:  width,
		height: height,
		pix:    pix[:size:size],
	}, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() uint32 { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() uint32 { return s.height }

// Pixels returns the underlying pixel storage.
func (s *Surface) Pixels() []uint32 { return s.pix }

// Pixel returns the color at (x, y) or 0 if the coordinates are out of range.
func (s *Surface) Pixel(x, y uint32) Color {
	if x >= s.width || y >= s.height {
		return 0
	}

	return Color(s.pix[s.offset(x, y)])
}

// SetPixel sets the pixel at (x, y) to c. It returns false if the
// coordinates are out of range and nothing was written.
func (s *Surface) SetPixel(x, y uint32, c Color) bool {
	if x >= s.width || y >= s.height {
		return false
	}

	s.pix[s.offset(x, y)] = uint32(c)
	return true
}

// Fill sets every pixel of the surface to c.
func (s *Surface) Fill(c Color) {
	fillPixels(s.pix, uint32(c))
}

// fillRows sets pixel rows [startY, endY) to c.
func (s *Surface) fillRows(startY, endY uint32, c Color) {
	if endY > s.height {
		endY = s.height
	}

	if startY >= endY {
		return
	}

	fillPixels(s.pix[s.offset(0, startY):s.offset(0, endY)], uint32(c))
}

// fillRect sets the pixels in the rectangle with top-left corner (x, y) and
// the specified dimensions to c. The rectangle is clipped to the surface.
func (s *Surface) fillRect(x, y, width, height uint32, c Color) {
	if x >= s.width || y >= s.height {
		return
	}

	if width > s.width-x {
		width = s.width - x
	}

	if height > s.height-y {
		height = s.height - y
	}

	for row := y; row < y+height; row++ {
		start := s.offset(x, row)
		fillPixels(s.pix[start:start+int(width)], uint32(c))
	}
}

// offset returns the linear offset into the pixel buffer that corresponds to
// the pixel at (x,y).
func (s *Surface) offset(x, y uint32) int {
	return int(y)*int(s.width) + int(x)
}

// overlaps returns true if the pixel storage of s and other share memory.
func (s *Surface) overlaps(other *Surface) bool {
	if len(s.pix) == 0 || len(other.pix) == 0 {
		return false
	}

	var (
		sStart = uintptr(unsafe.Pointer(&s.pix[0]))
		sEnd   = sStart + uintptr(len(s.pix))*4
		oStart = uintptr(unsafe.Pointer(&other.pix[0]))
		oEnd   = oStart + uintptr(len(other.pix))*4
	)

	return sStart < oEnd && oStart < sEnd
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color { return ColorFromRGBA(c) })
}

// Bounds implements image.Image.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(s.width), int(s.height))
}

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color {
	if x < 0 || y < 0 {
		return Color(0)
	}

	return s.Pixel(uint32(x), uint32(y))
}

// Set implements draw.Image.
func (s *Surface) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 {
		return
	}

	s.SetPixel(uint32(x), uint32(y), ColorFromRGBA(c))
}

// fillPixels sets every entry of pix to value. Instead of a for loop it uses
// log2(len(pix)) copy calls.
func fillPixels(pix []uint32, value uint32) {
	if len(pix) == 0 {
		return
	}

	pix[0] = value
	for index := 1; index < len(pix); index *= 2 {
		copy(pix[index:], pix[:index])
	}
}
