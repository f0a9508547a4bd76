package font

import (
	"fbcon/kernel"
	"image"
	"image/color"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// coverageThreshold is the minimum 16-bit alpha value for a face mask pixel to
// be treated as set when rasterizing a face into a bitmap font.
const coverageThreshold = 0x8000

var errEmptyFace = &kernel.Error{Module: "font", Message: "face has no glyphs with non-zero dimensions"}

// FromFace rasterizes a font.Face into a monospace bitmap font. Glyph i of the
// returned font holds the rendering of runes[i] and the font's unicode table
// maps each rune to its glyph. Runes that the face cannot render produce blank,
// unmapped glyphs.
//
// The glyph cell is as wide as the widest advance among runes and as tall as
// the face's line height; the baseline is placed at the face ascent.
func FromFace(name string, face xfont.Face, runes []rune) (*Font, error) {
	var (
		metrics = face.Metrics()
		ascent  = metrics.Ascent.Ceil()
		height  = metrics.Height.Ceil()
		width   int
	)

	if h := ascent + metrics.Descent.Ceil(); h > height {
		height = h
	}

	for _, r := range runes {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > width {
			width = adv.Ceil()
		}
	}

	if width <= 0 || height <= 0 || len(runes) == 0 {
		return nil, errEmptyFace
	}

	f := &Font{
		Name:        name,
		GlyphWidth:  uint32(width),
		GlyphHeight: uint32(height),
		BytesPerRow: uint32(width+7) >> 3,
		GlyphCount:  uint32(len(runes)),
		unicode:     make(map[rune]uint32, len(runes)),
	}
	f.GlyphByteSize = f.BytesPerRow * f.GlyphHeight
	f.Data = make([]byte, f.GlyphCount*f.GlyphByteSize)

	dot := fixed.P(0, ascent)
	for index, r := range runes {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}

		glyph := f.Data[uint32(index)*f.GlyphByteSize:][:f.GlyphByteSize]
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			if y < 0 || y >= height {
				continue
			}

			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= width {
					continue
				}

				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= coverageThreshold {
					glyph[uint32(y)*f.BytesPerRow+uint32(x)>>3] |= 0x80 >> (uint32(x) & 7)
				}
			}
		}

		if _, exists := f.unicode[r]; !exists {
			f.unicode[r] = uint32(index)
		}
	}

	return f, nil
}

// Face returns a font.Face view of f. The baseline sits at the bottom of the
// glyph cell.
func (f *Font) Face() xfont.Face {
	return &psfFace{font: f}
}

type psfFace struct {
	font *Font
}

func (pf *psfFace) Close() error { return nil }

func (pf *psfFace) Kern(_, _ rune) fixed.Int26_6 { return 0 }

func (pf *psfFace) Metrics() xfont.Metrics {
	h := fixed.I(int(pf.font.GlyphHeight))
	return xfont.Metrics{
		Height:    h,
		Ascent:    h,
		CapHeight: h,
		XHeight:   h,
	}
}

func (pf *psfFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	index, ok := pf.font.GlyphIndex(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	bitmap, err := pf.font.Glyph(index)
	if err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	var (
		x  = dot.X.Round()
		y  = dot.Y.Round()
		w  = int(pf.font.GlyphWidth)
		h  = int(pf.font.GlyphHeight)
		dr = image.Rect(x, y-h, x+w, y)
	)

	return dr, &glyphMask{font: pf.font, bitmap: bitmap}, image.Point{}, fixed.I(w), true
}

func (pf *psfFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	if _, ok := pf.font.GlyphIndex(r); !ok {
		return fixed.Rectangle26_6{}, 0, false
	}

	w, h := int(pf.font.GlyphWidth), int(pf.font.GlyphHeight)
	return fixed.R(0, -h, w, 0), fixed.I(w), true
}

func (pf *psfFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	if _, ok := pf.font.GlyphIndex(r); !ok {
		return 0, false
	}

	return fixed.I(int(pf.font.GlyphWidth)), true
}

// glyphMask exposes a glyph bitmap as an alpha mask.
type glyphMask struct {
	font   *Font
	bitmap []byte
}

func (m *glyphMask) ColorModel() color.Model { return color.AlphaModel }

func (m *glyphMask) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(m.font.GlyphWidth), int(m.font.GlyphHeight))
}

func (m *glyphMask) At(x, y int) color.Color {
	if x < 0 || y < 0 || !m.font.PixelSet(m.bitmap, uint32(x), uint32(y)) {
		return color.Alpha{}
	}

	return color.Alpha{A: 0xff}
}
