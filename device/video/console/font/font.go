// Package font implements loading and lookup of PC Screen Font v2 (PSF2)
// bitmap fonts for the framebuffer console.
package font

var (
	// The list of available fonts.
	availableFonts []*Font
)

// Font describes a monospace bitmap font that can be used by a console device.
type Font struct {
	// The name of the font
	Name string

	// The width of each glyph in pixels.
	GlyphWidth uint32

	// The height of each glyph in pixels.
	GlyphHeight uint32

	// The number of bytes describing a row in a glyph.
	BytesPerRow uint32

	// The number of glyphs in Data and the size of each glyph in bytes
	// (BytesPerRow * GlyphHeight).
	GlyphCount    uint32
	GlyphByteSize uint32

	// PSF2 header fields that are carried but not interpreted.
	Version uint32
	Flags   uint32

	// The recommended console resolution for this font.
	RecommendedWidth  uint32
	RecommendedHeight uint32

	// Font priority (lower is better). When auto-detecting a font to use, the font with
	// the lowest priority will be preferred
	Priority uint32

	// The glyph table. Each glyph consists of GlyphByteSize bytes where
	// each bit indicates whether a pixel should be set to the foreground
	// color or left untouched.
	Data []byte

	// unicode maps code points to glyph indices when the font carries a
	// unicode translation table.
	unicode map[rune]uint32
}

// Register adds f to the list of fonts that can be looked up via FindByName
// and BestFit. Nil fonts are ignored.
func Register(f *Font) {
	if f == nil {
		return
	}

	availableFonts = append(availableFonts, f)
}

// FindByName looks up a font instance by name. If the font is not found then
// the function returns nil.
func FindByName(name string) *Font {
	for _, f := range availableFonts {
		if f.Name == name {
			return f
		}
	}

	return nil
}

// BestFit returns the best font from the available font list given the
// specified console dimensions. If multiple fonts match the dimension criteria
// then their priority attribute is used to select one.
//
// The algorithm for selecting the best font is the following:
//  For each font:
//    - skip fonts whose glyphs do not fit in the console.
//    - calculate the sum of abs differences between the font recommended dimension
//      and the console dimensions.
//    - if the font score is lower than the current best font's score then the
//      font becomes the new best font.
//    - if the font score is equal to the current best font's score then the
//      font with the lowest priority becomes the new best font.
func BestFit(consoleWidth, consoleHeight uint32) *Font {
	var (
		best                           *Font
		bestDelta                      uint32
		absDeltaW, absDeltaH, absDelta uint32
	)

	for _, f := range availableFonts {
		if f.GlyphWidth > consoleWidth || f.GlyphHeight > consoleHeight {
			continue
		}

		if f.RecommendedWidth > consoleWidth {
			absDeltaW = f.RecommendedWidth - consoleWidth
		} else {
			absDeltaW = consoleWidth - f.RecommendedWidth
		}

		if f.RecommendedHeight > consoleHeight {
			absDeltaH = f.RecommendedHeight - consoleHeight
		} else {
			absDeltaH = consoleHeight - f.RecommendedHeight
		}

		absDelta = absDeltaW + absDeltaH

		if best == nil {
			best = f
			bestDelta = absDelta
			continue
		}

		if absDelta > bestDelta || (absDelta == bestDelta && f.Priority >= best.Priority) {
			continue
		}

		best = f
		bestDelta = absDelta
	}

	return best
}
