package font

import (
	"sort"
	"unicode/utf8"
)

// Unicode table markers. Each glyph's entry is a list of UTF-8 encoded code
// points terminated by unicodeTerminator. Multi code point sequences start
// with unicodeSeqStart; the console only maps single code points so sequences
// are skipped.
const (
	unicodeSeqStart   = 0xfe
	unicodeTerminator = 0xff
)

// parseUnicodeTable decodes the PSF2 unicode table that follows the glyph
// bitmaps. The first glyph that claims a code point wins.
func parseUnicodeTable(data []byte, glyphCount uint32) (map[rune]uint32, error) {
	var (
		table = make(map[rune]uint32)
		glyph uint32
		inSeq bool
	)

	for i := 0; i < len(data) && glyph < glyphCount; {
		switch data[i] {
		case unicodeTerminator:
			glyph++
			inSeq = false
			i++
			continue
		case unicodeSeqStart:
			inSeq = true
			i++
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, errBadUnicodeTable
		}
		i += size

		if inSeq {
			continue
		}

		if _, exists := table[r]; !exists {
			table[r] = glyph
		}
	}

	return table, nil
}

// appendUnicodeTable encodes table as a PSF2 unicode table with one entry per
// glyph.
func appendUnicodeTable(buf []byte, table map[rune]uint32, glyphCount uint32) []byte {
	perGlyph := make([][]rune, glyphCount)
	for r, glyph := range table {
		if glyph < glyphCount {
			perGlyph[glyph] = append(perGlyph[glyph], r)
		}
	}

	for _, runes := range perGlyph {
		sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
		for _, r := range runes {
			buf = utf8.AppendRune(buf, r)
		}
		buf = append(buf, unicodeTerminator)
	}

	return buf
}

// HasUnicodeTable returns true if the font maps code points to glyphs through
// a unicode translation table.
func (f *Font) HasUnicodeTable() bool {
	return f.unicode != nil
}

// MapRune associates code point r with the glyph at index. The mapping is
// stored in the font's unicode table and encoded by Encode.
func (f *Font) MapRune(r rune, index uint32) {
	if index >= f.GlyphCount {
		return
	}

	if f.unicode == nil {
		f.unicode = make(map[rune]uint32)
	}
	f.unicode[r] = index
}

// GlyphIndex returns the index of the glyph that represents r. Code points
// missing from the unicode table (or all code points if the font has no
// table) map directly to glyph indices.
func (f *Font) GlyphIndex(r rune) (uint32, bool) {
	if index, ok := f.unicode[r]; ok {
		return index, true
	}

	if r < 0 || uint32(r) >= f.GlyphCount {
		return 0, false
	}

	return uint32(r), true
}
