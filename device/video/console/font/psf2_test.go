package font

import (
	"errors"
	"testing"
)

// mockGlyphs10x14 contains a blank glyph followed by the letter 'A'.
var mockGlyphs10x14 = []byte{
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	0x00, 0x00, /* 0000000000 */
	// glyph 1
	0x04, 0x00, /* 0000010000 */
	0x04, 0x00, /* 0000010000 */
	0x0e, 0x00, /* 0000111000 */
	0x0e, 0x00, /* 0000111000 */
	0x1b, 0x00, /* 0001101100 */
	0x1b, 0x00, /* 0001101100 */
	0x19, 0x80, /* 0001100110 */
	0x31, 0x80, /* 0011000110 */
	0x3f, 0x80, /* 0011111110 */
	0x31, 0x80, /* 0011000110 */
	0x61, 0x80, /* 0110000110 */
	0x60, 0xc0, /* 0110000011 */
	0x60, 0xc0, /* 0110000011 */
	0xf1, 0xc0, /* 1111000111 */
}

func mockPSF2(hdr Header, payload []byte) []byte {
	return append(appendHeader(nil, hdr), payload...)
}

func mockHeader10x14(glyphCount uint32) Header {
	return Header{
		Magic:         Magic,
		HeaderSize:    HeaderSize,
		GlyphCount:    glyphCount,
		GlyphByteSize: 28,
		GlyphHeight:   14,
		GlyphWidth:    10,
	}
}

func TestLoad(t *testing.T) {
	data := mockPSF2(mockHeader10x14(2), mockGlyphs10x14)

	f, err := Load(data)
	if err != nil {
		t.Fatal(err)
	}

	if f.GlyphWidth != 10 || f.GlyphHeight != 14 {
		t.Fatalf("expected glyph dimensions 10x14; got %dx%d", f.GlyphWidth, f.GlyphHeight)
	}

	if f.BytesPerRow != 2 || f.GlyphByteSize != 28 || f.GlyphCount != 2 {
		t.Fatalf("unexpected font metrics: bytesPerRow=%d, glyphByteSize=%d, glyphCount=%d", f.BytesPerRow, f.GlyphByteSize, f.GlyphCount)
	}

	if f.HasUnicodeTable() {
		t.Fatal("expected font without the unicode flag not to have a unicode table")
	}

	if &f.Data[0] != &data[HeaderSize] {
		t.Fatal("expected the glyph table to reference the font data")
	}

	if got := f.Header(); got != mockHeader10x14(2) {
		t.Fatalf("expected Header() to return %+v; got %+v", mockHeader10x14(2), got)
	}
}

func TestLoadErrors(t *testing.T) {
	badMagic := mockHeader10x14(2)
	badMagic.Magic = [4]byte{0x36, 0x04, 0x00, 0x00}

	headerTooLarge := mockHeader10x14(2)
	headerTooLarge.HeaderSize = 1024

	zeroWidth := mockHeader10x14(2)
	zeroWidth.GlyphWidth = 0

	badGlyphSize := mockHeader10x14(2)
	badGlyphSize.GlyphByteSize = 14

	tooManyGlyphs := mockHeader10x14(3)

	overflow := mockHeader10x14(0xffffffff)

	specs := []struct {
		descr  string
		data   []byte
		expErr error
	}{
		{"empty", nil, errTruncatedHeader},
		{"truncated header", make([]byte, HeaderSize-1), errTruncatedHeader},
		{"bad magic", mockPSF2(badMagic, mockGlyphs10x14), errBadMagic},
		{"header size", mockPSF2(headerTooLarge, mockGlyphs10x14), errBadHeaderSize},
		{"zero width", mockPSF2(zeroWidth, mockGlyphs10x14), errBadDimensions},
		{"glyph size", mockPSF2(badGlyphSize, mockGlyphs10x14), errBadGlyphSize},
		{"truncated glyphs", mockPSF2(tooManyGlyphs, mockGlyphs10x14), errTruncatedGlyphs},
		{"glyph count overflow", mockPSF2(overflow, mockGlyphs10x14), errTruncatedGlyphs},
	}

	for specIndex, spec := range specs {
		f, err := Load(spec.data)
		if err != spec.expErr {
			t.Errorf("[spec %d] %s: expected error %v; got %v", specIndex, spec.descr, spec.expErr, err)
			continue
		}

		if f != nil {
			t.Errorf("[spec %d] %s: expected a nil font on error", specIndex, spec.descr)
		}

		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("[spec %d] %s: expected error to match ErrInvalidFormat", specIndex, spec.descr)
		}
	}
}

func TestLoadIgnoresUnusableUnicodeTable(t *testing.T) {
	hdr := mockHeader10x14(2)
	hdr.Flags = FlagUnicodeTable

	specs := []struct {
		descr   string
		trailer []byte
	}{
		{"missing table", nil},
		{"invalid utf8", []byte{0x80, 0xff}},
		{"truncated utf8", []byte{'A', 0xc3}},
		{"only terminators", []byte{0xff, 0xff}},
	}

	for specIndex, spec := range specs {
		payload := append(append([]byte{}, mockGlyphs10x14...), spec.trailer...)
		f, err := Load(mockPSF2(hdr, payload))
		if err != nil {
			t.Errorf("[spec %d] %s: expected font to load; got %v", specIndex, spec.descr, err)
			continue
		}

		if f.HasUnicodeTable() {
			t.Errorf("[spec %d] %s: expected the unicode table to be ignored", specIndex, spec.descr)
		}

		if index, ok := f.GlyphIndex(1); !ok || index != 1 {
			t.Errorf("[spec %d] %s: expected code point 1 to map directly to glyph 1; got (%d, %t)", specIndex, spec.descr, index, ok)
		}
	}
}

func TestLoadSucceedsIffGlyphTableFits(t *testing.T) {
	// The payload holds exactly 2 glyphs
	for count := uint32(0); count <= 4; count++ {
		_, err := Load(mockPSF2(mockHeader10x14(count), mockGlyphs10x14))
		if expOK := count <= 2; expOK != (err == nil) {
			t.Errorf("[count %d] expected success=%t; got error %v", count, expOK, err)
		}
	}

	// Trailing data after the glyph table is allowed
	if _, err := Load(mockPSF2(mockHeader10x14(1), mockGlyphs10x14)); err != nil {
		t.Fatalf("expected font with trailing data to load; got %v", err)
	}
}

func TestGlyph(t *testing.T) {
	f, err := Load(mockPSF2(mockHeader10x14(2), mockGlyphs10x14))
	if err != nil {
		t.Fatal(err)
	}

	for index := uint32(0); index < f.GlyphCount; index++ {
		glyph, err := f.Glyph(index)
		if err != nil {
			t.Fatalf("[glyph %d] unexpected error: %v", index, err)
		}

		if uint32(len(glyph)) != f.GlyphByteSize || uint32(cap(glyph)) != f.GlyphByteSize {
			t.Fatalf("[glyph %d] expected glyph len/cap to be %d; got %d/%d", index, f.GlyphByteSize, len(glyph), cap(glyph))
		}

		if exp := mockGlyphs10x14[index*28]; glyph[0] != exp {
			t.Fatalf("[glyph %d] expected first byte 0x%x; got 0x%x", index, exp, glyph[0])
		}
	}

	for _, index := range []uint32{2, 3, 0xffffffff} {
		if _, err := f.Glyph(index); err != ErrGlyphOutOfRange {
			t.Errorf("[glyph %d] expected ErrGlyphOutOfRange; got %v", index, err)
		}
	}

	// A font whose Data is shorter than its metrics claim must not panic
	broken := &Font{GlyphWidth: 8, GlyphHeight: 4, BytesPerRow: 1, GlyphByteSize: 4, GlyphCount: 4, Data: make([]byte, 6)}
	if _, err := broken.Glyph(1); err != ErrGlyphOutOfRange {
		t.Fatalf("expected ErrGlyphOutOfRange for a glyph beyond Data; got %v", err)
	}
}

func TestPixelSet(t *testing.T) {
	f, err := Load(mockPSF2(mockHeader10x14(2), mockGlyphs10x14))
	if err != nil {
		t.Fatal(err)
	}

	glyph, _ := f.Glyph(1)

	specs := []struct {
		row    uint32
		expRow string
	}{
		{0, "0000010000"},
		{6, "0001100110"},
		{11, "0110000011"},
		{13, "1111000111"},
	}

	for specIndex, spec := range specs {
		var got []byte
		for x := uint32(0); x < f.GlyphWidth; x++ {
			if f.PixelSet(glyph, x, spec.row) {
				got = append(got, '1')
			} else {
				got = append(got, '0')
			}
		}

		if string(got) != spec.expRow {
			t.Errorf("[spec %d] expected row %d to be %s; got %s", specIndex, spec.row, spec.expRow, got)
		}
	}

	// Out of range coordinates and short bitmaps report false
	if f.PixelSet(glyph, 10, 0) || f.PixelSet(glyph, 0, 14) || f.PixelSet(glyph[:2], 5, 1) {
		t.Fatal("expected PixelSet to return false for out of range pixels")
	}
}
