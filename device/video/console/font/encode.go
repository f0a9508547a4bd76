package font

import (
	"fbcon/kernel"
	"io"
)

var errInconsistentFont = &kernel.Error{Module: "font", Message: "font metrics do not match its glyph data", Kind: ErrInvalidFormat}

// Encode writes f to w using the PSF2 format. The unicode table is emitted
// when the font has one.
func Encode(w io.Writer, f *Font) error {
	data, err := AppendEncoded(nil, f)
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// AppendEncoded appends the PSF2 encoding of f to buf and returns the extended
// buffer.
func AppendEncoded(buf []byte, f *Font) ([]byte, error) {
	tableSize := uint64(f.GlyphCount) * uint64(f.GlyphByteSize)
	switch {
	case f.GlyphWidth == 0 || f.GlyphHeight == 0,
		f.BytesPerRow != (f.GlyphWidth+7)>>3,
		f.GlyphByteSize != f.BytesPerRow*f.GlyphHeight,
		uint64(len(f.Data)) < tableSize:
		return buf, errInconsistentFont
	}

	buf = appendHeader(buf, f.Header())
	buf = append(buf, f.Data[:tableSize]...)
	if f.HasUnicodeTable() {
		buf = appendUnicodeTable(buf, f.unicode, f.GlyphCount)
	}

	return buf, nil
}
