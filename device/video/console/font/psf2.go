package font

import (
	"encoding/binary"
	"fbcon/kernel"
)

// HeaderSize is the size in bytes of an encoded PSF2 header.
const HeaderSize = 32

// FlagUnicodeTable is set in Header.Flags when the font carries a unicode
// translation table after the glyph bitmaps.
const FlagUnicodeTable = 0x01

// Magic is the PSF2 file signature.
var Magic = [4]byte{0x72, 0xb5, 0x4a, 0x86}

var (
	// ErrInvalidFormat is the class of all font parsing errors.
	ErrInvalidFormat = &kernel.Error{Module: "font", Message: "invalid PSF2 font"}

	// ErrGlyphOutOfRange is returned when looking up a glyph that the font
	// does not contain.
	ErrGlyphOutOfRange = &kernel.Error{Module: "font", Message: "glyph index out of range"}

	errTruncatedHeader = &kernel.Error{Module: "font", Message: "font data is shorter than the PSF2 header", Kind: ErrInvalidFormat}
	errBadMagic        = &kernel.Error{Module: "font", Message: "bad PSF2 magic", Kind: ErrInvalidFormat}
	errBadHeaderSize   = &kernel.Error{Module: "font", Message: "PSF2 header size exceeds font data", Kind: ErrInvalidFormat}
	errBadDimensions   = &kernel.Error{Module: "font", Message: "PSF2 glyph dimensions must be non-zero", Kind: ErrInvalidFormat}
	errBadGlyphSize    = &kernel.Error{Module: "font", Message: "PSF2 glyph size does not match glyph dimensions", Kind: ErrInvalidFormat}
	errTruncatedGlyphs = &kernel.Error{Module: "font", Message: "PSF2 glyph table exceeds font data", Kind: ErrInvalidFormat}
	errBadUnicodeTable = &kernel.Error{Module: "font", Message: "malformed PSF2 unicode table", Kind: ErrInvalidFormat}
)

// Header is the fixed-size PSF2 font header. All fields are stored in
// little-endian byte order.
type Header struct {
	Magic         [4]byte
	Version       uint32
	HeaderSize    uint32
	Flags         uint32
	GlyphCount    uint32
	GlyphByteSize uint32
	GlyphHeight   uint32
	GlyphWidth    uint32
}

// decodeHeader reads a header from the first HeaderSize bytes of data.
func decodeHeader(data []byte) (Header, error) {
	var hdr Header
	if len(data) < HeaderSize {
		return hdr, errTruncatedHeader
	}

	copy(hdr.Magic[:], data[0:4])
	hdr.Version = binary.LittleEndian.Uint32(data[4:8])
	hdr.HeaderSize = binary.LittleEndian.Uint32(data[8:12])
	hdr.Flags = binary.LittleEndian.Uint32(data[12:16])
	hdr.GlyphCount = binary.LittleEndian.Uint32(data[16:20])
	hdr.GlyphByteSize = binary.LittleEndian.Uint32(data[20:24])
	hdr.GlyphHeight = binary.LittleEndian.Uint32(data[24:28])
	hdr.GlyphWidth = binary.LittleEndian.Uint32(data[28:32])
	return hdr, nil
}

// appendHeader appends the encoded header to buf.
func appendHeader(buf []byte, hdr Header) []byte {
	buf = append(buf, hdr.Magic[:]...)
	for _, v := range []uint32{
		hdr.Version, hdr.HeaderSize, hdr.Flags, hdr.GlyphCount,
		hdr.GlyphByteSize, hdr.GlyphHeight, hdr.GlyphWidth,
	} {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

// Load parses a PSF2 font from data. The returned font references data
// directly so its contents must not be modified while the font is in use.
//
// Any parse failure is reported as an error matching ErrInvalidFormat.
func Load(data []byte) (*Font, error) {
	hdr, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	if hdr.Magic != Magic {
		return nil, errBadMagic
	}

	if uint64(hdr.HeaderSize) > uint64(len(data)) {
		return nil, errBadHeaderSize
	}

	if hdr.GlyphWidth == 0 || hdr.GlyphHeight == 0 {
		return nil, errBadDimensions
	}

	bytesPerRow := (hdr.GlyphWidth + 7) >> 3
	if uint64(hdr.GlyphByteSize) != uint64(hdr.GlyphHeight)*uint64(bytesPerRow) {
		return nil, errBadGlyphSize
	}

	tableEnd := uint64(hdr.HeaderSize) + uint64(hdr.GlyphCount)*uint64(hdr.GlyphByteSize)
	if tableEnd > uint64(len(data)) {
		return nil, errTruncatedGlyphs
	}

	f := &Font{
		GlyphWidth:    hdr.GlyphWidth,
		GlyphHeight:   hdr.GlyphHeight,
		BytesPerRow:   bytesPerRow,
		GlyphCount:    hdr.GlyphCount,
		GlyphByteSize: hdr.GlyphByteSize,
		Version:       hdr.Version,
		Flags:         hdr.Flags,
		Data:          data[hdr.HeaderSize:tableEnd:tableEnd],
	}

	// A malformed unicode table is ignored; lookups then fall back to
	// indexing glyphs by code point.
	if hdr.Flags&FlagUnicodeTable != 0 {
		if table, err := parseUnicodeTable(data[tableEnd:], hdr.GlyphCount); err == nil && len(table) != 0 {
			f.unicode = table
		}
	}

	return f, nil
}

// Header returns the PSF2 header describing this font.
func (f *Font) Header() Header {
	flags := f.Flags &^ FlagUnicodeTable
	if f.HasUnicodeTable() {
		flags |= FlagUnicodeTable
	}

	return Header{
		Magic:         Magic,
		Version:       f.Version,
		HeaderSize:    HeaderSize,
		Flags:         flags,
		GlyphCount:    f.GlyphCount,
		GlyphByteSize: f.GlyphByteSize,
		GlyphHeight:   f.GlyphHeight,
		GlyphWidth:    f.GlyphWidth,
	}
}

// Glyph returns the bitmap for the glyph at the specified index. The bitmap
// contains GlyphByteSize bytes organized as GlyphHeight rows of BytesPerRow
// bytes each, most significant bit first.
func (f *Font) Glyph(index uint32) ([]byte, error) {
	if index >= f.GlyphCount {
		return nil, ErrGlyphOutOfRange
	}

	start := uint64(index) * uint64(f.GlyphByteSize)
	end := start + uint64(f.GlyphByteSize)
	if end > uint64(len(f.Data)) {
		return nil, ErrGlyphOutOfRange
	}

	return f.Data[start:end:end], nil
}

// PixelSet reports whether the pixel at (px, py) of a glyph bitmap returned by
// Glyph is set. Coordinates outside the glyph report false.
func (f *Font) PixelSet(glyph []byte, px, py uint32) bool {
	if px >= f.GlyphWidth || py >= f.GlyphHeight {
		return false
	}

	offset := py*f.BytesPerRow + px>>3
	if offset >= uint32(len(glyph)) {
		return false
	}

	return (glyph[offset]>>(7-px&7))&1 == 1
}
