package console

import (
	"fbcon/device/video/console/font"
	"fbcon/kernel"
	"unicode/utf8"
)

const (
	// DefaultTabWidth defines the number of cells between tab stops.
	DefaultTabWidth = 4

	// fallbackGlyphHeight is the scroll distance used by ScrollUp when no
	// font has been set.
	fallbackGlyphHeight = 16
)

var (
	// presentCopyFn copies the back surface pixels to the front surface.
	// It is mocked by tests.
	presentCopyFn = func(dst, src []uint32) int { return copy(dst, src) }

	// replacementRunes are tried in order when the font has no glyph for a
	// character.
	replacementRunes = []rune{utf8.RuneError, '?'}

	errNilSurface      = &kernel.Error{Module: "console", Message: "front surface is required"}
	errSurfaceMismatch = &kernel.Error{Module: "console", Message: "front and back surface dimensions differ"}
	errAliasedSurfaces = &kernel.Error{Module: "console", Message: "front and back surfaces share memory"}
)

// Console renders text onto a linear 32bpp framebuffer using a bitmap font.
//
// When a back surface is supplied all drawing targets it and Present copies
// its contents to the front (visible) surface. Without a back surface drawing
// targets the front surface directly.
//
// Console is not safe for concurrent use; see Synchronized.
type Console struct {
	width  uint32
	height uint32

	front *Surface
	back  *Surface

	font *font.Font

	// Cursor position in pixels.
	x, y uint32

	fg, bg   Color
	tabWidth uint32

	// dirty is set whenever the active surface is modified and cleared
	// by Present.
	dirty bool

	// pending holds the leading bytes of a UTF-8 sequence that has not
	// been completely received by Write yet.
	pending    [utf8.UTFMax]byte
	pendingLen int
}

// New creates a console that displays on front. If back is not nil the
// console is double-buffered and back must have the same dimensions as front
// without sharing its memory.
func New(front, back *Surface) (*Console, error) {
	if front == nil {
		return nil, errNilSurface
	}

	if back != nil {
		if back.width != front.width || back.height != front.height {
			return nil, errSurfaceMismatch
		}

		if back == front || back.overlaps(front) {
			return nil, errAliasedSurfaces
		}
	}

	return &Console{
		width:    front.width,
		height:   front.height,
		front:    front,
		back:     back,
		fg:       DefaultFg,
		bg:       DefaultBg,
		tabWidth: DefaultTabWidth,
		dirty:    true,
	}, nil
}

// SetFont selects a bitmap font to be used by the console. Characters written
// before a font is set are discarded. Passing nil is a no-op.
func (cons *Console) SetFont(f *font.Font) {
	if f == nil {
		return
	}

	cons.font = f
}

// Font returns the active font or nil.
func (cons *Console) Font() *font.Font {
	return cons.font
}

// Dimensions returns the console width and height in the specified dimension.
func (cons *Console) Dimensions(dim Dimension) (uint32, uint32) {
	switch dim {
	case Characters:
		if cons.font == nil {
			return 0, 0
		}
		return cons.width / cons.font.GlyphWidth, cons.height / cons.font.GlyphHeight
	default:
		return cons.width, cons.height
	}
}

// Colors returns the foreground and background colors.
func (cons *Console) Colors() (fg, bg Color) {
	return cons.fg, cons.bg
}

// SetColors updates the foreground and background colors. Existing surface
// contents are not modified.
func (cons *Console) SetColors(fg, bg Color) {
	cons.fg, cons.bg = fg, bg
}

// SetTabWidth sets the number of cells between tab stops. A zero width makes
// tabs no-ops.
func (cons *Console) SetTabWidth(width uint32) {
	cons.tabWidth = width
}

// Cursor returns the cursor position in pixels.
func (cons *Console) Cursor() (x, y uint32) {
	return cons.x, cons.y
}

// SetCursor moves the cursor to pixel position (x, y). The position is clipped
// so that a glyph drawn at the cursor starts inside the surface and does not
// extend past its bottom edge.
func (cons *Console) SetCursor(x, y uint32) {
	if x >= cons.width {
		x = cons.width - 1
	}

	maxY := cons.height - 1
	if cons.font != nil {
		if gh := cons.font.GlyphHeight; gh <= cons.height {
			maxY = cons.height - gh
		} else {
			maxY = 0
		}
	}

	if y > maxY {
		y = maxY
	}

	cons.x, cons.y = x, y
}

// Dirty returns true if the active surface has changes that have not been
// presented yet.
func (cons *Console) Dirty() bool {
	return cons.dirty
}

// DoubleBuffered returns true if the console renders into a back surface.
func (cons *Console) DoubleBuffered() bool {
	return cons.back != nil
}

// Surface returns the surface that drawing operations modify.
func (cons *Console) Surface() *Surface {
	if cons.back != nil {
		return cons.back
	}

	return cons.front
}

// Front returns the visible surface.
func (cons *Console) Front() *Surface {
	return cons.front
}

// Clear fills the active surface with c and makes c the background color.
func (cons *Console) Clear(c Color) {
	cons.bg = c
	cons.Surface().Fill(c)
	cons.dirty = true
}

// PutPixel sets the pixel at (x, y) of the active surface to c. Out of range
// coordinates are silently ignored.
func (cons *Console) PutPixel(x, y uint32, c Color) {
	if cons.Surface().SetPixel(x, y, c) {
		cons.dirty = true
	}
}

// DrawChar renders ch at the cursor position using the foreground color and
// advances the cursor. Only the glyph's foreground pixels are written; the
// rest of the glyph cell keeps its current contents.
//
// The following characters are interpreted instead of being drawn:
//  - \n (line-feed; also returns the cursor to column 0)
//  - \r (carriage-return)
//  - \t (moves the cursor to the next tab stop)
//  - \b (backspace; moves back one cell and erases it)
//
// If the glyph does not fit in the remainder of the current line the cursor
// wraps to the next line. The console scrolls up whenever the cursor line
// would extend past the bottom of the surface.
func (cons *Console) DrawChar(ch rune) {
	if cons.font == nil {
		return
	}

	gw, gh := cons.font.GlyphWidth, cons.font.GlyphHeight

	switch ch {
	case '\n':
		cons.x = 0
		cons.y += gh
		cons.scrollIfNeeded()
		return
	case '\r':
		cons.x = 0
		return
	case '\t':
		if cons.tabWidth == 0 {
			return
		}
		cons.x += (cons.tabWidth - (cons.x/gw)%cons.tabWidth) * gw
		if cons.x > cons.width {
			cons.x = cons.width
		}
		return
	case '\b':
		if cons.x >= gw {
			cons.x -= gw
			cons.Surface().fillRect(cons.x, cons.y, gw, gh, cons.bg)
			cons.dirty = true
		}
		return
	}

	glyph, ok := cons.lookupGlyph(ch)
	if !ok {
		return
	}

	// Glyphs wider than the console are drawn clipped at column 0
	// instead of wrapping forever.
	if cons.x > 0 && cons.x+gw > cons.width {
		cons.x = 0
		cons.y += gh
	}
	cons.scrollIfNeeded()

	for py := uint32(0); py < gh; py++ {
		for px := uint32(0); px < gw; px++ {
			if cons.font.PixelSet(glyph, px, py) {
				cons.PutPixel(cons.x+px, cons.y+py, cons.fg)
			}
		}
	}

	cons.x += gw
}

// lookupGlyph returns the bitmap for ch falling back to a replacement glyph
// when the font does not provide one.
func (cons *Console) lookupGlyph(ch rune) ([]byte, bool) {
	index, ok := cons.font.GlyphIndex(ch)
	for i := 0; !ok && i < len(replacementRunes); i++ {
		index, ok = cons.font.GlyphIndex(replacementRunes[i])
	}

	if !ok {
		return nil, false
	}

	glyph, err := cons.font.Glyph(index)
	return glyph, err == nil
}

// scrollIfNeeded scrolls the console up by one line if a glyph drawn at the
// cursor would extend past the bottom of the surface.
func (cons *Console) scrollIfNeeded() {
	if cons.y+cons.font.GlyphHeight > cons.height {
		cons.ScrollUp()
	}
}

// ScrollUp moves the contents of the active surface up by one glyph height,
// fills the exposed rows at the bottom with the background color and moves
// the cursor up by one line.
func (cons *Console) ScrollUp() {
	gh := uint32(fallbackGlyphHeight)
	if cons.font != nil {
		gh = cons.font.GlyphHeight
	}

	surface := cons.Surface()
	if gh >= cons.height {
		surface.Fill(cons.bg)
		cons.y = 0
		cons.dirty = true
		return
	}

	// copy handles the overlapping source and destination ranges
	copy(surface.pix, surface.pix[surface.offset(0, gh):])
	surface.fillRows(cons.height-gh, cons.height, cons.bg)

	if cons.y >= gh {
		cons.y -= gh
	} else {
		cons.y = 0
	}
	cons.dirty = true
}

// Present copies the back surface to the front surface if there are changes
// that have not been presented yet and returns true if a copy took place. In
// single-buffered mode Present only clears the dirty flag.
func (cons *Console) Present() bool {
	if !cons.dirty {
		return false
	}

	cons.dirty = false
	if cons.back == nil {
		return false
	}

	presentCopyFn(cons.front.pix, cons.back.pix)
	return true
}

// Write implements io.Writer. The data is decoded as UTF-8 and each character
// is passed to DrawChar. A multi-byte sequence may be split across calls.
func (cons *Console) Write(data []byte) (int, error) {
	for _, b := range data {
		cons.WriteByte(b)
	}

	return len(data), nil
}

// WriteString writes the contents of s to the console.
func (cons *Console) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		cons.WriteByte(s[i])
	}

	return len(s), nil
}

// WriteByte implements io.ByteWriter.
func (cons *Console) WriteByte(b byte) error {
	if cons.pendingLen == 0 && b < utf8.RuneSelf {
		cons.DrawChar(rune(b))
		return nil
	}

	cons.pending[cons.pendingLen] = b
	cons.pendingLen++

	seq := cons.pending[:cons.pendingLen]
	if !utf8.FullRune(seq) {
		return nil
	}

	r, size := utf8.DecodeRune(seq)
	cons.DrawChar(r)

	// An invalid sequence consumes a single byte; feed the rest back in.
	var rest [utf8.UTFMax]byte
	restLen := copy(rest[:], seq[size:])
	cons.pendingLen = 0
	for _, rb := range rest[:restLen] {
		cons.WriteByte(rb)
	}

	return nil
}
