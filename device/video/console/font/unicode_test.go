package font

import (
	"reflect"
	"testing"
)

func TestParseUnicodeTable(t *testing.T) {
	specs := []struct {
		descr      string
		data       []byte
		glyphCount uint32
		exp        map[rune]uint32
	}{
		{
			"single code points",
			[]byte{'A', 0xff, 'B', 'b', 0xff},
			2,
			map[rune]uint32{'A': 0, 'B': 1, 'b': 1},
		},
		{
			"multi-byte utf8",
			[]byte{0xc3, 0xa9, 0xff, 0xef, 0xbf, 0xbd, 0xff},
			2,
			map[rune]uint32{'é': 0, '�': 1},
		},
		{
			"sequences are skipped",
			[]byte{'e', 0xfe, 'e', 0xcc, 0x81, 0xff, 'x', 0xff},
			2,
			map[rune]uint32{'e': 0, 'x': 1},
		},
		{
			"first glyph wins",
			[]byte{'A', 0xff, 'A', 0xff},
			2,
			map[rune]uint32{'A': 0},
		},
		{
			"entries past glyph count are ignored",
			[]byte{'A', 0xff, 'B', 0xff},
			1,
			map[rune]uint32{'A': 0},
		},
		{
			"truncated table",
			[]byte{'A'},
			4,
			map[rune]uint32{'A': 0},
		},
	}

	for specIndex, spec := range specs {
		got, err := parseUnicodeTable(spec.data, spec.glyphCount)
		if err != nil {
			t.Errorf("[spec %d] %s: unexpected error: %v", specIndex, spec.descr, err)
			continue
		}

		if !reflect.DeepEqual(got, spec.exp) {
			t.Errorf("[spec %d] %s: expected table %v; got %v", specIndex, spec.descr, spec.exp, got)
		}
	}

	if _, err := parseUnicodeTable([]byte{'A', 0xc3, 0xff}, 1); err != errBadUnicodeTable {
		t.Fatalf("expected errBadUnicodeTable for invalid utf8; got %v", err)
	}
}

func TestLoadWithUnicodeTable(t *testing.T) {
	hdr := mockHeader10x14(2)
	hdr.Flags = FlagUnicodeTable

	payload := append(append([]byte{}, mockGlyphs10x14...), ' ', 0xff, 'A', 0xce, 0x91, 0xff)
	f, err := Load(mockPSF2(hdr, payload))
	if err != nil {
		t.Fatal(err)
	}

	if !f.HasUnicodeTable() {
		t.Fatal("expected font to have a unicode table")
	}

	specs := []struct {
		r        rune
		expIndex uint32
		expOK    bool
	}{
		{' ', 0, true},
		{'A', 1, true},
		{'Α', 1, true}, // greek capital alpha
		{'B', 0, false},
		// unmapped code points below the glyph count index glyphs directly
		{0, 0, true},
		{1, 1, true},
		{2, 0, false},
	}

	for specIndex, spec := range specs {
		index, ok := f.GlyphIndex(spec.r)
		if ok != spec.expOK || index != spec.expIndex {
			t.Errorf("[spec %d] expected GlyphIndex(%q) to return (%d, %t); got (%d, %t)", specIndex, spec.r, spec.expIndex, spec.expOK, index, ok)
		}
	}
}

func TestGlyphIndexWithoutUnicodeTable(t *testing.T) {
	f := &Font{GlyphCount: 256}

	specs := []struct {
		r        rune
		expIndex uint32
		expOK    bool
	}{
		{0, 0, true},
		{'A', 'A', true},
		{255, 255, true},
		{256, 0, false},
		{-1, 0, false},
	}

	for specIndex, spec := range specs {
		index, ok := f.GlyphIndex(spec.r)
		if ok != spec.expOK || index != spec.expIndex {
			t.Errorf("[spec %d] expected GlyphIndex(%d) to return (%d, %t); got (%d, %t)", specIndex, spec.r, spec.expIndex, spec.expOK, index, ok)
		}
	}
}

func TestMapRune(t *testing.T) {
	f := &Font{GlyphCount: 2}

	f.MapRune('x', 5)
	if f.HasUnicodeTable() {
		t.Fatal("expected mapping to an out of range glyph to be ignored")
	}

	f.MapRune('x', 1)
	if index, ok := f.GlyphIndex('x'); !ok || index != 1 {
		t.Fatalf("expected 'x' to map to glyph 1; got (%d, %t)", index, ok)
	}

	if index, ok := f.GlyphIndex(0); !ok || index != 0 {
		t.Fatalf("expected unmapped rune 0 to map directly to glyph 0; got (%d, %t)", index, ok)
	}

	if _, ok := f.GlyphIndex('y'); ok {
		t.Fatal("expected lookup of an unmapped rune beyond the glyph count to fail")
	}
}
