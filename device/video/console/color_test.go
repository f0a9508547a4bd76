package console

import (
	"image/color"
	"testing"
)

func TestColor(t *testing.T) {
	c := RGB(0x12, 0x34, 0x56)
	if c != 0x123456 {
		t.Fatalf("expected RGB to pack components into 0x123456; got 0x%x", uint32(c))
	}

	if r, g, b := c.Components(); r != 0x12 || g != 0x34 || b != 0x56 {
		t.Fatalf("unexpected components: %x %x %x", r, g, b)
	}

	if r, g, b, a := c.RGBA(); r != 0x1212 || g != 0x3434 || b != 0x5656 || a != 0xffff {
		t.Fatalf("unexpected RGBA result: %x %x %x %x", r, g, b, a)
	}
}

func TestColorFromRGBA(t *testing.T) {
	specs := []struct {
		in  color.Color
		exp Color
	}{
		{Color(0xff123456), 0x123456},
		{color.RGBA{R: 0xc0, G: 0xca, B: 0xf5, A: 0xff}, DefaultFg},
		{color.Black, 0},
		{color.White, 0xffffff},
		{color.Gray16{Y: 0x8080}, 0x808080},
	}

	for specIndex, spec := range specs {
		if got := ColorFromRGBA(spec.in); got != spec.exp {
			t.Errorf("[spec %d] expected 0x%x; got 0x%x", specIndex, uint32(spec.exp), uint32(got))
		}
	}
}

func TestParseColor(t *testing.T) {
	specs := []struct {
		input    string
		expColor Color
		expOK    bool
	}{
		{"c0caf5", 0xc0caf5, true},
		{"#1A1B26", 0x1a1b26, true},
		{"0x00ff00", 0x00ff00, true},
		{"0Xabcdef", 0xabcdef, true},
		{"fff", 0, false},
		{"#12345g", 0, false},
		{"0xff00ff00", 0, false},
		{"", 0, false},
	}

	for specIndex, spec := range specs {
		c, ok := ParseColor(spec.input)
		if c != spec.expColor || ok != spec.expOK {
			t.Errorf("[spec %d] expected ParseColor(%q) to return (0x%x, %t); got (0x%x, %t)", specIndex, spec.input, uint32(spec.expColor), spec.expOK, uint32(c), ok)
		}
	}
}
