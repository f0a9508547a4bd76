package font

import (
	"unicode/utf8"

	"golang.org/x/image/font/basicfont"
)

// Basic7x13 is the name of the builtin font derived from the x/image 7x13
// basic face. It covers printable ASCII plus the unicode replacement glyph.
const Basic7x13 = "basic7x13"

func init() {
	runes := make([]rune, 0, 0x7f-0x20+1)
	for r := rune(0x20); r < 0x7f; r++ {
		runes = append(runes, r)
	}
	runes = append(runes, utf8.RuneError)

	f, err := FromFace(Basic7x13, basicfont.Face7x13, runes)
	if err != nil {
		return
	}

	f.RecommendedWidth, f.RecommendedHeight = 640, 480
	f.Priority = 10
	Register(f)
}
