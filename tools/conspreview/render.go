package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"fbcon/device/video/console"
)

// newConsole builds a console according to cfg.
func newConsole(cfg *config) (*console.Console, error) {
	front, err := console.NewSurface(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	var back *console.Surface
	if !cfg.SingleBuffered {
		if back, err = console.NewSurface(cfg.Width, cfg.Height); err != nil {
			return nil, err
		}
	}

	cons, err := console.New(front, back)
	if err != nil {
		return nil, err
	}

	fg, bg, err := cfg.colors()
	if err != nil {
		return nil, err
	}

	f, err := cfg.loadFont()
	if err != nil {
		return nil, err
	}

	cons.SetColors(fg, bg)
	cons.SetTabWidth(cfg.TabWidth)
	cons.SetFont(f)
	cons.Clear(bg)

	return cons, nil
}

func writePNG(path string, img image.Image) error {
	fOut, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fOut.Close()

	return png.Encode(fOut, img)
}

// writeBlockPreview prints img to w using 24-bit ANSI colors and upper half
// block characters so each character cell covers two pixel rows. The image is
// downsampled to fit in maxCols columns. Each line is terminated with eol.
func writeBlockPreview(w io.Writer, img image.Image, maxCols int, eol string) error {
	bounds := img.Bounds()
	if maxCols <= 0 {
		maxCols = 80
	}

	scale := (bounds.Dx() + maxCols - 1) / maxCols
	if scale < 1 {
		scale = 1
	}

	bw := bufio.NewWriter(w)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 * scale {
		for x := bounds.Min.X; x < bounds.Max.X; x += scale {
			top := console.ColorFromRGBA(img.At(x, y))
			bottom := top
			if y+scale < bounds.Max.Y {
				bottom = console.ColorFromRGBA(img.At(x, y+scale))
			}

			tr, tg, tb := top.Components()
			br, bgr, bb := bottom.Components()
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bgr, bb)
		}
		fmt.Fprintf(bw, "\x1b[0m%s", eol)
	}

	return bw.Flush()
}
