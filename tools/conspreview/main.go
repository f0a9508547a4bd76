package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fbcon/device/video/console"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyCtrlD     = 0x04
	keyDelete    = 0x7f
	clearScreen  = "\x1b[H\x1b[2J"
	fallbackCols = 80
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[conspreview] error: %s\n", err.Error())
	os.Exit(1)
}

// terminalCols returns the width of the terminal attached to f.
func terminalCols(f *os.File) int {
	if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
		return cols
	}

	return fallbackCols
}

// present copies pending changes to the visible surface and renders it.
func present(cons *console.Console, cfg *config, w io.Writer, eol string) error {
	cons.Present()

	if cfg.Output != "" {
		return writePNG(cfg.Output, cons.Front())
	}

	return writeBlockPreview(w, cons.Front(), terminalCols(os.Stdout), eol)
}

// runInteractive puts the terminal in raw mode and echoes every key press
// into the console until Ctrl-C or Ctrl-D is pressed.
func runInteractive(cons *console.Console, cfg *config) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("interactive mode requires stdin to be a terminal")
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	buf := make([]byte, 64)
	for {
		fmt.Fprint(os.Stdout, clearScreen)
		if err = present(cons, cfg, os.Stdout, "\r\n"); err != nil {
			return err
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		for _, b := range buf[:n] {
			switch b {
			case keyCtrlC, keyCtrlD:
				return nil
			case '\r':
				b = '\n'
			case keyDelete:
				b = '\b'
			}
			cons.WriteByte(b)
		}
	}
}

func runTool() error {
	configFile := flag.String("config", "", "a TOML file with the console configuration")
	fontName := flag.String("font", "", "the name of a builtin font or the path to a PSF2 font")
	width := flag.Uint("width", 0, "the console width in pixels")
	height := flag.Uint("height", 0, "the console height in pixels")
	fg := flag.String("fg", "", "the foreground color as RRGGBB")
	bg := flag.String("bg", "", "the background color as RRGGBB")
	single := flag.Bool("single", false, "render without a back buffer")
	output := flag.String("out", "", "a PNG file to write the rendered console to; if omitted a preview is printed to the terminal")
	interactive := flag.Bool("interactive", false, "echo key presses into the console until Ctrl-C is pressed")
	logLevel := flag.String("log-level", "", "the log level (debug, info, warn or error)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "conspreview: render text through the framebuffer console\n\n")
		fmt.Fprint(os.Stderr, "Usage: conspreview [options] [text...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}

	// Explicitly set flags override the config file
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "font":
			cfg.Font = *fontName
		case "width":
			cfg.Width = uint32(*width)
		case "height":
			cfg.Height = uint32(*height)
		case "fg":
			cfg.Fg = *fg
		case "bg":
			cfg.Bg = *bg
		case "single":
			cfg.SingleBuffered = *single
		case "out":
			cfg.Output = *output
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	cons, err := newConsole(&cfg)
	if err != nil {
		return err
	}

	charW, charH := cons.Dimensions(console.Characters)
	log := logrus.WithFields(logrus.Fields{
		"font":    cons.Font().Name,
		"width":   cfg.Width,
		"height":  cfg.Height,
		"columns": charW,
		"rows":    charH,
		"double":  cons.DoubleBuffered(),
	})
	log.Debug("console initialized")

	if *interactive {
		return runInteractive(cons, &cfg)
	}

	if flag.NArg() != 0 {
		cons.WriteString(strings.Join(flag.Args(), " "))
	} else {
		if _, err = io.Copy(cons, os.Stdin); err != nil {
			return err
		}
	}

	curX, curY := cons.Cursor()
	log.WithFields(logrus.Fields{"cursor_x": curX, "cursor_y": curY}).Info("rendered text")

	return present(cons, &cfg, os.Stdout, "\n")
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
