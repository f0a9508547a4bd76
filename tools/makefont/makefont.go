package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/parser"
	"go/printer"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fbcon/device/video/console/font"

	"github.com/iancoleman/strcase"
	"github.com/zachomedia/go-bdf"
)

func exit(err error) {
	fmt.Fprintf(os.Stderr, "[makefont] error: %s\n", err.Error())
	os.Exit(1)
}

// fontOptions holds the console font attributes that are not part of the
// PSF2 format.
type fontOptions struct {
	name              string
	varName           string
	recommendedWidth  uint32
	recommendedHeight uint32
	priority          uint32
}

// loadFont parses data as a PSF2 font or, if the PSF2 magic is missing, as
// a BDF font.
func loadFont(name string, data []byte) (*font.Font, error) {
	if bytes.HasPrefix(data, font.Magic[:]) {
		f, err := font.Load(data)
		if err != nil {
			return nil, err
		}

		f.Name = name
		return f, nil
	}

	bdfFont, err := bdf.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bdf: %w", err)
	}

	runes := make([]rune, 0, len(bdfFont.Characters))
	seen := make(map[rune]bool, len(bdfFont.Characters))
	for _, ch := range bdfFont.Characters {
		if ch.Encoding < 0 || seen[ch.Encoding] {
			continue
		}
		seen[ch.Encoding] = true
		runes = append(runes, ch.Encoding)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return font.FromFace(name, bdfFont.NewFace(), runes)
}

// genFontFile returns the source of a Go file for package font that embeds f
// and registers it with the font list.
func genFontFile(f *font.Font, opts fontOptions) (string, error) {
	psf, err := font.AppendEncoded(nil, f)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, `
// Code generated by makefont; DO NOT EDIT.

package font

var %sData = []byte{
`, opts.varName)

	for index, b := range psf {
		if index != 0 && index%16 == 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "0x%02x, ", b)
	}
	fmt.Fprint(&buf, "\n}\n")

	fmt.Fprintf(&buf, `
func init() {
f, err := Load(%sData)
if err != nil {
panic(err)
}

f.Name = %q
f.RecommendedWidth = %d
f.RecommendedHeight = %d
f.Priority = %d
Register(f)
}
`, opts.varName, opts.name, opts.recommendedWidth, opts.recommendedHeight, opts.priority)

	// Pretty-print generated file using go/printer
	fSet := token.NewFileSet()
	astFile, err := parser.ParseFile(fSet, "", buf.String(), parser.ParseComments)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err = printer.Fprint(&out, fSet, astFile); err != nil {
		return "", err
	}

	return out.String(), nil
}

// defaultVarName derives a Go identifier for the generated font variable from
// the font name.
func defaultVarName(name string) string {
	return strcase.ToLowerCamel("font_" + name)
}

func writeOutput(output string, fn func(io.Writer) error) error {
	if output == "-" {
		return fn(os.Stdout)
	}

	fOut, err := os.Create(output)
	if err != nil {
		return err
	}
	defer fOut.Close()

	return fn(fOut)
}

func runTool() error {
	format := flag.String("format", "go", "the output format (go or psf)")
	name := flag.String("name", "", "the font name used for lookups; defaults to the input file name without extension")
	varName := flag.String("var-name", "", "the name of the generated variable; defaults to a camel-cased version of the font name")
	recWidth := flag.Uint("rec-width", 640, "the recommended console width for the font")
	recHeight := flag.Uint("rec-height", 480, "the recommended console height for the font")
	priority := flag.Uint("priority", 1, "the font priority; lower values win when fonts fit equally well")
	output := flag.String("out", "-", "a file to write the generated font or - to output to STDOUT")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, "makefont: convert a bdf or psf2 font into a console font\n\n")
		fmt.Fprint(os.Stderr, "Usage: makefont [options] font\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		exit(errors.New("missing font file argument"))
	}

	if *name == "" {
		base := filepath.Base(flag.Arg(0))
		*name = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	if *varName == "" {
		*varName = defaultVarName(*name)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}

	f, err := loadFont(*name, data)
	if err != nil {
		return err
	}

	switch *format {
	case "psf":
		return writeOutput(*output, func(w io.Writer) error { return font.Encode(w, f) })
	case "go":
		src, err := genFontFile(f, fontOptions{
			name:              *name,
			varName:           *varName,
			recommendedWidth:  uint32(*recWidth),
			recommendedHeight: uint32(*recHeight),
			priority:          uint32(*priority),
		})
		if err != nil {
			return err
		}

		return writeOutput(*output, func(w io.Writer) error {
			_, err := io.WriteString(w, src)
			return err
		})
	default:
		return fmt.Errorf("unsupported output format %q; supported values are: go or psf", *format)
	}
}

func main() {
	if err := runTool(); err != nil {
		exit(err)
	}
}
