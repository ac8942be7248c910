// Command typeset lays out a Markdown document and emits the paginated
// draw instructions as JSON for a downstream PDF writer.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/hyphen"
	"github.com/wudi/typeset/markdown"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

type options struct {
	inPath      string
	outPath     string
	fontPath    string
	patternPath string
	paper       string
	fontSize    float64
	margin      float64
	theme       string
	glyphs      bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "typeset: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: typeset [flags] [markdown-file]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.outPath, "out", "", "Output file for the JSON page dump (default stdout)")
	flag.StringVar(&opts.fontPath, "font", "", "TrueType/OpenType font file for text metrics")
	flag.StringVar(&opts.patternPath, "hyphen", "", "Hyphenation pattern file (TeX format); omit to disable hyphenation")
	flag.StringVar(&opts.paper, "paper", "a4", "Paper size: a4, a5 or letter")
	flag.Float64Var(&opts.fontSize, "size", 12, "Base font size in points")
	flag.Float64Var(&opts.margin, "margin", 72, "Page margin in points, all four sides")
	flag.StringVar(&opts.theme, "theme", "", "Chroma theme for code blocks")
	flag.BoolVar(&opts.glyphs, "glyphs", false, "Include shaped glyph runs for each text op (requires -font)")
	flag.Parse()

	if flag.NArg() > 1 {
		return opts, fmt.Errorf("at most one input file")
	}
	if flag.NArg() == 1 {
		opts.inPath = flag.Arg(0)
	}
	return opts, nil
}

func run(opts options) error {
	source, err := readInput(opts.inPath)
	if err != nil {
		return err
	}

	fc, face, err := buildFonts(opts.fontPath)
	if err != nil {
		return err
	}
	if opts.glyphs && face == nil {
		return fmt.Errorf("-glyphs requires a real font file (-font)")
	}

	paper, err := paperSize(opts.paper)
	if err != nil {
		return err
	}

	base := style.New().WithSize(opts.fontSize)
	conv := &markdown.Converter{Fonts: fc, Base: base, Theme: opts.theme}
	elements, err := conv.Convert(source)
	if err != nil {
		return err
	}

	docOpts := []typeset.Option{
		typeset.WithPaperSize(paper),
		typeset.WithMargins(render.Margins{
			Top: opts.margin, Right: opts.margin, Bottom: opts.margin, Left: opts.margin,
		}),
		typeset.WithDefaultStyle(base),
	}
	if opts.patternPath != "" {
		h, err := loadPatterns(opts.patternPath)
		if err != nil {
			return err
		}
		docOpts = append(docOpts, typeset.WithHyphenator(h))
	}

	doc := typeset.NewDocument(fc, docOpts...)
	for _, el := range elements {
		doc.Add(el)
	}

	res, err := doc.Render(context.Background())
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintf(os.Stderr, "typeset: warning: %s\n", d)
	}

	var runs []glyphRun
	if opts.glyphs {
		runs, err = shapeRuns(face, res.Pages)
		if err != nil {
			return err
		}
	}

	return writeOutput(opts.outPath, res, runs)
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func buildFonts(path string) (*fonts.Collection, *fonts.OpenTypeFace, error) {
	fc := fonts.NewCollection()
	if path == "" {
		// Metrics-only layout: uniform advances, no font file needed.
		return fc, nil, fc.Register("default", fonts.Family{Regular: fonts.FixedFace{}})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	face, err := fonts.NewOpenTypeFace(data)
	if err != nil {
		return nil, nil, err
	}
	return fc, face, fc.Register("default", fonts.Family{Regular: face})
}

func loadPatterns(path string) (hyphen.Hyphenator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hyphen.Patterns(f)
}

func paperSize(name string) (typeset.PaperSize, error) {
	switch name {
	case "a4":
		return typeset.A4, nil
	case "a5":
		return typeset.A5, nil
	case "letter":
		return typeset.Letter, nil
	}
	return typeset.PaperSize{}, fmt.Errorf("unknown paper size %q", name)
}

// glyphRun pairs a drawn text op with its shaped glyphs, for writers
// that position individual glyphs instead of strings.
type glyphRun struct {
	Page   int                 `json:"page"`
	X      float64             `json:"x"`
	Y      float64             `json:"y"`
	Text   string              `json:"text"`
	Glyphs []fonts.ShapedGlyph `json:"glyphs"`
}

func shapeRuns(face *fonts.OpenTypeFace, pages []*render.Page) ([]glyphRun, error) {
	var runs []glyphRun
	for _, p := range pages {
		for _, op := range p.Ops() {
			to, ok := op.(render.TextOp)
			if !ok {
				continue
			}
			glyphs, err := fonts.ShapeText(face, to.Text, to.Style.Size())
			if err != nil {
				return nil, fmt.Errorf("shape %q: %w", to.Text, err)
			}
			runs = append(runs, glyphRun{
				Page: p.Number(), X: to.X, Y: to.Y, Text: to.Text, Glyphs: glyphs,
			})
		}
	}
	return runs, nil
}

type output struct {
	Pages       []*render.Page       `json:"pages"`
	Diagnostics []typeset.Diagnostic `json:"diagnostics,omitempty"`
	GlyphRuns   []glyphRun           `json:"glyphRuns,omitempty"`
}

func writeOutput(path string, res *typeset.Result, runs []glyphRun) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output{Pages: res.Pages, Diagnostics: res.Diagnostics, GlyphRuns: runs})
}
