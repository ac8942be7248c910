// Package math typesets LaTeX formulas into pre-measured external
// blocks. The formula is converted to MathML, laid out as a box tree
// against the font-metrics collaborator, and flattened into draw
// instructions the layout engine places like any other fixed block.
package math

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/element"
	"github.com/wudi/typeset/fonts"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// scriptScale is the size reduction applied to superscripts and
// subscripts.
const scriptScale = 0.7

// Render typesets a LaTeX formula at the given style and returns it as
// a pre-measured block.
func Render(latex string, fc *fonts.Collection, st style.Style) (*element.ExternalBlock, error) {
	md := goldmark.New(goldmark.WithExtensions(treeblood.MathML()))
	var buf bytes.Buffer
	if err := md.Convert([]byte("$$"+latex+"$$"), &buf); err != nil {
		return nil, typeset.CollaboratorError("math renderer", err)
	}
	doc, err := html.Parse(&buf)
	if err != nil {
		return nil, typeset.CollaboratorError("math renderer", err)
	}
	root := findMath(doc)
	if root == nil {
		return nil, typeset.CollaboratorError("math renderer",
			fmt.Errorf("no MathML output for %q", latex))
	}
	return FromMathML(root, fc, st)
}

// FromMathML typesets an already-parsed MathML tree.
func FromMathML(root *html.Node, fc *fonts.Collection, st style.Style) (*element.ExternalBlock, error) {
	face, err := fc.Resolve(st)
	if err != nil {
		if errors.Is(err, fonts.ErrUnknownFamily) {
			return nil, typeset.InvalidStyleError(err)
		}
		return nil, typeset.CollaboratorError("font metrics", err)
	}
	box := measure(root, face, st.Size())
	if box == nil {
		return element.NewExternalBlock("math", 0, 0, nil), nil
	}
	var ops []render.Op
	flatten(box, 0, box.ascent, st, &ops)
	return element.NewExternalBlock("math", box.width, box.height, ops), nil
}

func findMath(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "math" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findMath(c); m != nil {
			return m
		}
	}
	return nil
}

// mathBox is a measured MathML node. Child offsets are relative to the
// parent's origin: x grows right, y is the child's baseline shift with
// positive values moving up, matching the usual math-axis convention.
// flatten converts to the engine's top-left y-down frame.
type mathBox struct {
	node     *html.Node
	text     string
	fontSize float64

	width   float64
	ascent  float64
	descent float64
	height  float64

	children []*mathBox
	x, y     float64
}

func measure(n *html.Node, face fonts.Face, fontSize float64) *mathBox {
	box := &mathBox{node: n, fontSize: fontSize}

	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		box.text = text
		box.width = fonts.MeasureString(face, text, fontSize)
		box.ascent, box.descent = face.LineMetrics(fontSize)
		box.height = box.ascent + box.descent
		return box
	}
	if n.Type != html.ElementNode {
		return nil
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		fs := fontSize
		if (n.Data == "msup" || n.Data == "msub") && len(box.children) > 0 {
			fs = fontSize * scriptScale
		}
		if child := measure(c, face, fs); child != nil {
			box.children = append(box.children, child)
		}
	}

	switch n.Data {
	case "mi", "mn", "mo", "mtext":
		if len(box.children) > 0 {
			c := box.children[0]
			box.width, box.ascent, box.descent, box.height = c.width, c.ascent, c.descent, c.height
		}

	case "mfrac":
		if len(box.children) >= 2 {
			num, den := box.children[0], box.children[1]
			box.width = max(num.width, den.width) + 4
			num.x = (box.width - num.width) / 2
			den.x = (box.width - den.width) / 2
			num.y = num.descent + 2.5
			den.y = -(den.ascent + 2.5)
			box.ascent = num.y + num.ascent
			box.descent = -den.y + den.descent
			box.height = box.ascent + box.descent
		}

	case "msup":
		if len(box.children) >= 2 {
			base, sup := box.children[0], box.children[1]
			box.width = base.width + sup.width
			sup.x = base.width
			sup.y = base.ascent * 0.5
			box.ascent = max(base.ascent, sup.y+sup.ascent)
			box.descent = base.descent
			box.height = box.ascent + box.descent
		}

	case "msub":
		if len(box.children) >= 2 {
			base, sub := box.children[0], box.children[1]
			box.width = base.width + sub.width
			sub.x = base.width
			sub.y = -base.descent * 0.5
			box.ascent = base.ascent
			box.descent = max(base.descent, -sub.y+sub.descent)
			box.height = box.ascent + box.descent
		}

	case "msqrt":
		rowLayout(box, 5)
		box.ascent += 2
		box.height = box.ascent + box.descent

	default:
		// math, mrow and anything unhandled lay out horizontally on a
		// shared baseline.
		rowLayout(box, 0)
	}
	return box
}

// rowLayout places children left to right on a common baseline, with
// an optional leading inset.
func rowLayout(box *mathBox, inset float64) {
	w := inset
	for _, c := range box.children {
		c.x = w
		w += c.width
		box.ascent = max(box.ascent, c.ascent)
		box.descent = max(box.descent, c.descent)
	}
	box.width = w
	box.height = box.ascent + box.descent
}

// flatten records the box tree as draw instructions. baseline is in
// top-left y-down block coordinates; child y shifts are subtracted to
// convert from the math-axis convention.
func flatten(box *mathBox, x, baseline float64, st style.Style, ops *[]render.Op) {
	if box.text != "" {
		*ops = append(*ops, render.TextOp{
			X: x, Y: baseline, Text: box.text, Style: st.WithSize(box.fontSize),
		})
	}
	if box.node != nil {
		switch box.node.Data {
		case "mfrac":
			y := baseline - 2
			*ops = append(*ops, render.LineOp{
				X1: x, Y1: y, X2: x + box.width, Y2: y, Color: st.Color(), Width: 0.5,
			})
		case "msqrt":
			top := baseline - box.ascent + 1
			*ops = append(*ops,
				render.LineOp{X1: x + 2, Y1: top, X2: x + box.width, Y2: top, Color: st.Color(), Width: 0.5},
				render.LineOp{X1: x, Y1: baseline - box.ascent/2, X2: x + 2, Y2: baseline + box.descent, Color: st.Color(), Width: 0.5},
				render.LineOp{X1: x + 2, Y1: baseline + box.descent, X2: x + 5, Y2: top, Color: st.Color(), Width: 0.5},
			)
		}
	}
	for _, c := range box.children {
		flatten(c, x+c.x, baseline-c.y, st, ops)
	}
}
