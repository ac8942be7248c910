package render

import (
	"encoding/json"

	"github.com/wudi/typeset/style"
)

// jsonOp is the wire form of a draw instruction, with an explicit kind
// discriminator so writers in other processes can dispatch on it.
type jsonOp struct {
	Kind string `json:"kind"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`
	W float64 `json:"w,omitempty"`
	H float64 `json:"h,omitempty"`

	Text   string  `json:"text,omitempty"`
	Font   string  `json:"font,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`

	X2 float64 `json:"x2,omitempty"`
	Y2 float64 `json:"y2,omitempty"`

	Color     *style.Color `json:"color,omitempty"`
	Fill      bool         `json:"fill,omitempty"`
	LineWidth float64      `json:"lineWidth,omitempty"`

	Handle string `json:"handle,omitempty"`
}

type jsonPage struct {
	Number  int      `json:"number"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Margins Margins  `json:"margins"`
	Ops     []jsonOp `json:"ops"`
}

// MarshalJSON encodes the page and its draw instructions with kind
// discriminators, suitable for out-of-process PDF writers.
func (p *Page) MarshalJSON() ([]byte, error) {
	out := jsonPage{
		Number:  p.number,
		Width:   p.width,
		Height:  p.height,
		Margins: p.margins,
		Ops:     make([]jsonOp, 0, len(p.ops)),
	}
	for _, op := range p.ops {
		switch o := op.(type) {
		case TextOp:
			c := o.Style.Color()
			out.Ops = append(out.Ops, jsonOp{
				Kind:   "text",
				X:      o.X,
				Y:      o.Y,
				Text:   o.Text,
				Font:   o.Style.Family(),
				Size:   o.Style.Size(),
				Bold:   o.Style.Bold(),
				Italic: o.Style.Italic(),
				Color:  &c,
			})
		case RectOp:
			c := o.Color
			out.Ops = append(out.Ops, jsonOp{
				Kind: "rect", X: o.X, Y: o.Y, W: o.W, H: o.H,
				Color: &c, Fill: o.Fill, LineWidth: o.LineWidth,
			})
		case LineOp:
			c := o.Color
			out.Ops = append(out.Ops, jsonOp{
				Kind: "line", X: o.X1, Y: o.Y1, X2: o.X2, Y2: o.Y2,
				Color: &c, LineWidth: o.Width,
			})
		case ImageOp:
			out.Ops = append(out.Ops, jsonOp{
				Kind: "image", X: o.X, Y: o.Y, W: o.W, H: o.H, Handle: o.Handle,
			})
		}
	}
	return json.Marshal(out)
}
