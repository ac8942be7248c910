package element

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/wudi/typeset"
	"github.com/wudi/typeset/render"
	"github.com/wudi/typeset/style"
)

// Image is a fixed-size block placed at its display dimensions. Images
// never split: one that does not fit the remaining area defers whole to
// a fresh page, and one taller than any page draws overflowing with a
// diagnostic.
type Image struct {
	handle        string
	img           image.Image
	width, height float64
}

// NewImage builds an image element referencing a writer-side resource
// by handle, displayed at the given size in points.
func NewImage(handle string, width, height float64) *Image {
	return &Image{handle: handle, width: width, height: height}
}

// ImageFromReader decodes an image and sizes it at one point per pixel.
// The registered decoders cover PNG, JPEG, GIF, BMP and WebP.
func ImageFromReader(handle string, r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", handle, err)
	}
	b := img.Bounds()
	return &Image{
		handle: handle,
		img:    img,
		width:  float64(b.Dx()),
		height: float64(b.Dy()),
	}, nil
}

// WithSize returns a copy displayed at the given size.
func (im *Image) WithSize(width, height float64) *Image {
	c := *im
	c.width, c.height = width, height
	return &c
}

// ScaledToWidth returns a copy scaled to the given width, keeping the
// aspect ratio.
func (im *Image) ScaledToWidth(width float64) *Image {
	c := *im
	if im.width > 0 {
		c.height = im.height * width / im.width
	}
	c.width = width
	return &c
}

// Size returns the display dimensions in points.
func (im *Image) Size() (width, height float64) { return im.width, im.height }

func (im *Image) Render(ctx *typeset.Context, area render.Area, _ style.Style) (typeset.RenderResult, error) {
	if im.height > area.Height()+heightEpsilon {
		if area.Height()+heightEpsilon < ctx.FullPageHeight() {
			return typeset.Partial(0, im), nil
		}
		ctx.Overflow("image", "%q height %.2f exceeds page content height %.2f",
			im.handle, im.height, ctx.FullPageHeight())
	}
	if im.width > area.Width()+heightEpsilon {
		ctx.Overflow("image", "%q width %.2f exceeds area width %.2f", im.handle, im.width, area.Width())
	}
	area.DrawImage(0, 0, im.width, im.height, im.handle, im.img)
	return typeset.Done(min(im.height, area.Height())), nil
}
