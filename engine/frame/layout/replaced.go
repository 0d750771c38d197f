package layout

import (
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/frame"
)

// ReplacedContext sizes replaced content, i.e. images. It has no children
// to lay out.
type ReplacedContext struct{}

// Type is ReplacedContent.
func (ReplacedContext) Type() ContextType { return ReplacedContent }

// Layout returns the used height of the image: the specified height if
// there is one, else the height matching the used width under the
// intrinsic aspect ratio.
func (ReplacedContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	if c.Height.Definite {
		return Result{Height: c.Height.Size}
	}
	iw, ih := l.naturalSize(box)
	if iw > 0 && ih > 0 {
		return Result{Height: scaleBy(c.Width.Size, ih, iw)}
	}
	return Result{Height: ih}
}

// Intrinsic is the natural width of the image.
func (ReplacedContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	w := l.replacedWidth(box, Constraints{})
	return w, w
}

// naturalSize returns the size of an image from, in order of preference,
// its decoded data, the size hints of its element and the placeholder size.
// It records the handle and load state of the image on the box.
func (l *Layouter) naturalSize(box *frame.Box) (w, h dimen.Dimen) {
	img := box.Image
	if img == nil {
		img = &frame.Replaced{}
		box.Image = img
	}
	info := l.env.Images.Lookup(img.Src)
	img.Handle, img.Pending = info.Handle, info.Pending
	switch {
	case info.HasSize():
		return dimen.Dimen(info.Width) * dimen.PX, dimen.Dimen(info.Height) * dimen.PX
	case img.HintW > 0 && img.HintH > 0:
		return img.HintW, img.HintH
	case img.HintW > 0:
		return img.HintW, l.env.Placeholder.Y
	case img.HintH > 0:
		return l.env.Placeholder.X, img.HintH
	}
	if info.Err != nil {
		tracer().Infof("image %q: %v", img.Src, info.Err)
	}
	return l.env.Placeholder.X, l.env.Placeholder.Y
}

// replacedWidth computes the content width of a replaced box. Without a
// specified width, the width follows from a specified height and the
// aspect ratio, or is the natural width scaled down to the available
// space.
func (l *Layouter) replacedWidth(box *frame.Box, c Constraints) dimen.Dimen {
	iw, ih := l.naturalSize(box)
	if w, ok := l.specifiedWidth(box, c); ok {
		return w
	}
	if h, ok := l.specifiedHeight(box, c); ok && iw > 0 && ih > 0 {
		return scaleBy(h, iw, ih)
	}
	if c.Width.Definite {
		avail := c.Width.Size - box.Margins.Horizontal() - l.horizontalDecoration(box)
		if avail < iw {
			return dimen.Max(0, avail)
		}
	}
	return iw
}

// scaleBy returns d * num / den without overflowing 32 bits.
func scaleBy(d, num, den dimen.Dimen) dimen.Dimen {
	if den == 0 {
		return 0
	}
	return dimen.Dimen(int64(d) * int64(num) / int64(den))
}
