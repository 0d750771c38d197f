package frame

import (
	"github.com/npillmayer/tambo/core/dimen"
)

// ScrollState is the scroll position of a scroll container. It is
// presentation data: layout never reads the offsets, it only updates the
// scrollable extent.
type ScrollState struct {
	X, Y       dimen.Dimen // current offsets
	MaxX, MaxY dimen.Dimen // scrollable extent
}

// ScrollBy scrolls by a delta, clamped to the scrollable extent.
func (s *ScrollState) ScrollBy(dx, dy dimen.Dimen) {
	s.ScrollTo(s.X+dx, s.Y+dy)
}

// ScrollTo scrolls to a position, clamped to the scrollable extent.
func (s *ScrollState) ScrollTo(x, y dimen.Dimen) {
	s.X = dimen.Clamp(x, 0, dimen.Max(0, s.MaxX))
	s.Y = dimen.Clamp(y, 0, dimen.Max(0, s.MaxY))
}

// Offset returns the scroll offsets as a point.
func (s *ScrollState) Offset() dimen.Point {
	if s == nil {
		return dimen.Origin
	}
	return dimen.Point{X: s.X, Y: s.Y}
}

// ScrollState returns the scroll state of a scroll container, creating it
// if necessary. It returns nil for boxes which do not scroll.
func (box *Box) ScrollState() *ScrollState {
	if !box.IsScrollContainer() {
		return nil
	}
	if box.Scroll == nil {
		box.Scroll = &ScrollState{}
	}
	return box.Scroll
}

// ScrollableOverflow returns the union of the padding box of a box and
// the margin boxes of its descendants, stopping at descendant scroll
// containers.
func (box *Box) ScrollableOverflow() dimen.Rect {
	r := box.Padding
	for _, ch := range box.children {
		r = r.Union(ch.Margin)
		if !ch.IsScrollContainer() {
			r = r.Union(ch.ScrollableOverflow())
		}
	}
	return r
}

// UpdateScrollExtent recomputes the scrollable extent of a scroll
// container after layout and re-clamps its offsets.
func (box *Box) UpdateScrollExtent() {
	s := box.ScrollState()
	if s == nil {
		return
	}
	overflow := box.ScrollableOverflow()
	s.MaxX = dimen.Max(0, overflow.BotR.X-box.Padding.BotR.X)
	s.MaxY = dimen.Max(0, overflow.BotR.Y-box.Padding.BotR.Y)
	s.ScrollTo(s.X, s.Y)
	tracer().Debugf("scroll extent of %s is (%v,%v)", box, s.MaxX, s.MaxY)
}
