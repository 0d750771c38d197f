package frame

import (
	"sort"

	"github.com/npillmayer/tambo/core/dimen"
)

// HitTest returns the deepest box at a point in document coordinates, or
// nil. Boxes painted later (higher stacking level, later in document order)
// are hit first. Scroll offsets of scroll containers shift their content,
// and clipping containers hide overflowing content.
func HitTest(root *Box, p dimen.Point) *Box {
	if root == nil {
		return nil
	}
	return hit(root, p)
}

func hit(box *Box, p dimen.Point) *Box {
	clips := box.IsScrollContainer()
	if clips && !box.Padding.Contains(p) {
		if box.Border.Contains(p) {
			return box
		}
		return nil
	}
	q := p
	if box.Scroll != nil {
		q.Shift(box.Scroll.Offset())
	}
	children := paintOrder(box.children)
	for i := len(children) - 1; i >= 0; i-- {
		if found := hit(children[i], q); found != nil {
			return found
		}
	}
	if box.Type == AnonymousInline {
		for _, run := range box.Runs {
			if run.Rect.Contains(p) {
				return box
			}
		}
		return nil
	}
	if box.Border.Contains(p) {
		return box
	}
	return nil
}

// paintOrder sorts boxes by stacking level, keeping document order within
// a level.
func paintOrder(boxes []*Box) []*Box {
	leveled := false
	for _, b := range boxes {
		if StackLevel(b) != 0 {
			leveled = true
			break
		}
	}
	if !leveled {
		return boxes
	}
	ordered := make([]*Box, len(boxes))
	copy(ordered, boxes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return StackLevel(ordered[i]) < StackLevel(ordered[j])
	})
	return ordered
}

// StackLevel returns the z-index of a positioned box, and 0 for all
// other boxes.
func StackLevel(box *Box) int {
	if box.Style == nil || box.Type == AnonymousInline || !box.Style.IsPositioned() || box.Style.ZIndex.Auto {
		return 0
	}
	return box.Style.ZIndex.Value
}
