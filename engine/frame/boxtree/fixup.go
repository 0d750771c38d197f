package boxtree

import (
	"strings"

	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

// fixup reconciles the children of a box with the formatting context the
// box establishes.
func fixup(box *frame.Box, kids []*frame.Box) []*frame.Box {
	d := box.Display()
	switch {
	case isFlexContainer(d) && !d.Contains(style.TableMode):
		return wrapItems(box, kids, frame.FlexItem)
	case isGridContainer(d) && !d.Contains(style.TableMode):
		return wrapItems(box, kids, frame.GridItem)
	case d.Contains(style.TableMode):
		return fixTable(box, kids)
	case box.Type == frame.TableRowGroup:
		return fixRowGroup(box, kids)
	case box.Type == frame.TableRow:
		return fixRow(box, kids)
	}
	kids = wrapTableParts(box, kids)
	return wrapInlineRuns(box, kids)
}

func isBlockLevel(b *frame.Box) bool {
	return !b.Type.IsInlineLevel()
}

func hasBlockLevel(kids []*frame.Box) bool {
	for _, k := range kids {
		if isBlockLevel(k) {
			return true
		}
	}
	return false
}

// isCollapsibleWhitespace is true for text boxes with white space only,
// which may be dropped between block-level boxes.
func isCollapsibleWhitespace(b *frame.Box) bool {
	if b.Type != frame.AnonymousInline || b.Text == "\n" && b.Element != nil && !b.Element.IsText() {
		return false // <br>
	}
	ws := b.Style.WhiteSpace
	if !ws.CollapsesSpaces() || (ws.PreservesNewlines() && strings.Contains(b.Text, "\n")) {
		return false
	}
	return strings.TrimSpace(b.Text) == ""
}

func allCollapsible(run []*frame.Box) bool {
	for _, b := range run {
		if !isCollapsibleWhitespace(b) {
			return false
		}
	}
	return true
}

// wrapRuns groups maximal runs of boxes for which inRun is true and
// replaces every run by the result of wrap. Runs of collapsible white space
// are dropped. wrap may return nil to drop a run.
func wrapRuns(kids []*frame.Box, inRun func(*frame.Box) bool,
	wrap func([]*frame.Box) *frame.Box) []*frame.Box {
	//
	result := make([]*frame.Box, 0, len(kids))
	var run []*frame.Box
	flush := func() {
		if len(run) > 0 && !allCollapsible(run) {
			if w := wrap(run); w != nil {
				result = append(result, w)
			}
		}
		run = nil
	}
	for _, k := range kids {
		if inRun(k) {
			run = append(run, k)
			continue
		}
		flush()
		result = append(result, k)
	}
	flush()
	return result
}

func wrapper(bt frame.BoxType, cs *style.ComputedStyle, fix func(*frame.Box, []*frame.Box) []*frame.Box) func([]*frame.Box) *frame.Box {
	return func(run []*frame.Box) *frame.Box {
		anon := frame.NewAnonymousBox(bt, cs)
		if fix != nil {
			run = fix(anon, run)
		}
		for _, b := range run {
			if err := anon.Add(b); err != nil {
				tracer().Errorf("cannot wrap %s: %v", b, err)
			}
		}
		return anon
	}
}

// wrapInlineRuns wraps runs of inline-level boxes into anonymous blocks, if
// there are block-level siblings.
func wrapInlineRuns(box *frame.Box, kids []*frame.Box) []*frame.Box {
	if !hasBlockLevel(kids) {
		return kids
	}
	cs := anonymousStyle(box.Style, style.BlockMode|style.FlowMode)
	return wrapRuns(kids, func(b *frame.Box) bool { return !isBlockLevel(b) },
		wrapper(frame.AnonymousBlock, cs, nil))
}

// wrapItems makes every child of a flex or grid container an item. Runs of
// text become anonymous items.
func wrapItems(box *frame.Box, kids []*frame.Box, itemType frame.BoxType) []*frame.Box {
	cs := anonymousStyle(box.Style, style.BlockMode|style.FlowMode)
	return wrapRuns(kids, func(b *frame.Box) bool { return b.Type == frame.AnonymousInline },
		wrapper(itemType, cs, nil))
}

func isTablePart(b *frame.Box) bool {
	return b.Type == frame.TableRow || b.Type == frame.TableRowGroup || b.Type == frame.TableCell
}

// wrapTableParts wraps stray rows, row groups and cells into anonymous
// tables.
func wrapTableParts(box *frame.Box, kids []*frame.Box) []*frame.Box {
	found := false
	for _, k := range kids {
		found = found || isTablePart(k)
	}
	if !found {
		return kids
	}
	cs := anonymousStyle(box.Style, style.BlockMode|style.TableMode)
	return wrapRuns(kids, isTablePart, wrapper(frame.TableBox, cs, fixTable))
}

// fixTable makes sure a table contains captions, row groups and rows only.
func fixTable(box *frame.Box, kids []*frame.Box) []*frame.Box {
	cs := anonymousStyle(box.Style, style.TableRowMode)
	return wrapRuns(kids, func(b *frame.Box) bool {
		return b.Type != frame.TableCaption && b.Type != frame.TableRowGroup && b.Type != frame.TableRow
	}, wrapper(frame.TableRow, cs, fixRow))
}

// fixRowGroup makes sure a row group contains rows only.
func fixRowGroup(box *frame.Box, kids []*frame.Box) []*frame.Box {
	cs := anonymousStyle(box.Style, style.TableRowMode)
	return wrapRuns(kids, func(b *frame.Box) bool { return b.Type != frame.TableRow },
		wrapper(frame.TableRow, cs, fixRow))
}

// fixRow makes sure a row contains cells only.
func fixRow(box *frame.Box, kids []*frame.Box) []*frame.Box {
	cs := anonymousStyle(box.Style, style.TableCellMode|style.FlowRoot)
	return wrapRuns(kids, func(b *frame.Box) bool { return b.Type != frame.TableCell },
		wrapper(frame.TableCell, cs, wrapInlineRuns))
}
