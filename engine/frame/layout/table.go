package layout

import (
	"sort"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

// TableContext lays out captions, row groups, rows and cells. Cells are
// placed into a slot grid honoring colspan and rowspan; column widths are
// distributed from the min-content and max-content widths of the cells.
type TableContext struct{}

// Type is TableFormatting.
func (TableContext) Type() ContextType { return TableFormatting }

type tableCell struct {
	box              *frame.Box
	row, col         int
	rowSpan, colSpan int
}

type tableRow struct {
	box    *frame.Box
	group  *frame.Box
	y      dimen.Dimen
	height dimen.Dimen
}

type tabler struct {
	l        *Layouter
	box      *frame.Box
	captions []*frame.Box
	groups   []*frame.Box
	rows     []*tableRow
	cells    []*tableCell
	nCols    int
	spacing  dimen.Dimen
	colMin   []dimen.Dimen
	colMax   []dimen.Dimen
}

func newTabler(l *Layouter, box *frame.Box) *tabler {
	t := &tabler{l: l, box: box}
	if !box.Style.BorderCollapse {
		t.spacing = box.Style.BorderSpacing
	}
	t.collect()
	t.slots()
	t.columnWidths()
	return t
}

// Layout distributes the content width to the columns, sizes rows from
// their cells and positions captions, rows and cells.
func (TableContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	t := newTabler(l, box)
	widths := t.distribute(c.Width.Size)
	colX := make([]dimen.Dimen, t.nCols+1)
	x := t.spacing
	for i, w := range widths {
		colX[i] = x
		x += w + t.spacing
	}
	colX[t.nCols] = x
	y := dimen.Zero
	for _, capt := range t.captions {
		l.Resolve(capt, Constraints{Width: c.Width, Direction: box.Style.Direction})
		capt.Translate(0, y)
		y += capt.MarginBoxHeight()
	}
	spanWidth := func(cell *tableCell) dimen.Dimen {
		return colX[cell.col+cell.colSpan] - t.spacing - colX[cell.col]
	}
	natural := make(map[*tableCell]dimen.Dimen, len(t.cells))
	for _, cell := range t.cells {
		w := spanWidth(cell)
		l.Resolve(cell.box, Constraints{Width: Definite(w), Direction: box.Style.Direction, FixedWidth: Definite(w)})
		natural[cell] = cell.box.Content.Height()
	}
	t.rowHeights()
	var res Result
	rowY := y + t.spacing
	if len(t.rows) == 0 {
		rowY = y
	}
	for _, r := range t.rows {
		r.y = rowY
		rowY += r.height + t.spacing
	}
	for _, cell := range t.cells {
		first := t.rows[cell.row]
		last := t.rows[cell.row+cell.rowSpan-1]
		h := last.y + last.height - first.y
		w := spanWidth(cell)
		l.Resolve(cell.box, Constraints{
			Width:       Definite(w),
			Direction:   box.Style.Direction,
			FixedWidth:  Definite(w),
			FixedHeight: Definite(h),
		})
		if dy := cellOffset(cell.box, natural[cell]); dy > 0 {
			for _, ch := range cell.box.Children() {
				ch.Translate(0, dy)
			}
		}
		cell.box.Translate(colX[cell.col], first.y)
		if !res.HasBaseline && cell.row == 0 {
			res.Baseline, res.HasBaseline = first.y+cell.box.Baseline, true
		}
	}
	rowWidth := colX[t.nCols] - t.spacing - t.spacing
	for _, r := range t.rows {
		r.box.SetGeometry(t.spacing, r.y, rowWidth, r.height)
	}
	for _, g := range t.groups {
		var top, bot dimen.Dimen
		found := false
		for _, r := range t.rows {
			if r.group != g {
				continue
			}
			if !found {
				top, found = r.y, true
			}
			bot = r.y + r.height
		}
		if found {
			g.SetGeometry(t.spacing, top, rowWidth, bot-top)
		}
	}
	res.Height = rowY
	tracer().Debugf("%s: table of %d rows × %d columns", box, len(t.rows), t.nCols)
	return res
}

// Intrinsic sums the column widths and spacing; captions may widen the
// table.
func (TableContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	t := newTabler(l, box)
	spacing := t.spacing * dimen.Dimen(t.nCols+1)
	if t.nCols == 0 {
		spacing = 0
	}
	min, max = spacing, spacing
	for i := 0; i < t.nCols; i++ {
		min += t.colMin[i]
		max += t.colMax[i]
	}
	for _, capt := range t.captions {
		mn, _ := l.intrinsicOuter(capt)
		min, max = dimen.Max(min, mn), dimen.Max(max, mn)
	}
	return
}

// collect sorts the children of the table into captions and rows. Header
// groups precede and footer groups follow all other rows.
func (t *tabler) collect() {
	var groups []*frame.Box
	for _, ch := range t.box.Children() {
		if ch.Style == nil {
			ch.Style = style.InitialStyle()
		}
		switch ch.Type {
		case frame.TableCaption:
			t.captions = append(t.captions, ch)
		case frame.TableRowGroup, frame.TableRow:
			groups = append(groups, ch)
		default:
			tracer().Errorf("%s is not a table part", ch)
		}
	}
	rank := func(b *frame.Box) int {
		switch {
		case b.Display().Contains(style.TableHeaderMode):
			return 0
		case b.Display().Contains(style.TableFooterMode):
			return 2
		}
		return 1
	}
	sort.SliceStable(groups, func(i, j int) bool { return rank(groups[i]) < rank(groups[j]) })
	for _, g := range groups {
		if g.Type == frame.TableRow {
			t.rows = append(t.rows, &tableRow{box: g})
			continue
		}
		t.groups = append(t.groups, g)
		for _, r := range g.Children() {
			t.rows = append(t.rows, &tableRow{box: r, group: g})
		}
	}
}

// slots places cells into the slot grid.
func (t *tabler) slots() {
	occupied := make(map[[2]int]bool)
	for i, r := range t.rows {
		col := 0
		for _, cb := range r.box.Children() {
			for occupied[[2]int{i, col}] {
				col++
			}
			cell := &tableCell{
				box:     cb,
				row:     i,
				col:     col,
				rowSpan: intMin(intMax(1, cb.RowSpan), len(t.rows)-i),
				colSpan: intMax(1, cb.ColSpan),
			}
			for dr := 0; dr < cell.rowSpan; dr++ {
				for dc := 0; dc < cell.colSpan; dc++ {
					occupied[[2]int{i + dr, col + dc}] = true
				}
			}
			t.cells = append(t.cells, cell)
			col += cell.colSpan
			t.nCols = intMax(t.nCols, col)
		}
	}
}

// columnWidths computes min-content and max-content widths per column,
// first from single-column cells, then spreading the excess of spanning
// cells evenly over their columns.
func (t *tabler) columnWidths() {
	t.colMin = make([]dimen.Dimen, t.nCols)
	t.colMax = make([]dimen.Dimen, t.nCols)
	var spanning []*tableCell
	for _, cell := range t.cells {
		if cell.colSpan > 1 {
			spanning = append(spanning, cell)
			continue
		}
		mn, mx := t.l.intrinsicOuter(cell.box)
		t.colMin[cell.col] = dimen.Max(t.colMin[cell.col], mn)
		t.colMax[cell.col] = dimen.Max(t.colMax[cell.col], mx)
	}
	sort.SliceStable(spanning, func(i, j int) bool { return spanning[i].colSpan < spanning[j].colSpan })
	for _, cell := range spanning {
		mn, mx := t.l.intrinsicOuter(cell.box)
		inner := t.spacing * dimen.Dimen(cell.colSpan-1)
		needMin, needMax := mn-inner, mx-inner
		for c := cell.col; c < cell.col+cell.colSpan; c++ {
			needMin -= t.colMin[c]
			needMax -= t.colMax[c]
		}
		n := dimen.Dimen(cell.colSpan)
		for c := cell.col; c < cell.col+cell.colSpan; c++ {
			if needMin > 0 {
				t.colMin[c] += needMin / n
			}
			if needMax > 0 {
				t.colMax[c] += needMax / n
			}
		}
	}
	for c := range t.colMax {
		t.colMax[c] = dimen.Max(t.colMax[c], t.colMin[c])
	}
}

// distribute assigns used widths to the columns for a table content width.
func (t *tabler) distribute(width dimen.Dimen) []dimen.Dimen {
	widths := make([]dimen.Dimen, t.nCols)
	if t.nCols == 0 {
		return widths
	}
	avail := width - t.spacing*dimen.Dimen(t.nCols+1)
	var sumMin, sumMax dimen.Dimen
	for c := 0; c < t.nCols; c++ {
		sumMin += t.colMin[c]
		sumMax += t.colMax[c]
	}
	switch {
	case avail <= sumMin:
		copy(widths, t.colMin)
	case avail < sumMax:
		f := float64(avail-sumMin) / float64(sumMax-sumMin)
		for c := range widths {
			widths[c] = t.colMin[c] + (t.colMax[c] - t.colMin[c]).Scale(f)
		}
	default:
		extra := avail - sumMax
		for c := range widths {
			widths[c] = t.colMax[c]
			if sumMax > 0 {
				widths[c] += scaleBy(extra, t.colMax[c], sumMax)
			} else {
				widths[c] += extra / dimen.Dimen(t.nCols)
			}
		}
	}
	return widths
}

// rowHeights sizes rows from their cells. The excess height of a cell
// spanning rows is divided evenly over the spanned rows.
func (t *tabler) rowHeights() {
	for _, r := range t.rows {
		r.height = 0
		if h, ok := r.box.Style.Height.Resolve(0, false); ok {
			r.height = h
		}
	}
	var spanning []*tableCell
	for _, cell := range t.cells {
		if cell.rowSpan > 1 {
			spanning = append(spanning, cell)
			continue
		}
		r := t.rows[cell.row]
		r.height = dimen.Max(r.height, cell.box.MarginBoxHeight())
	}
	for _, cell := range spanning {
		need := cell.box.MarginBoxHeight() - t.spacing*dimen.Dimen(cell.rowSpan-1)
		for i := cell.row; i < cell.row+cell.rowSpan; i++ {
			need -= t.rows[i].height
		}
		if need > 0 {
			n := dimen.Dimen(cell.rowSpan)
			for i := cell.row; i < cell.row+cell.rowSpan; i++ {
				t.rows[i].height += need / n
			}
			t.rows[cell.row+cell.rowSpan-1].height += need % n
		}
	}
}

// cellOffset is the vertical offset of cell content for property
// `vertical-align`, given the height of the content before stretching.
func cellOffset(cell *frame.Box, natural dimen.Dimen) dimen.Dimen {
	free := cell.Content.Height() - natural
	switch cell.Style.VerticalAlign {
	case style.VAlignMiddle:
		return free / 2
	case style.VAlignBottom:
		return free
	}
	return 0
}
