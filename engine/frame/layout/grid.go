package layout

import (
	"sort"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

// GridContext places items into the cells of a grid of tracks, sizes the
// tracks and aligns the items within their grid areas.
type GridContext struct{}

// Type is GridFormatting.
func (GridContext) Type() ContextType { return GridFormatting }

const maxGridLine = 1000

// gridArea is the placement of an item: 0-based start tracks and spans.
type gridArea struct {
	box        *frame.Box
	col, row   int
	cols, rows int
}

type gridSpan struct {
	start, n int
	definite bool
}

type gridTrack struct {
	sizing  style.GridTrack
	size    dimen.Dimen
	content dimen.Dimen // max-content contribution of single-span items, for fr tracks
	pos     dimen.Dimen
}

func (t *gridTrack) isFlexible() bool {
	return t.sizing.Kind == style.TrackFr && t.sizing.Fr > 0
}

type gridder struct {
	l     *Layouter
	box   *frame.Box
	cs    *style.ComputedStyle
	areas []*gridArea
	nCols int
	nRows int
}

func newGridder(l *Layouter, box *frame.Box) *gridder {
	g := &gridder{l: l, box: box, cs: box.Style}
	for _, ch := range box.Children() {
		if ch.Style == nil {
			ch.Style = style.InitialStyle()
		}
	}
	g.place()
	return g
}

// Layout sizes columns, then lays out items in their column areas to
// size rows, then aligns items in their areas.
func (GridContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	g := newGridder(l, box)
	colGap, _ := g.cs.ColumnGap.Resolve(c.Width.Size, c.Width.Definite)
	rowGap, _ := g.cs.RowGap.Resolve(c.Height.Size, c.Height.Definite)
	for _, a := range g.areas {
		l.resolveEdges(a.box, c.Width)
	}
	cols := g.tracks(g.cs.GridTemplateColumns, g.cs.GridAutoColumns, g.nCols)
	stretchCols := stretchesTracks(g.cs.JustifyContent)
	sizeTracks(cols, g.areas, true, c.Width, colGap, stretchCols,
		func(a *gridArea) (dimen.Dimen, dimen.Dimen) {
			return l.intrinsicOuter(a.box)
		})
	for _, a := range g.areas {
		g.layoutInArea(a, cols, nil, c)
	}
	rows := g.tracks(g.cs.GridTemplateRows, g.cs.GridAutoRows, g.nRows)
	stretchRows := stretchesTracks(g.cs.AlignContent)
	sizeTracks(rows, g.areas, false, c.Height, rowGap, stretchRows,
		func(a *gridArea) (dimen.Dimen, dimen.Dimen) {
			h := a.box.MarginBoxHeight()
			return h, h
		})
	var res Result
	for _, a := range g.areas {
		g.layoutInArea(a, cols, rows, c)
		x, y := g.align(a, cols, rows)
		a.box.Translate(x, y)
		if !res.HasBaseline && a.row == 0 {
			res.Baseline, res.HasBaseline = y+a.box.Margins[frame.Top]+a.box.Baseline, true
		}
	}
	res.Height = tracksExtent(rows, rowGap)
	tracer().Debugf("%s: grid of %d×%d tracks", box, g.nCols, g.nRows)
	return res
}

// Intrinsic sizes the columns without an available width, once with
// min-content and once with max-content contributions.
func (GridContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	g := newGridder(l, box)
	gap, _ := g.cs.ColumnGap.Resolve(0, false)
	cols := g.tracks(g.cs.GridTemplateColumns, g.cs.GridAutoColumns, g.nCols)
	sizeTracks(cols, g.areas, true, Indefinite, gap, false,
		func(a *gridArea) (dimen.Dimen, dimen.Dimen) {
			mn, _ := l.intrinsicOuter(a.box)
			return mn, mn
		})
	min = tracksExtent(cols, gap)
	cols = g.tracks(g.cs.GridTemplateColumns, g.cs.GridAutoColumns, g.nCols)
	sizeTracks(cols, g.areas, true, Indefinite, gap, false,
		func(a *gridArea) (dimen.Dimen, dimen.Dimen) {
			return l.intrinsicOuter(a.box)
		})
	max = tracksExtent(cols, gap)
	return
}

// --- Placement -------------------------------------------------------------

func lineIndex(line, explicit int) int {
	if line > 0 {
		return intMin(line-1, maxGridLine)
	}
	return intMax(0, explicit+1+line)
}

// resolveSpan resolves a pair of placement properties against the explicit
// grid. Negative lines count from the end of the explicit grid.
func resolveSpan(start, end style.GridLine, explicit int) gridSpan {
	switch {
	case start.Line != 0 && end.Line != 0:
		s, e := lineIndex(start.Line, explicit), lineIndex(end.Line, explicit)
		if e < s {
			s, e = e, s
		}
		if e == s {
			e = s + 1
		}
		return gridSpan{start: s, n: e - s, definite: true}
	case start.Line != 0:
		return gridSpan{start: lineIndex(start.Line, explicit), n: spanOf(end.Span), definite: true}
	case end.Line != 0:
		e := lineIndex(end.Line, explicit)
		n := spanOf(start.Span)
		if e-n < 0 {
			return gridSpan{start: 0, n: intMax(1, e), definite: true}
		}
		return gridSpan{start: e - n, n: n, definite: true}
	}
	return gridSpan{n: spanOf(intMax(start.Span, end.Span))}
}

func spanOf(n int) int {
	return intMin(intMax(1, n), maxGridLine)
}

// place resolves the grid areas of all items: first items with a definite
// position, then items locked to a row (or column), then auto-placement
// with a cursor moving in flow direction.
func (g *gridder) place() {
	colFlow := g.cs.GridAutoFlow == style.GridFlowColumn
	nCols, nRows := len(g.cs.GridTemplateColumns), len(g.cs.GridTemplateRows)
	type pending struct {
		area         *gridArea
		major, minor gridSpan
	}
	items := make([]pending, 0, g.box.ChildCount())
	minorCount := nCols
	if colFlow {
		minorCount = nRows
	}
	for _, ch := range g.box.Children() {
		cs := ch.Style
		col := resolveSpan(cs.GridColumnStart, cs.GridColumnEnd, nCols)
		row := resolveSpan(cs.GridRowStart, cs.GridRowEnd, nRows)
		p := pending{area: &gridArea{box: ch}, major: row, minor: col}
		if colFlow {
			p.major, p.minor = col, row
		}
		if p.minor.definite {
			minorCount = intMax(minorCount, p.minor.start+p.minor.n)
		} else {
			minorCount = intMax(minorCount, p.minor.n)
		}
		items = append(items, p)
	}
	minorCount = intMax(1, minorCount)
	occupied := make(map[[2]int]bool)
	fits := func(p pending, maj, min int) bool {
		for i := 0; i < p.major.n; i++ {
			for j := 0; j < p.minor.n; j++ {
				if occupied[[2]int{maj + i, min + j}] {
					return false
				}
			}
		}
		return true
	}
	set := func(p pending, maj, min int) {
		for i := 0; i < p.major.n; i++ {
			for j := 0; j < p.minor.n; j++ {
				occupied[[2]int{maj + i, min + j}] = true
			}
		}
		a := p.area
		if colFlow {
			a.col, a.row, a.cols, a.rows = maj, min, p.major.n, p.minor.n
		} else {
			a.row, a.col, a.rows, a.cols = maj, min, p.major.n, p.minor.n
		}
	}
	done := make([]bool, len(items))
	for i, p := range items {
		if p.major.definite && p.minor.definite {
			set(p, p.major.start, p.minor.start)
			done[i] = true
		}
	}
	for i, p := range items {
		if done[i] || !p.major.definite {
			continue
		}
		min := 0
		for m := 0; m+p.minor.n <= minorCount; m++ {
			if fits(p, p.major.start, m) {
				min = m
				break
			}
		}
		set(p, p.major.start, min)
		done[i] = true
	}
	curMaj, curMin := 0, 0
	for i, p := range items {
		if done[i] {
			continue
		}
		if p.minor.definite {
			if p.minor.start < curMin {
				curMaj++
			}
			curMin = p.minor.start
			for !fits(p, curMaj, curMin) {
				curMaj++
			}
		} else {
			for {
				if curMin > 0 && curMin+p.minor.n > minorCount {
					curMaj, curMin = curMaj+1, 0
					continue
				}
				if fits(p, curMaj, curMin) {
					break
				}
				curMin++
			}
		}
		set(p, curMaj, curMin)
		curMin += p.minor.n
	}
	g.nCols, g.nRows = nCols, nRows
	for _, p := range items {
		a := p.area
		g.areas = append(g.areas, a)
		g.nCols = intMax(g.nCols, a.col+a.cols)
		g.nRows = intMax(g.nRows, a.row+a.rows)
	}
}

// --- Track sizing ----------------------------------------------------------

func (g *gridder) tracks(explicit []style.GridTrack, implicit style.GridTrack, n int) []*gridTrack {
	tracks := make([]*gridTrack, n)
	for i := range tracks {
		t := &gridTrack{sizing: implicit}
		if i < len(explicit) {
			t.sizing = explicit[i]
		}
		tracks[i] = t
	}
	return tracks
}

func isIntrinsicTrack(t *gridTrack, avail Extent) bool {
	switch t.sizing.Kind {
	case style.TrackAuto, style.TrackMinContent, style.TrackMaxContent:
		return true
	case style.TrackPercent:
		return !avail.Definite
	}
	return false
}

// sizeTracks sizes the tracks of one axis. contribution returns the
// min-content and max-content contributions of an item.
func sizeTracks(tracks []*gridTrack, areas []*gridArea, columns bool, avail Extent, gap dimen.Dimen,
	stretch bool, contribution func(*gridArea) (dimen.Dimen, dimen.Dimen)) {
	//
	for _, t := range tracks {
		switch t.sizing.Kind {
		case style.TrackFixed:
			t.size = t.sizing.Length
		case style.TrackPercent:
			if avail.Definite {
				t.size = avail.Size.Scale(t.sizing.Percent / 100)
			}
		}
	}
	startOf := func(a *gridArea) (int, int) {
		if columns {
			return a.col, a.cols
		}
		return a.row, a.rows
	}
	var spanning []*gridArea
	for _, a := range areas {
		start, n := startOf(a)
		if n > 1 {
			spanning = append(spanning, a)
			continue
		}
		if start >= len(tracks) {
			continue
		}
		t := tracks[start]
		mn, mx := contribution(a)
		switch {
		case t.sizing.Kind == style.TrackMinContent:
			t.size = dimen.Max(t.size, mn)
		case isIntrinsicTrack(t, avail):
			t.size = dimen.Max(t.size, mx)
		case t.isFlexible():
			t.size = dimen.Max(t.size, mn)
			t.content = dimen.Max(t.content, mx)
		}
	}
	sort.SliceStable(spanning, func(i, j int) bool {
		_, ni := startOf(spanning[i])
		_, nj := startOf(spanning[j])
		return ni < nj
	})
	for _, a := range spanning {
		start, n := startOf(a)
		_, mx := contribution(a)
		need := mx - gap*dimen.Dimen(n-1)
		var targets []*gridTrack
		for i := start; i < start+n && i < len(tracks); i++ {
			need -= tracks[i].size
			if isIntrinsicTrack(tracks[i], avail) {
				targets = append(targets, tracks[i])
			}
		}
		if len(targets) == 0 {
			for i := start; i < start+n && i < len(tracks); i++ {
				if tracks[i].isFlexible() {
					targets = append(targets, tracks[i])
				}
			}
		}
		if need <= 0 || len(targets) == 0 {
			continue
		}
		share := need / dimen.Dimen(len(targets))
		for _, t := range targets {
			t.size += share
			t.content = dimen.Max(t.content, t.size)
		}
	}
	flexible := expandFlexible(tracks, avail, gap)
	if stretch && !flexible && avail.Definite {
		var autos []*gridTrack
		for _, t := range tracks {
			if t.sizing.Kind == style.TrackAuto {
				autos = append(autos, t)
			}
		}
		if free := avail.Size - tracksExtent(tracks, gap); free > 0 && len(autos) > 0 {
			share := free / dimen.Dimen(len(autos))
			for _, t := range autos {
				t.size += share
			}
		}
	}
	pos := dimen.Zero
	for _, t := range tracks {
		t.pos = pos
		pos += t.size + gap
	}
}

// expandFlexible sizes fr tracks. With a definite available size, the
// leftover space is shared by flex factor; tracks whose base size exceeds
// their share are treated as inflexible. It returns false if there are no
// flexible tracks.
func expandFlexible(tracks []*gridTrack, avail Extent, gap dimen.Dimen) bool {
	var flex []*gridTrack
	for _, t := range tracks {
		if t.isFlexible() {
			flex = append(flex, t)
		}
	}
	if len(flex) == 0 {
		return false
	}
	if !avail.Definite {
		var share float64
		for _, t := range flex {
			share = maxFloat(share, float64(dimen.Max(t.size, t.content))/t.sizing.Fr)
		}
		for _, t := range flex {
			t.size = dimen.Max(t.size, dimen.Dimen(share*t.sizing.Fr))
		}
		return true
	}
	free := avail.Size - gap*dimen.Dimen(len(tracks)-1)
	for _, t := range tracks {
		if !t.isFlexible() {
			free -= t.size
		}
	}
	inflexible := make(map[*gridTrack]bool)
	for {
		var sumFr float64
		rest := free
		for _, t := range flex {
			if inflexible[t] {
				rest -= t.size
			} else {
				sumFr += t.sizing.Fr
			}
		}
		if sumFr == 0 {
			return true
		}
		share := float64(dimen.Max(0, rest)) / maxFloat(sumFr, 1)
		changed := false
		for _, t := range flex {
			if !inflexible[t] && float64(t.size) > share*t.sizing.Fr {
				inflexible[t] = true
				changed = true
			}
		}
		if !changed {
			for _, t := range flex {
				if !inflexible[t] {
					t.size = dimen.Dimen(share * t.sizing.Fr)
				}
			}
			return true
		}
	}
}

// stretchesTracks is true for content distributions which let auto tracks
// absorb free space. Start alignment is the initial value and stretches, too.
func stretchesTracks(a style.Align) bool {
	switch a {
	case style.AlignNormal, style.AlignStretch, style.AlignStart, style.AlignAuto:
		return true
	}
	return false
}

func tracksExtent(tracks []*gridTrack, gap dimen.Dimen) dimen.Dimen {
	var total dimen.Dimen
	for i, t := range tracks {
		if i > 0 {
			total += gap
		}
		total += t.size
	}
	return total
}

func areaExtent(tracks []*gridTrack, start, n int) dimen.Dimen {
	if n <= 0 || start >= len(tracks) {
		return 0
	}
	last := intMin(start+n, len(tracks)) - 1
	return tracks[last].pos + tracks[last].size - tracks[start].pos
}

// --- Items -----------------------------------------------------------------

func (g *gridder) justifyOf(a *gridArea) style.Align {
	j := g.cs.JustifyItems
	if j == style.AlignNormal || j == style.AlignAuto {
		if a.box.IsReplaced() {
			return style.AlignStart
		}
		return style.AlignStretch
	}
	return j
}

func (g *gridder) alignOf(a *gridArea) style.Align {
	al := a.box.Style.AlignSelf
	if al == style.AlignAuto {
		al = g.cs.AlignItems
	}
	if al == style.AlignNormal || al == style.AlignAuto {
		if a.box.IsReplaced() {
			return style.AlignStart
		}
		return style.AlignStretch
	}
	return al
}

// layoutInArea lays out an item in its grid area. If rows are not yet
// sized, only the column width is imposed.
func (g *gridder) layoutInArea(a *gridArea, cols, rows []*gridTrack, c Constraints) {
	cs := a.box.Style
	w := areaExtent(cols, a.col, a.cols)
	ac := Constraints{Width: Definite(w), Height: Indefinite, Direction: g.cs.Direction}
	if g.justifyOf(a) == style.AlignStretch && (cs.Width.IsAuto() || cs.Width.IsNone()) {
		ac.FixedWidth = Definite(w - a.box.Margins.Horizontal())
	} else {
		ac.ShrinkToFit = true
	}
	if rows != nil {
		h := areaExtent(rows, a.row, a.rows)
		ac.Height = Definite(h)
		if g.alignOf(a) == style.AlignStretch && (cs.Height.IsAuto() || cs.Height.IsNone()) {
			ac.FixedHeight = Definite(h - a.box.Margins.Vertical())
		}
	}
	g.l.Resolve(a.box, ac)
}

// align returns the offset of an item's margin box within the content box
// of the grid container.
func (g *gridder) align(a *gridArea, cols, rows []*gridTrack) (x, y dimen.Dimen) {
	if a.col < len(cols) {
		x = cols[a.col].pos
	}
	if a.row < len(rows) {
		y = rows[a.row].pos
	}
	freeX := areaExtent(cols, a.col, a.cols) - a.box.MarginBoxWidth()
	freeY := areaExtent(rows, a.row, a.rows) - a.box.MarginBoxHeight()
	switch g.justifyOf(a) {
	case style.AlignEnd:
		x += freeX
	case style.AlignCenter:
		x += freeX / 2
	}
	switch g.alignOf(a) {
	case style.AlignEnd:
		y += freeY
	case style.AlignCenter:
		y += freeY / 2
	}
	return
}

func intMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func intMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
