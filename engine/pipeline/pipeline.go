package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/display"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/cascade"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/selector"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/tambo/engine/frame/boxtree"
	"github.com/npillmayer/tambo/engine/frame/framedebug"
	"github.com/npillmayer/tambo/engine/frame/layout"
	"github.com/npillmayer/tambo/engine/resources"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/engine/text/monospace"
)

// ErrNoDocument is returned for passes without a document, and for queries
// before the first pass.
var ErrNoDocument = errors.New("no document to render")

// Document is the input of a pass: an element tree plus the text of its
// embedded style sheets.
type Document interface {
	Root() dom.Node
	StyleSheets() []string
}

// Snapshot is the result of a pass. Snapshots are never modified after
// publication, with the exception of scroll offsets of scroll containers,
// which are presentation data.
type Snapshot struct {
	Generation    uint64
	Styled        *styledtree.StyNode
	Root          *frame.Box
	List          display.List
	Scroll        dimen.Point // viewport scroll offset
	Viewport      dimen.Point // viewport size
	ContentHeight dimen.Dimen
}

// Engine runs passes for a document.
type Engine struct {
	mu        sync.Mutex // serializes passes and scrolling
	settings  config.Settings
	env       layout.Env
	sheets    []string // additional author style sheets
	doc       Document // of the last pass
	scroll    dimen.Point
	scrolls   map[dom.Node]frame.ScrollState
	generator *display.Generator
	gen       uint64
	current   atomic.Pointer[Snapshot]
}

// New creates an engine. env may be nil; missing services are replaced by
// a monospace text measurer and an empty image service. The text measurer
// is wrapped in a measurement cache belonging to the engine.
func New(settings config.Settings, env *layout.Env) *Engine {
	e := &Engine{
		settings:  settings,
		scrolls:   make(map[dom.Node]frame.ScrollState),
		generator: display.NewGenerator(),
	}
	if env != nil {
		e.env = *env
	}
	if e.env.Measurer == nil {
		e.env.Measurer = monospace.Measurer(0, nil)
	}
	if _, cached := e.env.Measurer.(*text.Cache); !cached {
		e.env.Measurer = text.NewCache(e.env.Measurer, text.DefaultCacheSize)
	}
	if e.env.Images == nil {
		e.env.Images = resources.Static{}
	}
	if e.env.Placeholder == dimen.Origin {
		e.env.Placeholder = settings.Placeholder
	}
	e.env.Viewport = dimen.Point{X: settings.ViewportWidth, Y: settings.ViewportHeight}
	return e
}

// Settings returns the settings of the engine.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// AddStyleSheet adds an author style sheet, which applies to all
// subsequent passes after the embedded sheets of a document.
func (e *Engine) AddStyleSheet(css string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sheets = append(e.sheets, css)
}

// Snapshot returns the result of the last complete pass, or nil.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Run performs a full pass for a document and publishes its snapshot.
// Malformed style input is dropped and traced; only a missing document
// makes a pass fail.
func (e *Engine) Run(doc Document) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.run(doc)
}

// Refresh re-runs the pass for the last document, e.g., after an image
// has finished loading.
func (e *Engine) Refresh() (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	return e.run(e.doc)
}

// Resize changes the viewport size and re-runs the pass for the last
// document, if any.
func (e *Engine) Resize(width, height dimen.Dimen) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings.ViewportWidth, e.settings.ViewportHeight = width, height
	e.env.Viewport = dimen.Point{X: width, Y: height}
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	return e.run(e.doc)
}

func (e *Engine) run(doc Document) (*Snapshot, error) {
	if doc == nil || doc.Root() == nil {
		return nil, ErrNoDocument
	}
	e.doc = doc
	idx := selector.NewIndex()
	if e.settings.CSSEnabled {
		next := 0
		sources := append(append([]string{}, doc.StyleSheets()...), e.sheets...)
		for i, src := range sources {
			ss, n, err := cssom.ParseStyleSheet(src, cssom.Author, next)
			if err != nil {
				if !core.IsRecoverable(err) {
					return nil, err
				}
				tracer().Infof("style sheet #%d dropped: %v", i, err)
				continue
			}
			next = n
			idx.AddSheet(ss)
		}
	}
	styled, err := cascade.New(idx, e.settings).Cascade(doc.Root())
	if err != nil {
		return nil, err
	}
	root, err := boxtree.BuildBoxTree(styled)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot build box tree")
	}
	e.restoreScrolls(root)
	env := e.env
	if err = layout.NewLayouter(&env).Layout(root); err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "layout failed")
	}
	e.saveScrolls(root)
	e.gen++
	snap := &Snapshot{
		Generation:    e.gen,
		Styled:        styled,
		Root:          root,
		Viewport:      env.Viewport,
		ContentHeight: root.Margin.BotR.Y,
	}
	e.scroll = clampScroll(e.scroll, snap)
	e.publish(snap)
	if e.settings.Debug && e.settings.DebugOut != nil {
		e.dump(snap)
	}
	return snap, nil
}

// publish generates the display list of a snapshot for the current
// viewport scroll offset and makes it the current snapshot.
func (e *Engine) publish(snap *Snapshot) {
	snap.Scroll = e.scroll
	snap.List = e.generator.Generate(snap.Root, e.scroll)
	if err := display.Verify(snap.List); err != nil {
		tracer().Errorf("%v", err)
	}
	e.current.Store(snap)
	tracer().Infof("published pass #%d with %d display commands", snap.Generation, len(snap.List))
}

func (e *Engine) dump(snap *Snapshot) {
	w := e.settings.DebugOut
	for _, err := range []error{
		framedebug.DumpStyled(w, snap.Styled),
		framedebug.Dump(w, snap.Root),
		framedebug.DumpDisplayList(w, snap.List),
	} {
		if err != nil {
			tracer().Errorf("debug dump: %v", err)
			return
		}
	}
}

// --- Scrolling -------------------------------------------------------------

// ScrollBy scrolls the viewport vertically by a delta, clamped to
// [0, content height − viewport height].
func (e *Engine) ScrollBy(dy dimen.Dimen) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollTo(e.scroll.Y + dy)
}

// ScrollTo scrolls the viewport vertically to a position, clamped to
// [0, content height − viewport height].
func (e *Engine) ScrollTo(y dimen.Dimen) (*Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scrollTo(y)
}

func (e *Engine) scrollTo(y dimen.Dimen) (*Snapshot, error) {
	prev := e.current.Load()
	if prev == nil {
		return nil, ErrNoDocument
	}
	e.scroll = clampScroll(dimen.Point{X: e.scroll.X, Y: y}, prev)
	snap := *prev
	e.publish(&snap)
	return &snap, nil
}

// ScrollElement scrolls the scroll container of an element by a delta,
// clamped to its scrollable extent. It returns false if the element has
// no scroll container.
func (e *Engine) ScrollElement(n dom.Node, dx, dy dimen.Dimen) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.current.Load()
	if prev == nil {
		return false, ErrNoDocument
	}
	var target *frame.Box
	prev.Root.Walk(func(b *frame.Box) bool {
		if target == nil && b.DOMNode() == n && b.IsScrollContainer() {
			target = b
		}
		return target == nil
	})
	if target == nil {
		return false, nil
	}
	s := target.ScrollState()
	s.ScrollBy(dx, dy)
	e.scrolls[n] = *s
	snap := *prev
	e.publish(&snap)
	return true, nil
}

func clampScroll(scroll dimen.Point, snap *Snapshot) dimen.Point {
	maxY := dimen.Max(0, snap.ContentHeight-snap.Viewport.Y)
	return dimen.Point{X: 0, Y: dimen.Clamp(scroll.Y, 0, maxY)}
}

// restoreScrolls copies the scroll offsets of the previous passes to the
// scroll containers of a new box tree. Layout re-clamps them.
func (e *Engine) restoreScrolls(root *frame.Box) {
	if len(e.scrolls) == 0 {
		return
	}
	root.Walk(func(b *frame.Box) bool {
		if n := b.DOMNode(); n != nil && b.IsScrollContainer() {
			if s, ok := e.scrolls[n]; ok {
				b.Scroll = &frame.ScrollState{X: s.X, Y: s.Y}
			}
		}
		return true
	})
}

// saveScrolls remembers the scroll offsets of all scroll containers and
// forgets elements which do not take part in rendering any more.
func (e *Engine) saveScrolls(root *frame.Box) {
	scrolls := make(map[dom.Node]frame.ScrollState, len(e.scrolls))
	root.Walk(func(b *frame.Box) bool {
		if n := b.DOMNode(); n != nil && b.Scroll != nil {
			scrolls[n] = *b.Scroll
		}
		return true
	})
	e.scrolls = scrolls
}

// --- Queries ---------------------------------------------------------------

// HitTest returns the deepest box at a point of the viewport, or nil.
func (e *Engine) HitTest(x, y dimen.Dimen) (*frame.Box, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNoDocument
	}
	if x < 0 || y < 0 || x >= snap.Viewport.X || y >= snap.Viewport.Y {
		return nil, nil
	}
	p := dimen.Point{X: x + snap.Scroll.X, Y: y + snap.Scroll.Y}
	return frame.HitTest(snap.Root, p), nil
}
