package display

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/text"
)

// Op is the type of a display command.
type Op uint8

// Display command types.
const (
	OpSolidRect Op = iota
	OpTextRun
	OpImage
	OpBorder
	OpPushClip
	OpPopClip
)

var opNames = [...]string{"solid-rect", "text-run", "image", "border", "push-clip", "pop-clip"}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "?"
}

// Command is a paint command of a display list. The set of commands is
// closed; back-ends switch on Op and type-assert to the concrete command.
type Command interface {
	Op() Op
	String() string
}

// SolidRect fills a rectangle with a color.
type SolidRect struct {
	Rect  dimen.Rect
	Color color.RGBA
}

// TextRun paints a run of text. Origin is the left end of the run on the
// baseline.
type TextRun struct {
	Text   string
	Font   text.FontSpec
	Origin dimen.Point
	Width  dimen.Dimen
	Color  color.RGBA
}

// Image paints replaced content into a rectangle. Pending images have
// not been decoded yet and are painted as placeholders.
type Image struct {
	Rect    dimen.Rect
	Source  string
	Handle  string
	Pending bool
	Opacity float64
}

// Border paints the four border edges of a border box, in order top,
// right, bottom, left.
type Border struct {
	Rect   dimen.Rect
	Widths [4]dimen.Dimen
	Colors [4]color.RGBA
	Styles [4]style.BorderStyle
}

// PushClip restricts painting to a rectangle, intersected with all
// enclosing clips.
type PushClip struct {
	Rect dimen.Rect
}

// PopClip ends the innermost clip.
type PopClip struct{}

func (SolidRect) Op() Op { return OpSolidRect }
func (TextRun) Op() Op   { return OpTextRun }
func (Image) Op() Op     { return OpImage }
func (Border) Op() Op    { return OpBorder }
func (PushClip) Op() Op  { return OpPushClip }
func (PopClip) Op() Op   { return OpPopClip }

func (c SolidRect) String() string {
	return fmt.Sprintf("%s %v %s", c.Op(), c.Rect, colorString(c.Color))
}

func (c TextRun) String() string {
	return fmt.Sprintf("%s %q at %v w=%v %s", c.Op(), c.Text, c.Origin, c.Width, colorString(c.Color))
}

func (c Image) String() string {
	s := fmt.Sprintf("%s %q %v", c.Op(), c.Source, c.Rect)
	if c.Pending {
		s += " (pending)"
	}
	return s
}

func (c Border) String() string {
	return fmt.Sprintf("%s %v widths=%v/%v/%v/%v", c.Op(), c.Rect,
		c.Widths[0], c.Widths[1], c.Widths[2], c.Widths[3])
}

func (c PushClip) String() string {
	return fmt.Sprintf("%s %v", c.Op(), c.Rect)
}

func (c PopClip) String() string {
	return c.Op().String()
}

func colorString(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// List is a display list.
type List []Command

func (l List) String() string {
	var b strings.Builder
	depth := 0
	for _, cmd := range l {
		if cmd.Op() == OpPopClip && depth > 0 {
			depth--
		}
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(cmd.String())
		b.WriteByte('\n')
		if cmd.Op() == OpPushClip {
			depth++
		}
	}
	return b.String()
}

// Count returns the number of commands of a type.
func (l List) Count(op Op) int {
	n := 0
	for _, cmd := range l {
		if cmd.Op() == op {
			n++
		}
	}
	return n
}

// ErrUnbalancedClips flags a display list with a pop-clip without a
// matching push-clip, or with clips left open.
var ErrUnbalancedClips = errors.New("display list has unbalanced clips")

// Verify checks that the clip commands of a display list are balanced.
func Verify(l List) error {
	depth := 0
	for i, cmd := range l {
		switch cmd.Op() {
		case OpPushClip:
			depth++
		case OpPopClip:
			if depth == 0 {
				return core.WrapError(ErrUnbalancedClips, core.EINTERNAL, "pop-clip #%d without push-clip", i)
			}
			depth--
		}
	}
	if depth != 0 {
		return core.WrapError(ErrUnbalancedClips, core.EINTERNAL, "%d clips left open", depth)
	}
	return nil
}
