package text

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
)

// FontSpec selects a font for measuring.
type FontSpec struct {
	Families []string    // CSS font-family list, in order of preference
	Size     dimen.Dimen // font size
	Weight   int         // CSS weight 100…900
	Italic   bool
}

// Key returns a string identifying the font spec, suitable as a cache key.
func (fs FontSpec) Key() string {
	it := ""
	if fs.Italic {
		it = "i"
	}
	return fmt.Sprintf("%s/%d/%d%s", strings.Join(fs.Families, ","), fs.Size, fs.Weight, it)
}

func (fs FontSpec) String() string {
	return fmt.Sprintf("%s@%s", strings.Join(fs.Families, ","), fs.Size)
}

// Fragment is a piece of text between two break opportunities.
type Fragment struct {
	Text        string
	Width       dimen.Dimen // advance width, including trailing white space
	Trailing    dimen.Dimen // advance width of trailing white space, which hangs at line end
	Ascent      dimen.Dimen // above the baseline
	Descent     dimen.Dimen // below the baseline
	ForcedBreak bool        // a line break follows this fragment
}

// Measurer cuts a string into fragments at line-break opportunities and
// measures them. If available is positive, a fragment wider than available is
// split at grapheme boundaries (emergency breaks). Implementations must
// be deterministic: equal inputs yield equal outputs.
type Measurer interface {
	Measure(s string, font FontSpec, available dimen.Dimen) []Fragment
	Metrics(font FontSpec) (ascent, descent dimen.Dimen)
}

// Advancer is the minimal capability of a font back-end: the advance width
// of a string and the vertical metrics of a font.
type Advancer interface {
	Advance(s string, font FontSpec) dimen.Dimen
	Metrics(font FontSpec) (ascent, descent dimen.Dimen)
}

// Width sums the widths of a sequence of fragments.
func Width(frags []Fragment) dimen.Dimen {
	var w dimen.Dimen
	for _, f := range frags {
		w += f.Width
	}
	return w
}
