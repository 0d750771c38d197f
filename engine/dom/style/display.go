package style

import (
	"bytes"
	"strings"
)

// DisplayMode is a type for CSS property "display".
type DisplayMode uint32

// Flags for box context and display mode (outer and inner).
const (
	NoMode            DisplayMode = iota    // unset or error condition
	DisplayNone       DisplayMode = 0x00001 // CSS outer display = none
	FlowMode          DisplayMode = 0x00002 // CSS inner display = flow
	BlockMode         DisplayMode = 0x00004 // CSS block context (inner or outer)
	InlineMode        DisplayMode = 0x00008 // CSS inline context
	ListItemMode      DisplayMode = 0x00010 // CSS list-item display
	FlowRoot          DisplayMode = 0x00020 // CSS flow-root display property
	FlexMode          DisplayMode = 0x00040 // CSS inner display = flex
	GridMode          DisplayMode = 0x00080 // CSS inner display = grid
	TableMode         DisplayMode = 0x00100 // CSS table display property (inner or outer)
	ContentsMode      DisplayMode = 0x00200 // CSS contents display mode
	TableRowGroupMode DisplayMode = 0x00400 // table-row-group, -header-group, -footer-group
	TableRowMode      DisplayMode = 0x00800 // table-row
	TableCellMode     DisplayMode = 0x01000 // table-cell
	TableCaptionMode  DisplayMode = 0x02000 // table-caption
	TableColumnMode   DisplayMode = 0x04000 // table-column, table-column-group
	TableHeaderMode   DisplayMode = 0x08000 // modifier of TableRowGroupMode
	TableFooterMode   DisplayMode = 0x10000 // modifier of TableRowGroupMode
)

var allDisplayModes = []DisplayMode{
	DisplayNone, FlowMode, BlockMode, InlineMode, ListItemMode, FlowRoot, FlexMode,
	GridMode, TableMode, ContentsMode, TableRowGroupMode, TableRowMode, TableCellMode,
	TableCaptionMode, TableColumnMode, TableHeaderMode, TableFooterMode,
}

var displayModeNames = map[DisplayMode]string{
	DisplayNone: "none", FlowMode: "flow", BlockMode: "block", InlineMode: "inline",
	ListItemMode: "list-item", FlowRoot: "flow-root", FlexMode: "flex", GridMode: "grid",
	TableMode: "table", ContentsMode: "contents", TableRowGroupMode: "row-group",
	TableRowMode: "row", TableCellMode: "cell", TableCaptionMode: "caption",
	TableColumnMode: "column", TableHeaderMode: "header", TableFooterMode: "footer",
}

var displayKeywords = map[string]DisplayMode{
	"none":               DisplayNone,
	"block":              BlockMode | FlowMode,
	"inline":             InlineMode | FlowMode,
	"inline-block":       InlineMode | FlowRoot,
	"flow-root":          BlockMode | FlowRoot,
	"list-item":          BlockMode | FlowMode | ListItemMode,
	"flex":               BlockMode | FlexMode,
	"inline-flex":        InlineMode | FlexMode,
	"grid":               BlockMode | GridMode,
	"inline-grid":        InlineMode | GridMode,
	"table":              BlockMode | TableMode,
	"inline-table":       InlineMode | TableMode,
	"table-row-group":    TableRowGroupMode,
	"table-header-group": TableRowGroupMode | TableHeaderMode,
	"table-footer-group": TableRowGroupMode | TableFooterMode,
	"table-row":          TableRowMode,
	"table-cell":         TableCellMode | FlowRoot,
	"table-caption":      TableCaptionMode | FlowRoot,
	"table-column":       TableColumnMode,
	"table-column-group": TableColumnMode,
	"contents":           ContentsMode,
}

var displayKeywordOf map[DisplayMode]string

func init() {
	displayKeywordOf = make(map[DisplayMode]string, len(displayKeywords))
	for k, v := range displayKeywords {
		if kw, ok := displayKeywordOf[v]; !ok || len(k) < len(kw) {
			displayKeywordOf[v] = k
		}
	}
}

// ParseDisplay parses a value of property "display".
func ParseDisplay(s string) (DisplayMode, bool) {
	d, ok := displayKeywords[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// Overlaps returns true if a given display mode shares at least one atomic
// mode flag with disp (excluding NoMode).
func (disp DisplayMode) Overlaps(d DisplayMode) bool {
	return disp&d > 0
}

// IsBlockLevel is true for modes which participate in block formatting
// of their parent.
func (disp DisplayMode) IsBlockLevel() bool {
	return disp.Contains(BlockMode) || disp.IsTablePart() || disp.Contains(TableCaptionMode)
}

// IsInlineLevel is true for modes which participate in inline formatting.
func (disp DisplayMode) IsInlineLevel() bool {
	return disp.Contains(InlineMode)
}

// IsAtomicInline is true for inline-level boxes which are laid out as a
// unit, e.g. inline-block or inline-flex.
func (disp DisplayMode) IsAtomicInline() bool {
	return disp.Contains(InlineMode) && !disp.Contains(FlowMode)
}

// IsTablePart is true for internal table display modes.
func (disp DisplayMode) IsTablePart() bool {
	return disp.Overlaps(TableRowGroupMode | TableRowMode | TableCellMode | TableColumnMode)
}

// String returns the CSS keyword for a display mode, if there is one.
func (disp DisplayMode) String() string {
	if kw, ok := displayKeywordOf[disp]; ok {
		return kw
	}
	return disp.FullString()
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(displayModeNames[m])
		}
	}
	if first {
		return "no-mode"
	}
	return b.String()
}

// Symbol returns a Unicode symbol for a mode.
func (disp DisplayMode) Symbol() string {
	if disp == FlowMode {
		return "▧"
	} else if disp.Contains(FlexMode) {
		return "▤"
	} else if disp.Contains(GridMode) {
		return "◰"
	} else if disp.Contains(TableMode) || disp.IsTablePart() {
		return "▥"
	} else if disp.Contains(ListItemMode) {
		return "▣"
	} else if disp.Contains(BlockMode) {
		return "▩"
	} else if disp.Contains(InlineMode) {
		return "►"
	}
	return "?"
}
