package style

import (
	"image/color"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/uax/bidi"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Position is a type for CSS property "position".
type Position uint8

// Values of property "position".
const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// BorderStyle is a type for border line styles.
type BorderStyle uint8

// Border line styles. Styles other than none and hidden paint as solid
// lines of the given width.
const (
	BorderNone BorderStyle = iota
	BorderHidden
	BorderSolid
	BorderDashed
	BorderDotted
	BorderDouble
	BorderGroove
	BorderRidge
	BorderInset
	BorderOutset
)

// TextAlign is a type for CSS property "text-align".
type TextAlign uint8

// Values of property "text-align".
const (
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// WhiteSpace is a type for CSS property "white-space".
type WhiteSpace uint8

// Values of property "white-space".
const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpaceNoWrap
	WhiteSpacePre
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

// CollapsesSpaces is true if sequences of white space collapse.
func (ws WhiteSpace) CollapsesSpaces() bool {
	return ws == WhiteSpaceNormal || ws == WhiteSpaceNoWrap || ws == WhiteSpacePreLine
}

// PreservesNewlines is true if newlines are forced line breaks.
func (ws WhiteSpace) PreservesNewlines() bool {
	return ws == WhiteSpacePre || ws == WhiteSpacePreWrap || ws == WhiteSpacePreLine
}

// Wraps is true if lines may be broken at soft wrap opportunities.
func (ws WhiteSpace) Wraps() bool {
	return ws != WhiteSpaceNoWrap && ws != WhiteSpacePre
}

// VerticalAlign is a type for CSS property "vertical-align".
type VerticalAlign uint8

// Values of property "vertical-align".
const (
	VAlignBaseline VerticalAlign = iota
	VAlignTop
	VAlignMiddle
	VAlignBottom
	VAlignTextTop
	VAlignTextBottom
	VAlignSub
	VAlignSuper
)

// Overflow is a type for CSS properties "overflow-x" and "overflow-y".
type Overflow uint8

// Values of property "overflow".
const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
	OverflowClip
)

// Clips is true for overflow values which clip content.
func (o Overflow) Clips() bool {
	return o != OverflowVisible
}

// Visibility is a type for CSS property "visibility".
type Visibility uint8

// Values of property "visibility".
const (
	Visible Visibility = iota
	Hidden
)

// Decoration is a type for CSS property "text-decoration-line".
type Decoration uint8

// Flags for text decoration.
const (
	DecorationNone        Decoration = 0
	DecorationUnderline   Decoration = 1
	DecorationOverline    Decoration = 2
	DecorationLineThrough Decoration = 4
)

// FontStyle is a type for CSS property "font-style".
type FontStyle uint8

// Values of property "font-style".
const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

// BoxSizing is a type for CSS property "box-sizing".
type BoxSizing uint8

// Values of property "box-sizing".
const (
	ContentBox BoxSizing = iota
	BorderBox
)

// FlexDirection is a type for CSS property "flex-direction".
type FlexDirection uint8

// Values of property "flex-direction".
const (
	FlexRow FlexDirection = iota
	FlexRowReverse
	FlexColumn
	FlexColumnReverse
)

// IsColumn is true for column directions.
func (fd FlexDirection) IsColumn() bool {
	return fd == FlexColumn || fd == FlexColumnReverse
}

// IsReverse is true for reversed directions.
func (fd FlexDirection) IsReverse() bool {
	return fd == FlexRowReverse || fd == FlexColumnReverse
}

// FlexWrap is a type for CSS property "flex-wrap".
type FlexWrap uint8

// Values of property "flex-wrap".
const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

// Align is a type for alignment properties: justify-content,
// align-items, align-self and align-content.
type Align uint8

// Alignment values. Not every value is valid for every property.
const (
	AlignAuto Align = iota // align-self only
	AlignNormal
	AlignStretch
	AlignStart
	AlignEnd
	AlignCenter
	AlignBaseline
	AlignSpaceBetween
	AlignSpaceAround
	AlignSpaceEvenly
)

// GridAutoFlow is a type for CSS property "grid-auto-flow".
type GridAutoFlow uint8

// Values of property "grid-auto-flow".
const (
	GridFlowRow GridAutoFlow = iota
	GridFlowColumn
)

// TrackKind classifies a grid track sizing function.
type TrackKind uint8

// Grid track kinds.
const (
	TrackAuto TrackKind = iota
	TrackFixed
	TrackPercent
	TrackFr
	TrackMinContent
	TrackMaxContent
)

// GridTrack is a grid track sizing function.
type GridTrack struct {
	Kind    TrackKind
	Length  dimen.Dimen // for TrackFixed
	Percent float64     // for TrackPercent
	Fr      float64     // for TrackFr
}

// GridLine is a grid placement property, e.g. "grid-column-start".
// A zero Line and Span denote `auto`.
type GridLine struct {
	Line int // 1-based, negative counts from the end
	Span int // span n, if > 0
}

// IsAuto is true for placement `auto`.
func (gl GridLine) IsAuto() bool {
	return gl.Line == 0 && gl.Span == 0
}

// ZIndex is a type for CSS property "z-index".
type ZIndex struct {
	Auto  bool
	Value int
}

// LineHeight is a type for CSS property "line-height". If Factor is set,
// the line height is a multiple of the font size; if Normal is set, the
// line height depends on the font.
type LineHeight struct {
	Normal bool
	Factor float64
	Length dimen.Dimen
}

// ComputedStyle holds the computed values of all supported properties for
// an element. ComputedStyles are immutable once created by the resolver and
// are replaced wholesale on every style pass.
type ComputedStyle struct {
	Display  DisplayMode
	Position Position
	Float    string // computed but ignored by layout
	Inset    [4]DimenT
	ZIndex   ZIndex

	Margin      [4]DimenT
	Padding     [4]DimenT
	BorderWidth [4]dimen.Dimen
	BorderStyle [4]BorderStyle
	BorderColor [4]color.RGBA
	Width       DimenT
	Height      DimenT
	MinWidth    DimenT
	MinHeight   DimenT
	MaxWidth    DimenT // unset means none
	MaxHeight   DimenT
	BoxSizing   BoxSizing
	OverflowX   Overflow
	OverflowY   Overflow
	Visibility  Visibility
	Opacity     float64
	Direction   bidi.Direction
	ListStyle   string

	Color           color.RGBA
	BackgroundColor color.RGBA
	BackgroundImage string // url of a background image, computed only

	FontFamily     []string
	FontSize       dimen.Dimen
	FontWeight     int
	FontStyle      FontStyle
	LineHeight     LineHeight
	TextAlign      TextAlign
	TextDecoration Decoration
	WhiteSpace     WhiteSpace
	VerticalAlign  VerticalAlign

	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	FlexGrow       float64
	FlexShrink     float64
	FlexBasis      DimenT
	Order          int
	JustifyContent Align
	AlignItems     Align
	AlignSelf      Align
	AlignContent   Align
	RowGap         DimenT
	ColumnGap      DimenT

	GridTemplateColumns []GridTrack
	GridTemplateRows    []GridTrack
	GridAutoColumns     GridTrack
	GridAutoRows        GridTrack
	GridAutoFlow        GridAutoFlow
	GridColumnStart     GridLine
	GridColumnEnd       GridLine
	GridRowStart        GridLine
	GridRowEnd          GridLine
	JustifyItems        Align

	BorderCollapse bool
	BorderSpacing  dimen.Dimen
}

// IsPositioned is true for boxes with a position other than static.
func (cs *ComputedStyle) IsPositioned() bool {
	return cs.Position != PositionStatic
}

// EstablishesStackingContext is true for positioned boxes with a z-index
// other than auto, and for boxes with opacity < 1.
func (cs *ComputedStyle) EstablishesStackingContext() bool {
	return (cs.IsPositioned() && !cs.ZIndex.Auto) || cs.Opacity < 1
}

// ClipsOverflow is true if the padding box of an element clips its content.
func (cs *ComputedStyle) ClipsOverflow() bool {
	return cs.OverflowX.Clips() || cs.OverflowY.Clips()
}

// UsedLineHeight returns the line height in absolute units.
func (cs *ComputedStyle) UsedLineHeight() dimen.Dimen {
	switch {
	case cs.LineHeight.Normal:
		return cs.FontSize.Scale(1.2)
	case cs.LineHeight.Factor > 0:
		return cs.FontSize.Scale(cs.LineHeight.Factor)
	}
	return cs.LineHeight.Length
}

// HasBorder is true if a border edge has a visible width.
func (cs *ComputedStyle) HasBorder(edge int) bool {
	return cs.BorderWidth[edge] > 0
}
