package style

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/derekparker/trie"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/uax/bidi"
)

// Property describes a longhand property supported by the resolver.
type Property struct {
	Name      string
	Inherited bool
	Initial   string // initial value as CSS text
	set       func(cs *ComputedStyle, value string, ctx *resolution) error
	copy      func(dst, src *ComputedStyle)
}

// prop creates a property definition from an accessor of the computed style
// field and a parser for the property's values.
func prop[T any](name string, inherited bool, initial string,
	field func(*ComputedStyle) *T,
	parse func(string, *resolution) (T, error)) *Property {
	//
	return &Property{
		Name:      name,
		Inherited: inherited,
		Initial:   initial,
		set: func(cs *ComputedStyle, value string, ctx *resolution) error {
			v, err := parse(value, ctx)
			if err == nil {
				*field(cs) = v
			}
			return err
		},
		copy: func(dst, src *ComputedStyle) {
			*field(dst) = *field(src)
		},
	}
}

// properties is the ordered list of longhands. Properties other values depend
// upon come first: font-size (em units) and color (currentcolor).
var properties []*Property

// registry maps property names (longhands and shorthands) to their definitions.
var registry *trie.Trie

func init() {
	registry = trie.New()
	properties = longhands()
	for _, p := range properties {
		registry.Add(p.Name, p)
	}
	for name, sh := range shorthands {
		registry.Add(name, sh)
	}
}

// Lookup returns the definition of a longhand property.
func Lookup(name string) (*Property, bool) {
	if node, ok := registry.Find(name); ok {
		p, isLonghand := node.Meta().(*Property)
		return p, isLonghand
	}
	return nil, false
}

// IsShorthand is true for supported shorthand properties.
func IsShorthand(name string) bool {
	if node, ok := registry.Find(name); ok {
		_, is := node.Meta().(shorthand)
		return is
	}
	return false
}

// IsKnown is true for supported longhand and shorthand properties.
func IsKnown(name string) bool {
	_, ok := registry.Find(name)
	return ok
}

// PropertiesWithPrefix lists all supported properties starting with prefix,
// sorted by name.
func PropertiesWithPrefix(prefix string) []string {
	names := registry.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// --- Property table --------------------------------------------------------

func longhands() []*Property {
	edgeNames := [4]string{"top", "right", "bottom", "left"}
	props := []*Property{
		prop("font-size", true, "16px", func(cs *ComputedStyle) *dimen.Dimen { return &cs.FontSize }, parseFontSize),
		prop("color", true, "black", func(cs *ComputedStyle) *color.RGBA { return &cs.Color }, parseColorValue),
		prop("display", false, "inline", func(cs *ComputedStyle) *DisplayMode { return &cs.Display }, parseDisplayValue),
		prop("position", false, "static", func(cs *ComputedStyle) *Position { return &cs.Position }, keyword(positionKeywords)),
		prop("float", false, "none", func(cs *ComputedStyle) *string { return &cs.Float }, keyword(floatKeywords)),
		prop("z-index", false, "auto", func(cs *ComputedStyle) *ZIndex { return &cs.ZIndex }, parseZIndex),
		prop("box-sizing", false, "content-box", func(cs *ComputedStyle) *BoxSizing { return &cs.BoxSizing }, keyword(boxSizingKeywords)),
		prop("width", false, "auto", func(cs *ComputedStyle) *DimenT { return &cs.Width }, lengthPercent(true, false)),
		prop("height", false, "auto", func(cs *ComputedStyle) *DimenT { return &cs.Height }, lengthPercent(true, false)),
		prop("min-width", false, "0", func(cs *ComputedStyle) *DimenT { return &cs.MinWidth }, lengthPercent(true, false)),
		prop("min-height", false, "0", func(cs *ComputedStyle) *DimenT { return &cs.MinHeight }, lengthPercent(true, false)),
		prop("max-width", false, "none", func(cs *ComputedStyle) *DimenT { return &cs.MaxWidth }, maxSize),
		prop("max-height", false, "none", func(cs *ComputedStyle) *DimenT { return &cs.MaxHeight }, maxSize),
		prop("overflow-x", false, "visible", func(cs *ComputedStyle) *Overflow { return &cs.OverflowX }, keyword(overflowKeywords)),
		prop("overflow-y", false, "visible", func(cs *ComputedStyle) *Overflow { return &cs.OverflowY }, keyword(overflowKeywords)),
		prop("visibility", true, "visible", func(cs *ComputedStyle) *Visibility { return &cs.Visibility }, keyword(visibilityKeywords)),
		prop("opacity", false, "1", func(cs *ComputedStyle) *float64 { return &cs.Opacity }, parseOpacity),
		prop("direction", true, "ltr", func(cs *ComputedStyle) *bidi.Direction { return &cs.Direction }, keyword(directionKeywords)),
		prop("list-style-type", true, "disc", func(cs *ComputedStyle) *string { return &cs.ListStyle }, parseIdent),
		prop("background-color", false, "transparent", func(cs *ComputedStyle) *color.RGBA { return &cs.BackgroundColor }, parseColorValue),
		prop("background-image", false, "none", func(cs *ComputedStyle) *string { return &cs.BackgroundImage }, parseURL),
		prop("font-family", true, "sans-serif", func(cs *ComputedStyle) *[]string { return &cs.FontFamily }, parseFontFamily),
		prop("font-weight", true, "normal", func(cs *ComputedStyle) *int { return &cs.FontWeight }, parseFontWeight),
		prop("font-style", true, "normal", func(cs *ComputedStyle) *FontStyle { return &cs.FontStyle }, keyword(fontStyleKeywords)),
		prop("line-height", true, "normal", func(cs *ComputedStyle) *LineHeight { return &cs.LineHeight }, parseLineHeight),
		prop("text-align", true, "start", func(cs *ComputedStyle) *TextAlign { return &cs.TextAlign }, keyword(textAlignKeywords)),
		prop("text-decoration-line", false, "none", func(cs *ComputedStyle) *Decoration { return &cs.TextDecoration }, parseDecoration),
		prop("white-space", true, "normal", func(cs *ComputedStyle) *WhiteSpace { return &cs.WhiteSpace }, keyword(whiteSpaceKeywords)),
		prop("vertical-align", false, "baseline", func(cs *ComputedStyle) *VerticalAlign { return &cs.VerticalAlign }, parseVerticalAlign),
		prop("flex-direction", false, "row", func(cs *ComputedStyle) *FlexDirection { return &cs.FlexDirection }, keyword(flexDirectionKeywords)),
		prop("flex-wrap", false, "nowrap", func(cs *ComputedStyle) *FlexWrap { return &cs.FlexWrap }, keyword(flexWrapKeywords)),
		prop("flex-grow", false, "0", func(cs *ComputedStyle) *float64 { return &cs.FlexGrow }, nonNegativeNumber),
		prop("flex-shrink", false, "1", func(cs *ComputedStyle) *float64 { return &cs.FlexShrink }, nonNegativeNumber),
		prop("flex-basis", false, "auto", func(cs *ComputedStyle) *DimenT { return &cs.FlexBasis }, parseFlexBasis),
		prop("order", false, "0", func(cs *ComputedStyle) *int { return &cs.Order }, parseInteger),
		prop("justify-content", false, "flex-start", func(cs *ComputedStyle) *Align { return &cs.JustifyContent }, keyword(alignKeywords)),
		prop("align-items", false, "stretch", func(cs *ComputedStyle) *Align { return &cs.AlignItems }, keyword(alignKeywords)),
		prop("align-self", false, "auto", func(cs *ComputedStyle) *Align { return &cs.AlignSelf }, keyword(alignKeywords)),
		prop("align-content", false, "stretch", func(cs *ComputedStyle) *Align { return &cs.AlignContent }, keyword(alignKeywords)),
		prop("justify-items", false, "stretch", func(cs *ComputedStyle) *Align { return &cs.JustifyItems }, keyword(alignKeywords)),
		prop("row-gap", false, "normal", func(cs *ComputedStyle) *DimenT { return &cs.RowGap }, parseGap),
		prop("column-gap", false, "normal", func(cs *ComputedStyle) *DimenT { return &cs.ColumnGap }, parseGap),
		prop("grid-template-columns", false, "none", func(cs *ComputedStyle) *[]GridTrack { return &cs.GridTemplateColumns }, parseTrackList),
		prop("grid-template-rows", false, "none", func(cs *ComputedStyle) *[]GridTrack { return &cs.GridTemplateRows }, parseTrackList),
		prop("grid-auto-columns", false, "auto", func(cs *ComputedStyle) *GridTrack { return &cs.GridAutoColumns }, parseTrack),
		prop("grid-auto-rows", false, "auto", func(cs *ComputedStyle) *GridTrack { return &cs.GridAutoRows }, parseTrack),
		prop("grid-auto-flow", false, "row", func(cs *ComputedStyle) *GridAutoFlow { return &cs.GridAutoFlow }, parseAutoFlow),
		prop("grid-column-start", false, "auto", func(cs *ComputedStyle) *GridLine { return &cs.GridColumnStart }, parseGridLine),
		prop("grid-column-end", false, "auto", func(cs *ComputedStyle) *GridLine { return &cs.GridColumnEnd }, parseGridLine),
		prop("grid-row-start", false, "auto", func(cs *ComputedStyle) *GridLine { return &cs.GridRowStart }, parseGridLine),
		prop("grid-row-end", false, "auto", func(cs *ComputedStyle) *GridLine { return &cs.GridRowEnd }, parseGridLine),
		prop("border-collapse", true, "separate", func(cs *ComputedStyle) *bool { return &cs.BorderCollapse }, keyword(borderCollapseKeywords)),
		prop("border-spacing", true, "0", func(cs *ComputedStyle) *dimen.Dimen { return &cs.BorderSpacing }, parseBorderSpacing),
	}
	for i := 0; i < 4; i++ {
		e := i
		props = append(props,
			prop(edgeNames[e], false, "auto", func(cs *ComputedStyle) *DimenT { return &cs.Inset[e] }, lengthPercent(true, true)),
			prop("margin-"+edgeNames[e], false, "0", func(cs *ComputedStyle) *DimenT { return &cs.Margin[e] }, lengthPercent(true, true)),
			prop("padding-"+edgeNames[e], false, "0", func(cs *ComputedStyle) *DimenT { return &cs.Padding[e] }, lengthPercent(false, false)),
			prop("border-"+edgeNames[e]+"-style", false, "none", func(cs *ComputedStyle) *BorderStyle { return &cs.BorderStyle[e] }, keyword(borderStyleKeywords)),
			prop("border-"+edgeNames[e]+"-width", false, "medium", func(cs *ComputedStyle) *dimen.Dimen { return &cs.BorderWidth[e] }, parseBorderWidth),
			prop("border-"+edgeNames[e]+"-color", false, "currentcolor", func(cs *ComputedStyle) *color.RGBA { return &cs.BorderColor[e] }, parseColorValue),
		)
	}
	return props
}

// --- Keyword tables --------------------------------------------------------

var positionKeywords = map[string]Position{
	"static": PositionStatic, "relative": PositionRelative, "absolute": PositionAbsolute,
	"fixed": PositionFixed, "sticky": PositionSticky,
}

var floatKeywords = map[string]string{"none": "none", "left": "left", "right": "right"}

var boxSizingKeywords = map[string]BoxSizing{"content-box": ContentBox, "border-box": BorderBox}

var overflowKeywords = map[string]Overflow{
	"visible": OverflowVisible, "hidden": OverflowHidden, "scroll": OverflowScroll,
	"auto": OverflowAuto, "clip": OverflowClip,
}

var visibilityKeywords = map[string]Visibility{"visible": Visible, "hidden": Hidden, "collapse": Hidden}

var directionKeywords = map[string]bidi.Direction{"ltr": bidi.LeftToRight, "rtl": bidi.RightToLeft}

var fontStyleKeywords = map[string]FontStyle{
	"normal": FontStyleNormal, "italic": FontStyleItalic, "oblique": FontStyleOblique,
}

var textAlignKeywords = map[string]TextAlign{
	"start": TextAlignStart, "end": TextAlignEnd, "left": TextAlignLeft, "right": TextAlignRight,
	"center": TextAlignCenter, "justify": TextAlignJustify,
}

var whiteSpaceKeywords = map[string]WhiteSpace{
	"normal": WhiteSpaceNormal, "nowrap": WhiteSpaceNoWrap, "pre": WhiteSpacePre,
	"pre-wrap": WhiteSpacePreWrap, "pre-line": WhiteSpacePreLine,
}

var verticalAlignKeywords = map[string]VerticalAlign{
	"baseline": VAlignBaseline, "top": VAlignTop, "middle": VAlignMiddle, "bottom": VAlignBottom,
	"text-top": VAlignTextTop, "text-bottom": VAlignTextBottom, "sub": VAlignSub, "super": VAlignSuper,
}

var flexDirectionKeywords = map[string]FlexDirection{
	"row": FlexRow, "row-reverse": FlexRowReverse, "column": FlexColumn,
	"column-reverse": FlexColumnReverse,
}

var flexWrapKeywords = map[string]FlexWrap{"nowrap": NoWrap, "wrap": Wrap, "wrap-reverse": WrapReverse}

var alignKeywords = map[string]Align{
	"auto": AlignAuto, "normal": AlignNormal, "stretch": AlignStretch,
	"start": AlignStart, "flex-start": AlignStart, "self-start": AlignStart, "left": AlignStart,
	"end": AlignEnd, "flex-end": AlignEnd, "self-end": AlignEnd, "right": AlignEnd,
	"center": AlignCenter, "baseline": AlignBaseline, "first baseline": AlignBaseline,
	"space-between": AlignSpaceBetween, "space-around": AlignSpaceAround,
	"space-evenly": AlignSpaceEvenly,
}

var borderStyleKeywords = map[string]BorderStyle{
	"none": BorderNone, "hidden": BorderHidden, "solid": BorderSolid, "dashed": BorderDashed,
	"dotted": BorderDotted, "double": BorderDouble, "groove": BorderGroove, "ridge": BorderRidge,
	"inset": BorderInset, "outset": BorderOutset,
}

var borderCollapseKeywords = map[string]bool{"collapse": true, "separate": false}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16, "large": 18,
	"x-large": 24, "xx-large": 32, "xxx-large": 48,
}

// --- Value parsers ---------------------------------------------------------

func keyword[T any](table map[string]T) func(string, *resolution) (T, error) {
	return func(v string, _ *resolution) (T, error) {
		if x, ok := table[strings.ToLower(v)]; ok {
			return x, nil
		}
		var zero T
		return zero, fmt.Errorf("unknown keyword %q", v)
	}
}

// lengthPercent creates a parser for length-percentages, optionally allowing
// auto and negative values.
func lengthPercent(allowAuto, allowNegative bool) func(string, *resolution) (DimenT, error) {
	return func(v string, ctx *resolution) (DimenT, error) {
		d, err := ParseDimen(v)
		if err != nil {
			return d, err
		}
		if d.IsAuto() && !allowAuto {
			return Dimen(), fmt.Errorf("auto not allowed")
		}
		if !allowNegative && d.Unwrap() < 0 {
			return Dimen(), fmt.Errorf("negative value not allowed: %s", v)
		}
		return ctx.absolutize(d), nil
	}
}

func maxSize(v string, ctx *resolution) (DimenT, error) {
	if strings.EqualFold(v, "none") {
		return Dimen(), nil
	}
	return lengthPercent(false, false)(v, ctx)
}

func parseFlexBasis(v string, ctx *resolution) (DimenT, error) {
	if strings.EqualFold(v, "content") {
		return Auto(), nil
	}
	return lengthPercent(true, false)(v, ctx)
}

func parseGap(v string, ctx *resolution) (DimenT, error) {
	if strings.EqualFold(v, "normal") {
		return SomeDimen(0), nil
	}
	return lengthPercent(false, false)(v, ctx)
}

// absoluteLength parses a non-percentage length.
func absoluteLength(v string, ctx *resolution) (dimen.Dimen, error) {
	d, err := ParseDimen(v)
	if err != nil {
		return 0, err
	}
	d = ctx.absolutize(d)
	if !d.IsAbsolute() {
		return 0, fmt.Errorf("expected length, have %q", v)
	}
	return d.Unwrap(), nil
}

func parseBorderWidth(v string, ctx *resolution) (dimen.Dimen, error) {
	switch strings.ToLower(v) {
	case "thin":
		return 1 * dimen.PX, nil
	case "medium":
		return 3 * dimen.PX, nil
	case "thick":
		return 5 * dimen.PX, nil
	}
	w, err := absoluteLength(v, ctx)
	if err == nil && w < 0 {
		return 0, fmt.Errorf("negative border width")
	}
	return w, err
}

func parseBorderSpacing(v string, ctx *resolution) (dimen.Dimen, error) {
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return 0, fmt.Errorf("empty border-spacing")
	}
	return absoluteLength(parts[0], ctx)
}

func parseColorValue(v string, ctx *resolution) (color.RGBA, error) {
	return ParseColor(v, ctx.currentColor)
}

func parseDisplayValue(v string, _ *resolution) (DisplayMode, error) {
	if d, ok := ParseDisplay(v); ok {
		return d, nil
	}
	return NoMode, fmt.Errorf("unknown display %q", v)
}

func parseZIndex(v string, _ *resolution) (ZIndex, error) {
	if strings.EqualFold(v, "auto") {
		return ZIndex{Auto: true}, nil
	}
	n, err := strconv.Atoi(v)
	return ZIndex{Value: n}, err
}

func parseOpacity(v string, _ *resolution) (float64, error) {
	scale := 1.0
	if strings.HasSuffix(v, "%") {
		v, scale = strings.TrimSuffix(v, "%"), 0.01
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 1, err
	}
	return math.Max(0, math.Min(1, f*scale)), nil
}

func nonNegativeNumber(v string, _ *resolution) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err == nil && f < 0 {
		err = fmt.Errorf("negative number %g", f)
	}
	return f, err
}

func parseInteger(v string, _ *resolution) (int, error) {
	return strconv.Atoi(v)
}

func parseIdent(v string, _ *resolution) (string, error) {
	return strings.ToLower(v), nil
}

func parseURL(v string, _ *resolution) (string, error) {
	if strings.EqualFold(v, "none") {
		return "", nil
	}
	if !strings.HasPrefix(v, "url(") || !strings.HasSuffix(v, ")") {
		return "", fmt.Errorf("expected url(), have %q", v)
	}
	return strings.Trim(v[4:len(v)-1], ` "'`), nil
}

func parseFontSize(v string, ctx *resolution) (dimen.Dimen, error) {
	v = strings.ToLower(v)
	if px, ok := fontSizeKeywords[v]; ok {
		return dimen.FromFloat(px, dimen.PX), nil
	}
	switch v {
	case "larger":
		return ctx.parentFontSize.Scale(1.2), nil
	case "smaller":
		return ctx.parentFontSize.Scale(1 / 1.2), nil
	}
	d, err := ParseDimen(v)
	if err != nil || d.IsAuto() || d.Unwrap() < 0 {
		return 0, fmt.Errorf("illegal font size %q", v)
	}
	if d.IsPercent() {
		return ctx.parentFontSize.Scale(d.Factor() / 100), nil
	}
	// em and ex refer to the parent's font size for property font-size
	d = d.Absolutize(ctx.parentFontSize, ctx.rootFontSize, ctx.viewport)
	return d.Unwrap(), nil
}

func parseFontWeight(v string, ctx *resolution) (int, error) {
	parent := 400
	if ctx.parent != nil {
		parent = ctx.parent.FontWeight
	}
	switch strings.ToLower(v) {
	case "normal":
		return 400, nil
	case "bold":
		return 700, nil
	case "bolder":
		if parent < 400 {
			return 400, nil
		} else if parent < 600 {
			return 700, nil
		}
		return 900, nil
	case "lighter":
		if parent > 700 {
			return 700, nil
		} else if parent > 500 {
			return 400, nil
		}
		return 100, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 1000 {
		return 400, fmt.Errorf("illegal font weight %q", v)
	}
	return n, nil
}

func parseFontFamily(v string, _ *resolution) ([]string, error) {
	var families []string
	for _, f := range strings.Split(v, ",") {
		if f = strings.Trim(strings.TrimSpace(f), `"'`); f != "" {
			families = append(families, f)
		}
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("empty font family")
	}
	return families, nil
}

func parseLineHeight(v string, ctx *resolution) (LineHeight, error) {
	if strings.EqualFold(v, "normal") {
		return LineHeight{Normal: true}, nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		if f < 0 {
			return LineHeight{}, fmt.Errorf("negative line height")
		}
		return LineHeight{Factor: f}, nil
	}
	d, err := ParseDimen(v)
	if err != nil || d.IsAuto() || d.Unwrap() < 0 {
		return LineHeight{}, fmt.Errorf("illegal line height %q", v)
	}
	if d.IsPercent() {
		return LineHeight{Length: ctx.fontSize.Scale(d.Factor() / 100)}, nil
	}
	return LineHeight{Length: ctx.absolutize(d).Unwrap()}, nil
}

func parseDecoration(v string, _ *resolution) (Decoration, error) {
	deco := DecorationNone
	for _, tok := range strings.Fields(strings.ToLower(v)) {
		switch tok {
		case "none":
		case "underline":
			deco |= DecorationUnderline
		case "overline":
			deco |= DecorationOverline
		case "line-through":
			deco |= DecorationLineThrough
		default:
			return DecorationNone, fmt.Errorf("unknown text decoration %q", tok)
		}
	}
	return deco, nil
}

func parseVerticalAlign(v string, _ *resolution) (VerticalAlign, error) {
	if va, ok := verticalAlignKeywords[strings.ToLower(v)]; ok {
		return va, nil
	}
	if _, err := ParseDimen(v); err == nil { // lengths are aligned to the baseline
		return VAlignBaseline, nil
	}
	return VAlignBaseline, fmt.Errorf("unknown vertical alignment %q", v)
}

func parseAutoFlow(v string, _ *resolution) (GridAutoFlow, error) {
	flow := GridFlowRow
	for _, tok := range strings.Fields(strings.ToLower(v)) {
		switch tok {
		case "row", "dense":
		case "column":
			flow = GridFlowColumn
		default:
			return GridFlowRow, fmt.Errorf("unknown grid-auto-flow %q", v)
		}
	}
	return flow, nil
}

func parseGridLine(v string, _ *resolution) (GridLine, error) {
	toks := strings.Fields(strings.ToLower(v))
	switch len(toks) {
	case 1:
		if toks[0] == "auto" {
			return GridLine{}, nil
		}
		n, err := strconv.Atoi(toks[0])
		if err != nil || n == 0 {
			return GridLine{}, fmt.Errorf("illegal grid line %q", v)
		}
		return GridLine{Line: n}, nil
	case 2:
		if toks[1] == "span" {
			toks[0], toks[1] = toks[1], toks[0]
		}
		if toks[0] == "span" {
			n, err := strconv.Atoi(toks[1])
			if err != nil || n < 1 {
				return GridLine{}, fmt.Errorf("illegal grid span %q", v)
			}
			return GridLine{Span: n}, nil
		}
	}
	return GridLine{}, fmt.Errorf("unsupported grid line %q", v)
}

func parseTrack(v string, ctx *resolution) (GridTrack, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "auto":
		return GridTrack{Kind: TrackAuto}, nil
	case "min-content":
		return GridTrack{Kind: TrackMinContent}, nil
	case "max-content":
		return GridTrack{Kind: TrackMaxContent}, nil
	}
	if strings.HasPrefix(v, "minmax(") && strings.HasSuffix(v, ")") {
		// minmax(min, max) is approximated by its max, or by its min if max is auto
		args := splitArgs(v[7 : len(v)-1])
		if len(args) != 2 {
			return GridTrack{}, fmt.Errorf("malformed minmax %q", v)
		}
		t, err := parseTrack(args[1], ctx)
		if err == nil && t.Kind == TrackAuto {
			return parseTrack(args[0], ctx)
		}
		return t, err
	}
	if strings.HasSuffix(v, "fr") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "fr"), 64)
		if err != nil || f < 0 {
			return GridTrack{}, fmt.Errorf("malformed flex track %q", v)
		}
		return GridTrack{Kind: TrackFr, Fr: f}, nil
	}
	d, err := lengthPercent(false, false)(v, ctx)
	if err != nil {
		return GridTrack{}, err
	}
	if d.IsPercent() {
		return GridTrack{Kind: TrackPercent, Percent: d.Factor()}, nil
	}
	return GridTrack{Kind: TrackFixed, Length: d.Unwrap()}, nil
}

func parseTrackList(v string, ctx *resolution) ([]GridTrack, error) {
	if strings.EqualFold(strings.TrimSpace(v), "none") {
		return nil, nil
	}
	var tracks []GridTrack
	for _, tok := range splitValue(v) {
		if strings.HasPrefix(tok, "[") { // line names are ignored
			continue
		}
		if strings.HasPrefix(strings.ToLower(tok), "repeat(") && strings.HasSuffix(tok, ")") {
			args := splitArgs(tok[7 : len(tok)-1])
			if len(args) != 2 {
				return nil, fmt.Errorf("malformed repeat %q", tok)
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 || n > 1000 {
				return nil, fmt.Errorf("unsupported repeat count %q", args[0])
			}
			inner, err := parseTrackList(args[1], ctx)
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				tracks = append(tracks, inner...)
			}
			continue
		}
		t, err := parseTrack(tok, ctx)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}

// splitValue splits a property value at white space, keeping parenthesized
// groups and brackets together.
func splitValue(v string) []string {
	var toks []string
	depth, start := 0, -1
	for i, r := range v {
		switch {
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			if start >= 0 {
				toks = append(toks, v[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, v[start:])
	}
	return toks
}

// splitArgs splits function arguments at top-level commas.
func splitArgs(v string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range v {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(v[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(v[start:]))
}
