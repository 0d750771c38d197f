package style

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/uax/bidi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	d, err := ParseDimen("100pt")
	require.NoError(t, err)
	assert.True(t, d.IsAbsolute())
	assert.Equal(t, 100*dimen.PT, d.Unwrap())
	d, err = ParseDimen("auto")
	require.NoError(t, err)
	assert.True(t, d.IsAuto())
	d, err = ParseDimen("1.5em")
	require.NoError(t, err)
	assert.True(t, d.IsRelative())
	assert.Equal(t, "1.5em", d.String())
	abs := d.Absolutize(10*dimen.PX, 16*dimen.PX, dimen.Point{})
	assert.Equal(t, 15*dimen.PX, abs.Unwrap())
	d, _ = ParseDimen("50%")
	w, ok := d.Resolve(300*dimen.PX, true)
	assert.True(t, ok)
	assert.Equal(t, 150*dimen.PX, w)
	_, ok = d.Resolve(300*dimen.PX, false)
	assert.False(t, ok, "percentage of indefinite reference must not resolve")
	_, err = ParseDimen("12")
	assert.Error(t, err, "unitless non-zero lengths are malformed")
	d, _ = ParseDimen("10vw")
	assert.Equal(t, 80*dimen.PX, d.Absolutize(0, 0, dimen.Point{X: 800 * dimen.PX}).Unwrap())
}

func TestParseColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	black := color.RGBA{A: 255}
	for s, expected := range map[string]color.RGBA{
		"red":                color.RGBA{255, 0, 0, 255},
		"#0f0":               color.RGBA{0, 255, 0, 255},
		"#0000ff":            color.RGBA{0, 0, 255, 255},
		"rgb(1, 2, 3)":       color.RGBA{1, 2, 3, 255},
		"rgb(100%, 0%, 0%)":  color.RGBA{255, 0, 0, 255},
		"rgba(255,0,0,0)":    color.RGBA{0, 0, 0, 0},
		"transparent":        Transparent,
		"currentColor":       black,
		"  CornflowerBlue  ": color.RGBA{100, 149, 237, 255},
	} {
		c, err := ParseColor(s, black)
		require.NoError(t, err, s)
		assert.Equal(t, expected, c, s)
	}
	_, err := ParseColor("#12", black)
	assert.Error(t, err)
	_, err = ParseColor("notacolor", black)
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	p, ok := Lookup("color")
	require.True(t, ok)
	assert.True(t, p.Inherited)
	p, ok = Lookup("margin-top")
	require.True(t, ok)
	assert.False(t, p.Inherited)
	assert.Equal(t, "0", p.Initial)
	assert.True(t, IsShorthand("margin"))
	assert.False(t, IsShorthand("margin-top"))
	assert.False(t, IsKnown("mystery"))
	assert.Equal(t, []string{"flex", "flex-basis", "flex-direction", "flex-flow", "flex-grow",
		"flex-shrink", "flex-wrap"}, PropertiesWithPrefix("flex"))
}

func TestValid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	assert.True(t, Valid("color", "red"))
	assert.True(t, Valid("color", "inherit"))
	assert.True(t, Valid("width", "50%"))
	assert.True(t, Valid("font-weight", "bolder"))
	assert.False(t, Valid("color", "bogus"))
	assert.False(t, Valid("width", "wide"))
	assert.False(t, Valid("color", " "))
	assert.False(t, Valid("margin", "1px"), "shorthands are expanded before validation")
	assert.False(t, Valid("mystery", "1px"))
}

func TestExpandShorthands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	decls := Expand(cssom.Declaration{Property: "margin", Value: "1px 2px 3px", Important: true})
	require.Len(t, decls, 4)
	assert.Equal(t, cssom.Declaration{Property: "margin-left", Value: "2px", Important: true}, decls[3])
	assert.Equal(t, "3px", decls[2].Value)
	//
	decls = Expand(cssom.Declaration{Property: "border", Value: "2px solid red"})
	require.Len(t, decls, 12)
	assert.Equal(t, "2px", decls[0].Value)
	assert.Equal(t, "solid", decls[1].Value)
	assert.Equal(t, "red", decls[2].Value)
	//
	decls = Expand(cssom.Declaration{Property: "flex", Value: "2"})
	assert.Equal(t, []cssom.Declaration{
		{Property: "flex-grow", Value: "2"}, {Property: "flex-shrink", Value: "1"},
		{Property: "flex-basis", Value: "0"},
	}, decls)
	decls = Expand(cssom.Declaration{Property: "flex", Value: "none"})
	assert.Equal(t, "0", decls[1].Value)
	//
	decls = Expand(cssom.Declaration{Property: "padding", Value: "inherit"})
	require.Len(t, decls, 4)
	assert.Equal(t, "inherit", decls[0].Value)
	//
	assert.Empty(t, Expand(cssom.Declaration{Property: "margin", Value: "1px 2px 3px 4px 5px"}))
	assert.Empty(t, Expand(cssom.Declaration{Property: "no-such-thing", Value: "1"}))
	assert.Len(t, Expand(cssom.Declaration{Property: "width", Value: "garbage"}), 1,
		"longhands pass through unchecked")
	decls = Expand(cssom.Declaration{Property: "font", Value: "italic bold 12px/1.5 Georgia, serif"})
	assert.Equal(t, []cssom.Declaration{
		{Property: "font-style", Value: "italic"}, {Property: "font-weight", Value: "bold"},
		{Property: "font-size", Value: "12px"}, {Property: "line-height", Value: "1.5"},
		{Property: "font-family", Value: "Georgia, serif"},
	}, decls)
	assert.Equal(t, []string{"row-gap", "column-gap"}, Longhands("gap"))
}

func TestResolveInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	env := Environment{Viewport: dimen.Point{X: 800 * dimen.PX, Y: 600 * dimen.PX}}
	root := Resolve(nil, map[string]string{
		"display":           "inline",
		"color":             "red",
		"font-size":         "20px",
		"margin-top":        "2em",
		"direction":         "rtl",
		"border-left-style": "solid",
	}, env)
	assert.True(t, root.Display.IsBlockLevel(), "root element is blockified")
	assert.Equal(t, 40*dimen.PX, root.Margin[Top].Unwrap())
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, root.BorderColor[Left], "initial border color is currentcolor")
	assert.Equal(t, 3*dimen.PX, root.BorderWidth[Left])
	assert.Equal(t, dimen.Zero, root.BorderWidth[Top], "border without style has no width")
	//
	child := Resolve(root, map[string]string{
		"font-size":    "150%",
		"padding-left": "1em",
		"margin-left":  "inherit",
		"color":        "initial",
		"width":        "50%",
		"height":       "bogus",
	}, env)
	assert.Equal(t, 30*dimen.PX, child.FontSize)
	assert.Equal(t, 30*dimen.PX, child.Padding[Left].Unwrap(), "em refers to the element's font size")
	assert.Equal(t, root.Margin[Left], child.Margin[Left])
	assert.Equal(t, color.RGBA{A: 255}, child.Color)
	assert.Equal(t, bidi.RightToLeft, child.Direction, "direction is inherited")
	assert.True(t, child.Width.IsPercent())
	assert.True(t, child.Height.IsAuto(), "malformed value falls back to initial")
	assert.Equal(t, DisplayMode(InlineMode|FlowMode), child.Display, "display is not inherited")
	assert.Equal(t, 20*dimen.PX, root.FontSize, "parent must not change")
}

func TestResolveGridAndFlex(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	cs := Resolve(nil, map[string]string{
		"display":               "grid",
		"grid-template-columns": "100px repeat(2, 1fr) minmax(20px, auto) 25%",
		"grid-column-start":     "span 2",
		"grid-row-start":        "-1",
		"flex-basis":            "content",
		"line-height":           "150%",
		"z-index":               "3",
		"opacity":               "0.5",
	}, Environment{})
	require.Len(t, cs.GridTemplateColumns, 5)
	assert.Equal(t, GridTrack{Kind: TrackFixed, Length: 100 * dimen.PX}, cs.GridTemplateColumns[0])
	assert.Equal(t, GridTrack{Kind: TrackFr, Fr: 1}, cs.GridTemplateColumns[2])
	assert.Equal(t, GridTrack{Kind: TrackFixed, Length: 20 * dimen.PX}, cs.GridTemplateColumns[3])
	assert.Equal(t, TrackPercent, cs.GridTemplateColumns[4].Kind)
	assert.Equal(t, GridLine{Span: 2}, cs.GridColumnStart)
	assert.Equal(t, GridLine{Line: -1}, cs.GridRowStart)
	assert.True(t, cs.FlexBasis.IsAuto())
	assert.Equal(t, 24*dimen.PX, cs.UsedLineHeight())
	assert.True(t, cs.EstablishesStackingContext(), "opacity < 1 creates a stacking context")
}

func TestDisplayModes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.style")
	defer teardown()
	//
	d, ok := ParseDisplay("inline-block")
	require.True(t, ok)
	assert.True(t, d.IsInlineLevel())
	assert.True(t, d.IsAtomicInline())
	assert.Equal(t, "inline-block", d.String())
	d, _ = ParseDisplay("table-cell")
	assert.True(t, d.IsTablePart())
	assert.False(t, d.IsInlineLevel())
	d, _ = ParseDisplay("table-column-group")
	assert.Equal(t, "table-column", d.String())
	_, ok = ParseDisplay("marquee")
	assert.False(t, ok)
}
