package style

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tambo/engine/dom/cssom"
)

// shorthand expands the value of a shorthand property into longhand
// declarations (property → value).
type shorthand func(value string) ([][2]string, error)

var edges = [4]string{"top", "right", "bottom", "left"}

var shorthands = map[string]shorthand{
	"margin":                fourEdges("margin-%s"),
	"padding":               fourEdges("padding-%s"),
	"inset":                 fourEdges("%s"),
	"border-width":          fourEdges("border-%s-width"),
	"border-style":          fourEdges("border-%s-style"),
	"border-color":          fourEdges("border-%s-color"),
	"border":                borderShorthand(edges[:]...),
	"border-top":            borderShorthand("top"),
	"border-right":          borderShorthand("right"),
	"border-bottom":         borderShorthand("bottom"),
	"border-left":           borderShorthand("left"),
	"background":            backgroundShorthand,
	"overflow":              pairShorthand("overflow-x", "overflow-y"),
	"gap":                   pairShorthand("row-gap", "column-gap"),
	"grid-gap":              pairShorthand("row-gap", "column-gap"),
	"place-items":           pairShorthand("align-items", "justify-items"),
	"flex":                  flexShorthand,
	"flex-flow":             flexFlowShorthand,
	"grid-column":           gridLineShorthand("grid-column-start", "grid-column-end"),
	"grid-row":              gridLineShorthand("grid-row-start", "grid-row-end"),
	"grid-area":             gridAreaShorthand,
	"font":                  fontShorthand,
	"text-decoration":       aliasShorthand("text-decoration-line"),
	"list-style":            aliasShorthand("list-style-type"),
	"grid-template":         gridTemplateShorthand,
	"border-radius":         ignoredShorthand,
	"text-decoration-color": ignoredShorthand,
}

// Longhands returns the longhand properties a shorthand expands to, or the
// property itself for longhands.
func Longhands(name string) []string {
	sh, ok := shorthands[name]
	if !ok {
		return []string{name}
	}
	decls, _ := sh("inherit")
	names := make([]string, len(decls))
	for i, d := range decls {
		names[i] = d[0]
	}
	return names
}

// Expand replaces a shorthand declaration by longhand declarations, keeping
// the !important flag. Longhands are passed through. Declarations of
// unknown properties or with malformed shorthand values are dropped (an
// empty result is returned).
func Expand(decl cssom.Declaration) []cssom.Declaration {
	if _, ok := Lookup(decl.Property); ok {
		return []cssom.Declaration{decl}
	}
	sh, ok := shorthands[decl.Property]
	if !ok {
		tracer().Debugf("dropping unknown property %q", decl.Property)
		return nil
	}
	value := strings.TrimSpace(decl.Value)
	var expanded [][2]string
	switch strings.ToLower(value) {
	case "inherit", "initial", "unset":
		expanded, _ = sh("inherit")
		for i := range expanded {
			expanded[i][1] = strings.ToLower(value)
		}
	default:
		var err error
		if expanded, err = sh(value); err != nil {
			tracer().Debugf("dropping malformed %s: %v", decl.Property, err)
			return nil
		}
	}
	result := make([]cssom.Declaration, len(expanded))
	for i, e := range expanded {
		result[i] = cssom.Declaration{Property: e[0], Value: e[1], Important: decl.Important}
	}
	return result
}

// fourEdges handles the 1-to-4 value syntax, clockwise starting at the top.
func fourEdges(pattern string) shorthand {
	return func(v string) ([][2]string, error) {
		vals := splitValue(v)
		var t, r, b, l string
		switch len(vals) {
		case 1:
			t, r, b, l = vals[0], vals[0], vals[0], vals[0]
		case 2:
			t, r, b, l = vals[0], vals[1], vals[0], vals[1]
		case 3:
			t, r, b, l = vals[0], vals[1], vals[2], vals[1]
		case 4:
			t, r, b, l = vals[0], vals[1], vals[2], vals[3]
		default:
			return nil, fmt.Errorf("expected 1 to 4 values, have %d", len(vals))
		}
		return [][2]string{
			{fmt.Sprintf(pattern, "top"), t},
			{fmt.Sprintf(pattern, "right"), r},
			{fmt.Sprintf(pattern, "bottom"), b},
			{fmt.Sprintf(pattern, "left"), l},
		}, nil
	}
}

func borderShorthand(sides ...string) shorthand {
	return func(v string) ([][2]string, error) {
		width, style, color := "medium", "none", "currentcolor"
		if v != "inherit" {
			for _, tok := range splitValue(v) {
				low := strings.ToLower(tok)
				if _, ok := borderStyleKeywords[low]; ok {
					style = low
				} else if _, err := ParseColor(low, Transparent); err == nil {
					color = tok
				} else if low == "thin" || low == "medium" || low == "thick" {
					width = low
				} else if _, err := ParseDimen(low); err == nil {
					width = low
				} else {
					return nil, fmt.Errorf("unknown border component %q", tok)
				}
			}
		}
		var decls [][2]string
		for _, s := range sides {
			decls = append(decls,
				[2]string{"border-" + s + "-width", width},
				[2]string{"border-" + s + "-style", style},
				[2]string{"border-" + s + "-color", color},
			)
		}
		return decls, nil
	}
}

func backgroundShorthand(v string) ([][2]string, error) {
	bg, img := "transparent", "none"
	if v != "inherit" {
		for _, tok := range splitValue(v) {
			if strings.HasPrefix(strings.ToLower(tok), "url(") {
				img = tok
			} else if _, err := ParseColor(tok, Transparent); err == nil {
				bg = tok
			} // position, repeat, etc. are not supported and skipped
		}
	}
	return [][2]string{{"background-color", bg}, {"background-image", img}}, nil
}

func pairShorthand(first, second string) shorthand {
	return func(v string) ([][2]string, error) {
		vals := splitValue(v)
		switch len(vals) {
		case 1:
			return [][2]string{{first, vals[0]}, {second, vals[0]}}, nil
		case 2:
			return [][2]string{{first, vals[0]}, {second, vals[1]}}, nil
		}
		return nil, fmt.Errorf("expected 1 or 2 values, have %d", len(vals))
	}
}

func aliasShorthand(longhand string) shorthand {
	return func(v string) ([][2]string, error) {
		if longhand == "text-decoration-line" && v != "inherit" {
			// keep the line keywords, drop color and style components
			var keep []string
			for _, tok := range splitValue(v) {
				switch strings.ToLower(tok) {
				case "none", "underline", "overline", "line-through":
					keep = append(keep, tok)
				}
			}
			if len(keep) == 0 {
				keep = []string{"none"}
			}
			v = strings.Join(keep, " ")
		} else if longhand == "list-style-type" && v != "inherit" {
			v = splitValue(v)[0]
		}
		return [][2]string{{longhand, v}}, nil
	}
}

func ignoredShorthand(v string) ([][2]string, error) {
	return nil, nil
}

func flexShorthand(v string) ([][2]string, error) {
	grow, shrink, basis := "0", "1", "auto"
	vals := splitValue(v)
	switch {
	case v == "inherit":
	case len(vals) == 1 && strings.EqualFold(vals[0], "none"):
		grow, shrink, basis = "0", "0", "auto"
	case len(vals) == 1 && strings.EqualFold(vals[0], "auto"):
		grow, shrink, basis = "1", "1", "auto"
	case len(vals) == 1 && strings.EqualFold(vals[0], "initial"):
	default:
		var numbers []string
		basis = "0"
		for _, tok := range vals {
			if _, err := nonNegativeNumber(tok, nil); err == nil && len(numbers) < 2 {
				numbers = append(numbers, tok)
			} else if _, err := ParseDimen(tok); err == nil || strings.EqualFold(tok, "content") {
				basis = tok
			} else {
				return nil, fmt.Errorf("malformed flex value %q", v)
			}
		}
		switch len(numbers) {
		case 0:
			grow, shrink = "1", "1"
		case 1:
			grow, shrink = numbers[0], "1"
		case 2:
			grow, shrink = numbers[0], numbers[1]
		}
	}
	return [][2]string{{"flex-grow", grow}, {"flex-shrink", shrink}, {"flex-basis", basis}}, nil
}

func flexFlowShorthand(v string) ([][2]string, error) {
	dir, wrap := "row", "nowrap"
	if v != "inherit" {
		for _, tok := range splitValue(strings.ToLower(v)) {
			if _, ok := flexDirectionKeywords[tok]; ok {
				dir = tok
			} else if _, ok := flexWrapKeywords[tok]; ok {
				wrap = tok
			} else {
				return nil, fmt.Errorf("malformed flex-flow %q", v)
			}
		}
	}
	return [][2]string{{"flex-direction", dir}, {"flex-wrap", wrap}}, nil
}

func gridLineShorthand(start, end string) shorthand {
	return func(v string) ([][2]string, error) {
		parts := strings.Split(v, "/")
		s, e := strings.TrimSpace(parts[0]), "auto"
		if len(parts) == 2 {
			e = strings.TrimSpace(parts[1])
		} else if len(parts) > 2 {
			return nil, fmt.Errorf("malformed grid line shorthand %q", v)
		}
		return [][2]string{{start, s}, {end, e}}, nil
	}
}

func gridAreaShorthand(v string) ([][2]string, error) {
	parts := strings.Split(v, "/")
	if len(parts) > 4 {
		return nil, fmt.Errorf("malformed grid-area %q", v)
	}
	vals := []string{"auto", "auto", "auto", "auto"}
	for i, p := range parts {
		vals[i] = strings.TrimSpace(p)
	}
	return [][2]string{
		{"grid-row-start", vals[0]}, {"grid-column-start", vals[1]},
		{"grid-row-end", vals[2]}, {"grid-column-end", vals[3]},
	}, nil
}

func gridTemplateShorthand(v string) ([][2]string, error) {
	parts := strings.Split(v, "/")
	if v == "inherit" || len(parts) != 2 {
		if v != "inherit" && !strings.EqualFold(v, "none") {
			return nil, fmt.Errorf("unsupported grid-template %q", v)
		}
		parts = []string{"none", "none"}
	}
	return [][2]string{
		{"grid-template-rows", strings.TrimSpace(parts[0])},
		{"grid-template-columns", strings.TrimSpace(parts[1])},
	}, nil
}

// fontShorthand supports [style] [weight] size[/line-height] family.
func fontShorthand(v string) ([][2]string, error) {
	style, weight, size, lh, family := "normal", "normal", "medium", "normal", "sans-serif"
	if v != "inherit" {
		toks := splitValue(v)
		i := 0
		for ; i < len(toks); i++ {
			low := strings.ToLower(toks[i])
			if _, ok := fontStyleKeywords[low]; ok {
				style = low
				continue
			}
			if _, err := parseFontWeight(low, &resolution{}); err == nil && low != "normal" {
				weight = low
				continue
			}
			if low == "normal" || low == "small-caps" {
				continue
			}
			break
		}
		if i >= len(toks) {
			return nil, fmt.Errorf("font shorthand without size: %q", v)
		}
		sz := toks[i]
		if slash := strings.IndexByte(sz, '/'); slash > 0 {
			sz, lh = sz[:slash], sz[slash+1:]
		} else if i+1 < len(toks) && strings.HasPrefix(toks[i+1], "/") {
			i++
			lh = strings.TrimPrefix(toks[i], "/")
			if lh == "" && i+1 < len(toks) {
				i++
				lh = toks[i]
			}
		}
		size = sz
		if i+1 >= len(toks) {
			return nil, fmt.Errorf("font shorthand without family: %q", v)
		}
		family = strings.Join(toks[i+1:], " ")
	}
	return [][2]string{
		{"font-style", style}, {"font-weight", weight}, {"font-size", size},
		{"line-height", lh}, {"font-family", family},
	}, nil
}
