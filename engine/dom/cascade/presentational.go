package cascade

import (
	"strconv"
	"strings"

	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/style"
)

// Presentational translates legacy HTML presentational attributes of an
// element into declarations. They take part in the cascade at author level
// with specificity zero, preceding all author style rules.
//
// Supported are bgcolor, width, height, border, cellspacing, cellpadding
// (applied to the cells of a table), valign, align and color.
func Presentational(n dom.Node) []cssom.Declaration {
	var decls []cssom.Declaration
	decl := func(prop, value string) {
		decls = append(decls, cssom.Declaration{Property: prop, Value: value})
	}
	tag := n.TagName()
	if v, ok := n.Attribute("bgcolor"); ok {
		if c, ok := attrColor(v); ok {
			decl("background-color", c)
		}
	}
	if tag != "col" && tag != "colgroup" {
		if v, ok := n.Attribute("width"); ok {
			if l, ok := attrLength(v, true); ok {
				decl("width", l)
			}
		}
		if v, ok := n.Attribute("height"); ok {
			if l, ok := attrLength(v, false); ok {
				decl("height", l)
			}
		}
	}
	if tag == "table" {
		if v, ok := n.Attribute("border"); ok {
			if px, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && px >= 0 {
				decl("border", strconv.Itoa(px)+"px outset")
			}
		}
		if v, ok := n.Attribute("cellspacing"); ok {
			if l, ok := attrLength(v, false); ok {
				decl("border-spacing", l)
			}
		}
		if v, ok := n.Attribute("align"); ok {
			switch strings.ToLower(v) {
			case "center":
				decl("margin-left", "auto")
				decl("margin-right", "auto")
			case "left", "right":
				decl("float", strings.ToLower(v))
			}
		}
	} else if v, ok := n.Attribute("align"); ok {
		switch a := strings.ToLower(v); a {
		case "left", "right", "center", "justify":
			decl("text-align", a)
		}
	}
	if tag == "td" || tag == "th" {
		if table := enclosingTable(n); table != nil {
			if v, ok := table.Attribute("cellpadding"); ok {
				if l, ok := attrLength(v, false); ok {
					decl("padding", l)
				}
			}
			if v, ok := table.Attribute("border"); ok {
				if px, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && px > 0 {
					decl("border", "1px inset")
				}
			}
		}
	}
	if v, ok := n.Attribute("valign"); ok {
		switch a := strings.ToLower(v); a {
		case "top", "middle", "bottom", "baseline":
			decl("vertical-align", a)
		}
	}
	if tag == "font" {
		if v, ok := n.Attribute("color"); ok {
			if c, ok := attrColor(v); ok {
				decl("color", c)
			}
		}
	}
	if len(decls) > 0 {
		tracer().Debugf("<%s> presentational attributes: %v", tag, decls)
	}
	return decls
}

func enclosingTable(n dom.Node) dom.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.TagName() == "table" {
			return p
		}
	}
	return nil
}

// attrColor accepts named colors and hex colors, with or without '#'.
func attrColor(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if _, err := style.ParseColor(v, style.Transparent); err == nil {
		return v, true
	}
	if _, err := style.ParseColor("#"+v, style.Transparent); err == nil {
		return "#" + v, true
	}
	return "", false
}

// attrLength accepts plain numbers as pixels, and optionally percentages.
func attrLength(v string, percent bool) (string, bool) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		if _, err := strconv.ParseFloat(v[:len(v)-1], 64); err == nil && percent {
			return v, true
		}
		return "", false
	}
	v = strings.TrimSuffix(v, "px")
	if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
		return v + "px", true
	}
	return "", false
}
