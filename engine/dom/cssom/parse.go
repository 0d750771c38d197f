package cssom

import (
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/tambo/core"
)

// ParseStyleSheet parses CSS text into a style sheet of a given origin.
// Rules are numbered starting at firstIndex; the next free index is returned,
// to be used for a subsequent sheet of the same origin.
//
// Malformed rules and declarations are dropped. An error is returned only if
// the text cannot be tokenized at all; it carries code core.EMALFORMED and
// an empty sheet is returned together with it.
func ParseStyleSheet(text string, origin Origin, firstIndex int) (*StyleSheet, int, error) {
	sheet := &StyleSheet{Origin: origin}
	parsed, err := parser.Parse(text)
	if err != nil {
		tracer().Infof("dropping malformed style sheet: %v", err)
		return sheet, firstIndex, core.WrapError(err, core.EMALFORMED, "malformed style sheet")
	}
	next := firstIndex
	for _, r := range parsed.Rules {
		if r.Kind == css.AtRule {
			// @media, @font-face, etc. are not supported; nested rules go with them
			tracer().Debugf("dropping at-rule %s %s", r.Name, r.Prelude)
			continue
		}
		decls := convertDeclarations(r.Declarations)
		sels := make([]string, 0, len(r.Selectors))
		for _, s := range r.Selectors {
			if s = strings.TrimSpace(s); s != "" {
				sels = append(sels, s)
			}
		}
		if len(sels) == 0 || len(decls) == 0 {
			tracer().Debugf("dropping empty rule %q", r.Prelude)
			continue
		}
		sheet.Rules = append(sheet.Rules, NewRule(sels, decls, origin, next))
		next++
	}
	tracer().Debugf("style sheet (%s) has %d rules", origin, len(sheet.Rules))
	return sheet, next, nil
}

// ParseInlineStyle parses the value of a style attribute. The last
// declaration does not need a terminating semicolon.
func ParseInlineStyle(text string) ([]Declaration, error) {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";"
	}
	parsed, err := parser.ParseDeclarations(text)
	if err != nil {
		tracer().Infof("dropping malformed inline style %q: %v", text, err)
		return nil, core.WrapError(err, core.EMALFORMED, "malformed inline style")
	}
	return convertDeclarations(parsed), nil
}

func convertDeclarations(decls []*css.Declaration) []Declaration {
	result := make([]Declaration, 0, len(decls))
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		value := strings.TrimSpace(d.Value)
		if prop == "" || value == "" {
			tracer().Debugf("dropping malformed declaration %q: %q", d.Property, d.Value)
			continue
		}
		result = append(result, Declaration{
			Property:  prop,
			Value:     value,
			Important: d.Important,
		})
	}
	return result
}
