package cssom

import (
	"sort"
	"strings"
)

// User agent defaults are keyed by tag name. They are applied as rules of
// origin UserAgent with a type selector each, or as a plain lookup table if
// CSS is switched off.
var uaDefaults = map[string]string{
	"html":       "display: block",
	"body":       "display: block; margin: 8px",
	"head":       "display: none",
	"script":     "display: none",
	"style":      "display: none",
	"title":      "display: none",
	"meta":       "display: none",
	"link":       "display: none",
	"template":   "display: none",
	"noscript":   "display: none",
	"div":        "display: block",
	"section":    "display: block",
	"article":    "display: block",
	"aside":      "display: block",
	"nav":        "display: block",
	"main":       "display: block",
	"header":     "display: block",
	"footer":     "display: block",
	"address":    "display: block; font-style: italic",
	"form":       "display: block",
	"figure":     "display: block; margin: 16px 40px",
	"blockquote": "display: block; margin: 16px 40px",
	"hr":         "display: block; margin: 8px 0; border: 1px inset gray",
	"pre":        "display: block; white-space: pre; font-family: monospace; margin: 16px 0",
	"p":          "display: block; margin-top: 16px; margin-bottom: 16px",
	"h1":         "display: block; font-size: 32px; font-weight: bold; margin-top: 21.44px; margin-bottom: 21.44px",
	"h2":         "display: block; font-size: 24px; font-weight: bold; margin-top: 19.92px; margin-bottom: 19.92px",
	"h3":         "display: block; font-size: 18.72px; font-weight: bold; margin-top: 18.72px; margin-bottom: 18.72px",
	"h4":         "display: block; font-size: 16px; font-weight: bold; margin-top: 21.28px; margin-bottom: 21.28px",
	"h5":         "display: block; font-size: 13.28px; font-weight: bold; margin-top: 22.17px; margin-bottom: 22.17px",
	"h6":         "display: block; font-size: 10.72px; font-weight: bold; margin-top: 24.97px; margin-bottom: 24.97px",
	"ul":         "display: block; margin-top: 16px; margin-bottom: 16px; padding-left: 40px; list-style-type: disc",
	"ol":         "display: block; margin-top: 16px; margin-bottom: 16px; padding-left: 40px; list-style-type: decimal",
	"li":         "display: list-item",
	"dl":         "display: block; margin-top: 16px; margin-bottom: 16px",
	"dt":         "display: block",
	"dd":         "display: block; margin-left: 40px",
	"a":          "color: rgb(0, 0, 238); text-decoration: underline",
	"strong":     "font-weight: bold",
	"b":          "font-weight: bold",
	"em":         "font-style: italic",
	"i":          "font-style: italic",
	"code":       "font-family: monospace",
	"kbd":        "font-family: monospace",
	"tt":         "font-family: monospace",
	"u":          "text-decoration: underline",
	"s":          "text-decoration: line-through",
	"img":        "display: inline-block",
	"input":      "display: inline-block",
	"button":     "display: inline-block",
	"select":     "display: inline-block",
	"textarea":   "display: inline-block",
	"table":      "display: table; border-spacing: 2px",
	"caption":    "display: table-caption; text-align: center",
	"thead":      "display: table-header-group; vertical-align: middle",
	"tbody":      "display: table-row-group; vertical-align: middle",
	"tfoot":      "display: table-footer-group; vertical-align: middle",
	"tr":         "display: table-row",
	"td":         "display: table-cell; padding: 1px; vertical-align: middle",
	"th":         "display: table-cell; padding: 1px; vertical-align: middle; font-weight: bold; text-align: center",
	"col":        "display: table-column",
	"colgroup":   "display: table-column-group",
}

var uaParsed map[string][]Declaration

func init() {
	uaParsed = make(map[string][]Declaration, len(uaDefaults))
	for tag, text := range uaDefaults {
		uaParsed[tag] = splitDeclarations(text)
	}
}

// splitDeclarations is a minimal parser for the built-in defaults, which are
// known to be well-formed.
func splitDeclarations(text string) []Declaration {
	var decls []Declaration
	for _, part := range strings.Split(text, ";") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			continue
		}
		decls = append(decls, Declaration{
			Property: strings.TrimSpace(kv[0]),
			Value:    strings.TrimSpace(kv[1]),
		})
	}
	return decls
}

// UserAgentDefaults returns the built-in declarations for a tag, or nil.
func UserAgentDefaults(tag string) []Declaration {
	return uaParsed[strings.ToLower(tag)]
}

// UserAgentSheet returns the built-in defaults as a style sheet of origin
// UserAgent, with one type selector per rule. Rules are ordered by tag name.
func UserAgentSheet() *StyleSheet {
	tags := make([]string, 0, len(uaParsed))
	for tag := range uaParsed {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	sheet := &StyleSheet{Origin: UserAgent}
	for i, tag := range tags {
		sheet.Rules = append(sheet.Rules, NewRule([]string{tag}, uaParsed[tag], UserAgent, i))
	}
	return sheet
}
