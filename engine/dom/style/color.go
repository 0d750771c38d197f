package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Transparent is the fully transparent color.
var Transparent = color.RGBA{}

// ParseColor parses a CSS color value: named colors, `transparent`,
// `#rgb`, `#rgba`, `#rrggbb`, `#rrggbbaa`, `rgb()` and `rgba()`.
// Keyword `currentcolor` is resolved to current.
func ParseColor(s string, current color.RGBA) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "transparent":
		return Transparent, nil
	case "currentcolor":
		return current, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

func parseHexColor(h string) (color.RGBA, error) {
	switch len(h) {
	case 3, 4:
		var b strings.Builder
		for _, r := range h {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		h = b.String()
	case 6, 8:
	default:
		return color.RGBA{}, fmt.Errorf("malformed hex color #%s", h)
	}
	if len(h) == 6 {
		h += "ff"
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("malformed hex color #%s", h)
	}
	return premultiply(uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)), nil
}

func parseRGBFunc(s string) (color.RGBA, error) {
	lp, rp := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if lp < 0 || rp < lp {
		return color.RGBA{}, fmt.Errorf("malformed color %q", s)
	}
	args := strings.FieldsFunc(s[lp+1:rp], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.RGBA{}, fmt.Errorf("malformed color %q", s)
	}
	var ch [4]uint8
	ch[3] = 255
	for i, a := range args {
		pcnt := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("malformed color %q", s)
		}
		switch {
		case pcnt:
			v = v * 255 / 100
		case i == 3:
			v *= 255 // alpha as fraction
		}
		ch[i] = clampByte(v)
	}
	return premultiply(ch[0], ch[1], ch[2], ch[3]), nil
}

// premultiply converts to the alpha-premultiplied representation of image/color.
func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 255 {
		return color.RGBA{r, g, b, a}
	}
	m := func(c uint8) uint8 { return uint8(uint16(c) * uint16(a) / 255) }
	return color.RGBA{m(r), m(g), m(b), a}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	} else if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
