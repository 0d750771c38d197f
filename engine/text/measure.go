package text

import (
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
)

// BreakingMeasurer implements Measurer on top of an Advancer, using UAX#14
// for break opportunities.
type BreakingMeasurer struct {
	adv     Advancer
	breaker *Breaker
}

// NewMeasurer creates a measurer for a font back-end.
func NewMeasurer(adv Advancer) *BreakingMeasurer {
	return &BreakingMeasurer{adv: adv, breaker: NewBreaker()}
}

// Metrics is part of interface Measurer.
func (m *BreakingMeasurer) Metrics(font FontSpec) (dimen.Dimen, dimen.Dimen) {
	return m.adv.Metrics(font)
}

// Measure is part of interface Measurer.
func (m *BreakingMeasurer) Measure(s string, font FontSpec, available dimen.Dimen) []Fragment {
	asc, desc := m.adv.Metrics(font)
	var frags []Fragment
	for _, seg := range m.breaker.Segments(s) {
		forced := strings.HasSuffix(seg, "\n")
		seg = strings.TrimSuffix(strings.TrimSuffix(seg, "\n"), "\r")
		frag := Fragment{Text: seg, Ascent: asc, Descent: desc, ForcedBreak: forced}
		if seg != "" {
			frag.Width = m.adv.Advance(seg, font)
			if ts := trailingSpace(seg); ts > 0 {
				frag.Trailing = frag.Width - m.adv.Advance(seg[:len(seg)-ts], font)
			}
		}
		if available > 0 && frag.Width-frag.Trailing > available {
			frags = append(frags, m.emergencySplit(frag, font, available)...)
			continue
		}
		frags = append(frags, frag)
	}
	return frags
}

// emergencySplit breaks an over-long fragment between grapheme clusters, so
// that every piece but the last fits into available, as far as possible.
func (m *BreakingMeasurer) emergencySplit(frag Fragment, font FontSpec, available dimen.Dimen) []Fragment {
	tracer().Debugf("emergency break for %q", frag.Text)
	var pieces []Fragment
	var cur strings.Builder
	var w dimen.Dimen
	for _, g := range Graphemes(frag.Text) {
		gw := m.adv.Advance(g, font)
		if cur.Len() > 0 && w+gw > available && strings.TrimSpace(g) != "" {
			pieces = append(pieces, Fragment{Text: cur.String(), Width: w, Ascent: frag.Ascent,
				Descent: frag.Descent})
			cur.Reset()
			w = 0
		}
		cur.WriteString(g)
		w += gw
	}
	last := Fragment{Text: cur.String(), Width: w, Ascent: frag.Ascent, Descent: frag.Descent,
		ForcedBreak: frag.ForcedBreak, Trailing: frag.Trailing}
	return append(pieces, last)
}

var _ Measurer = &BreakingMeasurer{}
