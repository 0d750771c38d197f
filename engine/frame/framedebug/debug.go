package framedebug

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/tambo/engine/display"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/frame"
)

// Dump writes the box tree: box type, display and the margin, border,
// padding and content rectangles of every box.
func Dump(w io.Writer, root *frame.Box) error {
	if root == nil {
		_, err := io.WriteString(w, "<empty box tree>\n")
		return err
	}
	var b strings.Builder
	dumpBox(&b, root, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func dumpBox(b *strings.Builder, box *frame.Box, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s %s [%s]\n", indent, box.Display().Symbol(), box, box.Display())
	fmt.Fprintf(b, "%s    margin=%v border=%v\n", indent, box.Margin, box.Border)
	fmt.Fprintf(b, "%s    padding=%v content=%v\n", indent, box.Padding, box.Content)
	for _, run := range box.Runs {
		fmt.Fprintf(b, "%s    run %q %v baseline=%v\n", indent, run.Text, run.Rect, run.Baseline)
	}
	if s := box.Scroll; s != nil {
		fmt.Fprintf(b, "%s    scroll=(%v,%v) max=(%v,%v)\n", indent, s.X, s.Y, s.MaxX, s.MaxY)
	}
	for _, ch := range box.Children() {
		dumpBox(b, ch, depth+1)
	}
}

// DumpStyled writes the styled tree with a selection of computed values.
func DumpStyled(w io.Writer, root *styledtree.StyNode) error {
	if root == nil {
		_, err := io.WriteString(w, "<empty styled tree>\n")
		return err
	}
	var b strings.Builder
	root.Walk(func(sn *styledtree.StyNode) bool {
		depth := 0
		for p := sn.Parent(); p != nil; p = p.Parent() {
			depth++
		}
		indent := strings.Repeat("  ", depth)
		cs := sn.Styles()
		if sn.IsText() || cs == nil {
			fmt.Fprintf(&b, "%s%s\n", indent, sn)
			return true
		}
		fmt.Fprintf(&b, "%s%s display=%s font-size=%v color=%s background=%s\n", indent, sn,
			cs.Display, cs.FontSize, colorString(cs.Color), colorString(cs.BackgroundColor))
		return true
	})
	_, err := io.WriteString(w, b.String())
	return err
}

// DumpDisplayList writes a display list, one command per line, indented
// by clip depth.
func DumpDisplayList(w io.Writer, list display.List) error {
	if _, err := fmt.Fprintf(w, "display list: %d commands\n", len(list)); err != nil {
		return err
	}
	_, err := io.WriteString(w, list.String())
	return err
}

func colorString(c color.RGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParams struct {
	Fontname string
	BoxTmpl  *template.Template
	EdgeTmpl *template.Template
	names    map[*frame.Box]string
	cnt      int
}

// Helper structs
type gbox struct {
	B    *frame.Box
	Name string
}

type gedge struct {
	N1, N2 string
}

// maxGraphNodes guards against excessive graphs.
const maxGraphNodes = 5000

// ToGraphViz creates a graphical representation of a box tree.
// It produces a DOT file format suitable as input for Graphviz, given a Writer.
func ToGraphViz(root *frame.Box, w io.Writer) error {
	header, err := template.New("boxTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	params := &graphParams{Fontname: "Helvetica", names: make(map[*frame.Box]string)}
	funcs := template.FuncMap{
		"label":  label,
		"istext": func(b *frame.Box) bool { return b.Type == frame.AnonymousInline },
		"fill":   fill,
	}
	params.BoxTmpl = template.Must(template.New("box").Funcs(funcs).Parse(boxTmpl))
	params.EdgeTmpl = template.Must(template.New("boxedge").Parse(edgeTmpl))
	if err = header.Execute(w, params); err != nil {
		return err
	}
	if root != nil {
		if err = boxes(root, w, params); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "}\n")
	return err
}

func boxes(box *frame.Box, w io.Writer, params *graphParams) error {
	params.cnt++
	if params.cnt > maxGraphNodes {
		return nil
	}
	if err := params.BoxTmpl.Execute(w, gbox{box, nodeName(box, params)}); err != nil {
		return err
	}
	for _, ch := range box.Children() {
		if err := boxes(ch, w, params); err != nil {
			return err
		}
		e := gedge{nodeName(box, params), nodeName(ch, params)}
		if err := params.EdgeTmpl.Execute(w, e); err != nil {
			return err
		}
	}
	return nil
}

func nodeName(box *frame.Box, params *graphParams) string {
	name := params.names[box]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(params.names)+1)
		params.names[box] = name
	}
	return name
}

func label(box *frame.Box) string {
	var s string
	if box.Type == frame.AnonymousInline {
		txt := []rune(box.Text)
		if len(txt) > 10 {
			txt = append(txt[:10], '…')
		}
		s = "T \\\"" + string(txt) + "\\\""
		s = strings.ReplaceAll(s, "\n", `\\n`)
		s = strings.ReplaceAll(s, "\t", `\\t`)
		s = strings.ReplaceAll(s, " ", "␣")
	} else {
		s = strings.ReplaceAll(box.String(), "\"", "\\\"")
		s = fmt.Sprintf("%s %s\\n%v×%v", box.Display().Symbol(), s, box.Border.Width(), box.Border.Height())
	}
	return "\"" + s + "\""
}

func fill(box *frame.Box) string {
	if box.Style != nil && box.Style.BackgroundColor.A > 0 {
		c := box.Style.BackgroundColor
		return fmt.Sprintf("\"#%02x%02x%02x\"", c.R, c.G, c.B)
	}
	if box.Type.IsAnonymous() {
		return "grey90"
	}
	return "lightblue3"
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const boxTmpl = `{{ if istext .B }}
{{ .Name }}	[ label={{ label .B }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .B }} shape=box style=filled fillcolor={{ fill .B }} ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`
