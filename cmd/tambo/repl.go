package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/dom/styledtree/xpathadapter"
	"github.com/npillmayer/tambo/engine/frame/framedebug"
	"github.com/npillmayer/tambo/engine/pipeline"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	engine *pipeline.Engine
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

const (
	QUIT int = iota
	HELP
	DUMP
	BOXES
	LIST
	HIT
	SCROLL
	XPATH
	STYLE
	PROPS
	RESIZE
	DOT
)

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

var commands = map[string]struct {
	code  int
	nargs int // minimum number of arguments
	usage string
}{
	"quit":   {QUIT, 0, "quit"},
	"help":   {HELP, 0, "help"},
	"dump":   {DUMP, 0, "dump             print the styled tree"},
	"boxes":  {BOXES, 0, "boxes            print the box tree"},
	"list":   {LIST, 0, "list             print the display list"},
	"hit":    {HIT, 2, "hit x y          find the box at a viewport position (px)"},
	"scroll": {SCROLL, 1, "scroll dy        scroll the viewport vertically (px)"},
	"xpath":  {XPATH, 1, "xpath expr       evaluate an XPath expression on the styled tree"},
	"style":  {STYLE, 1, "style expr       show computed styles of nodes selected by XPath"},
	"props":  {PROPS, 0, "props prefix     list supported CSS properties"},
	"resize": {RESIZE, 2, "resize w h       change the viewport size (px)"},
	"dot":    {DOT, 1, "dot file         write the box tree in GraphViz format"},
}

// parseCommand splits a line into a command word and its arguments. XPath
// expressions may contain blanks and are kept in one piece.
func parseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	c, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return &Command{code: HELP}, nil
	}
	cmd := &Command{code: c.code, args: fields[1:]}
	if c.code == XPATH || c.code == STYLE {
		if rest := strings.TrimSpace(line[len(fields[0]):]); rest != "" {
			cmd.args = []string{rest}
		}
	}
	if len(cmd.args) < c.nargs {
		return nil, core.Error(core.EINVALID, "usage: %s", c.usage)
	}
	return cmd, nil
}

// pixelArgs converts command arguments to dimensions in px.
func pixelArgs(args []string) ([]dimen.Dimen, error) {
	d := make([]dimen.Dimen, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(strings.TrimSuffix(a, "px"))
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "not a pixel value: %q", a)
		}
		d[i] = dimen.Dimen(n) * dimen.PX
	}
	return d, nil
}

func (intp *Intp) execute(cmd *Command) (error, bool) {
	snap := intp.engine.Snapshot()
	if snap == nil && cmd.code != QUIT && cmd.code != HELP && cmd.code != PROPS {
		return errors.New("no layout available"), false
	}
	switch cmd.code {
	case QUIT:
		return nil, true
	case HELP:
		help()
	case DUMP:
		return framedebug.DumpStyled(os.Stdout, snap.Styled), false
	case BOXES:
		return framedebug.Dump(os.Stdout, snap.Root), false
	case LIST:
		return framedebug.DumpDisplayList(os.Stdout, snap.List), false
	case HIT:
		p, err := pixelArgs(cmd.args[:2])
		if err != nil {
			return err, false
		}
		box, err := intp.engine.HitTest(p[0], p[1])
		if err != nil {
			return err, false
		}
		if box == nil {
			pterm.Info.Println("no box at this position")
			return nil, false
		}
		pterm.Println(box.DebugString())
	case SCROLL:
		d, err := pixelArgs(cmd.args[:1])
		if err != nil {
			return err, false
		}
		snap, err = intp.engine.ScrollBy(d[0])
		if err != nil {
			return err, false
		}
		pterm.Info.Printfln("scroll position is now %s", snap.Scroll)
	case XPATH:
		return intp.xpath(snap.Styled, cmd.args[0]), false
	case STYLE:
		return intp.styles(snap.Styled, cmd.args[0]), false
	case PROPS:
		prefix := ""
		if len(cmd.args) > 0 {
			prefix = cmd.args[0]
		}
		for _, name := range style.PropertiesWithPrefix(prefix) {
			if p, ok := style.Lookup(name); ok {
				pterm.Printfln("%-28s initial %s", name, p.Initial)
			} else {
				pterm.Printfln("%-28s (shorthand)", name)
			}
		}
	case RESIZE:
		d, err := pixelArgs(cmd.args[:2])
		if err != nil {
			return err, false
		}
		if _, err = intp.engine.Resize(d[0], d[1]); err != nil {
			return err, false
		}
		pterm.Info.Printfln("viewport is now %s × %s", d[0], d[1])
	case DOT:
		f, err := os.Create(cmd.args[0])
		if err != nil {
			return err, false
		}
		defer f.Close()
		if err = framedebug.ToGraphViz(snap.Root, f); err != nil {
			return err, false
		}
		pterm.Info.Printfln("box tree written to %s", cmd.args[0])
	}
	return nil, false
}

func (intp *Intp) xpath(root *styledtree.StyNode, expr string) error {
	nodes, err := xpathadapter.Select(root, expr)
	if err != nil {
		// not a node-set, try a scalar expression
		v, everr := xpathadapter.Evaluate(root, expr)
		if everr != nil {
			return err
		}
		pterm.Println(fmt.Sprintf("%v", v))
		return nil
	}
	for _, n := range nodes {
		pterm.Printfln("%s  %q", n, abbrev(styledtree.TextOf(n), 40))
	}
	pterm.Info.Printfln("%d node(s)", len(nodes))
	return nil
}

func (intp *Intp) styles(root *styledtree.StyNode, expr string) error {
	nodes, err := xpathadapter.Select(root, expr)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Node", "display", "position", "font-size", "color", "background"}}
	for _, n := range nodes {
		cs := n.Styles()
		if cs == nil {
			continue
		}
		data = append(data, []string{
			n.String(),
			cs.Display.String(),
			fmt.Sprintf("%v", cs.Position),
			cs.FontSize.String(),
			fmt.Sprintf("%v", cs.Color),
			fmt.Sprintf("%v", cs.BackgroundColor),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func abbrev(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func help() {
	pterm.Println("Commands:")
	for _, name := range []string{"dump", "boxes", "list", "hit", "scroll", "xpath", "style",
		"props", "resize", "dot", "help", "quit"} {
		pterm.Println("  " + commands[name].usage)
	}
}
