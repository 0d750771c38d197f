/*
Command tambo lays out an HTML document and lets users inspect the result.

Usage:

	tambo -html page.html [-css extra.css]… [-width 800] [-height 600] [-i]

Without -i, tambo prints the box tree and the display list and exits. With
-i, it enters an interactive mode; type "help" for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/font"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/frame/framedebug"
	"github.com/npillmayer/tambo/engine/frame/layout"
	"github.com/npillmayer/tambo/engine/pipeline"
	"github.com/npillmayer/tambo/engine/resources"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/engine/text/harfbuzz"
	"github.com/npillmayer/tambo/engine/text/monospace"
	"github.com/npillmayer/tambo/engine/text/opentype"
	"github.com/npillmayer/tambo/input/html"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
)

// tracer traces with key 'tambo.engine'
func tracer() tracing.Trace {
	return tracing.Select("tambo.engine")
}

// cssFiles collects repeated -css flags.
type cssFiles []string

func (c *cssFiles) String() string { return strings.Join(*c, ",") }

func (c *cssFiles) Set(v string) error {
	*c = append(*c, v)
	return nil
}

func main() {
	initDisplay()

	// command line flags
	var sheets cssFiles
	htmlfile := flag.String("html", "", "HTML document to lay out")
	flag.Var(&sheets, "css", "Additional author style sheet (repeatable)")
	width := flag.Int("width", 800, "Viewport width in px")
	height := flag.Int("height", 600, "Viewport height in px")
	nocss := flag.Bool("nocss", false, "Disable author style sheets and inline styles")
	nojs := flag.Bool("nojs", false, "Disable scripting")
	debug := flag.Bool("debug", false, "Dump trees and display list after every pass")
	fontkind := flag.String("font", "mono", "Text measurement [mono|opentype|harfbuzz]")
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	interactive := flag.Bool("i", false, "Interactive mode")
	flag.Parse()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.tambo.engine":  *tlevel,
		"trace.tambo.layout":  *tlevel,
		"trace.tambo.display": *tlevel,
		"trace.tambo.cascade": *tlevel,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to tambo") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)

	if *htmlfile == "" {
		pterm.Error.Println("no HTML document given, use -html")
		flag.Usage()
		os.Exit(2)
	}
	settings := config.FromSource(config.MapSource{
		"css-enabled":     !*nocss,
		"js-enabled":      !*nojs,
		"debug":           *debug,
		"viewport.width":  *width,
		"viewport.height": *height,
	})
	settings.DebugOut = os.Stdout
	engine, loader, err := setup(settings, *htmlfile, *fontkind, sheets)
	if err != nil {
		core.UserError(err)
		os.Exit(3)
	}
	doc, err := loadDocument(*htmlfile)
	if err != nil {
		core.UserError(err)
		os.Exit(4)
	}
	loader.OnReady(func(src string) {
		tracer().Infof("image %q ready, re-running layout", src)
		if _, err := engine.Refresh(); err != nil {
			tracer().Errorf(err.Error())
		}
	})
	snap, err := engine.Run(doc)
	if err != nil {
		core.UserError(err)
		os.Exit(5)
	}
	if !*interactive {
		framedebug.Dump(os.Stdout, snap.Root)
		framedebug.DumpDisplayList(os.Stdout, snap.List)
		return
	}
	//
	// set up REPL
	repl, err := readline.New("tambo > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(6)
	}
	intp := &Intp{repl: repl, engine: engine}
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                              // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// setup creates the engine with a text measurer, an image loader rooted at
// the directory of the HTML document and additional style sheets.
func setup(settings config.Settings, htmlfile, fontkind string, sheets []string) (
	*pipeline.Engine, *resources.Loader, error) {
	//
	var measurer text.Measurer
	switch fontkind {
	case "mono", "":
		measurer = monospace.Measurer(0, nil)
	case "opentype":
		measurer = opentype.Measurer(font.NewRegistry())
	case "harfbuzz":
		measurer = harfbuzz.Measurer(font.NewRegistry(), language.English)
	default:
		return nil, nil, core.Error(core.EINVALID, "unknown text measurement %q", fontkind)
	}
	loader := resources.NewLoader(os.DirFS(filepath.Dir(htmlfile)))
	engine := pipeline.New(settings, &layout.Env{Measurer: measurer, Images: loader})
	for _, name := range sheets {
		css, err := os.ReadFile(name)
		if err != nil {
			return nil, nil, core.WrapError(err, core.EMISSING, "cannot read style sheet %s", name)
		}
		engine.AddStyleSheet(string(css))
	}
	return engine, loader, nil
}

func loadDocument(htmlfile string) (*html.Document, error) {
	f, err := os.Open(htmlfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open %s", htmlfile)
	}
	defer f.Close()
	return html.Parse(f)
}
