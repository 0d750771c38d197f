/*
Package config holds the settings of a layout engine.

Settings are read from a key/value source. Any configuration type offering
IsSet, GetString, GetBool and GetInt will do; the schuko test configuration
(testconfig.Conf) satisfies it and is what the command line tools use.

Recognized keys are

	css-enabled      bool, default true
	js-enabled       bool, default true (carried through, no scripting is done)
	debug            bool, default false
	viewport.width   int, CSS pixels, default 800
	viewport.height  int, CSS pixels, default 600
	image.width      int, CSS pixels, placeholder for pending images, default 0
	image.height     int, CSS pixels, placeholder for pending images, default 0

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core/dimen"
)

// tracer traces with key 'tambo.engine'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.engine")
}

// Source is a key/value configuration source.
type Source interface {
	IsSet(key string) bool
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int
}

// Settings controls a layout engine.
type Settings struct {
	CSSEnabled     bool
	JSEnabled      bool
	Debug          bool
	DebugOut       io.Writer   // target of debug dumps, if Debug is set
	ViewportWidth  dimen.Dimen // width of the initial containing block
	ViewportHeight dimen.Dimen
	Placeholder    dimen.Point // size of images still loading and without size hints
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		CSSEnabled:     true,
		JSEnabled:      true,
		ViewportWidth:  800 * dimen.PX,
		ViewportHeight: 600 * dimen.PX,
	}
}

// FromSource reads settings from a configuration source. Keys not set keep
// their defaults.
func FromSource(src Source) Settings {
	s := Default()
	if src == nil {
		return s
	}
	if src.IsSet("css-enabled") {
		s.CSSEnabled = src.GetBool("css-enabled")
	}
	if src.IsSet("js-enabled") {
		s.JSEnabled = src.GetBool("js-enabled")
	}
	if src.IsSet("debug") {
		s.Debug = src.GetBool("debug")
	}
	s.ViewportWidth = pixels(src, "viewport.width", s.ViewportWidth)
	s.ViewportHeight = pixels(src, "viewport.height", s.ViewportHeight)
	s.Placeholder.X = pixels(src, "image.width", 0)
	s.Placeholder.Y = pixels(src, "image.height", 0)
	tracer().Debugf("settings: css=%v, js=%v, viewport=%vx%v", s.CSSEnabled, s.JSEnabled,
		s.ViewportWidth, s.ViewportHeight)
	return s
}

// MapSource is a simple in-memory configuration source.
type MapSource map[string]interface{}

// IsSet is part of interface Source.
func (m MapSource) IsSet(key string) bool {
	_, ok := m[key]
	return ok
}

// GetString is part of interface Source.
func (m MapSource) GetString(key string) string {
	if v, ok := m[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// GetBool is part of interface Source.
func (m MapSource) GetBool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// GetInt is part of interface Source.
func (m MapSource) GetInt(key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func pixels(src Source, key string, dflt dimen.Dimen) dimen.Dimen {
	if !src.IsSet(key) {
		return dflt
	}
	n := src.GetInt(key)
	if n < 0 {
		tracer().Infof("config: %s must not be negative, is %d", key, n)
		return dflt
	}
	return dimen.Dimen(n) * dimen.PX
}
