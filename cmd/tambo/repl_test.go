package main

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/pipeline"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.engine")
	defer teardown()
	//
	cmd, err := parseCommand("hit 10 20")
	require.NoError(t, err)
	assert.Equal(t, HIT, cmd.code)
	assert.Equal(t, []string{"10", "20"}, cmd.args)
	cmd, err = parseCommand("xpath  //div[@id = 'a']")
	require.NoError(t, err)
	assert.Equal(t, []string{"//div[@id = 'a']"}, cmd.args)
	_, err = parseCommand("resize 100")
	assert.Error(t, err)
	cmd, err = parseCommand("frobnicate")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.code)
}

func TestPixelArgs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.engine")
	defer teardown()
	//
	d, err := pixelArgs([]string{"10", "-5px"})
	require.NoError(t, err)
	assert.Equal(t, []dimen.Dimen{10 * dimen.PX, -5 * dimen.PX}, d)
	_, err = pixelArgs([]string{"ten"})
	assert.Error(t, err)
	assert.Equal(t, "abc…", abbrev("abcdefg", 4))
}

func TestExecute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.engine")
	defer teardown()
	//
	engine := pipeline.New(config.Default(), nil)
	intp := &Intp{engine: engine}
	err, _ := intp.execute(&Command{code: BOXES})
	assert.Error(t, err, "no layout before the first run")
	doc, err := html.ParseString(`<html><body><div style="height:1000px">x</div></body></html>`)
	require.NoError(t, err)
	_, err = engine.Run(doc)
	require.NoError(t, err)
	for _, line := range []string{"boxes", "list", "dump", "hit 10 10", "props margin",
		"xpath //div", "style //div", "resize 400 300"} {
		cmd, err := parseCommand(line)
		require.NoError(t, err)
		err, quit := intp.execute(cmd)
		assert.NoError(t, err, line)
		assert.False(t, quit)
	}
	cmd, _ := parseCommand("scroll 100")
	err, _ = intp.execute(cmd)
	require.NoError(t, err)
	assert.Equal(t, 100*dimen.PX, engine.Snapshot().Scroll.Y)
	_, quit := intp.execute(&Command{code: QUIT})
	assert.True(t, quit)
}
