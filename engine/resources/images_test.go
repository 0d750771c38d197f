package resources

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestResolveImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.resources")
	defer teardown()
	//
	fsys := fstest.MapFS{"img/cat.png": {Data: pngBytes(t, 40, 30)}}
	info, err := ResolveImage(fsys, "/img/cat.png").Image(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, info.Width)
	assert.Equal(t, 30, info.Height)
	assert.Equal(t, "png", info.Format)
	assert.True(t, info.HasSize())
	//
	_, err = ResolveImage(fsys, "dog.png").Image(context.Background())
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = ResolveImage(fsys, "http://example.com/cat.png").Image(context.Background())
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestLoaderPending(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.resources")
	defer teardown()
	//
	fsys := fstest.MapFS{"cat.png": {Data: pngBytes(t, 12, 8)}}
	loader := NewLoader(fsys)
	ready := make(chan string, 2)
	loader.OnReady(func(src string) { ready <- src })
	info := loader.Lookup("cat.png")
	assert.True(t, info.Pending)
	assert.False(t, info.HasSize())
	select {
	case src := <-ready:
		assert.Equal(t, "cat.png", src)
	case <-time.After(5 * time.Second):
		t.Fatal("image loader did not call back")
	}
	info = loader.Lookup("cat.png")
	assert.False(t, info.Pending)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 8, info.Height)
}

func TestLoaderMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.resources")
	defer teardown()
	//
	loader := NewLoader(fstest.MapFS{})
	info, err := loader.Await(context.Background(), "nope.gif")
	assert.Error(t, err)
	assert.Equal(t, core.EMISSING, core.Code(info.Err))
	assert.Zero(t, info.Width)
	assert.True(t, core.IsRecoverable(err))
}

func TestStatic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.resources")
	defer teardown()
	//
	s := Static{"a.png": {Width: 3, Height: 4}}
	assert.Equal(t, "a.png", s.Lookup("a.png").Handle)
	assert.Equal(t, 3, s.Lookup("a.png").Width)
	assert.Equal(t, core.EMISSING, core.Code(s.Lookup("b.png").Err))
}
