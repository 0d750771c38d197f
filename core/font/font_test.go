package font

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

func TestFallbackFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.font")
	defer teardown()
	//
	f := FallbackFont()
	require.NotNil(t, f)
	assert.Equal(t, "Go Sans", f.Fontname)
	tc, err := f.PrepareCase(16)
	require.NoError(t, err)
	assert.Equal(t, 16.0, tc.Size())
	assert.Equal(t, 2048, tc.UnitsPerEm())
}

func TestRegistryResolveFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.font")
	defer teardown()
	//
	fr := NewRegistry()
	fr.find = func(string) (string, error) { return "", errors.New("no system fonts in test") }
	tc, err := fr.Resolve([]string{"Nonexisting Sans", "sans-serif"}, xfont.StyleNormal, xfont.WeightNormal, 12)
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NotNil(t, tc)
	assert.Equal(t, 12.0, tc.Size())
	tc2, _ := fr.TypeCase("nothing", 12)
	assert.Same(t, tc, tc2, "expected fallback type case to be cached")
}

func TestRegistryStoredFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.font")
	defer teardown()
	//
	fr := NewRegistry()
	f, err := ParseOpenTypeFont(FallbackFont().Binary)
	require.NoError(t, err)
	f.Fontname = "My Sans"
	fr.StoreFont(f)
	tc, err := fr.Resolve([]string{`"My Sans"`}, xfont.StyleNormal, xfont.WeightNormal, 10)
	assert.NoError(t, err)
	assert.Equal(t, f, tc.ScalableFontParent())
}

func TestWeightFromCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.font")
	defer teardown()
	//
	assert.Equal(t, xfont.WeightNormal, WeightFromCSS(400))
	assert.Equal(t, xfont.WeightBold, WeightFromCSS(700))
	assert.Equal(t, xfont.WeightThin, WeightFromCSS(10))
	assert.Equal(t, xfont.WeightBlack, WeightFromCSS(1200))
}

func TestNormalizeFontname(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.font")
	defer teardown()
	//
	assert.Equal(t, "gill_sans_mt", NormalizeFontname("Gill Sans MT.ttf"))
	assert.Equal(t, "clarendon-12.00", NormalizeTypeCaseName("Clarendon", 12))
}
