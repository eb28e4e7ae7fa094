package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vglite"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	f, err := c.PixelFormat()
	require.NoError(t, err)
	assert.Equal(t, vglite.FormatBGRA8888, f)
	assert.Equal(t, vglite.BlendNone, c.Blend)
	assert.Equal(t, vglite.QualityHigh, c.Quality)
	bg, err := c.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, vglite.Transparent, bg)
}

func TestDecode(t *testing.T) {
	c, err := Decode(strings.NewReader(`
width = 320
height = 240
format = "rgba8888"
fill_rule = "evenodd"
blend = "src-over"
quality = "medium"
background = "#ffffff"
font_dirs = ["/usr/share/fonts", "fonts"]
png = "preview.png"
`))
	require.NoError(t, err)
	assert.Equal(t, 320, c.Width)
	assert.Equal(t, 240, c.Height)
	f, err := c.PixelFormat()
	require.NoError(t, err)
	assert.Equal(t, vglite.FormatRGBA8888, f)
	assert.Equal(t, vglite.FillEvenOdd, c.FillRule)
	assert.Equal(t, vglite.BlendSrcOver, c.Blend)
	assert.Equal(t, vglite.QualityMedium, c.Quality)
	assert.Equal(t, []string{"/usr/share/fonts", "fonts"}, c.FontDirs)
	assert.Equal(t, "preview.png", c.PNG)
	bg, err := c.BackgroundColor()
	require.NoError(t, err)
	assert.Equal(t, vglite.White, bg)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	c, err := Decode(strings.NewReader(`width = 10`))
	require.NoError(t, err)
	assert.Equal(t, 10, c.Width)
	assert.Equal(t, Default().Format, c.Format)
	assert.Equal(t, Default().Blend, c.Blend)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", `colour = "red"`},
		{"bad fill rule", `fill_rule = "winding"`},
		{"bad blend", `blend = "overlay"`},
		{"bad quality", `quality = "ultra"`},
		{"bad format", `format = "RGB565"`},
		{"bad background", `background = "white"`},
		{"negative size", `width = -1`},
		{"syntax", `width = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.NotEqual(t, vglite.CodeSuccess, vglite.Code(err))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.toml")
	require.NoError(t, os.WriteFile(path, []byte("quality = \"low\"\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, vglite.QualityLow, c.Quality)

	_, err = Load(path + ".missing")
	assert.ErrorIs(t, err, vglite.ErrGenericIO)
}

func TestMarshalRoundTrip(t *testing.T) {
	c := Default()
	c.Width, c.Height = 64, 48
	c.Blend = vglite.BlendMultiply
	c.FontDirs = []string{"fonts"}
	data, err := c.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "multiply")

	back, err := Decode(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, c, back)
}
