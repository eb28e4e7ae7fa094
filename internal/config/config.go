// Package config loads render settings for the svglite2bin command from
// an optional TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/vglite"
)

// Config holds render settings. Zero Width or Height means the value must
// come from the command line.
type Config struct {
	Width      int              `toml:"width"`
	Height     int              `toml:"height"`
	Format     string           `toml:"format"`
	FillRule   vglite.FillRule  `toml:"fill_rule"`
	Blend      vglite.BlendMode `toml:"blend"`
	Quality    vglite.Quality   `toml:"quality"`
	Background string           `toml:"background"`
	FontDirs   []string         `toml:"font_dirs"`
	PNG        string           `toml:"png"`
	DumpDir    string           `toml:"dump_dir"`
}

// Default returns the settings used when no file is given: BGRA8888,
// nonzero fill, no blending, high quality, transparent background.
func Default() Config {
	return Config{
		Format:     vglite.FormatBGRA8888.String(),
		FillRule:   vglite.FillNonZero,
		Blend:      vglite.BlendNone,
		Quality:    vglite.QualityHigh,
		Background: "#00000000",
	}
}

// Load reads the TOML file at path on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w: %w", vglite.ErrGenericIO, err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Decode reads TOML settings on top of Default. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", vglite.ErrInvalidArgument, strict.String())
		}
		return Config{}, fmt.Errorf("%w: %w", vglite.ErrInvalidArgument, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field that can be checked without the command
// line.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", vglite.ErrInvalidArgument, c.Width, c.Height)
	}
	if _, err := c.PixelFormat(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// PixelFormat resolves the format name.
func (c Config) PixelFormat() (vglite.Format, error) {
	f, ok := vglite.ParseFormat(c.Format)
	if !ok {
		return 0, fmt.Errorf("%w: unknown format %q", vglite.ErrUnsupportedFormat, c.Format)
	}
	return f, nil
}

// BackgroundColor parses the background as #rgb, #rgba, #rrggbb or
// #rrggbbaa.
func (c Config) BackgroundColor() (vglite.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(c.Background), "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return vglite.RGBA{}, fmt.Errorf("%w: bad background %q", vglite.ErrInvalidArgument, c.Background)
	}
	for _, r := range strings.ToLower(s) {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return vglite.RGBA{}, fmt.Errorf("%w: bad background %q", vglite.ErrInvalidArgument, c.Background)
		}
	}
	return vglite.Hex(s), nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
