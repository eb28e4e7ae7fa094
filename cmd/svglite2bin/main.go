// Command svglite2bin renders an SVG file into a raw pixel buffer.
//
// Usage:
//
//	svglite2bin [flags] <width> <height> <input.svg> <output.raw> [fontdir...]
//
// The output holds stride×height bytes in the chosen pixel format with no
// header (BGRA8888 unless configured otherwise). Settings may come from a
// TOML file given with -config; flags override the file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/gogpu/vglite"
	"github.com/gogpu/vglite/fontdb"
	"github.com/gogpu/vglite/internal/config"
	"github.com/gogpu/vglite/svg"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

var errUsage = errors.New("usage")

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("svglite2bin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: svglite2bin [flags] <width> <height> <input SVG> <output raw> [fonts dir]...\n")
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "TOML file with render settings")
		pngPath    = fs.String("png", "", "also write a PNG preview to this file")
		dumpDir    = fs.String("dump-dir", "", "also write a numbered raw dump into this directory")
		format     = fs.String("format", "", "pixel format, e.g. BGRA8888 or RGBA8888")
		background = fs.String("background", "", "clear color as #rrggbbaa")
		verbose    = fs.Bool("v", false, "log debug messages")
		fillRule   vglite.FillRule
		blendMode  vglite.BlendMode
		quality    vglite.Quality
	)
	fs.TextVar(&fillRule, "fill-rule", vglite.FillNonZero, "default fill rule: nonzero or evenodd")
	fs.TextVar(&blendMode, "blend", vglite.BlendNone, "blend mode: none, src-over, dst-over, src-in, dst-in, multiply, screen, additive, subtract")
	fs.TextVar(&quality, "quality", vglite.QualityHigh, "anti-aliasing quality: low, medium or high")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	vglite.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer vglite.SetLogger(nil)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return fail(stderr, err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "png":
			cfg.PNG = *pngPath
		case "dump-dir":
			cfg.DumpDir = *dumpDir
		case "format":
			cfg.Format = *format
		case "background":
			cfg.Background = *background
		case "fill-rule":
			cfg.FillRule = fillRule
		case "blend":
			cfg.Blend = blendMode
		case "quality":
			cfg.Quality = quality
		}
	})

	pos := fs.Args()
	if len(pos) < 4 {
		fs.Usage()
		return 2
	}
	w, errW := strconv.Atoi(pos[0])
	h, errH := strconv.Atoi(pos[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		fmt.Fprintln(stderr, "width and height must be greater than 0")
		return 2
	}
	cfg.Width, cfg.Height = w, h
	cfg.FontDirs = append(cfg.FontDirs, pos[4:]...)

	if err := render(cfg, pos[2], pos[3], stdout); err != nil {
		return fail(stderr, err)
	}
	return 0
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "svglite2bin: %v (%v)\n", err, vglite.Code(err))
	return 1
}

func render(cfg config.Config, input, output string, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, _ := cfg.PixelFormat()
	bg, _ := cfg.BackgroundColor()

	var fonts *fontdb.DB
	if len(cfg.FontDirs) > 0 {
		fonts = fontdb.New()
		for _, dir := range cfg.FontDirs {
			n, err := fonts.LoadFontsDir(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "load %d fonts from %s\n", n, dir)
		}
	}

	doc, err := svg.ParseFile(input)
	if err != nil {
		return err
	}

	buf, err := vglite.NewBuffer(cfg.Width, cfg.Height, format)
	if err != nil {
		return err
	}
	defer buf.Free()

	opts := []svg.RenderOption{
		svg.WithFillRule(cfg.FillRule),
		svg.WithBlend(cfg.Blend),
		svg.WithQuality(cfg.Quality),
		svg.WithBackground(bg),
	}
	if fonts != nil {
		opts = append(opts, svg.WithFontDB(fonts))
	}
	if err := svg.Render(buf, doc, opts...); err != nil {
		return err
	}

	if err := vglite.WriteRawFile(output, buf); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "written %d bytes to %s done\n", buf.Stride()*buf.Height, output)

	if cfg.DumpDir != "" {
		d := vglite.RawDumper{Dir: cfg.DumpDir}
		path, err := d.Dump(buf)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "dumped %s\n", path)
	}
	if cfg.PNG != "" {
		if err := writePNG(cfg.PNG, buf); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, buf *vglite.Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("png preview: %w: %w", vglite.ErrGenericIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("png preview: %w: %w", vglite.ErrGenericIO, cerr)
		}
	}()
	if err := png.Encode(f, buf.ToImage()); err != nil {
		return fmt.Errorf("png preview: %w: %w", vglite.ErrGenericIO, err)
	}
	return nil
}
