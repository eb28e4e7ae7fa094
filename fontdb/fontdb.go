// Package fontdb is an in-memory font database for text rendering.
//
// A DB is filled with LoadFontData, LoadFontFile or LoadFontsDir and then
// queried by family, weight and style. Loading is guarded by a lock, and a
// DB that is no longer being loaded may be shared read-only by any number
// of concurrent renders.
package fontdb

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/vglite"
)

// Weight values follow CSS: 400 is regular, 700 is bold.
const (
	WeightThin       = 100
	WeightExtraLight = 200
	WeightLight      = 300
	WeightRegular    = 400
	WeightMedium     = 500
	WeightSemiBold   = 600
	WeightBold       = 700
	WeightExtraBold  = 800
	WeightBlack      = 900
)

// ErrNoFont is returned when font data holds no usable face.
var ErrNoFont = errors.New("fontdb: no font in data")

// Face is one loaded font face. Faces are immutable.
type Face struct {
	Family string
	Weight int
	Italic bool
	Source string // file path, empty for in-memory data

	outlines *sfnt.Font
	shaping  *font.Font
}

// Outlines returns the parsed font used for glyph outlines and metrics.
func (f *Face) Outlines() *sfnt.Font {
	return f.outlines
}

// Shaping returns the parsed font used for text shaping. A new
// font.Face must be created per shaping call with font.NewFace.
func (f *Face) Shaping() *font.Font {
	return f.shaping
}

// DB holds loaded faces.
type DB struct {
	mu    sync.RWMutex
	faces []*Face
}

// New returns an empty database.
func New() *DB {
	return &DB{}
}

// Len returns the number of loaded faces.
func (db *DB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.faces)
}

// Faces returns a snapshot of the loaded faces in load order.
func (db *DB) Faces() []*Face {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return append([]*Face(nil), db.faces...)
}

// LoadFontData parses a TrueType/OpenType font or font collection and adds
// every face it contains.
func (db *DB) LoadFontData(data []byte) error {
	_, err := db.load(data, "")
	return err
}

// LoadFontFile reads and loads the font at path.
func (db *DB) LoadFontFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load font %s: %w: %w", path, vglite.ErrGenericIO, err)
	}
	if _, err := db.load(data, path); err != nil {
		return fmt.Errorf("load font %s: %w", path, err)
	}
	return nil
}

// LoadFontsDir walks dir recursively and loads every .ttf, .otf, .ttc
// and .otc file. Files that fail to parse are skipped and logged. It
// returns the number of faces added.
func (db *DB) LoadFontsDir(dir string) (int, error) {
	added := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isFontFile(path) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			vglite.Logger().Debug("fontdb: skip unreadable font", "path", path, "err", err)
			return nil
		}
		n, err := db.load(data, path)
		if err != nil {
			vglite.Logger().Debug("fontdb: skip unparsable font", "path", path, "err", err)
			return nil
		}
		added += n
		return nil
	})
	if err != nil {
		return added, fmt.Errorf("load fonts dir %s: %w: %w", dir, vglite.ErrGenericIO, err)
	}
	vglite.Logger().Debug("fontdb: directory loaded", "dir", dir, "faces", added)
	return added, nil
}

func isFontFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

func (db *DB) load(data []byte, source string) (int, error) {
	coll, err := opentype.ParseCollection(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoFont, err)
	}
	n := coll.NumFonts()
	if n == 0 {
		return 0, ErrNoFont
	}

	shapers, err := parseShaping(data, n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoFont, err)
	}

	faces := make([]*Face, 0, n)
	var buf sfnt.Buffer
	for i := 0; i < n; i++ {
		f, err := coll.Font(i)
		if err != nil {
			return 0, fmt.Errorf("%w: face %d: %w", ErrNoFont, i, err)
		}
		family := nameOf(f, &buf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
		sub := nameOf(f, &buf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
		weight, italic := parseSubfamily(sub)
		faces = append(faces, &Face{
			Family:   family,
			Weight:   weight,
			Italic:   italic,
			Source:   source,
			outlines: f,
			shaping:  shapers[i],
		})
	}

	db.mu.Lock()
	db.faces = append(db.faces, faces...)
	db.mu.Unlock()
	return len(faces), nil
}

// parseShaping parses the same data for the shaper.
func parseShaping(data []byte, n int) ([]*font.Font, error) {
	r := bytes.NewReader(data)
	if n == 1 {
		face, err := font.ParseTTF(r)
		if err != nil {
			return nil, err
		}
		return []*font.Font{face.Font}, nil
	}
	faces, err := font.ParseTTC(r)
	if err != nil {
		return nil, err
	}
	if len(faces) != n {
		return nil, fmt.Errorf("collection has %d faces, shaper found %d", n, len(faces))
	}
	out := make([]*font.Font, n)
	for i, f := range faces {
		out[i] = f.Font
	}
	return out, nil
}

func nameOf(f *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		if s, err := f.Name(buf, id); err == nil && s != "" {
			return s
		}
	}
	return ""
}

var weightWords = []struct {
	word   string
	weight int
}{
	// Longer words first so "extrabold" wins over "bold".
	{"extralight", WeightExtraLight},
	{"ultralight", WeightExtraLight},
	{"extrabold", WeightExtraBold},
	{"ultrabold", WeightExtraBold},
	{"semibold", WeightSemiBold},
	{"demibold", WeightSemiBold},
	{"hairline", WeightThin},
	{"medium", WeightMedium},
	{"black", WeightBlack},
	{"heavy", WeightBlack},
	{"light", WeightLight},
	{"thin", WeightThin},
	{"bold", WeightBold},
}

// parseSubfamily derives weight and style from a subfamily name such as
// "Bold Italic" or "SemiBold".
func parseSubfamily(sub string) (weight int, italic bool) {
	s := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(sub))
	italic = strings.Contains(s, "italic") || strings.Contains(s, "oblique")
	for _, w := range weightWords {
		if strings.Contains(s, w.word) {
			return w.weight, italic
		}
	}
	return WeightRegular, italic
}
