package vglite

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// RawDumper writes buffers to numbered raw files (out-0.bin, out-1.bin, ...)
// in Dir. Each dumper owns its counter; a zero RawDumper writes to the
// current directory starting at 0.
type RawDumper struct {
	Dir    string
	Prefix string // defaults to "out-"

	next int
}

// Dump writes b to the next numbered file and returns its path.
func (d *RawDumper) Dump(b *Buffer) (string, error) {
	prefix := d.Prefix
	if prefix == "" {
		prefix = "out-"
	}
	name := filepath.Join(d.Dir, fmt.Sprintf("%s%d.bin", prefix, d.next))
	if err := WriteRawFile(name, b); err != nil {
		return "", err
	}
	d.next++
	return name, nil
}

// WriteRawFile writes the raw storage of b to path.
func WriteRawFile(path string, b *Buffer) (err error) {
	if err := b.checkTarget(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGenericIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrGenericIO, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if _, err := b.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w: %w", path, ErrGenericIO, err)
	}
	return nil
}
