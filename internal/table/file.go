package table

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/rowcut/internal/safe"
)

// LoadOptions configures Load.
type LoadOptions struct {
	// Comma overrides the delimiter chosen from the file extension.
	Comma rune
	// MaxSize is the largest input accepted, in bytes. Zero uses safe.DefaultMaxFileSize.
	MaxSize int64
}

// Load reads the delimited file at path into memory.
func Load(path string, opts LoadOptions) (*Table, error) {
	data, err := safe.ReadFile(path, &safe.FileOptions{MaxSize: opts.MaxSize, AllowSymlinks: true})
	if err != nil {
		return nil, &FileAccessError{Op: "read", Path: path, Err: err}
	}

	comma := opts.Comma
	if comma == 0 {
		comma = DefaultComma(path)
	}

	t, err := Decode(data, comma)
	if err != nil {
		return nil, &FileAccessError{Op: "parse", Path: path, Err: err}
	}
	return t, nil
}

// Save atomically replaces the file at path with t. perm of zero keeps the
// default mode of a new file.
func Save(path string, t *Table, perm os.FileMode, logger zerolog.Logger) error {
	err := safe.WriteFileAtomic(path, perm, logger, func(w io.Writer) error {
		return Encode(w, t)
	})
	if err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}
