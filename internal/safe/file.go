// Package safe provides validated file reads, copies and atomic writes.
package safe

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/zeebo/xxh3"

	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
)

// DefaultMaxFileSize is the default maximum file size for safe file operations (1GiB).
const DefaultMaxFileSize = 1 << 30

// FileOptions configures the validations applied by ReadFile and CopyFile.
type FileOptions struct {
	// MaxSize is the maximum allowed file size in bytes. Zero means DefaultMaxFileSize.
	MaxSize int64
	// DestPerm is the permission mode for a destination file. Zero keeps the
	// source file's mode.
	DestPerm os.FileMode
	// AllowSymlinks allows reading through symlinks.
	AllowSymlinks bool
}

func (o *FileOptions) maxSize() int64 {
	if o == nil || o.MaxSize == 0 {
		return DefaultMaxFileSize
	}
	return o.MaxSize
}

// Stat validates path and returns its file info. It rejects symlinks unless
// allowed, non-regular files and files larger than the configured maximum.
func Stat(path string, opts *FileOptions) (os.FileInfo, error) {
	if opts == nil {
		opts = &FileOptions{}
	}
	cleanPath := filepath.Clean(path)

	// Check file info without following symlinks.
	info, err := os.Lstat(cleanPath)
	if err != nil {
		return nil, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !opts.AllowSymlinks {
			return nil, fmt.Errorf("file %q is a symlink, which is not allowed", path)
		}
		info, err = os.Stat(cleanPath)
		if err != nil {
			return nil, err
		}
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("path %q is not a regular file", path)
	}

	if info.Size() > opts.maxSize() {
		return nil, fmt.Errorf("file %q exceeds maximum allowed size of %d bytes", path, opts.maxSize())
	}

	return info, nil
}

// ReadFile reads a whole file after validating it with Stat.
func ReadFile(path string, opts *FileOptions) ([]byte, error) {
	if _, err := Stat(path, opts); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Clean(path))
}

// CopyFile copies src to dst byte for byte. The destination is synced and
// closed before CopyFile returns.
func CopyFile(src, dst string, opts *FileOptions, logger zerolog.Logger) error {
	if opts == nil {
		opts = &FileOptions{}
	}
	info, err := Stat(src, opts)
	if err != nil {
		return err
	}
	destPerm := opts.DestPerm
	if destPerm == 0 {
		destPerm = info.Mode().Perm()
	}

	srcFile, err := os.Open(filepath.Clean(src))
	if err != nil {
		return err
	}
	defer rcerrors.DeferClose(logger, srcFile, "failed to close copy source")

	// #nosec G304 - the source has been validated; dst is chosen by the caller.
	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, destPerm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		Close(dstFile, logger, "failed to close copy destination")
		return err
	}
	if err := dstFile.Sync(); err != nil {
		Close(dstFile, logger, "failed to close copy destination")
		return err
	}
	return dstFile.Close()
}

// Checksum returns the XXH3 64-bit hash of a file's contents.
func Checksum(path string, logger zerolog.Logger) (uint64, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, err
	}
	defer rcerrors.DeferClose(logger, f, "failed to close checksum input")

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// WriteFileAtomic writes to a temporary file next to path and renames it into
// place once write succeeded, so readers never observe a partial file and an
// existing file is left untouched on failure.
func WriteFileAtomic(path string, perm os.FileMode, logger zerolog.Logger, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			RemoveFile(tmpFile, logger)
		}
	}()

	if err := write(tmpFile); err != nil {
		Close(tmpFile, logger, "failed to close temp file")
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		Close(tmpFile, logger, "failed to close temp file")
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if perm != 0 {
		if err := os.Chmod(tmpFile.Name(), perm); err != nil {
			return fmt.Errorf("failed to set permissions on temp file: %w", err)
		}
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	committed = true

	return nil
}

// Close closes gracefully a Closer interface, handling and logging the error.
func Close(c io.Closer, logger zerolog.Logger, msg string) {
	if err := c.Close(); err != nil {
		logger.Error().Err(err).Msg(msg)
	}
}

// RemoveFile removes gracefully a file, handling and logging the error.
func RemoveFile(f *os.File, logger zerolog.Logger) {
	if f == nil {
		return
	}
	if err := os.Remove(f.Name()); err != nil && !os.IsNotExist(err) {
		logger.Error().Err(err).Msg("failed to remove file")
	}
}
