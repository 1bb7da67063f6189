package prune

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/safe"
	"github.com/coral-mesh/rowcut/internal/sys/memory"
	"github.com/coral-mesh/rowcut/internal/table"
)

// DefaultBackupSuffix is appended to the input path to name the backup copy.
const DefaultBackupSuffix = ".backup"

// DefaultPreviewRows is the configured number of deleted rows kept on a Report.
const DefaultPreviewRows = 5

// ErrBackupMismatch is returned when a backup copy differs from its source.
var ErrBackupMismatch = errors.New("backup does not match input")

// Options describes one prune run.
type Options struct {
	InputPath string
	// OutputPath defaults to InputPath.
	OutputPath string
	Column     string
	Start      string
	End        string
	// Format is an explicit pattern; empty means auto-detect.
	Format string

	DryRun       bool
	Backup       bool
	BackupSuffix string

	// Comma overrides the delimiter chosen from the input's extension.
	Comma       rune
	SampleSize  int
	Candidates  []datetime.Pattern
	MaxFileSize int64
	// PreviewRows caps the deleted rows listed on the Report. Zero lists
	// none and a negative value lists all.
	PreviewRows int
}

func (o Options) outputPath() string {
	if o.OutputPath != "" {
		return o.OutputPath
	}
	return o.InputPath
}

// writePath is the file the kept rows are written to. A symlinked
// destination resolves to its target so the rename replaces the target and
// leaves the link in place.
func (o Options) writePath() string {
	out := o.outputPath()
	if target, err := filepath.EvalSymlinks(out); err == nil {
		return target
	}
	return out
}

func (o Options) fileOptions() *safe.FileOptions {
	return &safe.FileOptions{MaxSize: o.MaxFileSize, AllowSymlinks: true}
}

func (o Options) backupPath() string {
	suffix := o.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return o.InputPath + suffix
}

// Runner executes prune runs.
type Runner struct {
	logger    zerolog.Logger
	available func() (uint64, error)
}

// NewRunner creates a Runner that logs progress to logger.
func NewRunner(logger zerolog.Logger) *Runner {
	return &Runner{
		logger:    logger.With().Str("component", "prune").Logger(),
		available: memory.Available,
	}
}

// Run loads the input, resolves the datetime pattern, filters the rows and,
// unless DryRun is set, writes the kept rows.
//
// Every check (input, column, pattern, range order) completes before the
// backup or the output is touched; a failed run leaves the filesystem as it
// found it.
func (r *Runner) Run(opts Options) (*Report, error) {
	tbl, info, err := r.load(opts)
	if err != nil {
		return nil, err
	}

	values, err := tbl.Column(opts.Column)
	if err != nil {
		return nil, err
	}

	resolver := r.resolver(opts)

	var resolution datetime.Resolution
	switch {
	case tbl.Len() > 0:
		resolution, err = resolver.Resolve(values, opts.Format)
		if err != nil {
			return nil, err
		}
		r.logger.Debug().
			Str("pattern", resolution.Pattern.Name).
			Str("source", string(resolution.Source)).
			Int("checked", resolution.Checked).
			Msg("Resolved column pattern")
	case opts.Format != "":
		p, err := resolver.Lookup(opts.Format)
		if err != nil {
			return nil, err
		}
		resolution = datetime.Resolution{Pattern: p, Source: datetime.SourceExplicit}
	}

	start, end, boundPattern, err := resolver.ParseBounds(opts.Start, opts.End, opts.Format, resolution.Pattern)
	if err != nil {
		return nil, err
	}
	rng, err := NewRange(start, end)
	if err != nil {
		return nil, err
	}

	result, err := Filter(tbl, opts.Column, resolution.Pattern, rng)
	if err != nil {
		return nil, err
	}

	report := newReport(opts, tbl, resolution, boundPattern, rng, result)

	if result.HasData {
		r.logger.Info().
			Time("min", result.DataMin).
			Time("max", result.DataMax).
			Msg("Data datetime range")
	}
	if result.ParseFailures > 0 {
		r.logger.Warn().
			Int("count", result.ParseFailures).
			Strs("samples", result.FailureSamples).
			Msg("Rows with unparseable values are kept")
	}

	if opts.DryRun {
		r.logger.Info().
			Int("would_delete", result.DeletedCount()).
			Int("remaining", result.Kept.Len()).
			Msg("Dry run, nothing written")
		return report, nil
	}

	out := opts.writePath()
	if err := checkOutput(out); err != nil {
		return nil, err
	}

	if opts.Backup {
		backup := opts.backupPath()
		if err := r.backup(opts.InputPath, backup, opts.fileOptions()); err != nil {
			return nil, &table.FileAccessError{Op: "back up", Path: opts.InputPath, Err: err}
		}
		report.Backup = backup
		r.logger.Info().Str("path", backup).Msg("Backup created")
	}

	if err := table.Save(out, result.Kept, info.Mode().Perm(), r.logger); err != nil {
		return nil, err
	}
	report.Written = true

	r.logger.Info().
		Str("path", out).
		Int("deleted", result.DeletedCount()).
		Int("remaining", result.Kept.Len()).
		Msg("Filtered data saved")

	return report, nil
}

func (r *Runner) checkMemory(size int64) {
	avail, err := r.available()
	if err != nil {
		r.logger.Debug().Err(err).Msg("Memory check skipped")
		return
	}
	if !memory.Fits(size, avail) {
		r.logger.Warn().
			Int64("file_bytes", size).
			Uint64("available_bytes", avail).
			Msg("Input may not fit in available memory")
	}
}

// backup copies src to dst and verifies the copy is byte-identical.
func (r *Runner) backup(src, dst string, opts *safe.FileOptions) error {
	if err := safe.CopyFile(src, dst, opts, r.logger); err != nil {
		return err
	}

	want, err := safe.Checksum(src, r.logger)
	if err != nil {
		return err
	}
	got, err := safe.Checksum(dst, r.logger)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("%w: %s", ErrBackupMismatch, dst)
	}
	return nil
}

// checkOutput rejects destinations that can never be written to.
func checkOutput(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.Mode().IsRegular():
		return &table.FileAccessError{Op: "write", Path: path, Err: errors.New("destination is not a regular file")}
	case err != nil && !os.IsNotExist(err):
		return &table.FileAccessError{Op: "write", Path: path, Err: err}
	}

	dir, err := os.Stat(filepath.Dir(path))
	if err != nil {
		return &table.FileAccessError{Op: "write", Path: path, Err: err}
	}
	if !dir.IsDir() {
		return &table.FileAccessError{Op: "write", Path: path, Err: errors.New("parent is not a directory")}
	}
	return nil
}
