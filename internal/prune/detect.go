package prune

import (
	"os"
	"strconv"
	"time"

	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/safe"
	"github.com/coral-mesh/rowcut/internal/table"
)

// Detection reports the pattern resolved for a column without filtering it.
type Detection struct {
	Input   string `json:"input" yaml:"input"`
	Column  string `json:"column" yaml:"column"`
	Pattern string `json:"pattern" yaml:"pattern"`
	Format  string `json:"format" yaml:"format"`
	Source  string `json:"source" yaml:"source"`
	// Checked is the number of values the pattern was verified against.
	Checked int `json:"checked" yaml:"checked"`

	Rows           int        `json:"rows" yaml:"rows"`
	Nulls          int        `json:"nulls" yaml:"nulls"`
	ParseFailures  int        `json:"parse_failures" yaml:"parse_failures"`
	FailureSamples []string   `json:"failure_samples,omitempty" yaml:"failure_samples,omitempty"`
	DataMin        *time.Time `json:"data_min,omitempty" yaml:"data_min,omitempty"`
	DataMax        *time.Time `json:"data_max,omitempty" yaml:"data_max,omitempty"`
}

// Fields flattens the detection into labelled values in display order.
func (d *Detection) Fields() []Field {
	fields := []Field{
		{"Input", d.Input},
		{"Column", d.Column},
		{"Pattern", patternLabel(d.Pattern, d.Source)},
		{"Format", d.Format},
		{"Values checked", strconv.Itoa(d.Checked)},
		{"Rows", strconv.Itoa(d.Rows)},
	}
	if d.DataMin != nil && d.DataMax != nil {
		fields = append(fields, Field{"Data range", d.DataMin.Format(time.DateTime) + " to " + d.DataMax.Format(time.DateTime)})
	}
	if d.Nulls > 0 {
		fields = append(fields, Field{"Empty values", strconv.Itoa(d.Nulls)})
	}
	if d.ParseFailures > 0 {
		fields = append(fields, Field{"Unparseable values", strconv.Itoa(d.ParseFailures)})
	}
	return fields
}

// Detect loads the input and resolves the pattern of opts.Column. Every value
// is then converted to report the data range and the values that would be
// kept because they do not parse. Range, output and backup options are
// ignored.
func (r *Runner) Detect(opts Options) (*Detection, error) {
	tbl, _, err := r.load(opts)
	if err != nil {
		return nil, err
	}

	values, err := tbl.Column(opts.Column)
	if err != nil {
		return nil, err
	}

	res, err := r.resolver(opts).Resolve(values, opts.Format)
	if err != nil {
		return nil, err
	}

	stats := Scan(values, res.Pattern)
	d := &Detection{
		Input:          opts.InputPath,
		Column:         opts.Column,
		Pattern:        res.Pattern.Name,
		Format:         res.Pattern.Format,
		Source:         string(res.Source),
		Checked:        res.Checked,
		Rows:           tbl.Len(),
		Nulls:          stats.Nulls,
		ParseFailures:  stats.ParseFailures,
		FailureSamples: stats.FailureSamples,
	}
	if stats.HasData {
		lo, hi := stats.DataMin, stats.DataMax
		d.DataMin = &lo
		d.DataMax = &hi
	}

	r.logger.Debug().
		Str("pattern", d.Pattern).
		Str("source", d.Source).
		Int("checked", d.Checked).
		Msg("Resolved column pattern")

	return d, nil
}

func (r *Runner) resolver(opts Options) *datetime.Resolver {
	return datetime.NewResolver(opts.Candidates, datetime.WithSampleSize(opts.SampleSize))
}

// load validates and reads the input table.
func (r *Runner) load(opts Options) (*table.Table, os.FileInfo, error) {
	info, err := safe.Stat(opts.InputPath, opts.fileOptions())
	if err != nil {
		return nil, nil, &table.FileAccessError{Op: "read", Path: opts.InputPath, Err: err}
	}
	r.checkMemory(info.Size())

	r.logger.Info().Str("path", opts.InputPath).Msg("Loading data")
	tbl, err := table.Load(opts.InputPath, table.LoadOptions{Comma: opts.Comma, MaxSize: opts.MaxFileSize})
	if err != nil {
		return nil, nil, err
	}
	r.logger.Info().
		Int("rows", tbl.Len()).
		Int("columns", len(tbl.Header)).
		Msg("Loaded table")
	return tbl, info, nil
}
