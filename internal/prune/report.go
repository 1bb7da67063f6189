package prune

import (
	"strconv"
	"strings"
	"time"

	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/table"
)

// Report summarizes a prune run.
type Report struct {
	Input         string `json:"input" yaml:"input"`
	Output        string `json:"output" yaml:"output"`
	Backup        string `json:"backup,omitempty" yaml:"backup,omitempty"`
	Column        string `json:"column" yaml:"column"`
	Pattern       string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	PatternSource string `json:"pattern_source,omitempty" yaml:"pattern_source,omitempty"`
	BoundPattern  string `json:"bound_pattern" yaml:"bound_pattern"`

	Start   time.Time  `json:"start" yaml:"start"`
	End     time.Time  `json:"end" yaml:"end"`
	DataMin *time.Time `json:"data_min,omitempty" yaml:"data_min,omitempty"`
	DataMax *time.Time `json:"data_max,omitempty" yaml:"data_max,omitempty"`

	Columns        int      `json:"columns" yaml:"columns"`
	RowsBefore     int      `json:"rows_before" yaml:"rows_before"`
	RowsAfter      int      `json:"rows_after" yaml:"rows_after"`
	Deleted        int      `json:"deleted" yaml:"deleted"`
	Nulls          int      `json:"nulls" yaml:"nulls"`
	ParseFailures  int      `json:"parse_failures" yaml:"parse_failures"`
	FailureSamples []string `json:"failure_samples,omitempty" yaml:"failure_samples,omitempty"`

	DryRun  bool         `json:"dry_run" yaml:"dry_run"`
	Written bool         `json:"written" yaml:"written"`
	Preview []PreviewRow `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// PreviewRow is one deleted row shown in a report.
type PreviewRow struct {
	Line  int    `json:"line" yaml:"line" header:"LINE"`
	Value string `json:"value" yaml:"value" header:"VALUE"`
	Row   string `json:"row" yaml:"row" header:"ROW"`
}

// Field is a labelled report value.
type Field struct {
	Name  string `json:"field" yaml:"field" header:"FIELD"`
	Value string `json:"value" yaml:"value" header:"VALUE"`
}

func newReport(opts Options, tbl *table.Table, res datetime.Resolution, bound datetime.Pattern, rng Range, result *Result) *Report {
	report := &Report{
		Input:          opts.InputPath,
		Output:         opts.outputPath(),
		Column:         opts.Column,
		Pattern:        res.Pattern.Name,
		PatternSource:  string(res.Source),
		BoundPattern:   bound.Name,
		Start:          rng.Start,
		End:            rng.End,
		Columns:        len(tbl.Header),
		RowsBefore:     tbl.Len(),
		RowsAfter:      result.Kept.Len(),
		Deleted:        result.DeletedCount(),
		Nulls:          result.Nulls,
		ParseFailures:  result.ParseFailures,
		FailureSamples: result.FailureSamples,
		DryRun:         opts.DryRun,
	}
	if result.HasData {
		lo, hi := result.DataMin, result.DataMax
		report.DataMin = &lo
		report.DataMax = &hi
	}

	limit := opts.PreviewRows
	comma := string(tbl.Dialect.Comma)
	if tbl.Dialect.Comma == 0 {
		comma = ","
	}
	for _, d := range result.Deleted {
		if limit >= 0 && len(report.Preview) >= limit {
			break
		}
		report.Preview = append(report.Preview, PreviewRow{
			Line:  d.Line,
			Value: d.Value.Format(time.DateTime),
			Row:   strings.Join(d.Cells, comma),
		})
	}

	return report
}

// Fields flattens the report into labelled values in display order.
func (r *Report) Fields() []Field {
	fields := []Field{
		{"Input", r.Input},
		{"Column", r.Column},
		{"Pattern", patternLabel(r.Pattern, r.PatternSource)},
		{"Range", r.Start.Format(time.DateTime) + " to " + r.End.Format(time.DateTime)},
	}
	if r.BoundPattern != "" && r.BoundPattern != r.Pattern {
		fields = append(fields, Field{"Range pattern", r.BoundPattern})
	}
	if r.DataMin != nil && r.DataMax != nil {
		fields = append(fields, Field{"Data range", r.DataMin.Format(time.DateTime) + " to " + r.DataMax.Format(time.DateTime)})
	}
	fields = append(fields,
		Field{"Columns", strconv.Itoa(r.Columns)},
		Field{"Rows before", strconv.Itoa(r.RowsBefore)},
		Field{"Rows deleted", strconv.Itoa(r.Deleted)},
		Field{"Rows after", strconv.Itoa(r.RowsAfter)},
	)
	if r.Nulls > 0 {
		fields = append(fields, Field{"Empty values kept", strconv.Itoa(r.Nulls)})
	}
	if r.ParseFailures > 0 {
		fields = append(fields, Field{"Unparseable values kept", strconv.Itoa(r.ParseFailures)})
	}
	if r.Backup != "" {
		fields = append(fields, Field{"Backup", r.Backup})
	}
	switch {
	case r.DryRun:
		fields = append(fields, Field{"Output", "not written (dry run)"})
	case r.Written:
		fields = append(fields, Field{"Output", r.Output})
	}
	return fields
}

func patternLabel(name, source string) string {
	switch {
	case name == "":
		return "none (no data rows)"
	case source == "":
		return name
	default:
		return name + " (" + source + ")"
	}
}
