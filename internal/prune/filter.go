// Package prune deletes table rows whose timestamp falls inside an inclusive
// range.
package prune

import (
	"fmt"
	"time"

	"github.com/coral-mesh/rowcut/internal/datetime"
	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
	"github.com/coral-mesh/rowcut/internal/table"
)

// maxFailureSamples bounds the unparseable values kept on a Result.
const maxFailureSamples = 5

// Range is an inclusive [Start, End] interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange returns a Range, failing with RangeOrderError when start is after end.
func NewRange(start, end time.Time) (Range, error) {
	if start.After(end) {
		return Range{}, &RangeOrderError{Start: start, End: end}
	}
	return Range{Start: start, End: end}, nil
}

// Contains reports whether t lies within the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// RangeOrderError reports a range whose start is after its end.
type RangeOrderError struct {
	Start time.Time
	End   time.Time
}

// Error implements the error interface.
func (e *RangeOrderError) Error() string {
	return fmt.Sprintf("start date %s must be before or equal to end date %s",
		e.Start.Format(time.DateTime), e.End.Format(time.DateTime))
}

// ExitCode implements rcerrors.Coded.
func (e *RangeOrderError) ExitCode() int {
	return rcerrors.ExitRangeOrder
}

// DeletedRow is a removed row and its 1-based position among the data rows.
type DeletedRow struct {
	Line  int
	Value time.Time
	Cells []string
}

// Stats describes how the values of a column converted under a pattern.
type Stats struct {
	// Nulls counts empty cells and ParseFailures cells that did not convert.
	Nulls          int
	ParseFailures  int
	FailureSamples []string

	// DataMin and DataMax span every converted value; HasData is false when
	// nothing converted.
	DataMin time.Time
	DataMax time.Time
	HasData bool
}

// observe converts raw with p and records the outcome.
func (s *Stats) observe(raw string, p datetime.Pattern) (time.Time, bool) {
	if datetime.IsNull(raw) {
		s.Nulls++
		return time.Time{}, false
	}

	ts, err := p.Parse(raw)
	if err != nil {
		s.ParseFailures++
		if len(s.FailureSamples) < maxFailureSamples {
			s.FailureSamples = append(s.FailureSamples, raw)
		}
		return time.Time{}, false
	}

	if !s.HasData || ts.Before(s.DataMin) {
		s.DataMin = ts
	}
	if !s.HasData || ts.After(s.DataMax) {
		s.DataMax = ts
	}
	s.HasData = true
	return ts, true
}

// Scan converts every value with p and returns the tally.
func Scan(values []string, p datetime.Pattern) Stats {
	var s Stats
	for _, v := range values {
		s.observe(v, p)
	}
	return s
}

// Result is the outcome of Filter. Rows counted as Nulls or ParseFailures
// are kept.
type Result struct {
	Stats

	Kept    *table.Table
	Deleted []DeletedRow
}

// DeletedCount returns the number of removed rows.
func (r *Result) DeletedCount() int {
	return len(r.Deleted)
}

// Filter removes the rows of t whose column value, converted with p, lies in
// rng. Rows whose value is empty or does not convert are kept and counted.
// Kept rows stay in their original order.
func Filter(t *table.Table, column string, p datetime.Pattern, rng Range) (*Result, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	kept := make([][]string, 0, len(t.Rows))

	for i, row := range t.Rows {
		ts, ok := res.observe(row[idx], p)
		if ok && rng.Contains(ts) {
			res.Deleted = append(res.Deleted, DeletedRow{Line: i + 1, Value: ts, Cells: row})
			continue
		}
		kept = append(kept, row)
	}

	if len(t.Rows) > 0 && !res.HasData {
		return nil, &datetime.FormatError{
			Format:  p.Format,
			Samples: res.FailureSamples,
			Err:     datetime.ErrNoParsableValues,
		}
	}

	res.Kept = t.Derive(kept)
	return res, nil
}
