// Package table holds delimited tabular data in memory.
package table

import (
	"fmt"
	"strings"

	rcerrors "github.com/coral-mesh/rowcut/internal/errors"
)

// Table is an ordered set of rows sharing one header.
type Table struct {
	Header []string
	Rows   [][]string

	// Dialect describes how the table was read and how it is written back.
	Dialect Dialect
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column. Names are matched
// exactly.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, &ColumnNotFoundError{Column: name, Available: append([]string(nil), t.Header...)}
}

// Column returns the raw values of the named column in row order.
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Derive returns a table with the same header and dialect holding rows.
func (t *Table) Derive(rows [][]string) *Table {
	return &Table{
		Header:  t.Header,
		Rows:    rows,
		Dialect: t.Dialect,
	}
}

// ColumnNotFoundError reports a column missing from the header.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

// Error implements the error interface.
func (e *ColumnNotFoundError) Error() string {
	msg := fmt.Sprintf("column %q not found; available columns: %s", e.Column, strings.Join(e.Available, ", "))
	if s := e.Suggestion(); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return msg
}

// Suggestion returns an available column that differs from the requested one
// only by case, or "".
func (e *ColumnNotFoundError) Suggestion() string {
	for _, c := range e.Available {
		if strings.EqualFold(c, e.Column) {
			return c
		}
	}
	return ""
}

// ExitCode implements rcerrors.Coded.
func (e *ColumnNotFoundError) ExitCode() int {
	return rcerrors.ExitColumnNotFound
}
